// Package rediscache decorates a document store with a Redis read cache.
// Reads of the whole collection and of single documents are cached under
// keys derived from the collection path; every mutation invalidates the
// collection's key prefix.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/repository"
)

const keyPrefix = "cache:"

var _ repository.DocumentStore[struct{}] = (*CachedDocumentStore[struct{}])(nil)

// CachedDocumentStore wraps another store with Redis caching. Cache
// failures degrade to the inner store and are logged, never surfaced.
type CachedDocumentStore[D any] struct {
	inner  repository.DocumentStore[D]
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewCachedDocumentStore decorates inner with a Redis cache. A zero TTL
// caches without expiry, relying on invalidation alone.
func NewCachedDocumentStore[D any](inner repository.DocumentStore[D], client *redis.Client, ttl time.Duration, log logger.Logger) *CachedDocumentStore[D] {
	return &CachedDocumentStore[D]{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    log.WithComponent("redis_cache").WithFields(map[string]interface{}{"path": inner.Path()}),
	}
}

// Path returns the inner store's collection path.
func (c *CachedDocumentStore[D]) Path() string { return c.inner.Path() }

// GetAll serves the collection from cache when possible.
func (c *CachedDocumentStore[D]) GetAll(ctx context.Context) ([]repository.Document[D], error) {
	key := c.collectionKey()
	var cached []repository.Document[D]
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	docs, err := c.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, docs)
	return docs, nil
}

// GetByID serves a single document from cache when possible. Absent
// documents are not cached; the inner store answers every miss.
func (c *CachedDocumentStore[D]) GetByID(ctx context.Context, id string) (*repository.Document[D], error) {
	key := c.documentKey(id)
	var cached repository.Document[D]
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	doc, err := c.inner.GetByID(ctx, id)
	if err != nil || doc == nil {
		return doc, err
	}
	c.set(ctx, key, doc)
	return doc, nil
}

// Exists always asks the inner store; existence probes must not see stale
// deletes.
func (c *CachedDocumentStore[D]) Exists(ctx context.Context, id string) (bool, error) {
	return c.inner.Exists(ctx, id)
}

// GetByQuery passes through; filtered results are not cached.
func (c *CachedDocumentStore[D]) GetByQuery(ctx context.Context, filter repository.Filter) ([]repository.Document[D], error) {
	return c.inner.GetByQuery(ctx, filter)
}

// Insert writes through and invalidates the collection's cache keys.
func (c *CachedDocumentStore[D]) Insert(ctx context.Context, data D) (string, error) {
	id, err := c.inner.Insert(ctx, data)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx)
	return id, nil
}

// InsertWithID writes through and invalidates the collection's cache keys.
func (c *CachedDocumentStore[D]) InsertWithID(ctx context.Context, id string, data D) error {
	if err := c.inner.InsertWithID(ctx, id, data); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates the collection's cache keys.
func (c *CachedDocumentStore[D]) Update(ctx context.Context, id string, data D) error {
	if err := c.inner.Update(ctx, id, data); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DeleteByID writes through and invalidates the collection's cache keys.
func (c *CachedDocumentStore[D]) DeleteByID(ctx context.Context, id string) error {
	if err := c.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Count passes through; counts are cheap on the inner store.
func (c *CachedDocumentStore[D]) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// LiveQuery passes through; live queries bypass the cache so every
// delivery reflects the store.
func (c *CachedDocumentStore[D]) LiveQuery(ctx context.Context, fn func([]repository.Document[D])) (repository.Unsubscribe, error) {
	return c.inner.LiveQuery(ctx, fn)
}

func (c *CachedDocumentStore[D]) collectionKey() string {
	return keyPrefix + c.inner.Path() + ":all"
}

func (c *CachedDocumentStore[D]) documentKey(id string) string {
	return keyPrefix + c.inner.Path() + ":doc:" + id
}

func (c *CachedDocumentStore[D]) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.WithContext(ctx).Warnf("Cache read failed for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.WithContext(ctx).Warnf("Cache entry corrupt for %s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedDocumentStore[D]) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.WithContext(ctx).Warnf("Cache encode failed for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("Cache write failed for %s: %v", key, err)
	}
}

// invalidate deletes every cache key under this collection's prefix.
func (c *CachedDocumentStore[D]) invalidate(ctx context.Context) {
	pattern := keyPrefix + c.inner.Path() + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.WithContext(ctx).Warnf("Cache scan failed for %s: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("Cache invalidation failed for %s: %v", pattern, err)
	}
}
