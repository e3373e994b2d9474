// Package usecase holds the typed repository layer: generic services that
// pair a document store with a mapper, and the per-tenant registries the
// application wires at startup.
package usecase

import (
	"context"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/utils"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// GenericService is a typed repository over one collection. It converts
// between entities and wire DTOs at the boundary; everything above it
// works with entities only.
type GenericService[E any, D any] struct {
	store  repository.DocumentStore[D]
	mapper repository.Mapper[E, D]
	log    logger.Logger
}

// NewGenericService pairs a store with a mapper.
func NewGenericService[E any, D any](store repository.DocumentStore[D], mapper repository.Mapper[E, D], log logger.Logger) *GenericService[E, D] {
	return &GenericService[E, D]{
		store:  store,
		mapper: mapper,
		log:    log.WithComponent("repository").WithFields(map[string]interface{}{"path": store.Path()}),
	}
}

// Path returns the collection path this service reads and writes.
func (s *GenericService[E, D]) Path() string { return s.store.Path() }

// Store exposes the underlying document store for callers that need
// adapter-specific capabilities, such as transactions.
func (s *GenericService[E, D]) Store() repository.DocumentStore[D] { return s.store }

// GetAll returns every entity in the collection. A document the mapper
// rejects fails the whole read; partial results are never returned.
func (s *GenericService[E, D]) GetAll(ctx context.Context) ([]E, error) {
	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapAll(docs)
}

// GetByID returns the entity or nil when absent.
func (s *GenericService[E, D]) GetByID(ctx context.Context, id string) (*E, error) {
	doc, err := s.store.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	entity, err := s.mapper.FromDto(doc.Data, doc.ID)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Exists reports whether a document with exactly this ID exists.
func (s *GenericService[E, D]) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// GetByQuery returns entities matching a single field constraint.
func (s *GenericService[E, D]) GetByQuery(ctx context.Context, filter repository.Filter) ([]E, error) {
	docs, err := s.store.GetByQuery(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.mapAll(docs)
}

// Insert stores the entity under a store-generated ID and returns it.
func (s *GenericService[E, D]) Insert(ctx context.Context, entity E) (string, error) {
	return s.store.Insert(ctx, s.mapper.ToDto(entity))
}

// InsertWithID stores the entity under the caller's ID, replacing any
// existing document.
func (s *GenericService[E, D]) InsertWithID(ctx context.Context, id string, entity E) error {
	return s.store.InsertWithID(ctx, id, s.mapper.ToDto(entity))
}

// InsertWithTimeout races the insert against a deadline. On timeout the
// caller gets a timeout error while the insert itself keeps running and
// may still land.
func (s *GenericService[E, D]) InsertWithTimeout(ctx context.Context, entity E, timeout time.Duration) (string, error) {
	return utils.RaceTimeout(ctx, "insert "+s.store.Path(), timeout, func(ctx context.Context) (string, error) {
		return s.Insert(ctx, entity)
	})
}

// Update merges the entity's wire fields into the stored document.
func (s *GenericService[E, D]) Update(ctx context.Context, id string, entity E) error {
	return s.store.Update(ctx, id, s.mapper.ToDto(entity))
}

// DeleteByID removes the document; deleting an absent document succeeds.
func (s *GenericService[E, D]) DeleteByID(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}

// Count returns the number of documents in the collection.
func (s *GenericService[E, D]) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// LiveQuery delivers all entities now and after every collection
// mutation. A refresh whose documents fail mapping is dropped with a log
// line; the subscription stays alive.
func (s *GenericService[E, D]) LiveQuery(ctx context.Context, fn func([]E)) (repository.Unsubscribe, error) {
	return s.store.LiveQuery(ctx, func(docs []repository.Document[D]) {
		entities, err := s.mapAll(docs)
		if err != nil {
			s.log.WithContext(ctx).Errorf("Dropping live query delivery: %v", err)
			return
		}
		fn(entities)
	})
}

func (s *GenericService[E, D]) mapAll(docs []repository.Document[D]) ([]E, error) {
	entities := make([]E, 0, len(docs))
	for _, doc := range docs {
		entity, err := s.mapper.FromDto(doc.Data, doc.ID)
		if err != nil {
			return nil, errors.WrapError(err, "failed to map document").
				WithDetail("id", doc.ID).
				WithDetail("path", s.store.Path())
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
