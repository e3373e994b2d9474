// Package memory implements the document store port on an in-process map.
// It mirrors the MongoDB adapter's semantics, including top-level field
// merge on update, so tests exercise the same behavior the real store has.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/shared/eventbus"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/synagogue/domain/repository"
)

var _ repository.DocumentStore[struct{}] = (*DocumentStore[struct{}])(nil)

// DocumentStore is an in-memory implementation of the document store port
// for one collection path. Safe for concurrent use.
type DocumentStore[D any] struct {
	mu    sync.RWMutex
	docs  map[string]bson.M
	seq   map[string]int // insertion sequence, for deterministic GetAll order
	next  int
	path  string
	bus   *eventbus.EventBus
}

// NewDocumentStore creates an empty store bound to the given path. The bus
// may be nil when live queries are not needed.
func NewDocumentStore[D any](path string, bus *eventbus.EventBus) (*DocumentStore[D], error) {
	if err := paths.Validate(path); err != nil {
		return nil, err
	}
	return &DocumentStore[D]{
		docs: make(map[string]bson.M),
		seq:  make(map[string]int),
		path: path,
		bus:  bus,
	}, nil
}

// Path returns the collection path this store is bound to.
func (s *DocumentStore[D]) Path() string { return s.path }

// GetAll returns every document in insertion order.
func (s *DocumentStore[D]) GetAll(ctx context.Context) ([]repository.Document[D], error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] < s.seq[ids[j]] })

	docs := make([]repository.Document[D], 0, len(ids))
	for _, id := range ids {
		doc, err := s.decode(id, s.docs[id])
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		docs = append(docs, doc)
	}
	s.mu.RUnlock()
	return docs, nil
}

// GetByID returns the document or nil when absent. The decode happens
// under the read lock; Update mutates stored maps in place.
func (s *DocumentStore[D]) GetByID(ctx context.Context, id string) (*repository.Document[D], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	doc, err := s.decode(id, fields)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Exists reports whether a document with exactly this ID exists.
func (s *DocumentStore[D]) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	_, ok := s.docs[id]
	s.mu.RUnlock()
	return ok, nil
}

// GetByQuery returns documents matching a single field constraint.
func (s *DocumentStore[D]) GetByQuery(ctx context.Context, filter repository.Filter) ([]repository.Document[D], error) {
	if filter.Field == "" {
		return nil, errors.NewValidationError("filter field is required")
	}
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]repository.Document[D], 0)
	for _, doc := range all {
		ok, err := matches(s.docs[doc.ID], filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// Insert stores the document under a fresh ID and returns it.
func (s *DocumentStore[D]) Insert(ctx context.Context, data D) (string, error) {
	fields, err := toFields(data)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.docs[id] = fields
	s.seq[id] = s.next
	s.next++
	s.mu.Unlock()

	s.notify(ctx, id, eventbus.ChangeInsert)
	return id, nil
}

// InsertWithID stores the document under the caller's ID, replacing any
// existing document.
func (s *DocumentStore[D]) InsertWithID(ctx context.Context, id string, data D) error {
	if !paths.IsValidID(id) {
		return errors.ErrInvalidDocumentID
	}
	fields, err := toFields(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.docs[id]; !ok {
		s.seq[id] = s.next
		s.next++
	}
	s.docs[id] = fields
	s.mu.Unlock()

	s.notify(ctx, id, eventbus.ChangeInsert)
	return nil
}

// Update merges the DTO's top-level fields into the stored document.
// Fields dropped by omitempty are left untouched; array fields are
// replaced wholesale, matching a $set on the real store.
func (s *DocumentStore[D]) Update(ctx context.Context, id string, data D) error {
	fields, err := toFields(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	existing, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return errors.NewNotFoundError("document").WithDetail("id", id).WithDetail("path", s.path)
	}
	for k, v := range fields {
		existing[k] = v
	}
	s.mu.Unlock()

	s.notify(ctx, id, eventbus.ChangeUpdate)
	return nil
}

// DeleteByID removes the document. Deleting an absent document succeeds.
func (s *DocumentStore[D]) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	_, existed := s.docs[id]
	delete(s.docs, id)
	delete(s.seq, id)
	s.mu.Unlock()

	if existed {
		s.notify(ctx, id, eventbus.ChangeDelete)
	}
	return nil
}

// Count returns the number of documents.
func (s *DocumentStore[D]) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	n := len(s.docs)
	s.mu.RUnlock()
	return int64(n), nil
}

// LiveQuery delivers the full result set now and again after every
// mutation. Requires a bus.
func (s *DocumentStore[D]) LiveQuery(ctx context.Context, fn func([]repository.Document[D])) (repository.Unsubscribe, error) {
	if s.bus == nil {
		return nil, errors.NewInfrastructureError("live queries need an event bus")
	}
	docs, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	fn(docs)

	topic := eventbus.CollectionTopic(s.path)
	subID := s.bus.Subscribe(topic, func(ctx context.Context, _ eventbus.Event) error {
		docs, err := s.GetAll(ctx)
		if err != nil {
			return nil
		}
		fn(docs)
		return nil
	})
	return func() { s.bus.Unsubscribe(topic, subID) }, nil
}

func (s *DocumentStore[D]) notify(ctx context.Context, id string, kind eventbus.ChangeKind) {
	if s.bus == nil {
		return
	}
	// Synchronous delivery keeps tests deterministic.
	_ = s.bus.Publish(ctx, eventbus.CollectionChangedEvent{
		Path:       s.path,
		DocumentID: id,
		Kind:       kind,
		At:         time.Now().UTC(),
	})
}

func (s *DocumentStore[D]) decode(id string, fields bson.M) (repository.Document[D], error) {
	var doc repository.Document[D]
	raw, err := bson.Marshal(fields)
	if err != nil {
		return doc, errors.WrapError(err, "failed to encode stored document").WithComponent("memory_store")
	}
	if err := bson.Unmarshal(raw, &doc.Data); err != nil {
		return doc, errors.WrapError(err, "failed to decode stored document").WithComponent("memory_store")
	}
	doc.ID = id
	return doc, nil
}

func toFields(data interface{}) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, errors.WrapError(err, "failed to encode document").WithComponent("memory_store")
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, errors.WrapError(err, "failed to flatten document").WithComponent("memory_store")
	}
	delete(fields, "_id")
	return fields, nil
}

func matches(fields bson.M, filter repository.Filter) (bool, error) {
	value, ok := fields[filter.Field]
	if !ok {
		return false, nil
	}
	switch filter.Op {
	case repository.OpEqual:
		return compare(value, filter.Value) == 0, nil
	case repository.OpNotEqual:
		return compare(value, filter.Value) != 0, nil
	case repository.OpLess:
		return compare(value, filter.Value) < 0, nil
	case repository.OpLessEqual:
		return compare(value, filter.Value) <= 0, nil
	case repository.OpGreater:
		return compare(value, filter.Value) > 0, nil
	case repository.OpGreaterEqual:
		return compare(value, filter.Value) >= 0, nil
	default:
		return false, errors.NewValidationError("unsupported filter operator").
			WithDetail("operator", string(filter.Op))
	}
}

// compare orders two scalar values. Numbers compare numerically across
// int widths, everything else compares by equality only (returns 0 when
// equal, 1 otherwise).
func compare(a, b interface{}) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	if a == b {
		return 0
	}
	return 1
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
