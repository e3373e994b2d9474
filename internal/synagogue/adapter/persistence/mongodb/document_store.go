// Package mongodb implements the document store port on a MongoDB
// collection. Each scoped path maps to one collection whose documents
// carry the DTO fields at top level next to a string _id.
package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/shared/eventbus"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/synagogue/domain/repository"
)

var _ repository.DocumentStore[struct{}] = (*DocumentStore[struct{}])(nil)

// DocumentStore is the MongoDB implementation of the document store port
// for one collection path.
type DocumentStore[D any] struct {
	collection *mongo.Collection
	path       string
	bus        *eventbus.EventBus
	log        logger.Logger
}

// NewDocumentStore binds a store to the collection named by path. The bus
// carries change notifications for live queries; it may be shared across
// stores.
func NewDocumentStore[D any](db *mongo.Database, path string, bus *eventbus.EventBus, log logger.Logger) (*DocumentStore[D], error) {
	if err := paths.Validate(path); err != nil {
		return nil, err
	}
	return &DocumentStore[D]{
		collection: db.Collection(path),
		path:       path,
		bus:        bus,
		log:        log.WithComponent("mongodb_store").WithFields(map[string]interface{}{"path": path}),
	}, nil
}

// Path returns the collection path this store is bound to.
func (s *DocumentStore[D]) Path() string { return s.path }

// GetAll returns every document in the collection.
func (s *DocumentStore[D]) GetAll(ctx context.Context) ([]repository.Document[D], error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.WrapError(err, "failed to query collection").WithComponent("mongodb_store")
	}
	defer cursor.Close(ctx)
	return s.decodeAll(ctx, cursor)
}

// GetByID returns the document or nil when absent.
func (s *DocumentStore[D]) GetByID(ctx context.Context, id string) (*repository.Document[D], error) {
	var raw bson.Raw
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, "failed to fetch document").WithComponent("mongodb_store")
	}
	doc, err := s.decode(raw)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Exists reports whether a document with exactly this ID exists. The _id
// match is byte-exact; case-variant IDs are distinct documents.
func (s *DocumentStore[D]) Exists(ctx context.Context, id string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.WrapError(err, "failed to check document existence").WithComponent("mongodb_store")
	}
	return count > 0, nil
}

// GetByQuery returns documents matching a single field constraint.
func (s *DocumentStore[D]) GetByQuery(ctx context.Context, filter repository.Filter) ([]repository.Document[D], error) {
	selector, err := filterToSelector(filter)
	if err != nil {
		return nil, err
	}
	cursor, err := s.collection.Find(ctx, selector)
	if err != nil {
		return nil, errors.WrapError(err, "failed to query collection").WithComponent("mongodb_store")
	}
	defer cursor.Close(ctx)
	return s.decodeAll(ctx, cursor)
}

// Insert stores the document under a fresh ID and returns it.
func (s *DocumentStore[D]) Insert(ctx context.Context, data D) (string, error) {
	id := uuid.NewString()
	doc, err := toEnvelope(id, data)
	if err != nil {
		return "", err
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", errors.WrapError(err, "failed to insert document").WithComponent("mongodb_store")
	}
	s.notify(ctx, id, eventbus.ChangeInsert)
	s.log.WithContext(ctx).Debugf("Inserted document %s", id)
	return id, nil
}

// InsertWithID stores the document under the caller's ID, replacing any
// existing document.
func (s *DocumentStore[D]) InsertWithID(ctx context.Context, id string, data D) error {
	if !paths.IsValidID(id) {
		return errors.ErrInvalidDocumentID
	}
	doc, err := toEnvelope(id, data)
	if err != nil {
		return err
	}
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.WrapError(err, "failed to upsert document").WithComponent("mongodb_store")
	}
	s.notify(ctx, id, eventbus.ChangeInsert)
	s.log.WithContext(ctx).Debugf("Upserted document %s", id)
	return nil
}

// Update merges the DTO's top-level fields into the stored document via
// $set. Nested arrays are whole values to $set, so concurrent updates to
// the same array lose; disjoint top-level fields merge.
func (s *DocumentStore[D]) Update(ctx context.Context, id string, data D) error {
	fields, err := toFields(data)
	if err != nil {
		return err
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return errors.WrapError(err, "failed to update document").WithComponent("mongodb_store")
	}
	if result.MatchedCount == 0 {
		return errors.NewNotFoundError("document").WithDetail("id", id).WithDetail("path", s.path)
	}
	s.notify(ctx, id, eventbus.ChangeUpdate)
	s.log.WithContext(ctx).Debugf("Updated document %s", id)
	return nil
}

// DeleteByID removes the document. Deleting an absent document succeeds.
func (s *DocumentStore[D]) DeleteByID(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.WrapError(err, "failed to delete document").WithComponent("mongodb_store")
	}
	if result.DeletedCount > 0 {
		s.notify(ctx, id, eventbus.ChangeDelete)
		s.log.WithContext(ctx).Debugf("Deleted document %s", id)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *DocumentStore[D]) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.WrapError(err, "failed to count documents").WithComponent("mongodb_store")
	}
	return count, nil
}

// LiveQuery delivers the full result set now and again after every
// mutation of this collection. Deliveries run on the mutator's goroutine;
// fn must not block.
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
			s.log.WithContext(ctx).Errorf("Live query refresh failed: %v", err)
			return nil
		}
		fn(docs)
		return nil
	})

	return func() { s.bus.Unsubscribe(topic, subID) }, nil
}

// RunTransaction executes fn inside a MongoDB session transaction. This is
// a capability of the MongoDB adapter, not of the store port; callers that
// need it depend on this concrete type.
func (s *DocumentStore[D]) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.collection.Database().Client().StartSession()
	if err != nil {
		return errors.WrapError(err, "failed to start session").WithComponent("mongodb_store")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return errors.WrapError(err, "transaction aborted").WithComponent("mongodb_store")
	}
	return nil
}

func (s *DocumentStore[D]) notify(ctx context.Context, id string, kind eventbus.ChangeKind) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAndForget(ctx, eventbus.CollectionChangedEvent{
		Path:       s.path,
		DocumentID: id,
		Kind:       kind,
		At:         time.Now().UTC(),
	})
}

func (s *DocumentStore[D]) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]repository.Document[D], error) {
	docs := make([]repository.Document[D], 0)
	for cursor.Next(ctx) {
		doc, err := s.decode(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.WrapError(err, "cursor iteration failed").WithComponent("mongodb_store")
	}
	return docs, nil
}

func (s *DocumentStore[D]) decode(raw bson.Raw) (repository.Document[D], error) {
	var doc repository.Document[D]

	idValue, err := raw.LookupErr("_id")
	if err != nil {
		return doc, errors.WrapError(err, "document has no _id").WithComponent("mongodb_store")
	}
	id, ok := idValue.StringValueOK()
	if !ok {
		return doc, errors.NewInfrastructureError("document _id is not a string").
			WithDetail("path", s.path)
	}

	// The DTO has no field mapped to _id, so unmarshalling the full
	// document ignores it.
	if err := bson.Unmarshal(raw, &doc.Data); err != nil {
		return doc, errors.WrapError(err, "failed to decode document").WithComponent("mongodb_store")
	}
	doc.ID = id
	return doc, nil
}

// toEnvelope flattens the DTO to a bson document with the ID attached.
func toEnvelope(id string, data interface{}) (bson.M, error) {
	fields, err := toFields(data)
	if err != nil {
		return nil, err
	}
	fields["_id"] = id
	return fields, nil
}

// toFields marshals the DTO into a flat field map. omitempty tags drop
// unset optional fields, so they are neither inserted nor $set.
func toFields(data interface{}) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, errors.WrapError(err, "failed to encode document").WithComponent("mongodb_store")
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, errors.WrapError(err, "failed to flatten document").WithComponent("mongodb_store")
	}
	delete(fields, "_id")
	return fields, nil
}

func filterToSelector(filter repository.Filter) (bson.M, error) {
	if filter.Field == "" {
		return nil, errors.NewValidationError("filter field is required")
	}
	switch filter.Op {
	case repository.OpEqual:
		return bson.M{filter.Field: filter.Value}, nil
	case repository.OpNotEqual:
		return bson.M{filter.Field: bson.M{"$ne": filter.Value}}, nil
	case repository.OpLess:
		return bson.M{filter.Field: bson.M{"$lt": filter.Value}}, nil
	case repository.OpLessEqual:
		return bson.M{filter.Field: bson.M{"$lte": filter.Value}}, nil
	case repository.OpGreater:
		return bson.M{filter.Field: bson.M{"$gt": filter.Value}}, nil
	case repository.OpGreaterEqual:
		return bson.M{filter.Field: bson.M{"$gte": filter.Value}}, nil
	default:
		return nil, errors.NewValidationError("unsupported filter operator").
			WithDetail("operator", string(filter.Op))
	}
}
