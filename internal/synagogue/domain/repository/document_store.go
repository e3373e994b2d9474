package repository

import "context"

// Document pairs a wire-format value with its document ID. The store never
// interprets the payload; it only attaches identity.
type Document[D any] struct {
	ID   string
	Data D
}

// Operator is a query comparison operator.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
)

// Filter is a single equality/range constraint on one field.
type Filter struct {
	Field string
	Op    Operator
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Unsubscribe detaches a live query. Safe to call more than once.
type Unsubscribe func()

// DocumentStore provides uniform low-level access to one collection path in
// the document store, parameterized by the wire-format (DTO) type.
//
// Failure model: transport errors propagate unmodified, with no retries.
// A missing document is not an error; GetByID returns nil.
type DocumentStore[D any] interface {
	// GetAll returns every document in the collection with its ID.
	// No pagination and no ordering guarantee beyond store default.
	GetAll(ctx context.Context) ([]Document[D], error)

	// GetByID returns the document or nil when absent.
	GetByID(ctx context.Context, id string) (*Document[D], error)

	// Exists reports whether a document with exactly this ID exists.
	// IDs are byte-exact; no case folding is applied.
	Exists(ctx context.Context, id string) (bool, error)

	// GetByQuery returns documents matching a single filter constraint.
	GetByQuery(ctx context.Context, filter Filter) ([]Document[D], error)

	// Insert stores a document under a store-generated ID and returns it.
	Insert(ctx context.Context, data D) (string, error)

	// InsertWithID stores a document under a caller-supplied ID,
	// overwriting any existing document (upsert, no collision detection).
	InsertWithID(ctx context.Context, id string, data D) error

	// Update merges the DTO's top-level fields into the stored document.
	// Nested arrays are replaced wholesale, not merged.
	Update(ctx context.Context, id string, data D) error

	// DeleteByID removes the document; deleting an absent document is
	// not an error.
	DeleteByID(ctx context.Context, id string) error

	// Count returns the number of documents without downloading them.
	Count(ctx context.Context) (int64, error)

	// LiveQuery invokes fn with the full current result set immediately
	// and again after every mutation of the collection.
	LiveQuery(ctx context.Context, fn func([]Document[D])) (Unsubscribe, error)

	// Path returns the effective (possibly tenant-scoped) collection path.
	Path() string
}
