package repository

// Mapper converts between the wire format (flat, JSON-safe, epoch-millis
// timestamps) and the rich in-memory entity. Implementations must be pure
// and synchronous: no I/O, no shared state.
//
// FromDto must be total for any well-formed DTO: optional fields are
// defaulted, and only a missing required field may produce an error.
// ToDto must be the left inverse modulo ID, so that
// FromDto(ToDto(e), e.ID) reconstructs an equivalent entity.
type Mapper[E any, D any] interface {
	FromDto(dto D, id string) (E, error)
	ToDto(entity E) D
}
