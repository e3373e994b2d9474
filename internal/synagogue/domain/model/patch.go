package model

// orElse resolves one patch field: the pointed-to value when set, the
// current value otherwise. Update methods never touch id, createdAt or
// createdBy; those fields have no patch slot at all.
func orElse[T any](p *T, current T) T {
	if p != nil {
		return *p
	}
	return current
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T { return &v }
