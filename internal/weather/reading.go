package weather

// Reading is the outcome of parsing a weather payload: either a fully populated
// value or an explicit absence. Absence is not an error; the upstream answered but
// did not carry the record we asked for.
type Reading[T any] struct {
	value T
	ok    bool
}

// Present wraps a parsed value.
func Present[T any](v T) Reading[T] {
	return Reading[T]{value: v, ok: true}
}

// Absent reports that no usable record was found.
func Absent[T any]() Reading[T] {
	return Reading[T]{}
}

// Get returns the value and whether it is present.
func (r Reading[T]) Get() (T, bool) {
	return r.value, r.ok
}

// IsPresent reports whether the reading carries a value.
func (r Reading[T]) IsPresent() bool {
	return r.ok
}
