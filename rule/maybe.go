package rule

// Maybe is a found-or-not-found value, produced by Optional and consumed
// by OptGroup when a rule searches for a construct that may be absent.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some returns a Maybe holding a found value.
func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, ok: true}
}

// None returns an empty Maybe.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the held value and whether one is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.ok
}
