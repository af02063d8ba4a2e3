package rule

type state uint8

const (
	stateSuspended state = iota
	stateComplete
	stateFailed
)

// Outcome is the tri-state result of a parse step: complete with a
// value, suspended awaiting more input, or failed with an error.
//
// The three states require opposite reactions from the caller (wait for
// more bytes versus try an alternative or abort), which is why an
// Outcome, not a value/error pair, is the return type of every parse
// step in this package.
//
// The zero value is a suspended Outcome.
type Outcome[T any] struct {
	state state
	value T
	err   error
}

// Complete returns an outcome carrying a successfully parsed value.
func Complete[T any](value T) Outcome[T] {
	return Outcome[T]{state: stateComplete, value: value}
}

// Suspend returns an outcome reporting that there is not enough input to
// decide between success and failure.
func Suspend[T any]() Outcome[T] {
	return Outcome[T]{state: stateSuspended}
}

// Fail returns an outcome reporting that the construct definitively does
// not match.
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{state: stateFailed, err: err}
}

// IsComplete reports whether the step recognized its construct.
func (o Outcome[T]) IsComplete() bool {
	return o.state == stateComplete
}

// IsSuspended reports whether the step needs more input.
func (o Outcome[T]) IsSuspended() bool {
	return o.state == stateSuspended
}

// IsFailed reports whether the step definitively did not match.
func (o Outcome[T]) IsFailed() bool {
	return o.state == stateFailed
}

// Value returns the parsed value. It is the zero value unless IsComplete.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the failure reason. It is nil unless IsFailed.
func (o Outcome[T]) Err() error {
	return o.err
}

// Forward carries a suspended or failed outcome across result types, for
// early returns from composite rules whose sub-rules produce different
// value types. It panics on a complete outcome, which a composite rule
// should have unwrapped instead.
func Forward[T, U any](o Outcome[U]) Outcome[T] {
	switch o.state {
	case stateSuspended:
		return Suspend[T]()
	case stateFailed:
		return Fail[T](o.err)
	}
	panic("rule: Forward called on a complete outcome")
}
