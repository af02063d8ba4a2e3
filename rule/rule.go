package rule

import "github.com/dhamidi/abnf/buf"

// ParseFunc attempts to parse a construct of type T from the beginning of
// the unread portion of b.
//
// Contract: on a complete outcome the buffer has advanced exactly past
// the recognized construct; on a suspended or failed outcome the buffer
// is in the state it had when the function was called. Composite rules
// satisfy the contract by wrapping themselves in Group rather than
// rewinding by hand.
type ParseFunc[T any] func(b *buf.Buffer) Outcome[T]

// CombineFunc receives one element result per repetition step and decides
// how the repetition proceeds. A non-nil err carries the element parser's
// failure; item is only meaningful when err is nil.
//
// A complete outcome ends the repetition with that value, a failed
// outcome aborts it with that error, and a suspended outcome requests
// another element.
type CombineFunc[T, S any] func(item T, err error) Outcome[S]

// Group runs parse and makes it all-or-nothing: if the outcome is
// suspended or failed, the buffer is rewound to where it was before the
// call. The outcome itself passes through unchanged.
//
// Every rule that consumes input across several sub-rules must be wrapped
// in Group so that partial consumption by an abandoned sub-rule never
// leaks to the rule's caller.
func Group[T any](b *buf.Buffer, parse ParseFunc[T]) Outcome[T] {
	snap := b.Snapshot()
	out := parse(b)
	if !out.IsComplete() {
		b.Restore(snap)
	}
	return out
}

// OptGroup is Group for rules whose success value is itself found or
// not found: the buffer position is kept only when the outcome is
// complete with a found value. Completing with None rewinds just like
// suspension and failure, so a rule that searched several nested
// alternatives and found nothing leaves no trace.
func OptGroup[T any](b *buf.Buffer, parse ParseFunc[Maybe[T]]) Outcome[Maybe[T]] {
	snap := b.Snapshot()
	out := parse(b)
	if !out.IsComplete() || !out.Value().IsSome() {
		b.Restore(snap)
	}
	return out
}

// Repeat parses zero or more elements with parse, handing each element
// result to combine.
//
// If parse suspends, the whole repetition suspends and rewinds: no
// partial repetition progress survives, and the retry starts over from
// the first element. Otherwise combine decides what happens next (see
// CombineFunc). Element failures reach combine rather than the caller;
// the usual combine treats the first failure as the end of the
// repetition, making zero elements a valid, side-effect-free result.
func Repeat[T, S any](b *buf.Buffer, parse ParseFunc[T], combine CombineFunc[T, S]) Outcome[S] {
	return Group(b, func(b *buf.Buffer) Outcome[S] {
		for {
			item := parse(b)
			if item.IsSuspended() {
				return Suspend[S]()
			}
			out := combine(item.Value(), item.Err())
			if !out.IsSuspended() {
				return out
			}
		}
	})
}

// AtLeastOnce is Repeat for repetitions that must match at least one
// element. If parse fails on the very first element, combine is not
// consulted: the repetition fails with adapt applied to the element's
// error, giving "expected at least one" its own attributable error.
// From the second element on, behavior is identical to Repeat.
func AtLeastOnce[T, S any](b *buf.Buffer, parse ParseFunc[T], combine CombineFunc[T, S], adapt func(error) error) Outcome[S] {
	return Group(b, func(b *buf.Buffer) Outcome[S] {
		first := parse(b)
		switch {
		case first.IsSuspended():
			return Suspend[S]()
		case first.IsFailed():
			return Fail[S](adapt(first.Err()))
		}
		out := combine(first.Value(), nil)
		for out.IsSuspended() {
			item := parse(b)
			if item.IsSuspended() {
				return Suspend[S]()
			}
			out = combine(item.Value(), item.Err())
		}
		return out
	})
}

// Optional applies parse at most once. A complete outcome becomes
// Complete(Some(value)), suspension passes through since absence cannot
// be decided yet, and failure becomes Complete(None) with the error
// discarded.
//
// Optional performs no rewind of its own. It relies entirely on the
// ParseFunc contract that a failing rule consumes nothing.
func Optional[T any](b *buf.Buffer, parse ParseFunc[T]) Outcome[Maybe[T]] {
	out := parse(b)
	switch {
	case out.IsSuspended():
		return Suspend[Maybe[T]]()
	case out.IsFailed():
		return Complete(None[T]())
	}
	return Complete(Some(out.Value()))
}
