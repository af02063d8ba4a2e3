// Package rule provides combinators for writing incremental, non-blocking
// grammar parsers over streaming byte input.
//
// # Overview
//
// The package is built around two kinds of functions that callers supply:
// parse functions and combine functions.
//
// A parse function attempts to recognize a construct at the beginning of
// the unread portion of a buffer. It can complete, fail, or suspend
// because not enough bytes have arrived yet. Because parse functions
// receive the buffer by pointer, they must follow one convention: on
// completion, a parse function consumes exactly the bytes that make up
// the recognized construct; on failure or suspension, it consumes
// nothing. Composite rules do not uphold this by hand; they wrap
// themselves in Group, which rewinds for them.
//
// A combine function drives repetition. It receives each element's result
// and decides whether to parse another element, finish with an aggregate
// value, or abort with an error.
//
// # Outcomes
//
// Every parse step returns an Outcome, which is in exactly one of three
// states:
//
//   - Complete: the construct was recognized; the buffer has advanced
//     past it.
//   - Suspended: there is not enough input to decide; the buffer is
//     unchanged, and the caller should obtain more bytes and retry the
//     same step.
//   - Failed: the construct is definitively absent; the buffer is
//     unchanged.
//
// Suspension, not blocking, is how these parsers wait: control returns
// to whatever drives the parse (see the stream package), which feeds
// more bytes and retries the identical step from the identical position.
//
// # Implementing Rules as ABNF Operators
//
// [RFC 5234] defines a number of operators. Here is how each maps onto
// this package.
//
// # Concatenation: Rule1 Rule2
//
// Parse one rule after another, returning early if a rule fails or
// suspends. Because the second rule may give up after the first has
// already consumed bytes, the sequence must be wrapped in Group so the
// caller never observes partial consumption:
//
//	func concat(b *buf.Buffer) rule.Outcome[Pair] {
//		return rule.Group(b, func(b *buf.Buffer) rule.Outcome[Pair] {
//			first := rule1(b)
//			if !first.IsComplete() {
//				return rule.Forward[Pair](first)
//			}
//			second := rule2(b)
//			if !second.IsComplete() {
//				return rule.Forward[Pair](second)
//			}
//			return rule.Complete(Pair{first.Value(), second.Value()})
//		})
//	}
//
// # Alternatives: Rule1 / Rule2
//
// Try each alternative in turn as an expression producing a found or
// not-found value. OptGroup keeps the buffer untouched across rejected
// alternatives:
//
//	func alt(b *buf.Buffer) rule.Outcome[Res] {
//		for _, try := range []rule.ParseFunc[rule.Maybe[Res]]{rule1, rule2} {
//			out := rule.OptGroup(b, try)
//			if out.IsSuspended() || out.IsFailed() {
//				return rule.Forward[Res](out)
//			}
//			if v, ok := out.Value().Get(); ok {
//				return rule.Complete(v)
//			}
//		}
//		return rule.Fail[Res](errNoAlternative)
//	}
//
// # Optional Repetition: *Rule
//
// Repeat parses elements until its combine function decides to stop.
// The usual shape accumulates each element and treats the first element
// failure as the end of the repetition:
//
//	func repeatRule(b *buf.Buffer) rule.Outcome[[]Res] {
//		var res []Res
//		return rule.Repeat(b, elem, func(item Res, err error) rule.Outcome[[]Res] {
//			if err != nil {
//				return rule.Complete(res)
//			}
//			res = append(res, item)
//			return rule.Suspend[[]Res]()
//		})
//	}
//
// Note that Suspend from a combine function means "parse another
// element", not "wait for input"; only the element parser itself reports
// input starvation.
//
// # Specific and Limited Repetitions: <n>Rule and <a>*<b>Rule
//
// Both happen rarely enough on the rule level that there is no dedicated
// function. Close over a counter instead:
//
//	func sixRule(b *buf.Buffer) rule.Outcome[[]Res] {
//		var res []Res
//		return rule.Repeat(b, elem, func(item Res, err error) rule.Outcome[[]Res] {
//			if err != nil {
//				return rule.Fail[[]Res](err)
//			}
//			res = append(res, item)
//			if len(res) == 6 {
//				return rule.Complete(res)
//			}
//			return rule.Suspend[[]Res]()
//		})
//	}
//
// # At Least Once Repetition: 1*Rule
//
// AtLeastOnce works like Repeat but fails if the element parser fails on
// the very first attempt. It takes an extra adapter that turns the first
// element's error into the rule's own "expected at least one" error; the
// combine function is not consulted for that case.
//
//	func atLeastOneRule(b *buf.Buffer) rule.Outcome[[]Res] {
//		var res []Res
//		return rule.AtLeastOnce(b, elem,
//			func(item Res, err error) rule.Outcome[[]Res] {
//				if err != nil {
//					return rule.Complete(res)
//				}
//				res = append(res, item)
//				return rule.Suspend[[]Res]()
//			},
//			func(err error) error {
//				return fmt.Errorf("expected at least one element: %w", err)
//			})
//	}
//
// # Optional Sequence: [Rule]
//
// Optional applies a rule at most once, turning failure into a not-found
// value:
//
//	func rule1OptRule2(b *buf.Buffer) rule.Outcome[Pair] {
//		return rule.Group(b, func(b *buf.Buffer) rule.Outcome[Pair] {
//			first := rule1(b)
//			if !first.IsComplete() {
//				return rule.Forward[Pair](first)
//			}
//			second := rule.Optional(b, rule2)
//			if !second.IsComplete() {
//				return rule.Forward[Pair](second)
//			}
//			return rule.Complete(Pair{first.Value(), second.Value()})
//		})
//	}
//
// Optional performs no rewind of its own: it is correct only because
// every parse function leaves the buffer untouched on failure. A leaf
// rule that violates the convention silently corrupts any rule built on
// Optional.
//
// # Thread Safety
//
// Nothing in this package spawns goroutines or retains state across
// calls. A buffer and the rules parsing it must be confined to one
// parse attempt at a time; run concurrent attempts on separate buffers.
//
// [RFC 5234]: https://www.rfc-editor.org/rfc/rfc5234
package rule
