package rule

import (
	"errors"
	"testing"

	"github.com/dhamidi/abnf/buf"
)

var errNotDigit = errors.New("not a digit")

// digit consumes a single ASCII digit. Suspends on an empty buffer,
// since more input could still arrive.
func digit(b *buf.Buffer) Outcome[byte] {
	c, ok := b.Peek()
	if !ok {
		return Suspend[byte]()
	}
	if c < '0' || c > '9' {
		return Fail[byte](errNotDigit)
	}
	b.Advance(1)
	return Complete(c)
}

// collect returns the usual zero-or-more combine: accumulate successes,
// end the repetition on the first element failure.
func collect(res *[]byte) CombineFunc[byte, []byte] {
	return func(item byte, err error) Outcome[[]byte] {
		if err != nil {
			return Complete(*res)
		}
		*res = append(*res, item)
		return Suspend[[]byte]()
	}
}

func TestGroupCommitsOnComplete(t *testing.T) {
	b := buf.New([]byte("12rest"))
	out := Group(b, func(b *buf.Buffer) Outcome[string] {
		first := digit(b)
		if !first.IsComplete() {
			return Forward[string](first)
		}
		second := digit(b)
		if !second.IsComplete() {
			return Forward[string](second)
		}
		return Complete(string([]byte{first.Value(), second.Value()}))
	})

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if out.Value() != "12" {
		t.Errorf("Value() = %q, want %q", out.Value(), "12")
	}
	if got := string(b.Bytes()); got != "rest" {
		t.Errorf("unread = %q, want %q", got, "rest")
	}
}

func TestGroupRewindsPartialConsumptionOnFailure(t *testing.T) {
	b := buf.New([]byte("12x"))
	out := Group(b, func(b *buf.Buffer) Outcome[string] {
		for i := 0; i < 3; i++ {
			if d := digit(b); !d.IsComplete() {
				return Forward[string](d)
			}
		}
		return Complete("123")
	})

	if !out.IsFailed() {
		t.Fatal("outcome is not failed")
	}
	if !errors.Is(out.Err(), errNotDigit) {
		t.Errorf("Err() = %v, want %v", out.Err(), errNotDigit)
	}
	if got := string(b.Bytes()); got != "12x" {
		t.Errorf("unread = %q, want %q: partial consumption leaked", got, "12x")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestGroupRewindsPartialConsumptionOnSuspension(t *testing.T) {
	b := buf.New([]byte("12"))
	out := Group(b, func(b *buf.Buffer) Outcome[string] {
		for i := 0; i < 3; i++ {
			if d := digit(b); !d.IsComplete() {
				return Forward[string](d)
			}
		}
		return Complete("123")
	})

	if !out.IsSuspended() {
		t.Fatal("outcome is not suspended")
	}
	if got := string(b.Bytes()); got != "12" {
		t.Errorf("unread = %q, want %q: partial consumption leaked", got, "12")
	}
}

func TestOptGroupCommitsOnlyOnFound(t *testing.T) {
	errNope := errors.New("nope")

	tests := []struct {
		name    string
		parse   ParseFunc[Maybe[byte]]
		rewound bool
	}{
		{
			"found commits",
			func(b *buf.Buffer) Outcome[Maybe[byte]] {
				b.Advance(1)
				return Complete(Some(byte('a')))
			},
			false,
		},
		{
			"not found rewinds",
			func(b *buf.Buffer) Outcome[Maybe[byte]] {
				b.Advance(1)
				return Complete(None[byte]())
			},
			true,
		},
		{
			"suspension rewinds",
			func(b *buf.Buffer) Outcome[Maybe[byte]] {
				b.Advance(1)
				return Suspend[Maybe[byte]]()
			},
			true,
		},
		{
			"failure rewinds",
			func(b *buf.Buffer) Outcome[Maybe[byte]] {
				b.Advance(1)
				return Fail[Maybe[byte]](errNope)
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buf.New([]byte("abc"))
			OptGroup(b, tt.parse)
			wantPos := 1
			if tt.rewound {
				wantPos = 0
			}
			if b.Pos() != wantPos {
				t.Errorf("Pos() = %d, want %d", b.Pos(), wantPos)
			}
		})
	}
}

func TestRepeatAccumulates(t *testing.T) {
	b := buf.New([]byte("123abc"))
	var res []byte
	out := Repeat(b, digit, collect(&res))

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if got := string(out.Value()); got != "123" {
		t.Errorf("Value() = %q, want %q", got, "123")
	}
	if got := string(b.Bytes()); got != "abc" {
		t.Errorf("unread = %q, want %q", got, "abc")
	}
}

func TestRepeatZeroElementsIsValid(t *testing.T) {
	b := buf.New([]byte("abc"))
	var res []byte
	out := Repeat(b, digit, collect(&res))

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if len(out.Value()) != 0 {
		t.Errorf("Value() = %q, want empty", out.Value())
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestRepeatSuspensionDiscardsProgress(t *testing.T) {
	// All three digits parse, then the element parser suspends at the
	// end of input: the whole repetition suspends with nothing consumed.
	b := buf.New([]byte("123"))
	var res []byte
	out := Repeat(b, digit, collect(&res))

	if !out.IsSuspended() {
		t.Fatal("outcome is not suspended")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestRepeatRetryAfterMoreInput(t *testing.T) {
	b := buf.New([]byte("12"))
	run := func() Outcome[[]byte] {
		var res []byte
		return Repeat(b, digit, collect(&res))
	}

	if out := run(); !out.IsSuspended() {
		t.Fatal("first attempt is not suspended")
	}

	b.Feed([]byte("3 tail"))
	out := run()
	if !out.IsComplete() {
		t.Fatal("second attempt is not complete")
	}
	if got := string(out.Value()); got != "123" {
		t.Errorf("Value() = %q, want %q", got, "123")
	}
	if got := string(b.Bytes()); got != " tail" {
		t.Errorf("unread = %q, want %q", got, " tail")
	}
}

func TestRepeatBoundedCount(t *testing.T) {
	b := buf.New([]byte("1234"))
	var res []byte
	out := Repeat(b, digit, func(item byte, err error) Outcome[[]byte] {
		if err != nil {
			return Fail[[]byte](err)
		}
		res = append(res, item)
		if len(res) == 2 {
			return Complete(res)
		}
		return Suspend[[]byte]()
	})

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if got := string(out.Value()); got != "12" {
		t.Errorf("Value() = %q, want %q", got, "12")
	}
	if got := string(b.Bytes()); got != "34" {
		t.Errorf("unread = %q, want %q", got, "34")
	}
}

func TestRepeatCombineErrorRewinds(t *testing.T) {
	errTooMany := errors.New("too many digits")
	b := buf.New([]byte("123x"))
	count := 0
	out := Repeat(b, digit, func(item byte, err error) Outcome[struct{}] {
		if err != nil {
			return Complete(struct{}{})
		}
		count++
		if count > 2 {
			return Fail[struct{}](errTooMany)
		}
		return Suspend[struct{}]()
	})

	if !out.IsFailed() {
		t.Fatal("outcome is not failed")
	}
	if !errors.Is(out.Err(), errTooMany) {
		t.Errorf("Err() = %v, want %v", out.Err(), errTooMany)
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestAtLeastOnceFirstFailure(t *testing.T) {
	errNoDigits := errors.New("expected at least one digit")
	b := buf.New([]byte("abc"))
	combined := false
	var res []byte
	out := AtLeastOnce(b, digit,
		func(item byte, err error) Outcome[[]byte] {
			combined = true
			if err != nil {
				return Complete(res)
			}
			res = append(res, item)
			return Suspend[[]byte]()
		},
		func(err error) error { return errNoDigits })

	if !out.IsFailed() {
		t.Fatal("outcome is not failed")
	}
	if !errors.Is(out.Err(), errNoDigits) {
		t.Errorf("Err() = %v, want %v", out.Err(), errNoDigits)
	}
	if combined {
		t.Error("combine was invoked for a failed first element")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestAtLeastOnceAccumulates(t *testing.T) {
	b := buf.New([]byte("123abc"))
	var res []byte
	out := AtLeastOnce(b, digit, collect(&res),
		func(err error) error { return errors.New("unreachable") })

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if got := string(out.Value()); got != "123" {
		t.Errorf("Value() = %q, want %q", got, "123")
	}
	if got := string(b.Bytes()); got != "abc" {
		t.Errorf("unread = %q, want %q", got, "abc")
	}
}

func TestAtLeastOnceLaterFailureEndsRepetition(t *testing.T) {
	// The second element failing is the ordinary end of the repetition,
	// not an adapted error.
	b := buf.New([]byte("1x"))
	adapted := false
	var res []byte
	out := AtLeastOnce(b, digit, collect(&res),
		func(err error) error { adapted = true; return err })

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if adapted {
		t.Error("adapter was invoked for a non-first element")
	}
	if got := string(out.Value()); got != "1" {
		t.Errorf("Value() = %q, want %q", got, "1")
	}
	if got := string(b.Bytes()); got != "x" {
		t.Errorf("unread = %q, want %q", got, "x")
	}
}

func TestAtLeastOnceSuspendsOnFirstElement(t *testing.T) {
	b := buf.New(nil)
	var res []byte
	out := AtLeastOnce(b, digit, collect(&res),
		func(err error) error { return err })

	if !out.IsSuspended() {
		t.Fatal("outcome is not suspended")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestAtLeastOnceCombineCompletesImmediately(t *testing.T) {
	b := buf.New([]byte("123"))
	out := AtLeastOnce(b, digit,
		func(item byte, err error) Outcome[byte] {
			if err != nil {
				return Fail[byte](err)
			}
			return Complete(item)
		},
		func(err error) error { return err })

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if out.Value() != '1' {
		t.Errorf("Value() = %q, want '1'", out.Value())
	}
	if got := string(b.Bytes()); got != "23" {
		t.Errorf("unread = %q, want %q", got, "23")
	}
}

func TestOptionalFound(t *testing.T) {
	b := buf.New([]byte("5x"))
	out := Optional(b, digit)

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	v, ok := out.Value().Get()
	if !ok || v != '5' {
		t.Errorf("Value().Get() = %q, %v, want '5', true", v, ok)
	}
	if got := string(b.Bytes()); got != "x" {
		t.Errorf("unread = %q, want %q", got, "x")
	}
}

func TestOptionalAbsent(t *testing.T) {
	b := buf.New([]byte("x5"))
	out := Optional(b, digit)

	if !out.IsComplete() {
		t.Fatal("outcome is not complete")
	}
	if out.Value().IsSome() {
		t.Error("Value() is found, want not found")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}

func TestOptionalSuspends(t *testing.T) {
	b := buf.New(nil)
	out := Optional(b, digit)

	if !out.IsSuspended() {
		t.Fatal("outcome is not suspended")
	}
	if b.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", b.Pos())
	}
}
