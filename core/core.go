// Package core provides the core rules of RFC 5234 appendix B.1 as parse
// functions, plus small builders for byte classes and literal strings.
//
// All rules follow the streaming convention of the rule package: an empty
// buffer is never a mismatch, it is a suspension, because the deciding
// byte may still arrive.
package core

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/abnf/buf"
	"github.com/dhamidi/abnf/rule"
)

// MatchError reports a byte that does not belong to the expected class or
// literal.
type MatchError struct {
	Want string
	Got  byte
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("expected %s, got %q", e.Want, e.Got)
}

// Match builds a rule that consumes a single byte satisfying pred. The
// name appears in the MatchError when the next byte does not satisfy it.
func Match(name string, pred func(byte) bool) rule.ParseFunc[byte] {
	return func(b *buf.Buffer) rule.Outcome[byte] {
		c, ok := b.Peek()
		if !ok {
			return rule.Suspend[byte]()
		}
		if !pred(c) {
			return rule.Fail[byte](&MatchError{Want: name, Got: c})
		}
		b.Advance(1)
		return rule.Complete(c)
	}
}

// Core byte classes from RFC 5234 appendix B.1. HexDig accepts both
// cases, since ABNF terminal strings are case-insensitive.
var (
	Alpha = Match("ALPHA", func(c byte) bool {
		return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
	})
	Bit    = Match("BIT", func(c byte) bool { return c == '0' || c == '1' })
	Char   = Match("CHAR", func(c byte) bool { return c >= 0x01 && c <= 0x7f })
	CR     = Match("CR", func(c byte) bool { return c == '\r' })
	Ctl    = Match("CTL", func(c byte) bool { return c <= 0x1f || c == 0x7f })
	Digit  = Match("DIGIT", func(c byte) bool { return c >= '0' && c <= '9' })
	DQuote = Match("DQUOTE", func(c byte) bool { return c == '"' })
	HexDig = Match("HEXDIG", func(c byte) bool {
		return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
	})
	HTab  = Match("HTAB", func(c byte) bool { return c == '\t' })
	LF    = Match("LF", func(c byte) bool { return c == '\n' })
	Octet = Match("OCTET", func(c byte) bool { return true })
	SP    = Match("SP", func(c byte) bool { return c == ' ' })
	VChar = Match("VCHAR", func(c byte) bool { return c >= 0x21 && c <= 0x7e })
	WSP   = Match("WSP", func(c byte) bool { return c == ' ' || c == '\t' })
)

// CRLF recognizes the internet line ending, CR immediately followed by
// LF. A lone CR at the end of input suspends; a CR followed by anything
// else fails.
func CRLF(b *buf.Buffer) rule.Outcome[string] {
	return rule.Group(b, func(b *buf.Buffer) rule.Outcome[string] {
		if out := CR(b); !out.IsComplete() {
			return rule.Forward[string](out)
		}
		if out := LF(b); !out.IsComplete() {
			return rule.Forward[string](out)
		}
		return rule.Complete("\r\n")
	})
}

// LWSP recognizes linear white space: *(WSP / CRLF WSP). RFC 5234 itself
// discourages this rule for new grammars; it is here for completeness.
func LWSP(b *buf.Buffer) rule.Outcome[string] {
	var ws []byte
	return rule.Repeat(b, lwspElement, func(item []byte, err error) rule.Outcome[string] {
		if err != nil {
			return rule.Complete(string(ws))
		}
		ws = append(ws, item...)
		return rule.Suspend[string]()
	})
}

func lwspElement(b *buf.Buffer) rule.Outcome[[]byte] {
	out := rule.Optional(b, WSP)
	if out.IsSuspended() {
		return rule.Suspend[[]byte]()
	}
	if c, ok := out.Value().Get(); ok {
		return rule.Complete([]byte{c})
	}
	return rule.Group(b, func(b *buf.Buffer) rule.Outcome[[]byte] {
		eol := CRLF(b)
		if !eol.IsComplete() {
			return rule.Forward[[]byte](eol)
		}
		sp := WSP(b)
		if !sp.IsComplete() {
			return rule.Forward[[]byte](sp)
		}
		return rule.Complete([]byte{'\r', '\n', sp.Value()})
	})
}

// Literal builds a rule that consumes exactly s. A proper prefix of s at
// the end of input suspends; the first diverging byte fails.
func Literal(s string) rule.ParseFunc[string] {
	return func(b *buf.Buffer) rule.Outcome[string] {
		window := b.Bytes()
		n := min(len(window), len(s))
		for i := 0; i < n; i++ {
			if window[i] != s[i] {
				return rule.Fail[string](&MatchError{Want: strconv.Quote(s), Got: window[i]})
			}
		}
		if len(window) < len(s) {
			return rule.Suspend[string]()
		}
		b.Advance(len(s))
		return rule.Complete(s)
	}
}
