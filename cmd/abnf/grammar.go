package main

import (
	"fmt"

	"github.com/dhamidi/abnf/buf"
	"github.com/dhamidi/abnf/core"
	"github.com/dhamidi/abnf/rule"
)

// separator is any byte that may appear between tokens.
var separator = core.Match("separator", func(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
})

// wordByte is any printable byte, including bytes of multi-byte UTF-8
// sequences.
var wordByte = core.Match("word byte", func(c byte) bool {
	return c > 0x20 && c != 0x7f
})

// textByte is any byte that may appear in a line body.
var textByte = core.Match("text byte", func(c byte) bool {
	return c != '\r' && c != '\n'
})

// nextToken parses *separator 1*wordByte: it skips leading separators
// and returns the next token. The token only completes once a separator
// (or any non-word byte) follows it, so a token at the end of available
// input suspends until more bytes arrive.
func nextToken(b *buf.Buffer) rule.Outcome[string] {
	return rule.Group(b, func(b *buf.Buffer) rule.Outcome[string] {
		skip := rule.Repeat(b, separator, func(item byte, err error) rule.Outcome[struct{}] {
			if err != nil {
				return rule.Complete(struct{}{})
			}
			return rule.Suspend[struct{}]()
		})
		if !skip.IsComplete() {
			return rule.Forward[string](skip)
		}

		var word []byte
		return rule.AtLeastOnce(b, wordByte,
			func(item byte, err error) rule.Outcome[string] {
				if err != nil {
					return rule.Complete(string(word))
				}
				word = append(word, item)
				return rule.Suspend[string]()
			},
			func(err error) error {
				return fmt.Errorf("expected a token: %w", err)
			})
	})
}

// nextLine parses *textByte (CRLF / LF) and returns the line body. A
// CR not followed by LF fails.
func nextLine(b *buf.Buffer) rule.Outcome[string] {
	return rule.Group(b, func(b *buf.Buffer) rule.Outcome[string] {
		var body []byte
		out := rule.Repeat(b, textByte, func(item byte, err error) rule.Outcome[[]byte] {
			if err != nil {
				return rule.Complete(body)
			}
			body = append(body, item)
			return rule.Suspend[[]byte]()
		})
		if !out.IsComplete() {
			return rule.Forward[string](out)
		}

		eol := rule.Optional(b, core.CRLF)
		if eol.IsSuspended() {
			return rule.Suspend[string]()
		}
		if !eol.Value().IsSome() {
			if lf := core.LF(b); !lf.IsComplete() {
				return rule.Forward[string](lf)
			}
		}
		return rule.Complete(string(body))
	})
}
