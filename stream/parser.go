// Package stream drives a parse rule over input that arrives in chunks.
//
// A Parser owns a buffer and a top-level rule. Callers Push bytes as
// they become available from a transport and Poll for a result; a
// suspended poll simply means more bytes are needed. There is no resumed
// mid-parse state: every Poll retries the rule from the current position,
// which the rule package's rewind discipline makes safe and the buffer's
// O(1) snapshots make cheap.
package stream

import (
	"github.com/dhamidi/abnf/buf"
	"github.com/dhamidi/abnf/rule"
)

// Parser feeds pushed bytes to a top-level parse rule.
//
// A Parser is not safe for concurrent use.
type Parser[T any] struct {
	buf  buf.Buffer
	rule rule.ParseFunc[T]
}

// New returns a Parser driving r. The rule must obey the
// no-partial-consumption contract of rule.ParseFunc; top-level rules
// composed of several steps should be wrapped in rule.Group.
func New[T any](r rule.ParseFunc[T]) *Parser[T] {
	return &Parser[T]{rule: r}
}

// Push appends a chunk of input.
func (p *Parser[T]) Push(data []byte) {
	p.buf.Feed(data)
}

// Poll runs the rule against the accumulated input. On a complete
// outcome the consumed bytes are released and the next Poll parses the
// following construct; on a suspended outcome the caller should Push
// more input and Poll again.
func (p *Parser[T]) Poll() rule.Outcome[T] {
	out := p.rule(&p.buf)
	if out.IsComplete() {
		p.buf.Compact()
	}
	return out
}

// Buffered reports the number of unconsumed bytes.
func (p *Parser[T]) Buffered() int {
	return p.buf.Len()
}

// Pos reports the total number of bytes consumed so far.
func (p *Parser[T]) Pos() int {
	return p.buf.Pos()
}

// Reset discards all buffered input and position state for reuse with a
// new stream.
func (p *Parser[T]) Reset() {
	p.buf = buf.Buffer{}
}
