// Package buf provides the byte cursor that rule combinators advance and
// rewind.
//
// A Buffer is a view over an accumulating byte sequence together with a
// read position. Input arrives in chunks via Feed; parsing consumes bytes
// via Peek, Bytes, and Advance. The sequence is append-only: Feed never
// alters bytes that have already been fed, and Advance never discards
// them. Because of this, a Snapshot is just the read position, taking a
// snapshot is O(1), and restoring one is O(1) regardless of how deeply
// parse attempts nest.
//
// Compact discards bytes that have been consumed. It invalidates every
// outstanding Snapshot and therefore must only be called between parse
// attempts, never while a rule is running.
//
// A Buffer is not safe for concurrent use. Each parse attempt must own
// its Buffer exclusively.
package buf

// Buffer is a cursor over an accumulating byte sequence.
//
// The zero value is an empty Buffer ready for use.
type Buffer struct {
	data []byte
	off  int
	base int
}

// New returns a Buffer whose initial contents are data.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Snapshot records a Buffer's read position so it can be restored later.
type Snapshot struct {
	off int
}

// Snapshot captures the current read position.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{off: b.off}
}

// Restore rewinds the read position to a previously captured Snapshot.
// Bytes fed after the snapshot was taken remain available.
func (b *Buffer) Restore(s Snapshot) {
	b.off = s.off
}

// Feed appends a chunk of input to the end of the sequence.
func (b *Buffer) Feed(p []byte) {
	b.data = append(b.data, p...)
}

// Len reports the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.off
}

// Pos reports the absolute number of bytes consumed since the Buffer was
// created, across Compact calls.
func (b *Buffer) Pos() int {
	return b.base + b.off
}

// Peek returns the next unread byte without consuming it. The second
// result is false when no unread bytes are available.
func (b *Buffer) Peek() (byte, bool) {
	if b.off >= len(b.data) {
		return 0, false
	}
	return b.data[b.off], true
}

// Bytes returns the unread portion of the sequence. The slice is only
// valid until the next Feed or Compact.
func (b *Buffer) Bytes() []byte {
	return b.data[b.off:]
}

// Advance consumes n bytes. Advancing past the end of the sequence stops
// at the end.
func (b *Buffer) Advance(n int) {
	if n <= 0 {
		return
	}
	b.off += n
	if b.off > len(b.data) {
		b.off = len(b.data)
	}
}

// Compact discards consumed bytes, releasing their storage. Outstanding
// Snapshots become invalid; call only between parse attempts.
func (b *Buffer) Compact() {
	if b.off == 0 {
		return
	}
	b.base += b.off
	b.data = append([]byte(nil), b.data[b.off:]...)
	b.off = 0
}
