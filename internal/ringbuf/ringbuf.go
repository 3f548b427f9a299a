// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ringbuf implements the backtrack buffer a Driver replays tokens
// from. It is a growable array with a commit watermark rather than a true
// circular ring: push-back stays O(1) amortized and suffix retention stays
// cheap, while the watermark drop is the one operation that isn't O(1),
// and it runs exactly as often as a parser commits.
//
// A Buffer needs two things a plain FIFO queue cannot give it: random access
// to any token currently within the uncommitted tail (so Alt can hand the
// whole tail to its right branch), and the ability to discard everything
// before a commit point in one step. That is why this is hand-rolled rather
// than built on a library queue, unlike the Driver's inter-call leftover
// queue (see driver.go), which genuinely is just a FIFO.
package ringbuf

import "fmt"

// Buffer retains tokens from the last commit point up to the tokens a
// parser has read ahead of it, and exposes a cursor that can move forward
// and backward within that retained window.
type Buffer[A any] struct {
	buf    []A
	cursor int
}

// New constructs an empty Buffer with the given initial capacity hint.
func New[A any](minCap int) *Buffer[A] {
	if minCap < 0 {
		minCap = 0
	}
	return &Buffer[A]{buf: make([]A, 0, minCap)}
}

// Len reports how many tokens are currently retained.
func (b *Buffer[A]) Len() int { return len(b.buf) }

// Cursor reports the current read position.
func (b *Buffer[A]) Cursor() int { return b.cursor }

// AtEnd reports whether the cursor has reached the tail of the buffer, i.e.
// whether the next token must come from the source rather than replay.
func (b *Buffer[A]) AtEnd() bool { return b.cursor >= len(b.buf) }

// Push appends a freshly read token to the tail of the buffer. The caller
// must only call Push when AtEnd reports true.
func (b *Buffer[A]) Push(tok A) { b.buf = append(b.buf, tok) }

// Peek returns the token at the cursor without advancing it. The caller
// must ensure AtEnd reports false.
func (b *Buffer[A]) Peek() A { return b.buf[b.cursor] }

// Advance moves the cursor forward by one token, after it has been fed to
// the parser's step function.
func (b *Buffer[A]) Advance() { b.cursor++ }

// Rewind moves the cursor back by n tokens, within the currently retained
// window. It panics if n exceeds the cursor position, which would rewind
// past the last commit point — a protocol violation in the combinator that
// requested it, not a recoverable condition.
func (b *Buffer[A]) Rewind(n int) {
	if n > b.cursor {
		panic(fmt.Sprintf("ringbuf: rewind %d exceeds cursor %d", n, b.cursor))
	}
	b.cursor -= n
}

// DropExcept discards every buffered token before (cursor - n), sliding the
// retained content and the cursor down so the kept window starts at offset
// zero. This realizes a Yield/YieldB commit: afterward, at most n tokens of
// history remain for a later Alt to replay.
func (b *Buffer[A]) DropExcept(n int) {
	keepFrom := b.cursor - n
	if keepFrom <= 0 {
		return
	}
	b.buf = append(b.buf[:0], b.buf[keepFrom:]...)
	b.cursor -= keepFrom
}

// LeftoverFrom returns the tokens from (cursor - back) to the end of the
// retained buffer: the "back" most recently consumed tokens, plus anything
// still buffered ahead of the cursor that was never re-consumed (possible
// after a replay left some lookahead unread). It panics if back exceeds the
// cursor position, for the same reason Rewind does.
func (b *Buffer[A]) LeftoverFrom(back int) []A {
	if back > b.cursor {
		panic(fmt.Sprintf("ringbuf: leftover of %d exceeds cursor %d", back, b.cursor))
	}
	start := b.cursor - back
	out := make([]A, len(b.buf)-start)
	copy(out, b.buf[start:])
	return out
}
