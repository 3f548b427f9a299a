// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

import (
	"io"

	"github.com/creachadair/mds/queue"

	"github.com/creachadair/parsec/internal/ringbuf"
)

// A Source delivers tokens to a Driver one at a time. Next returns io.EOF
// when the input is exhausted, and any other error if reading failed.
type Source[A any] interface {
	Next() (A, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc[A any] func() (A, error)

// Next implements Source.
func (f SourceFunc[A]) Next() (A, error) { return f() }

// Driver pumps tokens from a Source through a Parser, interpreting the Step
// commands its step function returns: advancing, rewinding, committing, or
// failing as each command directs. A single Driver value may be
// reused across more than one Parse call; tokens one parse leaves unconsumed
// are queued and handed to the next Parse before any further token is
// pulled from the Source, so a parser embedded in a larger consumer sees
// exactly the tokens an earlier parse left behind.
type Driver[A, B any] struct {
	src     Source[A]
	pending *queue.Queue[A]
	minBuf  int
}

// NewDriver constructs a Driver that pulls tokens from src.
func NewDriver[A, B any](src Source[A]) *Driver[A, B] {
	return &Driver[A, B]{src: src, pending: queue.New[A]()}
}

// SetMinBuffer sets the initial capacity reserved for each parse's
// backtrack buffer. It is a performance hint; the buffer still grows as
// needed regardless of this setting.
func (d *Driver[A, B]) SetMinBuffer(n int) { d.minBuf = n }

func (d *Driver[A, B]) next() (A, error) {
	if d.pending.Len() > 0 {
		t, _ := d.pending.Pop()
		return t, nil
	}
	return d.src.Next()
}

// Parse runs p to completion against the driver's input and returns its
// result, along with any tokens p left unconsumed. Those leftover tokens
// remain available to a later Parse call on the same Driver. In case of
// failure, the returned error has concrete type *ParseError unless the
// failure came from an effect inside the parser itself (an I/O error, for
// instance), which propagates unchanged, or the parser broke the Step
// protocol (a Skip rewinding past the last commit, for instance), which is
// reported as an error that is not a *ParseError. A failure reported by the
// parser's step function wraps ErrNoAlternative.
func (d *Driver[A, B]) Parse(p Parser[A, B]) (result B, leftover []A, err error) {
	defer d.recoverDriverPanic(&err)

	buf := ringbuf.New[A](d.minBuf)
	s, ierr := p.initial()
	if ierr != nil {
		return result, nil, ierr
	}

	committed := false
	for {
		var tok A
		if !buf.AtEnd() {
			tok = buf.Peek()
		} else {
			t, nerr := d.next()
			if nerr == io.EOF {
				b, eerr := p.extract(s)
				if eerr != nil {
					return result, nil, eerr
				}
				return b, nil, nil
			} else if nerr != nil {
				return result, nil, nerr
			}
			buf.Push(t)
			tok = t
		}

		st, serr := p.step(s, tok)
		if serr != nil {
			return result, nil, serr
		}
		buf.Advance()

		switch st.Kind {
		case KindYield:
			buf.DropExcept(st.N)
			committed = true
			s = st.S
		case KindYieldB:
			if st.N > buf.Cursor() {
				violatef("driver: yieldb rewind %d exceeds %d uncommitted tokens", st.N, buf.Cursor())
			}
			buf.DropExcept(st.N)
			buf.Rewind(st.N)
			committed = true
			s = st.S
		case KindSkip:
			if st.N > buf.Cursor() {
				violatef("driver: skip rewind %d exceeds %d uncommitted tokens", st.N, buf.Cursor())
			}
			buf.Rewind(st.N)
			s = st.S
		case KindStop:
			if st.N > buf.Cursor() {
				violatef("driver: stop returns %d tokens but only %d are buffered", st.N, buf.Cursor())
			}
			left := buf.LeftoverFrom(st.N)
			for _, t := range left {
				d.pending.Add(t)
			}
			return st.B, left, nil
		case KindError:
			if committed {
				violatef("driver: error %q after a commit", st.Msg)
			}
			return result, nil, wrapParseError(ErrNoAlternative, "%s", st.Msg)
		default:
			violatef("driver: unknown step kind %v", st.Kind)
		}
	}
}
