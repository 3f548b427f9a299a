// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package leaf provides concrete leaf parsers to build on top of the
// combinators in parsec: ones whose step function looks directly at tokens
// rather than composing other parsers.
package leaf

import (
	"fmt"

	"go4.org/mem"

	"github.com/creachadair/parsec"
	"github.com/creachadair/parsec/fold"
)

// Satisfy succeeds with the next token if pred reports true for it, and
// fails otherwise without consuming anything.
func Satisfy[A any](pred func(A) bool) parsec.Parser[A, A] {
	return parsec.New(
		func() (unit, error) { return unit{}, nil },
		func(_ unit, tok A) (parsec.Step[unit, A], error) {
			if !pred(tok) {
				return parsec.StepError[unit, A]("satisfy: predicate failed"), nil
			}
			return parsec.StepStop[unit, A](0, tok), nil
		},
		func(unit) (A, error) {
			var zero A
			return zero, &parsec.ParseError{Message: "satisfy: unexpected end of input"}
		},
	)
}

type unit struct{}

// EOF succeeds with no result iff the input is exhausted.
func EOF[A any]() parsec.Parser[A, struct{}] {
	return parsec.New(
		func() (unit, error) { return unit{}, nil },
		func(_ unit, _ A) (parsec.Step[unit, struct{}], error) {
			return parsec.StepError[unit, struct{}]("eof: expected end of input"), nil
		},
		func(unit) (struct{}, error) { return struct{}{}, nil },
	)
}

type takeState[A any] struct{ acc []A }

// Take collects the next n tokens. If the input ends before n tokens arrive,
// Take succeeds with the (shorter) prefix it managed to collect; callers
// that need an exact count should use TakeEQ instead.
func Take[A any](n int) parsec.Parser[A, []A] {
	return parsec.New(
		func() (takeState[A], error) { return takeState[A]{acc: make([]A, 0, n)}, nil },
		func(s takeState[A], tok A) (parsec.Step[takeState[A], []A], error) {
			s.acc = append(s.acc, tok)
			if len(s.acc) >= n {
				return parsec.StepStop[takeState[A], []A](0, s.acc), nil
			}
			return parsec.StepSkip[takeState[A], []A](0, s), nil
		},
		func(s takeState[A]) ([]A, error) { return s.acc, nil },
	)
}

// TakeEQ collects exactly n tokens, failing if the input ends first.
func TakeEQ[A any](n int) parsec.Parser[A, []A] {
	return parsec.New(
		func() (takeState[A], error) { return takeState[A]{acc: make([]A, 0, n)}, nil },
		func(s takeState[A], tok A) (parsec.Step[takeState[A], []A], error) {
			s.acc = append(s.acc, tok)
			if len(s.acc) >= n {
				return parsec.StepStop[takeState[A], []A](0, s.acc), nil
			}
			return parsec.StepSkip[takeState[A], []A](0, s), nil
		},
		func(s takeState[A]) ([]A, error) {
			var zero []A
			return zero, &parsec.ParseError{
				Message: fmt.Sprintf("takeEQ: need %d tokens, got %d", n, len(s.acc)),
			}
		},
	)
}

// TakeGE consumes the rest of the input and succeeds with all of it iff at
// least n tokens were available.
func TakeGE[A any](n int) parsec.Parser[A, []A] {
	return parsec.New(
		func() ([]A, error) { return nil, nil },
		func(s []A, tok A) (parsec.Step[[]A, []A], error) {
			return parsec.StepSkip[[]A, []A](0, append(s, tok)), nil
		},
		func(s []A) ([]A, error) {
			if len(s) < n {
				return nil, &parsec.ParseError{
					Message: fmt.Sprintf("takeGE: need at least %d tokens, got %d", n, len(s)),
				}
			}
			return s, nil
		},
	)
}

// TakeWhile collects tokens for as long as pred holds, always succeeding
// (possibly with zero tokens) and returning the first non-matching token to
// the input.
func TakeWhile[A any](pred func(A) bool) parsec.Parser[A, []A] {
	return parsec.New(
		func() ([]A, error) { return nil, nil },
		func(s []A, tok A) (parsec.Step[[]A, []A], error) {
			if !pred(tok) {
				return parsec.StepStop[[]A, []A](1, s), nil
			}
			return parsec.StepSkip[[]A, []A](0, append(s, tok)), nil
		},
		func(s []A) ([]A, error) { return s, nil },
	)
}

// TakeWhile1 is TakeWhile, but fails if the very first token does not
// satisfy pred.
func TakeWhile1[A any](pred func(A) bool) parsec.Parser[A, []A] {
	return parsec.New(
		func() ([]A, error) { return nil, nil },
		func(s []A, tok A) (parsec.Step[[]A, []A], error) {
			if !pred(tok) {
				if len(s) == 0 {
					return parsec.StepError[[]A, []A]("takeWhile1: predicate failed on first token"), nil
				}
				return parsec.StepStop[[]A, []A](1, s), nil
			}
			return parsec.StepSkip[[]A, []A](0, append(s, tok)), nil
		},
		func(s []A) ([]A, error) {
			if len(s) == 0 {
				return nil, &parsec.ParseError{Message: "takeWhile1: no matching tokens before end of input"}
			}
			return s, nil
		},
	)
}

type peekState struct {
	cnt int
	s   any
}

// Peek runs p and, when p stops, hands every token p looked at (including
// the one it stopped on) back as unused: the leftover is exactly those
// tokens, and the next parse sees them again. It fails exactly when p fails,
// and still reports p's failure; Peek itself then hands nothing back. If the
// input ends before p stops, Peek reports p's extract result and hands
// nothing back.
//
// Peek tracks how many tokens p has consumed so it can hand them all back on
// Stop. A commit can never be undone, so Peek only supports a p that never
// reports Yield or YieldB before it Stops or Errors — true of every leaf
// parser in this package. Wrapping a committing parser is a usage bug and
// panics.
func Peek[A, B any](p parsec.Parser[A, B]) parsec.Parser[A, B] {
	return parsec.New(
		func() (peekState, error) {
			s, err := p.Initial()
			return peekState{s: s}, err
		},
		func(st peekState, tok A) (parsec.Step[peekState, B], error) {
			pst, err := p.Step(st.s, tok)
			if err != nil {
				return parsec.Step[peekState, B]{}, err
			}
			switch pst.Kind {
			case parsec.KindStop:
				return parsec.StepStop[peekState, B](st.cnt+1, pst.B), nil
			case parsec.KindError:
				return parsec.StepError[peekState, B](pst.Msg), nil
			case parsec.KindSkip:
				cnt := st.cnt + 1 - pst.N
				return parsec.StepSkip[peekState, B](pst.N, peekState{cnt: cnt, s: pst.S}), nil
			default:
				panic("leaf: Peek requires a non-committing parser, got " + pst.Kind.String())
			}
		},
		func(st peekState) (B, error) { return p.Extract(st.s) },
	)
}

// LookAhead is an alias for Peek: parse(p) followed immediately by another
// parse(p) against the same input sees the same result both times.
func LookAhead[A, B any](p parsec.Parser[A, B]) parsec.Parser[A, B] {
	return Peek(p)
}

// SliceSepBy collects tokens up to (and consuming) the first one satisfying
// sep, folding the collected tokens — not including the separator — with f.
// If sep is never satisfied, it folds in everything up to the end of input.
func SliceSepBy[A, C any](sep func(A) bool, f parsec.Fold[A, C]) parsec.Parser[A, C] {
	type sepState struct{ fs any }
	return parsec.New(
		func() (sepState, error) {
			fs, err := f.Initial()
			return sepState{fs: fs}, err
		},
		func(s sepState, tok A) (parsec.Step[sepState, C], error) {
			if sep(tok) {
				c, err := f.Extract(s.fs)
				if err != nil {
					return parsec.Step[sepState, C]{}, err
				}
				return parsec.StepStop[sepState, C](0, c), nil
			}
			fs2, err := f.Step(s.fs, tok)
			if err != nil {
				return parsec.Step[sepState, C]{}, err
			}
			return parsec.StepSkip[sepState, C](0, sepState{fs: fs2}), nil
		},
		func(s sepState) (C, error) { return f.Extract(s.fs) },
	)
}

// TakeWhileMem is TakeWhile specialized to a byte token stream, reporting
// the accumulated run as a mem.RO view rather than a plain []byte, so a
// caller chaining several mem-aware leaf parsers together never has to
// convert back and forth between []byte and mem.RO.
func TakeWhileMem(pred func(byte) bool) parsec.Parser[byte, mem.RO] {
	return parsec.Map(mem.B, TakeWhile(pred))
}

// SliceSepByMem is SliceSepBy specialized to a byte token stream and a
// ToSlice fold, reporting the collected run (not including the separator) as
// a mem.RO view.
func SliceSepByMem(sep func(byte) bool) parsec.Parser[byte, mem.RO] {
	return parsec.Map(mem.B, SliceSepBy(sep, fold.ToSlice[byte]()))
}
