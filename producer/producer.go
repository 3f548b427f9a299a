// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package producer implements Producer, a resumable generator abstraction
// complementary to parsec.Parser: where a Parser consumes a stream and
// produces one result, a Producer is seeded with a value and yields a
// stream of results, one step at a time, on demand.
package producer

import (
	"io"
	"iter"

	"github.com/creachadair/parsec"
)

// Maybe represents an optional value, used where an explicit Some/None is
// needed rather than a Go zero value (a residual seed
// surrendered on Stop, for instance, where the zero value of A may be a
// perfectly valid seed in its own right).
type Maybe[A any] struct {
	Value A
	Valid bool
}

// Some wraps a present value.
func Some[A any](v A) Maybe[A] { return Maybe[A]{Value: v, Valid: true} }

// None reports an absent value.
func None[A any]() Maybe[A] { return Maybe[A]{} }

// Pair holds two independently-typed values, the shape UnfoldrM's step
// function produces: a yielded value paired with the seed to continue from.
type Pair[X, Y any] struct {
	First  X
	Second Y
}

// PKind identifies which command a Producer's step function reported.
type PKind byte

const (
	// PYield reports a produced value b and a state s to resume from.
	PYield PKind = iota
	// PSkip advances internal state without producing a value.
	PSkip
	// PStop reports the producer is exhausted, optionally surrendering a
	// residual seed for a caller that wants to resume generation elsewhere.
	PStop
)

// PStep is the command a Producer's step function returns. S is the boxed
// state type, A is the seed type (meaningful only for Residual on PStop),
// and B is the value type.
type PStep[S, A, B any] struct {
	Kind     PKind
	B        B
	S        S
	Residual Maybe[A]
}

// StepPYield constructs a PYield step.
func StepPYield[S, A, B any](b B, s S) PStep[S, A, B] {
	return PStep[S, A, B]{Kind: PYield, B: b, S: s}
}

// StepPSkip constructs a PSkip step.
func StepPSkip[S, A, B any](s S) PStep[S, A, B] { return PStep[S, A, B]{Kind: PSkip, S: s} }

// StepPStop constructs a PStop step, optionally surrendering a residual seed.
func StepPStop[S, A, B any](residual Maybe[A]) PStep[S, A, B] {
	return PStep[S, A, B]{Kind: PStop, Residual: residual}
}

// A Producer is seeded from an A and yields a sequence of B values one step
// at a time. Its internal state is hidden the same way a Parser's is: a
// boxed closure triple over a concrete state type known only to whichever
// function built it.
type Producer[A, B any] struct {
	inject  func(A) (any, error)
	step    func(any) (PStep[any, A, B], error)
	extract func(any) (Maybe[A], error)
}

// New lifts a concretely-typed producer triple into a Producer.
func New[A, B, S any](
	inject func(A) (S, error),
	step func(S) (PStep[S, A, B], error),
	extract func(S) (Maybe[A], error),
) Producer[A, B] {
	return Producer[A, B]{
		inject: func(a A) (any, error) { return inject(a) },
		step: func(s any) (PStep[any, A, B], error) {
			st, err := step(s.(S))
			return boxPStep[S, A, B](st), err
		},
		extract: func(s any) (Maybe[A], error) { return extract(s.(S)) },
	}
}

func boxPStep[S, A, B any](st PStep[S, A, B]) PStep[any, A, B] {
	return PStep[any, A, B]{Kind: st.Kind, B: st.B, S: st.S, Residual: st.Residual}
}

// Initial, Step, and Extract expose a Producer's inject, step, and extract
// operations to code outside this package; the combinators here (Translate,
// Lmap, Map, Cross, Concat) use the unexported fields directly.
func (p Producer[A, B]) Initial(a A) (any, error)             { return p.inject(a) }
func (p Producer[A, B]) Step(s any) (PStep[any, A, B], error) { return p.step(s) }
func (p Producer[A, B]) Extract(s any) (Maybe[A], error)      { return p.extract(s) }

// Simplify drives p to completion from seed, as a native range-over-func
// iterator: ranging over the result stops early if the loop body returns,
// and stops naturally once p reports Stop. Any error mid-stream silently
// ends the iteration, mirroring ast.ParseRange's "first error stops the
// sequence" discipline but without also reporting the error — Simplify
// trades that detail away for an iter.Seq rather than an iter.Seq2, since
// most callers of a Producer don't need the residual seed or Stop-time
// fields Simplify already discards.
func Simplify[A, B any](p Producer[A, B]) func(seed A) iter.Seq[B] {
	return func(seed A) iter.Seq[B] {
		return func(yield func(B) bool) {
			s, err := p.inject(seed)
			if err != nil {
				return
			}
			for {
				st, err := p.step(s)
				if err != nil {
					return
				}
				switch st.Kind {
				case PYield:
					if !yield(st.B) {
						return
					}
					s = st.S
				case PSkip:
					s = st.S
				case PStop:
					return
				}
			}
		}
	}
}

// FromList yields the elements of a slice in order, the slice itself
// serving as the seed; extract surrenders whatever is left unconsumed. Stop
// happens only once the slice is empty and reports no residual.
func FromList[B any]() Producer[[]B, B] {
	return New(
		func(xs []B) ([]B, error) { return xs, nil },
		func(xs []B) (PStep[[]B, []B, B], error) {
			if len(xs) == 0 {
				return StepPStop[[]B, []B, B](None[[]B]()), nil
			}
			return StepPYield[[]B, []B, B](xs[0], xs[1:]), nil
		},
		func(xs []B) (Maybe[[]B], error) { return Some(xs), nil },
	)
}

// FromStreamD adapts a parsec.Source into a Producer whose seed is the
// Source itself.
func FromStreamD[A any]() Producer[parsec.Source[A], A] {
	return New(
		func(src parsec.Source[A]) (parsec.Source[A], error) { return src, nil },
		func(src parsec.Source[A]) (PStep[parsec.Source[A], parsec.Source[A], A], error) {
			tok, err := src.Next()
			if err == io.EOF {
				return StepPStop[parsec.Source[A], parsec.Source[A], A](None[parsec.Source[A]]()), nil
			} else if err != nil {
				return PStep[parsec.Source[A], parsec.Source[A], A]{}, err
			}
			return StepPYield[parsec.Source[A], parsec.Source[A], A](tok, src), nil
		},
		func(src parsec.Source[A]) (Maybe[parsec.Source[A]], error) { return Some(src), nil },
	)
}

// UnfoldrM generalizes unfoldr: f is applied to the current seed; None ends
// the sequence, and Some(b, a') yields b and continues from a'.
func UnfoldrM[A, B any](f func(A) (Maybe[Pair[B, A]], error)) Producer[A, B] {
	return New(
		func(a A) (A, error) { return a, nil },
		func(a A) (PStep[A, A, B], error) {
			m, err := f(a)
			if err != nil {
				return PStep[A, A, B]{}, err
			}
			if !m.Valid {
				return StepPStop[A, A, B](None[A]()), nil
			}
			return StepPYield[A, A, B](m.Value.First, m.Value.Second), nil
		},
		func(a A) (Maybe[A], error) { return Some(a), nil },
	)
}

// Translate changes a Producer's seed type through a bijection (to, from),
// carrying a residual seed surrendered on Stop through the same pair.
func Translate[A, A2, B any](to func(A) A2, from func(A2) A, p Producer[A, B]) Producer[A2, B] {
	return Producer[A2, B]{
		inject: func(a2 A2) (any, error) { return p.inject(from(a2)) },
		step: func(s any) (PStep[any, A2, B], error) {
			st, err := p.step(s)
			if err != nil {
				return PStep[any, A2, B]{}, err
			}
			out := PStep[any, A2, B]{Kind: st.Kind, B: st.B, S: st.S}
			if st.Kind == PStop && st.Residual.Valid {
				out.Residual = Some(to(st.Residual.Value))
			}
			return out, nil
		},
		extract: func(s any) (Maybe[A2], error) {
			m, err := p.extract(s)
			if err != nil || !m.Valid {
				return Maybe[A2]{}, err
			}
			return Some(to(m.Value)), nil
		},
	}
}

// Lmap pre-transforms the seed through f before injecting it into p. Unlike
// Translate, f has no inverse, so the resulting Producer cannot surrender a
// residual seed of its own type; Stop always reports None and extract
// always reports an absent seed, discarding whatever p itself would have
// surrendered.
func Lmap[A, A2, B any](f func(A2) A, p Producer[A, B]) Producer[A2, B] {
	return Producer[A2, B]{
		inject: func(a2 A2) (any, error) { return p.inject(f(a2)) },
		step: func(s any) (PStep[any, A2, B], error) {
			st, err := p.step(s)
			if err != nil {
				return PStep[any, A2, B]{}, err
			}
			return PStep[any, A2, B]{Kind: st.Kind, B: st.B, S: st.S}, nil
		},
		extract: func(s any) (Maybe[A2], error) {
			_, err := p.extract(s)
			return Maybe[A2]{}, err
		},
	}
}

// Map post-transforms every value p yields by f.
func Map[A, B, C any](f func(B) C, p Producer[A, B]) Producer[A, C] {
	return Producer[A, C]{
		inject: p.inject,
		step: func(s any) (PStep[any, A, C], error) {
			st, err := p.step(s)
			if err != nil {
				return PStep[any, A, C]{}, err
			}
			out := PStep[any, A, C]{Kind: st.Kind, S: st.S, Residual: st.Residual}
			if st.Kind == PYield {
				out.B = f(st.B)
			}
			return out, nil
		},
		extract: p.extract,
	}
}

// crossState tracks which side of a Cross currently owns the shared seed:
// while !inInner, outer holds p's state. Once p yields a b, p's extract
// surrenders the seed, which is injected into q — the outer state is dead
// from that point, so only b and q's state are retained while inInner. When
// q stops, whatever residual seed it surrenders re-seeds p.
type crossState[B any] struct {
	inInner bool
	outer   any
	b       B
	qstate  any
}

// Cross nests q inside p over one shared seed: p yields a b and then
// surrenders the seed through its extract; q is injected with that seed and
// every c it yields is paired with b as (b, c); when q stops, its residual
// seed re-seeds p and the loop continues. Both producers advance the same
// underlying seed, so over a list seed the product pairs the first element
// against each of the rest, not every element against every other.
//
// The seed can go missing at two points: p's extract reports None right
// after a Yield, or q stops without surrendering a residual. In both cases
// Cross stops rather than raising, since a missing seed is not itself a
// failure, just the end of the product.
func Cross[A, B, C any](p Producer[A, B], q Producer[A, C]) Producer[A, Pair[B, C]] {
	return Producer[A, Pair[B, C]]{
		inject: func(a A) (any, error) {
			os, err := p.inject(a)
			return crossState[B]{outer: os}, err
		},
		step: func(s any) (PStep[any, A, Pair[B, C]], error) {
			st := s.(crossState[B])
			if !st.inInner {
				ost, err := p.step(st.outer)
				if err != nil {
					return PStep[any, A, Pair[B, C]]{}, err
				}
				switch ost.Kind {
				case PSkip:
					return StepPSkip[any, A, Pair[B, C]](crossState[B]{outer: ost.S}), nil
				case PStop:
					return StepPStop[any, A, Pair[B, C]](ost.Residual), nil
				default: // PYield
					aMaybe, err := p.extract(ost.S)
					if err != nil {
						return PStep[any, A, Pair[B, C]]{}, err
					}
					if !aMaybe.Valid {
						return StepPStop[any, A, Pair[B, C]](None[A]()), nil
					}
					qs, err := q.inject(aMaybe.Value)
					if err != nil {
						return PStep[any, A, Pair[B, C]]{}, err
					}
					return StepPSkip[any, A, Pair[B, C]](crossState[B]{inInner: true, b: ost.B, qstate: qs}), nil
				}
			}

			qst, err := q.step(st.qstate)
			if err != nil {
				return PStep[any, A, Pair[B, C]]{}, err
			}
			switch qst.Kind {
			case PSkip:
				return StepPSkip[any, A, Pair[B, C]](crossState[B]{inInner: true, b: st.b, qstate: qst.S}), nil
			case PYield:
				pair := Pair[B, C]{First: st.b, Second: qst.B}
				return StepPYield[any, A, Pair[B, C]](pair, crossState[B]{inInner: true, b: st.b, qstate: qst.S}), nil
			default: // PStop: hand the residual seed, if any, back to p
				if !qst.Residual.Valid {
					return StepPStop[any, A, Pair[B, C]](None[A]()), nil
				}
				os, err := p.inject(qst.Residual.Value)
				if err != nil {
					return PStep[any, A, Pair[B, C]]{}, err
				}
				return StepPSkip[any, A, Pair[B, C]](crossState[B]{outer: os}), nil
			}
		},
		extract: func(s any) (Maybe[A], error) {
			st := s.(crossState[B])
			if st.inInner {
				return q.extract(st.qstate)
			}
			return p.extract(st.outer)
		},
	}
}

// concatState tracks an outer/inner tagged union: !inInner means p is
// active and outer holds its state; inInner means p's most recent yield was
// handed to q as a fresh seed, and qstate holds q's state. outer is always
// kept so stepping can resume it once q exhausts.
type concatState struct {
	outer   any
	inInner bool
	qstate  any
}

// Concat flattens p's yields into seeds for q, producing every value q
// yields from each one in turn: a nested loop whose outer seed is p's own
// and whose inner seed, each time outer yields b, is b itself.
//
// If q reports a residual seed on Stop, it is discarded and outer resumes.
// Raising an error instead would mean every q has to be written to never
// surrender one, which defeats the purpose of Producer's residual-seed
// feature, so Concat just drops it.
func Concat[A, B, C any](p Producer[A, B], q Producer[B, C]) Producer[A, C] {
	return Producer[A, C]{
		inject: func(a A) (any, error) {
			ps, err := p.inject(a)
			return concatState{outer: ps}, err
		},
		step: func(s any) (PStep[any, A, C], error) {
			st := s.(concatState)
			if !st.inInner {
				pst, err := p.step(st.outer)
				if err != nil {
					return PStep[any, A, C]{}, err
				}
				switch pst.Kind {
				case PSkip:
					return StepPSkip[any, A, C](concatState{outer: pst.S}), nil
				case PStop:
					return StepPStop[any, A, C](pst.Residual), nil
				default: // PYield
					qs, err := q.inject(pst.B)
					if err != nil {
						return PStep[any, A, C]{}, err
					}
					return StepPSkip[any, A, C](concatState{outer: pst.S, inInner: true, qstate: qs}), nil
				}
			}

			qst, err := q.step(st.qstate)
			if err != nil {
				return PStep[any, A, C]{}, err
			}
			switch qst.Kind {
			case PSkip:
				return StepPSkip[any, A, C](concatState{outer: st.outer, inInner: true, qstate: qst.S}), nil
			case PYield:
				return StepPYield[any, A, C](qst.B, concatState{outer: st.outer, inInner: true, qstate: qst.S}), nil
			default: // PStop: q exhausted, resume outer; residual discarded
				return StepPSkip[any, A, C](concatState{outer: st.outer}), nil
			}
		},
		extract: func(s any) (Maybe[A], error) {
			st := s.(concatState)
			return p.extract(st.outer)
		},
	}
}
