// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// A Parser consumes tokens of type A and produces a result of type B. Its
// internal state is hidden: a Parser is a boxed triple of closures sharing a
// concrete state type known only to the function that built it, with no
// interface hierarchy involved.
//
// Callers never construct the closures directly; use New to lift a
// concretely-typed (initial, step, extract) triple into a Parser, and the
// combinators in this package to build new Parsers out of existing ones.
type Parser[A, B any] struct {
	initial func() (any, error)
	step    func(s any, tok A) (Step[any, B], error)
	extract func(s any) (B, error)
}

// New lifts a concretely-typed parser triple into a Parser. initial produces
// fresh state; step is the per-token transition; extract finalizes on input
// exhaustion. step must never itself raise a *ParseError — reserve the
// returned error for effects that are not part of the protocol (I/O
// failures and the like), which propagate unchanged per the error-handling
// contract. Use the StepYield/StepYieldB/StepSkip/StepStop/StepError
// constructors to build the Step a step function returns.
func New[A, B, S any](
	initial func() (S, error),
	step func(S, A) (Step[S, B], error),
	extract func(S) (B, error),
) Parser[A, B] {
	return Parser[A, B]{
		initial: func() (any, error) { return initial() },
		step: func(s any, tok A) (Step[any, B], error) {
			st, err := step(s.(S), tok)
			return boxStep[S, B](st), err
		},
		extract: func(s any) (B, error) { return extract(s.(S)) },
	}
}

// Initial, Step, and Extract expose a Parser's operations to code outside
// this package that drives one directly to build a new combinator, the way
// parsec/leaf's Peek wraps an arbitrary Parser.
func (p Parser[A, B]) Initial() (any, error)                   { return p.initial() }
func (p Parser[A, B]) Step(s any, tok A) (Step[any, B], error) { return p.step(s, tok) }
func (p Parser[A, B]) Extract(s any) (B, error)                { return p.extract(s) }

// boxStep erases a Step's concrete state type, preserving every other field.
func boxStep[S, B any](st Step[S, B]) Step[any, B] {
	return Step[any, B]{Kind: st.Kind, N: st.N, S: st.S, B: st.B, Msg: st.Msg}
}

// Map transforms the result of p by f. The Step's Kind and N fields pass
// through unchanged; only a Stop's result is touched.
func Map[A, B, C any](f func(B) C, p Parser[A, B]) Parser[A, C] {
	return Parser[A, C]{
		initial: p.initial,
		step: func(s any, tok A) (Step[any, C], error) {
			st, err := p.step(s, tok)
			out := Step[any, C]{Kind: st.Kind, N: st.N, S: st.S, Msg: st.Msg}
			if st.Kind == KindStop {
				out.B = f(st.B)
			}
			return out, err
		},
		extract: func(s any) (C, error) {
			b, err := p.extract(s)
			var c C
			if err == nil {
				c = f(b)
			}
			return c, err
		},
	}
}
