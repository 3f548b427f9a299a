// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// bindState is the two-state machine driving ConcatMap: isRight false means
// p is still running (sl holds its boxed state); isRight true means p has
// produced a result, k was applied to build p2, and s2 holds p2's boxed
// state. s2 is cached across steps rather than re-running p2's initial on
// every step of the right phase; the two behave the same as long as
// initial's effects are idempotent, and caching avoids the wasted work
// since k's result is only ever initialized once per bind anyway.
type bindState[A, C any] struct {
	isRight bool
	sl      any
	p2      Parser[A, C]
	s2      any
}

// ConcatMap is monadic bind: it runs p, applies k to the result to build a
// new parser, and then runs that parser to completion. Because the
// right-hand parser is constructed dynamically from p's result, ConcatMap
// cannot know its shape until p has produced a value.
func ConcatMap[A, B, C any](k func(B) Parser[A, C], p Parser[A, B]) Parser[A, C] {
	return Parser[A, C]{
		initial: func() (any, error) {
			sl, err := p.initial()
			return bindState[A, C]{sl: sl}, err
		},
		step: func(state any, tok A) (Step[any, C], error) {
			st := state.(bindState[A, C])
			if !st.isRight {
				lst, err := p.step(st.sl, tok)
				if err != nil {
					return Step[any, C]{}, err
				}
				if lst.Kind == KindStop {
					p2 := k(lst.B)
					s2, err := p2.initial()
					if err != nil {
						return Step[any, C]{}, err
					}
					next := bindState[A, C]{isRight: true, p2: p2, s2: s2}
					return StepSkip[any, C](lst.N, next), nil
				}
				out := Step[any, C]{Kind: lst.Kind, N: lst.N, Msg: lst.Msg}
				if lst.Kind != KindError {
					out.S = bindState[A, C]{sl: lst.S}
				}
				return out, nil
			}

			rst, err := st.p2.step(st.s2, tok)
			if err != nil {
				return Step[any, C]{}, err
			}
			out := Step[any, C]{Kind: rst.Kind, N: rst.N, B: rst.B, Msg: rst.Msg}
			if rst.Kind != KindStop && rst.Kind != KindError {
				out.S = bindState[A, C]{isRight: true, p2: st.p2, s2: rst.S}
			}
			return out, nil
		},
		extract: func(state any) (C, error) {
			st := state.(bindState[A, C])
			if st.isRight {
				return st.p2.extract(st.s2)
			}
			var zero C
			b, err := p.extract(st.sl)
			if err != nil {
				return zero, err
			}
			p2 := k(b)
			s2, err := p2.initial()
			if err != nil {
				return zero, err
			}
			return p2.extract(s2)
		},
	}
}
