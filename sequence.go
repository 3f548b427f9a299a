// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// seqState is the two-state machine driving SplitWith and Split_: isRight
// false means we are still running left (s holds left's boxed state);
// isRight true means left has finished and s holds right's boxed state. g
// captures how to combine right's eventual result with the value left
// already produced (the identity closure for Split_).
type seqState[C, D any] struct {
	isRight bool
	s       any
	g       func(C) D
}

// SplitWith runs left, then right, combining their results with f. Left's
// intermediate Yield/YieldB are translated into Skip: only left's Stop
// advances the composite to the right parser, so the composite does not
// commit on left's behalf.
//
// Composing a long chain of SplitWith is quadratic in the chain length: each
// layer inspects every token of everything after it. This is a documented
// cost, not a bug; a continuation-passing representation would avoid it but
// is out of scope.
func SplitWith[A, B, C, D any](f func(B, C) D, left Parser[A, B], right Parser[A, C]) Parser[A, D] {
	return Parser[A, D]{
		initial: func() (any, error) {
			sl, err := left.initial()
			return seqState[C, D]{s: sl}, err
		},
		step: func(state any, tok A) (Step[any, D], error) {
			st := state.(seqState[C, D])
			if !st.isRight {
				lst, err := left.step(st.s, tok)
				if err != nil {
					return Step[any, D]{}, err
				}
				switch lst.Kind {
				case KindYield:
					return StepSkip[any, D](0, seqState[C, D]{s: lst.S, g: st.g}), nil
				case KindYieldB, KindSkip:
					return StepSkip[any, D](lst.N, seqState[C, D]{s: lst.S, g: st.g}), nil
				case KindStop:
					b := lst.B
					sr, err := right.initial()
					if err != nil {
						return Step[any, D]{}, err
					}
					next := seqState[C, D]{isRight: true, s: sr, g: func(c C) D { return f(b, c) }}
					return StepSkip[any, D](lst.N, next), nil
				case KindError:
					return StepError[any, D](lst.Msg), nil
				}
				violatef("splitWith: left returned unknown step kind %v", lst.Kind)
				return Step[any, D]{}, nil
			}

			rst, err := right.step(st.s, tok)
			if err != nil {
				return Step[any, D]{}, err
			}
			out := Step[any, D]{Kind: rst.Kind, N: rst.N, Msg: rst.Msg}
			switch rst.Kind {
			case KindYield, KindYieldB, KindSkip:
				out.S = seqState[C, D]{isRight: true, s: rst.S, g: st.g}
			case KindStop:
				out.B = st.g(rst.B)
			case KindError:
				// pass through verbatim
			default:
				violatef("splitWith: right returned unknown step kind %v", rst.Kind)
			}
			return out, nil
		},
		extract: func(state any) (D, error) {
			st := state.(seqState[C, D])
			var zero D
			if st.isRight {
				c, err := right.extract(st.s)
				if err != nil {
					return zero, err
				}
				return st.g(c), nil
			}
			// The stream ended mid-left: both parsers still owe a final
			// value, so finalize left, then spin up and finalize a fresh
			// right to combine with it.
			b, err := left.extract(st.s)
			if err != nil {
				return zero, err
			}
			sr, err := right.initial()
			if err != nil {
				return zero, err
			}
			c, err := right.extract(sr)
			if err != nil {
				return zero, err
			}
			return f(b, c), nil
		},
	}
}

// Split_ is SplitWith with the left result discarded. It is implemented as
// SplitWith(func(_ B, c C) C { return c }, left, right), so its state is the
// same as SplitWith's, including the left result held for the combiner.
func Split_[A, B, C any](left Parser[A, B], right Parser[A, C]) Parser[A, C] {
	return SplitWith(func(_ B, c C) C { return c }, left, right)
}
