// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// altState is the two-state machine driving Alt. isRight false means left
// is still running; cnt counts the tokens left has consumed since entering
// the combinator (net of any rewinds), the amount that must be replayed
// into right if left fails. isRight true means left has already failed (or
// will never be consulted again) and s holds right's boxed state.
type altState struct {
	isRight bool
	cnt     int
	s       any
}

// Alt tries left; if left fails before committing, right is tried on the
// same tokens left consumed (replayed from the start of the uncommitted
// region). Once left commits (Yield/YieldB), the alternative is resolved in
// left's favor and cnt restarts from zero — left can no longer fail.
//
// While left is running and has not yet committed, the driver must retain
// every token left has consumed, since any of them may need to be replayed
// into right.
func Alt[A, B any](left, right Parser[A, B]) Parser[A, B] {
	return Parser[A, B]{
		initial: func() (any, error) {
			sl, err := left.initial()
			return altState{s: sl}, err
		},
		step: func(state any, tok A) (Step[any, B], error) {
			st := state.(altState)
			if !st.isRight {
				lst, err := left.step(st.s, tok)
				if err != nil {
					return Step[any, B]{}, err
				}
				switch lst.Kind {
				case KindYield:
					return StepYield[any, B](lst.N, altState{s: lst.S}), nil
				case KindYieldB:
					return StepYieldB[any, B](lst.N, altState{s: lst.S}), nil
				case KindSkip:
					cnt := st.cnt + 1 - lst.N
					if cnt < 0 {
						violatef("alt: skip of %d exceeds %d uncommitted tokens", lst.N, st.cnt+1)
					}
					return StepSkip[any, B](lst.N, altState{cnt: cnt, s: lst.S}), nil
				case KindStop:
					return StepStop[any, B](lst.N, lst.B), nil
				case KindError:
					sr, err := right.initial()
					if err != nil {
						return Step[any, B]{}, err
					}
					// Replay every token left consumed, including the one
					// that just failed, into right.
					return StepSkip[any, B](st.cnt+1, altState{isRight: true, s: sr}), nil
				}
				violatef("alt: left returned unknown step kind %v", lst.Kind)
				return Step[any, B]{}, nil
			}

			rst, err := right.step(st.s, tok)
			if err != nil {
				return Step[any, B]{}, err
			}
			out := Step[any, B]{Kind: rst.Kind, N: rst.N, B: rst.B, Msg: rst.Msg}
			if rst.Kind != KindStop && rst.Kind != KindError {
				out.S = altState{isRight: true, s: rst.S}
			}
			return out, nil
		},
		extract: func(state any) (B, error) {
			st := state.(altState)
			if st.isRight {
				return right.extract(st.s)
			}
			return left.extract(st.s)
		},
	}
}
