// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// repState is the (parser state, uncommitted count, fold state) triple
// driving SplitMany/SplitSome. committed records whether at least one
// iteration of p has already completed successfully, which is what
// distinguishes SplitSome from SplitMany: SplitSome propagates an Error that
// arrives before committed becomes true, where SplitMany always converts it
// into a (possibly empty) Stop.
type repState struct {
	ps        any
	cnt       int
	fs        any
	committed bool
}

// SplitMany runs p zero or more times, feeding each successful result into
// f, until p fails or the input is exhausted. Accumulation is strict: every
// iteration's result is folded in immediately, there is no lazy streaming
// variant.
func SplitMany[A, B, C any](f Fold[B, C], p Parser[A, B]) Parser[A, C] {
	return splitRepeat(f, p, false)
}

// SplitSome runs p one or more times; it fails if p's very first iteration
// reports Error before producing a result. If the input ends instead, the
// final extract is as tolerant as SplitMany's, even before any iteration has
// completed: a *ParseError from p's extract is swallowed and SplitSome
// succeeds with the fold's result over the values folded in so far (possibly
// none).
func SplitSome[A, B, C any](f Fold[B, C], p Parser[A, B]) Parser[A, C] {
	return splitRepeat(f, p, true)
}

func splitRepeat[A, B, C any](f Fold[B, C], p Parser[A, B], atLeastOne bool) Parser[A, C] {
	return Parser[A, C]{
		initial: func() (any, error) {
			ps, err := p.initial()
			if err != nil {
				return nil, err
			}
			fs, err := f.initial()
			if err != nil {
				return nil, err
			}
			return repState{ps: ps, fs: fs}, nil
		},
		step: func(state any, tok A) (Step[any, C], error) {
			st := state.(repState)
			pst, err := p.step(st.ps, tok)
			if err != nil {
				return Step[any, C]{}, err
			}
			switch pst.Kind {
			case KindYield:
				return StepSkip[any, C](0, repState{ps: pst.S, cnt: st.cnt + 1, fs: st.fs, committed: st.committed}), nil
			case KindYieldB, KindSkip:
				cnt := st.cnt + 1 - pst.N
				if cnt < 0 {
					violatef("splitMany/splitSome: skip of %d exceeds %d uncommitted tokens", pst.N, st.cnt+1)
				}
				return StepSkip[any, C](pst.N, repState{ps: pst.S, cnt: cnt, fs: st.fs, committed: st.committed}), nil
			case KindStop:
				fs2, err := f.step(st.fs, pst.B)
				if err != nil {
					return Step[any, C]{}, err
				}
				freshPS, err := p.initial()
				if err != nil {
					return Step[any, C]{}, err
				}
				next := repState{ps: freshPS, fs: fs2, committed: true}
				return StepYieldB[any, C](pst.N, next), nil
			case KindError:
				if !atLeastOne || st.committed {
					c, err := f.extract(st.fs)
					if err != nil {
						return Step[any, C]{}, err
					}
					return StepStop[any, C](st.cnt+1, c), nil
				}
				return StepError[any, C](pst.Msg), nil
			}
			violatef("splitMany/splitSome: unknown step kind %v", pst.Kind)
			return Step[any, C]{}, nil
		},
		extract: func(state any) (C, error) {
			st := state.(repState)
			b, perr := p.extract(st.ps)
			if perr == nil {
				fs2, err := f.step(st.fs, b)
				if err != nil {
					var zero C
					return zero, err
				}
				return f.extract(fs2)
			}
			if _, ok := perr.(*ParseError); ok {
				// Tolerant of a partial last iteration: finalize with
				// whatever has already been folded in.
				return f.extract(st.fs)
			}
			var zero C
			return zero, perr
		},
	}
}
