// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// A Fold accumulates a sequence of B values into a single C. Shaped like a
// Parser's (initial, step, extract) triple, but a Fold never fails and never
// reports a Step: SplitMany and SplitSome use it to reduce each successful
// iteration's result into a running accumulator. Concrete folds live in
// parsec/fold; construct one with NewFold.
type Fold[B, C any] struct {
	initial func() (any, error)
	step    func(s any, b B) (any, error)
	extract func(s any) (C, error)
}

// NewFold lifts a concretely-typed fold triple into a Fold.
func NewFold[B, C, S any](
	initial func() (S, error),
	step func(S, B) (S, error),
	extract func(S) (C, error),
) Fold[B, C] {
	return Fold[B, C]{
		initial: func() (any, error) { return initial() },
		step: func(s any, b B) (any, error) {
			return step(s.(S), b)
		},
		extract: func(s any) (C, error) { return extract(s.(S)) },
	}
}

// Initial, Step, and Extract expose a Fold's operations to code outside this
// package that drives one directly rather than handing it to SplitMany or
// SplitSome — parsec/leaf's SliceSepBy is the one built-in example.
func (f Fold[B, C]) Initial() (any, error)        { return f.initial() }
func (f Fold[B, C]) Step(s any, b B) (any, error) { return f.step(s, b) }
func (f Fold[B, C]) Extract(s any) (C, error)     { return f.extract(s) }

// FromFold lifts a Fold into a Parser that folds every input token into the
// accumulator and reports the accumulated value when the input ends. The
// resulting parser never fails, and commits after every token, so the
// driver retains no backtrack history on its behalf.
func FromFold[A, C any](f Fold[A, C]) Parser[A, C] {
	return Parser[A, C]{
		initial: f.initial,
		step: func(s any, tok A) (Step[any, C], error) {
			s2, err := f.step(s, tok)
			if err != nil {
				return Step[any, C]{}, err
			}
			return StepYield[any, C](0, s2), nil
		},
		extract: f.extract,
	}
}
