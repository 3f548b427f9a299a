// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// unit is the state type of parsers that carry no state of their own.
type unit struct{}

// Return constructs a parser that always succeeds with b, without
// consuming any input. On the very first token it reports Stop 1 b,
// returning that token unused; on empty input extract returns b. Named
// Return rather than Yield to avoid colliding with the Kind constants.
func Return[A, B any](b B) Parser[A, B] {
	return New(
		func() (unit, error) { return unit{}, nil },
		func(unit, A) (Step[unit, B], error) { return StepStop[unit, B](1, b), nil },
		func(unit) (B, error) { return b, nil },
	)
}

// ReturnM is Return, except the result is produced by running the effectful
// action mb whenever it is needed (on the first step, or at extract if the
// input is already empty). mb is called at most once per parse.
func ReturnM[A, B any](mb func() (B, error)) Parser[A, B] {
	return New(
		func() (unit, error) { return unit{}, nil },
		func(unit, A) (Step[unit, B], error) {
			b, err := mb()
			if err != nil {
				return Step[unit, B]{}, err
			}
			return StepStop[unit, B](1, b), nil
		},
		func(unit) (B, error) { return mb() },
	)
}

// Die constructs a parser that always fails with msg, without consuming any
// input.
func Die[A, B any](msg string) Parser[A, B] {
	return New(
		func() (unit, error) { return unit{}, nil },
		func(unit, A) (Step[unit, B], error) { return StepError[unit, B](msg), nil },
		func(unit) (B, error) { var zero B; return zero, parseErrorf("%s", msg) },
	)
}

// DieM is Die, except the failure message is produced by running the
// effectful action mmsg.
func DieM[A, B any](mmsg func() (string, error)) Parser[A, B] {
	return New(
		func() (unit, error) { return unit{}, nil },
		func(unit, A) (Step[unit, B], error) {
			msg, err := mmsg()
			if err != nil {
				return Step[unit, B]{}, err
			}
			return StepError[unit, B](msg), nil
		},
		func(unit) (B, error) {
			var zero B
			msg, err := mmsg()
			if err != nil {
				return zero, err
			}
			return zero, parseErrorf("%s", msg)
		},
	)
}
