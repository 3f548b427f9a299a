// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package fold provides concrete Fold collaborators for parsec.SplitMany and
// parsec.SplitSome to reduce their iterations into.
package fold

import "github.com/creachadair/parsec"

// Fold re-exports parsec.Fold for callers that only import this package.
type Fold[B, C any] = parsec.Fold[B, C]

// ToSlice accumulates every value into a slice, in order.
func ToSlice[B any]() parsec.Fold[B, []B] {
	return parsec.NewFold(
		func() ([]B, error) { return nil, nil },
		func(s []B, b B) ([]B, error) { return append(s, b), nil },
		func(s []B) ([]B, error) { return s, nil },
	)
}

// Count discards every value and reports how many there were.
func Count[B any]() parsec.Fold[B, int] {
	return parsec.NewFold(
		func() (int, error) { return 0, nil },
		func(s int, _ B) (int, error) { return s + 1, nil },
		func(s int) (int, error) { return s, nil },
	)
}
