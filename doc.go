// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package parsec implements streaming, backtracking parser combinators.
//
// # Steps
//
// A Parser's step function reports one of five Step commands after
// consuming a token: KindYield and KindYieldB commit progress (a result is
// now extractable, and the driver may discard history it no longer needs to
// replay); KindSkip consumes a token without committing; KindStop succeeds,
// handing back any unused trailing tokens; KindError fails, asking an
// enclosing Alt to try an alternative or the Driver to report a ParseError.
// See the Kind constants for the exact contract of each.
//
// # Parsers
//
// A Parser[A, B] consumes tokens of type A and produces a result of type B.
// Construct one from a concretely-typed (initial, step, extract) triple with
// New, or build one up from the combinators in this package: Map, Return,
// ReturnM, Die, DieM, SplitWith, Split_, Alt, SplitMany, SplitSome,
// ConcatMap, and FromFold.
//
//	digits := parsec.SplitSome(fold.ToSlice[byte](), leaf.Satisfy(isDigit))
//
// # Driver
//
// Construct a Driver from a Source and call its Parse method. Parse pumps
// tokens from the source through a Parser, interpreting every Step it
// returns, until the parser succeeds, fails, or the input is exhausted:
//
//	d := parsec.NewDriver[byte, int](src)
//	v, leftover, err := d.Parse(myParser)
//	if err != nil {
//	    log.Fatalf("parse failed: %v", err)
//	}
//
// In case of failure, err has concrete type *parsec.ParseError unless the
// failure originated inside the parser's own effects (for example an I/O
// error from the Source), which propagate unchanged, or the parser broke
// the Step protocol, which is reported as an error that is not a
// *parsec.ParseError.
//
// # Related packages
//
// parsec/leaf provides a handful of concrete leaf parsers (Take, Satisfy,
// Peek, EOF, and the like) to build on top of the combinators here.
// parsec/fold provides the Fold collaborators SplitMany and SplitSome
// reduce their iterations into. parsec/producer provides Producer, a
// resumable generator that is a complementary abstraction to Parser rather
// than a parser itself.
package parsec
