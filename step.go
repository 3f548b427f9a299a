// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

// A Kind identifies which of the five driver commands a Step carries.
type Kind byte

// Constants defining the valid Kind values. A Step carries exactly one of
// these; see the field comments on Step for which fields are meaningful for
// each kind.
const (
	// KindYield commits: a result is now extractable, and the driver may
	// retain only the N most recently buffered tokens. Once a parser yields,
	// it may never again report KindError.
	KindYield Kind = iota

	// KindYieldB commits like KindYield, then rewinds the cursor by N
	// tokens, replaying them, and drops the prefix before the new position.
	KindYieldB

	// KindSkip consumes a token without committing. N rewinds the cursor by
	// N tokens; N == 0 simply asks for more input. N must not exceed the
	// distance back to the last committed point.
	KindSkip

	// KindStop reports success. N is the count of unused trailing tokens
	// (including the one just consumed) that must be returned to the input.
	KindStop

	// KindError reports failure. An enclosing Alt rewinds to the start of
	// its uncommitted region and tries its right branch; with no Alt left,
	// the Driver reports a ParseError.
	KindError
)

var kindStr = [...]string{
	KindYield:  "Yield",
	KindYieldB: "YieldB",
	KindSkip:   "Skip",
	KindStop:   "Stop",
	KindError:  "Error",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid kind"
}

// A Step is the command a parser's step function returns to the driver
// after consuming one token. S is the parser's (boxed) state type and B is
// its result type. Only the fields relevant to Kind are meaningful; see the
// Kind constants for field semantics.
type Step[S, B any] struct {
	Kind Kind
	N    int
	S    S
	B    B
	Msg  string
}

// StepYield constructs a Yield step: commit, retaining only the n most
// recent buffered tokens, and continue with state s.
func StepYield[S, B any](n int, s S) Step[S, B] { return Step[S, B]{Kind: KindYield, N: n, S: s} }

// StepYieldB constructs a YieldB step: commit as StepYield, then rewind the
// cursor by n tokens.
func StepYieldB[S, B any](n int, s S) Step[S, B] {
	return Step[S, B]{Kind: KindYieldB, N: n, S: s}
}

// StepSkip constructs a Skip step: no commit, rewind the cursor by n tokens,
// continue with state s.
func StepSkip[S, B any](n int, s S) Step[S, B] { return Step[S, B]{Kind: KindSkip, N: n, S: s} }

// StepStop constructs a Stop step: parsing is complete with result b, and n
// trailing tokens (including the current one) are unused.
func StepStop[S, B any](n int, b B) Step[S, B] { return Step[S, B]{Kind: KindStop, N: n, B: b} }

// StepError constructs an Error step carrying msg.
func StepError[S, B any](msg string) Step[S, B] { return Step[S, B]{Kind: KindError, Msg: msg} }
