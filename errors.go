// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package parsec

import (
	"errors"
	"fmt"
)

// ErrNoAlternative is wrapped inside the *ParseError a Driver reports when
// a parser's step signals Error and no enclosing Alt remains to try another
// branch. Test for it with errors.Is.
var ErrNoAlternative = errors.New("no remaining alternative")

// A ParseError reports that a parse failed: either a parser's step reported
// an Error command with no alternative left to try, or a parser's extract
// method raised after the input ended without a commit.
type ParseError struct {
	Message string

	err error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string { return e.Message }

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

func parseErrorf(msg string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(msg, args...)}
}

func wrapParseError(err error, msg string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(msg, args...), err: err}
}

// protocolViolation marks a bug in a combinator or leaf parser's step
// function, as opposed to a failure of the input: a step that returns Error
// after a prior Yield, or a Skip/YieldB whose N exceeds the uncommitted
// distance. The driver recovers these at its entry point and reports them
// as an ordinary error, so the detection site deep inside the step loop
// does not need an error path threaded out to it.
type protocolViolation struct{ err error }

func (p protocolViolation) Error() string { return p.err.Error() }

func violatef(msg string, args ...any) {
	panic(protocolViolation{fmt.Errorf(msg, args...)})
}

func (d *Driver[A, B]) recoverDriverPanic(errp *error) {
	if v := recover(); v != nil {
		switch err := v.(type) {
		case protocolViolation:
			*errp = err
		default:
			panic(v)
		}
	}
}
