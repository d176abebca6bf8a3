package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a game operation failed.
type ErrorKind int

const (
	// KindValidation covers bet, raise and call amounts that break the
	// minimums or exceed a player's funds.
	KindValidation ErrorKind = iota + 1
	// KindAuthorization covers fund or card requests made without the
	// dealer's capability.
	KindAuthorization
	// KindState covers operations attempted out of order: no deck, players
	// not dealt, blinds not configured.
	KindState
	// KindEvaluationGap is reported when a showdown hand has no high card
	// or kicker.
	KindEvaluationGap
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("not authorized")
	ErrState         = errors.New("invalid game state")
	ErrEvaluationGap = errors.New("evaluation gap")
)

// ErrNoDecision is returned by a policy that cannot act, for example for a
// folded player. The betting round stops when it sees it.
var ErrNoDecision = errors.New("policy made no decision")

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindEvaluationGap:
		return "evaluation gap"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuthorization:
		return ErrAuthorization
	case KindState:
		return ErrState
	case KindEvaluationGap:
		return ErrEvaluationGap
	}
	return nil
}

// Error is a failed game operation tagged with its kind.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func validationError(op, format string, args ...any) *Error {
	return newError(KindValidation, op, format, args...)
}

func authorizationError(op string) *Error {
	return newError(KindAuthorization, op, "requester does not hold the dealer's capability")
}

func stateError(op, format string, args ...any) *Error {
	return newError(KindState, op, format, args...)
}
