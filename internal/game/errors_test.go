package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/holdem-sim/internal/evaluator"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		sentinel error
		kind     ErrorKind
	}{
		{validationError("bet", "too small"), ErrValidation, KindValidation},
		{authorizationError("request funds"), ErrAuthorization, KindAuthorization},
		{stateError("deal", "no deck"), ErrState, KindState},
		{&Error{Kind: KindEvaluationGap, Op: "rank", Err: evaluator.ErrEvaluationGap}, ErrEvaluationGap, KindEvaluationGap},
	}

	sentinels := []error{ErrValidation, ErrAuthorization, ErrState, ErrEvaluationGap}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			for _, s := range sentinels {
				if s != tt.sentinel {
					assert.False(t, errors.Is(wrapped, s), "%v must not match %v", tt.err, s)
				}
			}

			kind, ok := KindOf(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestEvaluationGapKeepsCause(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: KindEvaluationGap, Op: "rank Alice", Err: evaluator.ErrEvaluationGap}
	assert.ErrorIs(t, err, evaluator.ErrEvaluationGap)
	assert.Contains(t, err.Error(), "rank Alice")
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}
