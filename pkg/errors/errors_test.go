package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	sentinel := NewErrorDetails("order already exists", string(DuplicateOrderError), "order_id")

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "details", err: sentinel, expected: string(DuplicateOrderError)},
		{name: "wrapped details", err: fmt.Errorf("%w: id=1", sentinel), expected: string(DuplicateOrderError)},
		{name: "plain error", err: stderrors.New("boom"), expected: string(GeneralInternalError)},
		{name: "tracer around details", err: NewTracer("apply").Wrap(sentinel), expected: string(DuplicateOrderError)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CodeOf(tc.err))
		})
	}
}

func TestErrorCodeEquals_Unwraps(t *testing.T) {
	err := fmt.Errorf("apply: %w", NewErrorDetails("halted", string(BookHaltedError), ""))
	assert.True(t, ErrorCodeEquals(err, string(BookHaltedError)))
	assert.False(t, ErrorCodeEquals(err, string(UnknownOrderError)))
}

func TestBaseError(t *testing.T) {
	base := NewBaseError()
	assert.False(t, base.HasDetails())
	assert.False(t, base.IsAllCodeEqual(string(InvariantViolationError)))

	base.AddErrorDetails(
		NewErrorDetails("volume mismatch", string(InvariantViolationError), "total_volume"),
		NewErrorDetails("orphaned order", string(InvariantViolationError), "order_id"),
	)

	require.True(t, base.HasDetails())
	assert.Len(t, base.GetDetails(), 2)
	assert.True(t, base.IsAllCodeEqual(string(InvariantViolationError)))
	assert.True(t, base.IsAnyCodeEqual(string(InvariantViolationError)))
	assert.Contains(t, base.Error(), "field: total_volume")
}

func TestErrorTracer(t *testing.T) {
	cause := stderrors.New("connection refused")
	tracer := NewTracer("snapshot_store_error").Wrap(cause)

	assert.ErrorIs(t, tracer, cause)
	assert.NotNil(t, tracer.StackTrace())
	assert.Equal(t, "snapshot_store_error: connection refused", tracer.Error())
}

func TestBaseError_Is(t *testing.T) {
	sentinel := NewErrorDetails("book invariant violated", string(InvariantViolationError), "")
	base := NewBaseError(
		NewErrorDetails("bid limit 100 volume mismatch", string(InvariantViolationError), "total_volume"),
	)

	assert.ErrorIs(t, base, sentinel)
	assert.NotErrorIs(t, base, NewErrorDetails("x", string(UnknownOrderError), ""))

	var details *ErrorDetails
	require.ErrorAs(t, base, &details)
	assert.Equal(t, "total_volume", details.Field)
}
