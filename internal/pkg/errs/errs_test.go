package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("gig", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: gig, ID is: 123 (cause: record not found)",
			err.Error())
	})

	t.Run("Details name the object", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("package", 42)

		assert.Equal(t, map[string]any{"object": "package", "id": "42"}, err.Details())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("tier")

		assert.Equal(t, "value is invalid: tier", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("tier", errors.New("gold is not a tier"))

		assert.Equal(t, "value is invalid: tier (cause: gold is not a tier)", err.Error())
	})

	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("reason")

		assert.Equal(t, "value is required: reason", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("delivery days", 400, 1, 365)

		assert.Equal(t, "value is invalid: 400 is delivery days, min value is 1, max value is 365", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("out of range keeps values on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestAuthorizationError(t *testing.T) {
	err := errs.NewAuthorizationError("u-1", "customer", "accept order ORD-1")

	assert.Equal(t, "action is forbidden: customer u-1 may not accept order ORD-1", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, "accept order ORD-1", err.Details()["action"])
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("names both states and the allowed targets", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("pending", "completed", []string{"in_progress", "cancelled"})

		assert.Equal(t,
			"status transition is not allowed: pending -> completed (allowed from pending: in_progress, cancelled)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("terminal source has no allowed targets", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("completed", "cancelled", nil)

		assert.Contains(t, err.Error(), "allowed from completed: none")
		assert.Equal(t, []string{}, err.Details()["allowed"])
	})
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("deliver", "pending", "in_progress", "revision_requested")

	assert.Equal(t,
		"operation is not allowed in the current state: deliver requires in_progress or revision_requested, current is pending",
		err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestQuotaExceededError(t *testing.T) {
	err := errs.NewQuotaExceededError("revisions", 2, 2)

	assert.Equal(t, "quota exceeded: revisions limit reached, package includes 2, 2 already used", err.Error())
	require.ErrorIs(t, err, errs.ErrQuotaExceeded)
	assert.Equal(t, 2, err.Details()["limit"])
}

func TestCodeOf(t *testing.T) {
	testCases := []struct {
		err      error
		expected errs.Code
	}{
		{nil, ""},
		{errs.NewObjectNotFoundError("order", "1"), errs.CodeNotFound},
		{errs.NewAuthorizationError("1", "seller", "complete"), errs.CodeForbidden},
		{errs.NewInvalidTransitionError("pending", "completed", nil), errs.CodeInvalidTransition},
		{errs.NewInvalidStateError("deliver", "pending", "in_progress"), errs.CodeInvalidState},
		{errs.NewQuotaExceededError("revisions", 1, 1), errs.CodeQuotaExceeded},
		{errs.NewValueIsRequiredError("reason"), errs.CodeValidation},
		{errs.NewValueIsInvalidError("gig"), errs.CodeValidation},
		{errs.NewValueIsOutOfRangeError("days", 0, 1, 365), errs.CodeValidation},
		{errors.New("connection refused"), errs.CodeInternal},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("should map %v to %q", tc.err, tc.expected), func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.CodeOf(tc.err))
		})
	}

	t.Run("should see through wrapping and joining", func(t *testing.T) {
		wrapped := fmt.Errorf("complete order: %w", errs.NewQuotaExceededError("revisions", 1, 1))
		joined := errors.Join(errs.NewValueIsRequiredError("message"), errs.NewValueIsInvalidError("attachments"))

		assert.Equal(t, errs.CodeQuotaExceeded, errs.CodeOf(wrapped))
		assert.Equal(t, errs.CodeValidation, errs.CodeOf(joined))
		assert.True(t, errs.IsBusiness(wrapped))
		assert.False(t, errs.IsBusiness(errors.New("disk full")))
	})
}

func TestDetails(t *testing.T) {
	wrapped := fmt.Errorf("deliver: %w", errs.NewInvalidStateError("deliver", "completed", "in_progress"))

	details := errs.Details(wrapped)

	require.NotNil(t, details)
	assert.Equal(t, "completed", details["current"])
	assert.Nil(t, errs.Details(errors.New("plain")))
}
