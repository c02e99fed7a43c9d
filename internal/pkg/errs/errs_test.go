package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("customer", "C00042")

		assert.Equal(t, "customer", err.ParamName)
		assert.Equal(t, "C00042", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: C00042", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("order", "O0000000000007", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: order, ID is: O0000000000007 (cause: record not found)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("non-string ID", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("sequence", 7)
		assert.Equal(t, "object not found: %!s(int=7)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	tests := []struct {
		name  string
		err   *errs.ValueIsInvalidError
		cause error
		want  string
	}{
		{
			name: "without cause",
			err:  errs.NewValueIsInvalidError("phone"),
			want: "value is invalid: phone",
		},
		{
			name:  "with cause",
			err:   errs.NewValueIsInvalidErrorWithCause("phone", errors.New("letters are not allowed")),
			cause: errors.New("letters are not allowed"),
			want:  "value is invalid: phone (cause: letters are not allowed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "phone", tt.err.ParamName)
			assert.Equal(t, tt.cause, tt.err.Cause)
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, errs.ErrValueIsInvalid, tt.err.Unwrap())
		})
	}
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 31.5, 0, 30)

		assert.Equal(t, 31.5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 30, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 31.5 is weight, min value is 0, max value is 30", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("too big for a truck")
		err := errs.NewValueIsOutOfRangeErrorWithCause("size", 151, 1, 150, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: 151 is size, min value is 1, max value is 150 (cause: too big for a truck)",
			err.Error())
	})

	t.Run("newlines in the value are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("description", "mugs\nplates", 0, 10)
		assert.Contains(t, err.Error(), "mugs plates")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("email")
	assert.Equal(t, "value is required: email", err.Error())
	require.NoError(t, err.Cause)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	cause := errors.New("empty after trimming")
	withCause := errs.NewValueIsRequiredErrorWithCause("email", cause)
	assert.Equal(t, "value is required: email (cause: empty after trimming)", withCause.Error())
	assert.Equal(t, errs.ErrValueIsRequired, withCause.Unwrap())
}

func TestAccessDeniedError(t *testing.T) {
	t.Run("NewAccessDeniedError", func(t *testing.T) {
		err := errs.NewAccessDeniedError("order", "O0000000000001")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "O0000000000001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "access denied: order (O0000000000001)", err.Error())
		assert.Equal(t, errs.ErrAccessDenied, err.Unwrap())
	})

	t.Run("NewAccessDeniedErrorWithCause", func(t *testing.T) {
		cause := errors.New("payer is C00002")
		err := errs.NewAccessDeniedErrorWithCause("order", "O0000000000001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "access denied: order (O0000000000001) (cause: payer is C00002)", err.Error())
	})
}

func TestStateIsInvalidError(t *testing.T) {
	t.Run("NewStateIsInvalidError", func(t *testing.T) {
		err := errs.NewStateIsInvalidError("bill")

		assert.Equal(t, "bill", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "state is invalid: bill", err.Error())
		assert.Equal(t, errs.ErrStateIsInvalid, err.Unwrap())
	})

	t.Run("NewStateIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("already issued")
		err := errs.NewStateIsInvalidErrorWithCause("bill", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "state is invalid: bill (cause: already issued)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrAccessDenied)
		require.Error(t, errs.ErrStateIsInvalid)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "access denied", errs.ErrAccessDenied.Error())
		assert.Equal(t, "state is invalid", errs.ErrStateIsInvalid.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is and errors.As see through wrapping", func(t *testing.T) {
		joined := errors.Join(
			errs.NewValueIsRequiredError("first name"),
			errs.NewValueIsOutOfRangeError("weight", 40, 0, 30),
		)
		require.ErrorIs(t, joined, errs.ErrValueIsRequired)
		require.ErrorIs(t, joined, errs.ErrValueIsOutOfRange)
		require.NotErrorIs(t, joined, errs.ErrValueIsInvalid)

		var notFound *errs.ObjectNotFoundError
		wrapped := fmt.Errorf("load bill: %w", errs.NewObjectNotFoundError("bill", "B000010001"))
		require.ErrorAs(t, wrapped, &notFound)
		assert.Equal(t, "bill", notFound.ParamName)

		accessDeniedErr := errs.NewAccessDeniedError("order", "O0000000000001")
		require.ErrorIs(t, accessDeniedErr, errs.ErrAccessDenied)

		stateErr := errs.NewStateIsInvalidErrorWithCause("bill", errors.New("test"))
		require.ErrorIs(t, stateErr, errs.ErrStateIsInvalid)
	})
}
