package guard_test

import (
	"errors"
	"testing"

	"parcel/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("Bill must be created via NewBill")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuardEmbeddedInValueObject(t *testing.T) {
	type receipt struct {
		transactionID string
		guard         guard.ConstructorGuard
	}

	errReceiptNotConstructed := errors.New("receipt must be created via newReceipt")

	newReceipt := func(transactionID string) (receipt, error) {
		if transactionID == "" {
			return receipt{}, errors.New("transaction ID is required")
		}
		return receipt{transactionID: transactionID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		r, err := newReceipt("TX-1")

		require.NoError(t, err)
		require.NoError(t, r.guard.Validate(errReceiptNotConstructed))
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var r receipt

		assert.Equal(t, errReceiptNotConstructed, r.guard.Validate(errReceiptNotConstructed))
	})

	t.Run("copy_keeps_guard", func(t *testing.T) {
		r, err := newReceipt("TX-2")
		require.NoError(t, err)

		cp := r

		require.NoError(t, cp.guard.Validate(errReceiptNotConstructed))
	})
}

func BenchmarkConstructorGuard(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
