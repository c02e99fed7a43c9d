package kernel_test

import (
	"errors"
	"testing"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerID(t *testing.T) {
	tests := []struct {
		name    string
		seq     int
		want    kernel.CustomerID
		wantErr bool
	}{
		{name: "first customer", seq: 0, want: "C00000"},
		{name: "padded", seq: 42, want: "C00042"},
		{name: "upper bound", seq: kernel.MaxCustomerSequence, want: "C99999"},
		{name: "overflow", seq: kernel.MaxCustomerSequence + 1, wantErr: true},
		{name: "negative", seq: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kernel.NewCustomerID(tt.seq)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestNewOrderID(t *testing.T) {
	id, err := kernel.NewOrderID(7)

	require.NoError(t, err)
	assert.Equal(t, kernel.OrderID("O0000000000007"), id)
	assert.NoError(t, id.Validate())

	_, err = kernel.NewOrderID(kernel.MaxOrderSequence + 1)
	assert.Error(t, err)

	seq, err := id.Sequence()
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)

	_, err = kernel.OrderID("O12").Sequence()
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewStaffID(t *testing.T) {
	id, err := kernel.NewStaffID(3)

	require.NoError(t, err)
	assert.Equal(t, "S00003", id.String())
}

func TestBillID(t *testing.T) {
	owner := kernel.CustomerID("C00005")

	t.Run("should derive from owner and sequence", func(t *testing.T) {
		id, err := kernel.NewBillID(owner, 1)

		require.NoError(t, err)
		assert.Equal(t, kernel.BillID("B000050001"), id)
		assert.Equal(t, owner, id.Owner())
		assert.Equal(t, "0001", id.Suffix())
	})

	t.Run("should rebuild from suffix", func(t *testing.T) {
		id, err := kernel.BillIDFromSuffix(owner, "0012")

		require.NoError(t, err)
		assert.Equal(t, kernel.BillID("B000050012"), id)
	})

	t.Run("should reject malformed suffix", func(t *testing.T) {
		_, err := kernel.BillIDFromSuffix(owner, "12")

		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should reject invalid owner", func(t *testing.T) {
		_, err := kernel.NewBillID("X1", 1)

		assert.Error(t, err)
	})
}

func TestParseIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) error
		good  string
		bad   []string
	}{
		{
			name:  "customer",
			parse: func(s string) error { _, err := kernel.ParseCustomerID(s); return err },
			good:  "C12345",
			bad:   []string{"C1234", "c12345", "O12345", "C123456"},
		},
		{
			name:  "order",
			parse: func(s string) error { _, err := kernel.ParseOrderID(s); return err },
			good:  "O0000000000001",
			bad:   []string{"O1", "O00000000000001", "C0000000000001"},
		},
		{
			name:  "bill",
			parse: func(s string) error { _, err := kernel.ParseBillID(s); return err },
			good:  "B000010001",
			bad:   []string{"B00001001", "B0000100011"},
		},
		{
			name:  "staff",
			parse: func(s string) error { _, err := kernel.ParseStaffID(s); return err },
			good:  "S00001",
			bad:   []string{"S1", "s00001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.parse(tt.good))
			assert.True(t, errors.Is(tt.parse(""), errs.ErrValueIsRequired))
			for _, bad := range tt.bad {
				assert.True(t, errors.Is(tt.parse(bad), errs.ErrValueIsInvalid), bad)
			}
		})
	}
}
