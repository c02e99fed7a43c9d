package order_test

import (
	"errors"
	"math"
	"testing"

	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	tests := []struct {
		name    string
		size    order.Size
		weight  float64
		value   float64
		wantErr error
	}{
		{name: "valid", size: order.Size{10, 10, 10}, weight: 1.5, value: 100},
		{name: "upper bounds", size: order.Size{50, 50, 50}, weight: order.MaxWeight, value: 0},
		{name: "oversized", size: order.Size{60, 50, 41}, weight: 1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "overweight", size: order.Size{10, 10, 10}, weight: 30.5, wantErr: errs.ErrValueIsOutOfRange},
		{name: "weightless", size: order.Size{10, 10, 10}, weight: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "dimension sum overflows", size: order.Size{math.MaxInt, math.MaxInt, 2}, weight: 1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "one huge dimension", size: order.Size{151, 1, 1}, weight: 1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "weight not a number", size: order.Size{10, 10, 10}, weight: math.NaN(), wantErr: errs.ErrValueIsOutOfRange},
		{name: "value not a number", size: order.Size{10, 10, 10}, weight: 1, value: math.NaN(), wantErr: errs.ErrValueIsInvalid},
		{name: "flat dimension", size: order.Size{10, 0, 10}, weight: 1, wantErr: errs.ErrValueIsInvalid},
		{name: "negative value", size: order.Size{10, 10, 10}, weight: 1, value: -1, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := order.NewPackage(tt.size, tt.weight, tt.value, "content", false, false)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, pkg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, pkg.Size())
			assert.Equal(t, tt.weight, pkg.Weight())
		})
	}
}

func TestPackage_AddDescription(t *testing.T) {
	pkg, err := order.NewPackage(order.Size{1, 1, 1}, 0.1, 5, "", false, true)
	require.NoError(t, err)

	pkg.AddDescription("two mugs")
	pkg.AddDescription("  ")
	pkg.AddDescription("handle with care")

	assert.Equal(t, "two mugs handle with care", pkg.Description())
}

func TestPackage_Snapshot(t *testing.T) {
	pkg, err := order.NewPackage(order.Size{20, 30, 40}, 4.2, 999.9, "lamp", true, true)
	require.NoError(t, err)

	restored, err := order.RestorePackage(pkg.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, pkg.Snapshot(), restored.Snapshot())
	assert.True(t, restored.IsDangerous())
	assert.True(t, restored.IsFragile())
	assert.Equal(t, 999.9, restored.Value())
}
