package vehicle_test

import (
	"errors"
	"testing"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicle_String(t *testing.T) {
	tests := []struct {
		kind vehicle.Kind
		want string
	}{
		{kind: vehicle.Minivan, want: "minivan (ABC-1234)"},
		{kind: vehicle.MiniTruck, want: "mini truck (ABC-1234)"},
		{kind: vehicle.Truck, want: "truck (ABC-1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			v, err := vehicle.NewVehicle(tt.kind, "ABC-1234")

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.want, v.Carrier().String())
		})
	}
}

func TestNewVehicle_Invalid(t *testing.T) {
	_, err := vehicle.NewVehicle(vehicle.UnknownKind, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
}

func TestVehicle_PickUpAndDeliver(t *testing.T) {
	v, err := vehicle.NewVehicle(vehicle.Truck, "TRK-1")
	require.NoError(t, err)

	v.PickUp("O0000000000001", "O0000000000002")
	v.PickUp("O0000000000002", "O0000000000003")

	assert.Equal(t, []kernel.OrderID{"O0000000000001", "O0000000000002", "O0000000000003"}, v.Cargo())

	require.NoError(t, v.Deliver("O0000000000002"))
	assert.False(t, v.Carries("O0000000000002"))

	err = v.Deliver("O0000000000002")
	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Len(t, v.Cargo(), 2)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  vehicle.Kind
	}{
		{input: "Minivan", want: vehicle.Minivan},
		{input: "MiniTruck", want: vehicle.MiniTruck},
		{input: "mini truck", want: vehicle.MiniTruck},
		{input: "mini_truck", want: vehicle.MiniTruck},
		{input: "TRUCK", want: vehicle.Truck},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := vehicle.ParseKind(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := vehicle.ParseKind("bicycle")
	assert.Error(t, err)
}

func TestRestoreVehicle(t *testing.T) {
	v, err := vehicle.RestoreVehicle(vehicle.Minivan, "VAN-7", []kernel.OrderID{"O0000000000009"})

	require.NoError(t, err)
	assert.True(t, v.Carries("O0000000000009"))
	assert.NoError(t, v.Validate())

	var zero vehicle.Vehicle
	assert.ErrorIs(t, zero.Validate(), vehicle.ErrVehicleIsNotConstructed)
}

func TestKindFromTypeName(t *testing.T) {
	tests := []struct {
		name string
		want vehicle.Kind
	}{
		{name: "Mini Truck", want: vehicle.MiniTruck},
		{name: "truck-mini", want: vehicle.MiniTruck},
		{name: "Big TRUCK", want: vehicle.Truck},
		{name: "minivan", want: vehicle.Minivan},
		{name: "scooter", want: vehicle.Minivan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vehicle.KindFromTypeName(tt.name))
		})
	}
}
