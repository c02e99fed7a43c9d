package order_test

import (
	"testing"

	"parcel/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySize(t *testing.T) {
	tests := []struct {
		index int
		want  order.SizeClass
		fee   float64
	}{
		{index: 3, want: order.Envelope, fee: 60},
		{index: 60, want: order.Envelope, fee: 60},
		{index: 61, want: order.SmallBox, fee: 120},
		{index: 90, want: order.SmallBox, fee: 120},
		{index: 91, want: order.MediumBox, fee: 250},
		{index: 120, want: order.MediumBox, fee: 250},
		{index: 121, want: order.BigBox, fee: 450},
		{index: 150, want: order.BigBox, fee: 450},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := order.ClassifySize(tt.index)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fee, got.Fee())
		})
	}

	_, err := order.ClassifySize(151)
	assert.Error(t, err)
}

func TestClassifyWeight(t *testing.T) {
	tests := []struct {
		weight float64
		want   order.WeightClass
		fee    float64
	}{
		{weight: 0.1, want: order.ExtraLight, fee: 60},
		{weight: 0.5, want: order.ExtraLight, fee: 60},
		{weight: 1.5, want: order.Light, fee: 120},
		{weight: 5, want: order.Light, fee: 120},
		{weight: 15, want: order.Heavy, fee: 250},
		{weight: 30, want: order.ExtraHeavy, fee: 450},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := order.ClassifyWeight(tt.weight)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fee, got.Fee())
		})
	}

	_, err := order.ClassifyWeight(30.01)
	assert.Error(t, err)
}

func TestService(t *testing.T) {
	tests := []struct {
		name       string
		service    order.Service
		multiplier float64
		days       int
	}{
		{name: "over_night", service: order.OverNight, multiplier: 2.5, days: 1},
		{name: "express", service: order.Express, multiplier: 1.8, days: 2},
		{name: "standard", service: order.Standard, multiplier: 1.2, days: 7},
		{name: "economy", service: order.Economy, multiplier: 1.0, days: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := order.ParseService(tt.name)

			require.NoError(t, err)
			assert.Equal(t, tt.service, parsed)
			assert.Equal(t, tt.name, parsed.String())
			assert.Equal(t, tt.multiplier, parsed.Multiplier())
			assert.Equal(t, tt.days, parsed.Days())
		})
	}

	_, err := order.ParseService("teleport")
	assert.Error(t, err)
	assert.Error(t, order.UnknownService.Validate())
}

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name      string
		service   order.Service
		size      order.Size
		weight    float64
		dangerous bool
		fragile   bool
		want      float64
	}{
		{name: "standard envelope extra light", service: order.Standard, size: order.Size{10, 10, 10}, weight: 0.5, want: 61.2},
		{name: "weight class wins", service: order.Standard, size: order.Size{10, 10, 10}, weight: 1.5, want: 121.2},
		{name: "size class wins", service: order.Economy, size: order.Size{50, 50, 50}, weight: 0.2, want: 451},
		{name: "dangerous surcharge", service: order.Express, size: order.Size{10, 10, 10}, weight: 0.5, dangerous: true, want: 561.8},
		{name: "fragile surcharge", service: order.OverNight, size: order.Size{30, 30, 30}, weight: 10, fragile: true, want: 352.5},
		{name: "both surcharges", service: order.Economy, size: order.Size{1, 1, 1}, weight: 0.1, dangerous: true, fragile: true, want: 661},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := mustPackage(t, tt.size, tt.weight, tt.dangerous, tt.fragile)

			got := order.CalculateFee(tt.service, mustRepository(t, "a", "b"), mustDestination(t, "c"), pkg)

			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
