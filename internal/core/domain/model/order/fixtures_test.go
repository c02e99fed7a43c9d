package order_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var collectedAt = time.Date(2025, time.December, 25, 14, 4, 34, 0, time.UTC)

func mustRepository(t *testing.T, address string, name string) location.Location {
	t.Helper()
	loc, err := location.NewRepositoryLocation(address, name)
	require.NoError(t, err)
	return loc
}

func mustDestination(t *testing.T, address string) location.Location {
	t.Helper()
	loc, err := location.NewDestination(address)
	require.NoError(t, err)
	return loc
}

func mustPackage(t *testing.T, size order.Size, weight float64, dangerous bool, fragile bool) *order.Package {
	t.Helper()
	pkg, err := order.NewPackage(size, weight, 100, "books", dangerous, fragile)
	require.NoError(t, err)
	return pkg
}

func newTestOrder(t *testing.T, service order.Service, pkg *order.Package) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.OrderID("O0000000000001"),
		kernel.CustomerID("C00001"),
		order.InAdvance,
		service,
		mustRepository(t, "Brooklyn", "Repo0"),
		mustDestination(t, "5th Avenue 1"),
		"S00001",
		false,
		pkg,
		collectedAt,
	)
	require.NoError(t, err)
	return o
}
