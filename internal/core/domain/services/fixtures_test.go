package services_test

import (
	"testing"
	"time"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)

func passwordHash(t *testing.T) kernel.PasswordHash {
	t.Helper()
	h, err := kernel.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newMember(t *testing.T, id kernel.StaffID, role staff.Role, assignment string) *staff.Staff {
	t.Helper()
	s, err := staff.NewStaff(id, "Test", "Member", role, passwordHash(t), assignment)
	require.NoError(t, err)
	return s
}

func newRepository(t *testing.T, name string) *location.Repository {
	t.Helper()
	r, err := location.NewRepository("Somewhere 1", name)
	require.NoError(t, err)
	return r
}

func newVan(t *testing.T, plate string) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(vehicle.Minivan, plate)
	require.NoError(t, err)
	return v
}

func newCustomer(t *testing.T, pref order.BillingTiming) *customer.Customer {
	t.Helper()
	home, err := location.NewDestination("5th Avenue 1")
	require.NoError(t, err)
	c, err := customer.NewCustomer("C00001", "Ada", "Byron", home, "0912 345 678", "ada@example.com", passwordHash(t), pref)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, seq int64, timing order.BillingTiming, service order.Service) *order.Order {
	t.Helper()
	id, err := kernel.NewOrderID(seq)
	require.NoError(t, err)
	origin, err := location.NewRepositoryLocation("Somewhere 1", "Repo0")
	require.NoError(t, err)
	destination, err := location.NewDestination("5th Avenue 1")
	require.NoError(t, err)
	pkg, err := order.NewPackage(order.Size{10, 10, 10}, 0.5, 10, "books", false, false)
	require.NoError(t, err)
	o, err := order.NewOrder(id, "C00001", timing, service, origin, destination, "S00001", false, pkg, now)
	require.NoError(t, err)
	return o
}
