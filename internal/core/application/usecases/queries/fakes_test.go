package queries_test

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

type fakeCustomers struct {
	ports.CustomerRepository
	byID map[kernel.CustomerID]*customer.Customer
}

func (f *fakeCustomers) Get(_ context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id)
	}
	return c, nil
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*customer.Customer, error) {
	for _, c := range f.byID {
		if strings.EqualFold(c.Email(), email) {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("customer", email)
}

type fakeStaff struct {
	ports.StaffRepository
	byID map[kernel.StaffID]*staff.Staff
}

func (f *fakeStaff) Get(_ context.Context, id kernel.StaffID) (*staff.Staff, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("staff", id)
	}
	return s, nil
}

type fakeFleet struct {
	ports.FleetRepository
	vehicles     map[string]*vehicle.Vehicle
	repositories map[string]*location.Repository
}

func (f *fakeFleet) GetVehicle(_ context.Context, plate string) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[plate]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vehicle", plate)
	}
	return v, nil
}

func (f *fakeFleet) GetRepository(_ context.Context, name string) (*location.Repository, error) {
	r, ok := f.repositories[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("repository", name)
	}
	return r, nil
}

type memoryOrders struct {
	stored map[kernel.OrderID]*order.Order
}

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.stored[o.ID()] = o
	return nil
}

func (m *memoryOrders) Update(_ context.Context, o *order.Order) error {
	m.stored[o.ID()] = o
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	o, ok := m.stored[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

func (m *memoryOrders) ListIDs(_ context.Context) ([]kernel.OrderID, error) {
	ids := make([]kernel.OrderID, 0, len(m.stored))
	for id := range m.stored {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *memoryOrders) Count(_ context.Context) (int64, error) {
	return int64(len(m.stored)), nil
}

type securityEntry struct {
	event   ports.SecurityEvent
	subject string
}

type fakeSecurityLog struct {
	entries []securityEntry
}

func (f *fakeSecurityLog) Record(event ports.SecurityEvent, subject string, _ string) {
	f.entries = append(f.entries, securityEntry{event: event, subject: subject})
}

// fixture holds customers C00001 and C00002, staff S00001 (management) and
// S00002 (customer service), VAN-1 and Repo0, and no orders.
type fixture struct {
	customers *fakeCustomers
	staff     *fakeStaff
	fleet     *fakeFleet
	orders    *registry.Orders
	log       *fakeSecurityLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		customers: &fakeCustomers{byID: map[kernel.CustomerID]*customer.Customer{}},
		staff:     &fakeStaff{byID: map[kernel.StaffID]*staff.Staff{}},
		fleet: &fakeFleet{
			vehicles:     map[string]*vehicle.Vehicle{},
			repositories: map[string]*location.Repository{},
		},
		log: &fakeSecurityLog{},
	}

	var err error
	f.orders, err = registry.NewOrders(&memoryOrders{stored: map[kernel.OrderID]*order.Order{}})
	require.NoError(t, err)

	hash, err := kernel.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	for i, email := range []string{"ada@example.com", "bob@example.com"} {
		id, idErr := kernel.NewCustomerID(i + 1)
		require.NoError(t, idErr)
		home, locErr := location.NewDestination("Main St " + id.Digits())
		require.NoError(t, locErr)
		c, newErr := customer.NewCustomer(id, "Cust", "Omer", home, "0912 345 678", email, hash, order.InAdvance)
		require.NoError(t, newErr)
		f.customers.byID[id] = c
	}

	boss, err := staff.NewStaff("S00001", "Mia", "Park", staff.Management, hash, "")
	require.NoError(t, err)
	desk, err := staff.NewStaff("S00002", "Cal", "Reyes", staff.CustomerService, hash, "")
	require.NoError(t, err)
	f.staff.byID[boss.ID()] = boss
	f.staff.byID[desk.ID()] = desk

	van, err := vehicle.NewVehicle(vehicle.Minivan, "VAN-1")
	require.NoError(t, err)
	f.fleet.vehicles[van.Plate()] = van
	repo, err := location.NewRepository("Harbour Rd 3", "Repo0")
	require.NoError(t, err)
	f.fleet.repositories[repo.Name()] = repo

	return f
}

// addOrder registers an order through the registry; service fixes the due date.
func (f *fixture) addOrder(t *testing.T, payer kernel.CustomerID, service order.Service, collectedAt time.Time) *order.Order {
	t.Helper()

	origin, err := location.NewRepositoryLocation("Harbour Rd 3", "Repo0")
	require.NoError(t, err)
	destination, err := location.NewDestination("Elm St 5")
	require.NoError(t, err)
	pkg, err := order.NewPackage(order.Size{10, 10, 10}, 0.5, 10, "mugs", false, true)
	require.NoError(t, err)

	o, err := f.orders.Add(t.Context(), registry.NewOrderArgs{
		Payer:       payer,
		Timing:      order.InAdvance,
		Service:     service,
		Origin:      origin,
		Destination: destination,
		CollectorID: "S00003",
		Package:     pkg,
		CollectedAt: collectedAt,
	})
	require.NoError(t, err)
	return o
}
