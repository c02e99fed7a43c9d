package commands_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCost = bcrypt.MinCost

var now = time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC)

// undoLog reverts the fakes' writes when a transaction rolls back.
type undoLog struct {
	steps []func()
}

func (l *undoLog) record(step func()) {
	if l != nil {
		l.steps = append(l.steps, step)
	}
}

func (l *undoLog) forget() {
	l.steps = nil
}

func (l *undoLog) revert() {
	for i := len(l.steps) - 1; i >= 0; i-- {
		l.steps[i]()
	}
	l.steps = nil
}

// MockUoW controls the transaction; repositories are in-memory fakes that
// hand out copies and undo their writes on rollback.
type MockUoW struct {
	mock.Mock

	customers *fakeCustomers
	staff     *fakeStaff
	fleet     *fakeFleet
	orders    *fakeOrders
	undo      *undoLog
}

func (m *MockUoW) Begin(ctx context.Context) error {
	m.undo.forget()
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	m.undo.forget()
	return nil
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	m.undo.revert()
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository { return m.customers }
func (m *MockUoW) StaffRepository() ports.StaffRepository       { return m.staff }
func (m *MockUoW) FleetRepository() ports.FleetRepository       { return m.fleet }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return &txOrders{fakeOrders: m.orders, undo: m.undo}
}

// expectCommit sets up a transaction that begins, commits and is rolled back
// by the deferred cleanup.
func (m *MockUoW) expectCommit(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Maybe()
}

// expectAbort sets up a transaction that must not commit.
func (m *MockUoW) expectAbort(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

// expectFailedCommit sets up a transaction whose commit fails.
func (m *MockUoW) expectFailedCommit(ctx context.Context, err error) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(err).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type customerUoWFactory struct{ uow *MockUoW }

func (f customerUoWFactory) Create() commands.CustomerUoW { return f.uow }

type staffUoWFactory struct{ uow *MockUoW }

func (f staffUoWFactory) Create() commands.StaffUoW { return f.uow }

type fakeCustomers struct {
	byID      map[kernel.CustomerID]*customer.Customer
	updateErr error
	undo      *undoLog
}

func (f *fakeCustomers) Add(_ context.Context, c *customer.Customer) error {
	if _, ok := f.byID[c.ID()]; ok {
		return errors.New("duplicate customer")
	}
	return f.put(c)
}

func (f *fakeCustomers) Update(_ context.Context, c *customer.Customer) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.put(c)
}

func (f *fakeCustomers) Get(_ context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id)
	}
	return customer.RestoreCustomer(c.State())
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*customer.Customer, error) {
	for _, c := range f.byID {
		if strings.EqualFold(c.Email(), email) {
			return customer.RestoreCustomer(c.State())
		}
	}
	return nil, errs.NewObjectNotFoundError("customer", email)
}

func (f *fakeCustomers) ListWithOpenMonthlyBills(_ context.Context) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range f.byID {
		if len(c.OpenMonthlyBills()) > 0 {
			clone, err := customer.RestoreCustomer(c.State())
			if err != nil {
				return nil, err
			}
			out = append(out, clone)
		}
	}
	return out, nil
}

func (f *fakeCustomers) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeCustomers) put(c *customer.Customer) error {
	stored, err := customer.RestoreCustomer(c.State())
	if err != nil {
		return err
	}
	id := c.ID()
	prev, had := f.byID[id]
	f.byID[id] = stored
	f.undo.record(func() {
		if had {
			f.byID[id] = prev
		} else {
			delete(f.byID, id)
		}
	})
	return nil
}

type fakeStaff struct {
	byID map[kernel.StaffID]*staff.Staff
}

func (f *fakeStaff) Add(_ context.Context, s *staff.Staff) error {
	f.byID[s.ID()] = s
	return nil
}

func (f *fakeStaff) Get(_ context.Context, id kernel.StaffID) (*staff.Staff, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("staff", id)
	}
	return s, nil
}

func (f *fakeStaff) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeFleet struct {
	vehicles     map[string]*vehicle.Vehicle
	repositories map[string]*location.Repository
	updateErr    error
	undo         *undoLog
}

func (f *fakeFleet) AddVehicle(_ context.Context, v *vehicle.Vehicle) error {
	if _, ok := f.vehicles[v.Plate()]; ok {
		return errs.NewValueIsInvalidError("license plate")
	}
	return f.putVehicle(v)
}

func (f *fakeFleet) UpdateVehicle(_ context.Context, v *vehicle.Vehicle) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.putVehicle(v)
}

func (f *fakeFleet) GetVehicle(_ context.Context, plate string) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[plate]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vehicle", plate)
	}
	return vehicle.RestoreVehicle(v.Kind(), v.Plate(), v.Cargo())
}

func (f *fakeFleet) AddRepository(_ context.Context, r *location.Repository) error {
	if _, ok := f.repositories[r.Name()]; ok {
		return errs.NewValueIsInvalidError("repository name")
	}
	return f.putRepository(r)
}

func (f *fakeFleet) UpdateRepository(_ context.Context, r *location.Repository) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.putRepository(r)
}

func (f *fakeFleet) GetRepository(_ context.Context, name string) (*location.Repository, error) {
	r, ok := f.repositories[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("repository", name)
	}
	return location.RestoreRepository(r.Address(), r.Name(), r.Inventory())
}

func (f *fakeFleet) putVehicle(v *vehicle.Vehicle) error {
	stored, err := vehicle.RestoreVehicle(v.Kind(), v.Plate(), v.Cargo())
	if err != nil {
		return err
	}
	plate := v.Plate()
	prev, had := f.vehicles[plate]
	f.vehicles[plate] = stored
	f.undo.record(func() {
		if had {
			f.vehicles[plate] = prev
		} else {
			delete(f.vehicles, plate)
		}
	})
	return nil
}

func (f *fakeFleet) putRepository(r *location.Repository) error {
	stored, err := location.RestoreRepository(r.Address(), r.Name(), r.Inventory())
	if err != nil {
		return err
	}
	name := r.Name()
	prev, had := f.repositories[name]
	f.repositories[name] = stored
	f.undo.record(func() {
		if had {
			f.repositories[name] = prev
		} else {
			delete(f.repositories, name)
		}
	})
	return nil
}

// fakeOrders is the durable order index. It keeps copies, so the registry's
// cached orders never alias stored rows.
type fakeOrders struct {
	mu        sync.Mutex
	stored    map[kernel.OrderID]*order.Order
	writes    int
	updateErr error
}

func (f *fakeOrders) Add(_ context.Context, o *order.Order) error {
	return f.write(o, nil)
}

func (f *fakeOrders) Update(_ context.Context, o *order.Order) error {
	return f.write(o, nil)
}

func (f *fakeOrders) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.stored[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(o.State())
}

func (f *fakeOrders) ListIDs(_ context.Context) ([]kernel.OrderID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]kernel.OrderID, 0, len(f.stored))
	for id := range f.stored {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (f *fakeOrders) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.stored)), nil
}

func (f *fakeOrders) write(o *order.Order, undo *undoLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, err := order.RestoreOrder(o.State())
	if err != nil {
		return err
	}
	id := o.ID()
	prev, had := f.stored[id]
	f.stored[id] = stored
	f.writes++
	undo.record(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if had {
			f.stored[id] = prev
		} else {
			delete(f.stored, id)
		}
	})
	return nil
}

// txOrders writes through to the index and undoes the writes on rollback.
type txOrders struct {
	*fakeOrders
	undo *undoLog
}

func (f *txOrders) Add(_ context.Context, o *order.Order) error {
	return f.write(o, f.undo)
}

func (f *txOrders) Update(_ context.Context, o *order.Order) error {
	return f.write(o, f.undo)
}

type securityEntry struct {
	event   ports.SecurityEvent
	subject string
	detail  string
}

type fakeSecurityLog struct {
	entries []securityEntry
}

func (f *fakeSecurityLog) Record(event ports.SecurityEvent, subject string, detail string) {
	f.entries = append(f.entries, securityEntry{event: event, subject: subject, detail: detail})
}

func (f *fakeSecurityLog) events() []ports.SecurityEvent {
	out := make([]ports.SecurityEvent, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.event)
	}
	return out
}

type MockVerifier struct{ mock.Mock }

func (m *MockVerifier) Verify(ctx context.Context, transactionID string, amount float64) (bool, error) {
	args := m.Called(ctx, transactionID, amount)
	return args.Bool(0), args.Error(1)
}

// world is a small delivery network:
//   - S00001 management, S00002 clerk at Repo0, S00003 driver of VAN-1
//   - customers C00001 (in advance), C00002 (monthly), C00003 (on delivery)
type world struct {
	uow       *MockUoW
	customers *fakeCustomers
	staff     *fakeStaff
	fleet     *fakeFleet
	stored    *fakeOrders
	orders    *registry.Orders
	log       *fakeSecurityLog
}

func newWorld(t *testing.T) *world {
	t.Helper()

	undo := &undoLog{}
	w := &world{
		customers: &fakeCustomers{byID: map[kernel.CustomerID]*customer.Customer{}, undo: undo},
		staff:     &fakeStaff{byID: map[kernel.StaffID]*staff.Staff{}},
		fleet: &fakeFleet{
			vehicles:     map[string]*vehicle.Vehicle{},
			repositories: map[string]*location.Repository{},
			undo:         undo,
		},
		stored: &fakeOrders{stored: map[kernel.OrderID]*order.Order{}},
		log:    &fakeSecurityLog{},
	}
	w.uow = &MockUoW{customers: w.customers, staff: w.staff, fleet: w.fleet, orders: w.stored, undo: undo}

	var err error
	w.orders, err = registry.NewOrders(w.stored)
	require.NoError(t, err)

	hub, err := location.NewRepository("Harbour Rd 3", "Repo0")
	require.NoError(t, err)
	w.fleet.repositories[hub.Name()] = hub
	depot, err := location.NewRepository("Depot Ln 9", "Repo1")
	require.NoError(t, err)
	w.fleet.repositories[depot.Name()] = depot
	van, err := vehicle.NewVehicle(vehicle.Minivan, "VAN-1")
	require.NoError(t, err)
	w.fleet.vehicles[van.Plate()] = van

	w.addStaff(t, "S00001", staff.Management, "")
	w.addStaff(t, "S00002", staff.RepoStaff, "Repo0")
	w.addStaff(t, "S00003", staff.Driver, "VAN-1")

	w.addCustomer(t, "C00001", "ada@example.com", order.InAdvance)
	w.addCustomer(t, "C00002", "bob@example.com", order.Monthly)
	w.addCustomer(t, "C00003", "cy@example.com", order.OnDelivery)

	return w
}

func hash(t *testing.T, plain string) kernel.PasswordHash {
	t.Helper()
	h, err := kernel.HashPassword(plain, testCost)
	require.NoError(t, err)
	return h
}

func (w *world) addStaff(t *testing.T, id kernel.StaffID, role staff.Role, assignment string) {
	t.Helper()
	s, err := staff.NewStaff(id, "Staff", string(id), role, hash(t, "pw"), assignment)
	require.NoError(t, err)
	w.staff.byID[id] = s
}

func (w *world) addCustomer(t *testing.T, id kernel.CustomerID, email string, pref order.BillingTiming) {
	t.Helper()
	home, err := location.NewDestination("Main St " + id.Digits())
	require.NoError(t, err)
	c, err := customer.NewCustomer(id, "Cust", "Omer", home, "0912 345 678", email, hash(t, "secret"), pref)
	require.NoError(t, err)
	w.customers.byID[id] = c
}

// placeOrder places a small standard parcel for the customer through the
// handler and returns its ID.
func (w *world) placeOrder(t *testing.T, customerID kernel.CustomerID) commands.PlaceOrderResult {
	t.Helper()
	ctx := t.Context()

	cmd, err := commands.NewPlaceOrderCommand(customerID, "S00002", "Repo0", "Elm St 5",
		order.Standard, false, commands.PackageDetails{Size: order.Size{10, 10, 10}, Weight: 1.5, Value: 20},
		now)
	require.NoError(t, err)

	w.uow.expectCommit(ctx)
	h := commands.NewPlaceOrderCommandHandler(uowFactory{w.uow}, w.orders, services.NewBillingPolicy())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	return result
}
