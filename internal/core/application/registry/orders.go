// Package registry holds the process-wide order cache.
//
// Orders keeps every order touched by the process in memory and uses the
// order repository as its durable index. Mutations go through Update or Log
// and stay in the cache until Flush writes them back, so every read
// through the registry sees the latest state.
//
// Commands that write orders together with other aggregates open a Change
// on the unit of work's order repository:
//
//	change := orders.Begin(uow.OrderRepository())
//	defer change.Rollback()
//
//	o, err := change.Add(ctx, args)
//	...
//	if err := change.Save(ctx); err != nil {
//	    return err
//	}
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	change.Commit()
//
// Until Commit, Rollback puts every touched order back the way it was and
// forgets the orders the change created.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// ErrOrderBusy is returned when an open change holds the order.
var ErrOrderBusy = errs.NewStateIsInvalidError("order is being changed by another request")

// NewOrderArgs carries everything needed to build an order except its ID.
type NewOrderArgs struct {
	Payer         kernel.CustomerID
	Timing        order.BillingTiming
	Service       order.Service
	Origin        location.Location
	Destination   location.Location
	CollectorID   string
	International bool
	Package       *order.Package
	CollectedAt   time.Time
}

type Orders struct {
	mu     sync.Mutex
	repo   ports.OrderRepository
	cache  map[kernel.OrderID]*order.Order
	dirty  kernel.OrderSet
	claims map[kernel.OrderID]*Change
	next   int64
}

func NewOrders(repo ports.OrderRepository) (*Orders, error) {
	if repo == nil {
		return nil, errs.NewValueIsRequiredError("order repository")
	}
	return &Orders{
		repo:   repo,
		cache:  make(map[kernel.OrderID]*order.Order),
		dirty:  kernel.NewOrderSet(),
		claims: make(map[kernel.OrderID]*Change),
	}, nil
}

// Add builds an order with the next sequence number, stores it in the durable
// index and caches it.
func (r *Orders) Add(ctx context.Context, args NewOrderArgs) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.create(ctx, r.repo, args)
}

// Get returns the cached order or loads it from the durable index.
func (r *Orders) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.get(ctx, id)
}

// Update applies fn to the order under the registry lock. The order is marked
// for the next flush only when fn succeeds.
func (r *Orders) Update(ctx context.Context, id kernel.OrderID, fn func(o *order.Order) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimedByOther(id, nil); err != nil {
		return err
	}
	o, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if err = fn(o); err != nil {
		return err
	}
	r.dirty.Add(id)
	return nil
}

// Log appends a history entry to the order.
func (r *Orders) Log(
	ctx context.Context,
	id kernel.OrderID,
	kind order.LogKind,
	signer string,
	at time.Time,
	args order.LogArgs,
) (order.Entry, error) {
	var entry order.Entry
	err := r.Update(ctx, id, appendLog(&entry, kind, signer, at, args))
	return entry, err
}

func appendLog(
	entry *order.Entry,
	kind order.LogKind,
	signer string,
	at time.Time,
	args order.LogArgs,
) func(o *order.Order) error {
	return func(o *order.Order) error {
		var err error
		*entry, err = o.NewLog(kind, signer, at, args)
		return err
	}
}

// FilterByCustomer returns the orders paid by the customer.
func (r *Orders) FilterByCustomer(ctx context.Context, id kernel.CustomerID) ([]*order.Order, error) {
	return r.scan(ctx, func(o *order.Order) bool {
		return o.Payer() == id
	})
}

// FilterByDate returns the orders due between start and end, both days
// included.
func (r *Orders) FilterByDate(ctx context.Context, start time.Time, end time.Time) ([]*order.Order, error) {
	return r.scan(ctx, func(o *order.Order) bool {
		return DueBetween(o, start, end)
	})
}

// DueBetween reports whether the order's due date falls on a UTC calendar day
// between start and end, both included.
func DueBetween(o *order.Order, start time.Time, end time.Time) bool {
	due := calendarDay(o.DueAt())
	return !due.Before(calendarDay(start)) && !due.After(calendarDay(end))
}

// FilterDelayed returns the orders flagged delayed and the normal orders past
// their due date at now.
func (r *Orders) FilterDelayed(ctx context.Context, now time.Time) ([]*order.Order, error) {
	return r.scan(ctx, func(o *order.Order) bool {
		return o.Status() == order.Delayed || o.IsOverdue(now)
	})
}

// FilterByVehicle resolves the vehicle's cargo.
func (r *Orders) FilterByVehicle(ctx context.Context, v *vehicle.Vehicle) ([]*order.Order, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return r.resolve(ctx, v.Cargo())
}

// FilterByRepository resolves the repository's inventory.
func (r *Orders) FilterByRepository(ctx context.Context, repo *location.Repository) ([]*order.Order, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}
	return r.resolve(ctx, repo.Inventory())
}

// Flush writes every modified order back to the durable index and returns how
// many were written. Orders that fail stay marked for the next flush, and so
// do orders held by an open change.
func (r *Orders) Flush(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		flushed int
		err     error
	)
	for _, id := range r.dirty.Sorted() {
		if _, held := r.claims[id]; held {
			continue
		}
		if updateErr := r.repo.Update(ctx, r.cache[id]); updateErr != nil {
			err = errors.Join(err, fmt.Errorf("store order %s: %w", id, updateErr))
			continue
		}
		r.dirty.Remove(id)
		flushed++
	}
	return flushed, err
}

// Pending returns the number of orders waiting for a flush.
func (r *Orders) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.dirty)
}

// Busy reports whether an open change holds the order.
func (r *Orders) Busy(id kernel.OrderID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, held := r.claims[id]
	return held
}

func (r *Orders) create(ctx context.Context, repo ports.OrderRepository, args NewOrderArgs) (*order.Order, error) {
	seq, err := r.nextSequence(ctx)
	if err != nil {
		return nil, err
	}
	id, err := kernel.NewOrderID(seq)
	if err != nil {
		return nil, err
	}
	if _, exists := r.cache[id]; exists {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%s is already registered", id))
	}

	o, err := order.NewOrder(
		id,
		args.Payer,
		args.Timing,
		args.Service,
		args.Origin,
		args.Destination,
		args.CollectorID,
		args.International,
		args.Package,
		args.CollectedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, o); err != nil {
		return nil, fmt.Errorf("store order %s: %w", id, err)
	}

	r.cache[id] = o
	r.next = seq + 1
	return o, nil
}

func (r *Orders) claimedByOther(id kernel.OrderID, c *Change) error {
	if holder, held := r.claims[id]; held && holder != c {
		return fmt.Errorf("%w: %s", ErrOrderBusy, id)
	}
	return nil
}

func (r *Orders) get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if o, ok := r.cache[id]; ok {
		return o, nil
	}

	o, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache[id] = o
	return o, nil
}

func (r *Orders) scan(ctx context.Context, keep func(o *order.Order) bool) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0)
	for _, id := range ids {
		o, getErr := r.get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if keep(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *Orders) resolve(ctx context.Context, ids []kernel.OrderID) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.get(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// nextSequence continues after the highest stored identifier. Sequence
// numbers released by rolled back changes may leave gaps.
func (r *Orders) nextSequence(ctx context.Context) (int64, error) {
	if r.next > 0 {
		return r.next, nil
	}
	ids, err := r.repo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	var last int64
	for _, id := range ids {
		seq, seqErr := id.Sequence()
		if seqErr != nil {
			return 0, seqErr
		}
		last = max(last, seq)
	}
	return last + 1, nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
