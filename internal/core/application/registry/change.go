package registry

import (
	"context"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// Change collects the order writes of one command. Orders are created and
// saved through the repository handed to Begin, normally bound to the
// command's transaction, and every order the change touches is held until
// Commit or Rollback. Other changes and plain Update calls on a held order
// fail with ErrOrderBusy.
//
// A Change is not safe for concurrent use.
type Change struct {
	r       *Orders
	repo    ports.OrderRepository
	created kernel.OrderSet
	before  map[kernel.OrderID]snapshot
	done    bool
}

type snapshot struct {
	state order.State
	dirty bool
}

// Begin opens a change that writes through repo.
func (r *Orders) Begin(repo ports.OrderRepository) *Change {
	return &Change{
		r:       r,
		repo:    repo,
		created: kernel.NewOrderSet(),
		before:  make(map[kernel.OrderID]snapshot),
	}
}

// Add builds an order with the next sequence number and inserts it through
// the change's repository.
func (c *Change) Add(ctx context.Context, args NewOrderArgs) (*order.Order, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if err := c.open(); err != nil {
		return nil, err
	}
	o, err := c.r.create(ctx, c.repo, args)
	if err != nil {
		return nil, err
	}
	c.created.Add(o.ID())
	c.r.claims[o.ID()] = c
	return o, nil
}

// Update applies fn to the order. The state before the first mutation is
// kept for Rollback.
func (c *Change) Update(ctx context.Context, id kernel.OrderID, fn func(o *order.Order) error) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	if err := c.r.claimedByOther(id, c); err != nil {
		return err
	}
	o, err := c.r.get(ctx, id)
	if err != nil {
		return err
	}
	c.hold(o)
	return fn(o)
}

// Log appends a history entry to the order.
func (c *Change) Log(
	ctx context.Context,
	id kernel.OrderID,
	kind order.LogKind,
	signer string,
	at time.Time,
	args order.LogArgs,
) (order.Entry, error) {
	var entry order.Entry
	err := c.Update(ctx, id, appendLog(&entry, kind, signer, at, args))
	return entry, err
}

// Save writes every order the change touched through the change's
// repository. Call it before committing the transaction.
func (c *Change) Save(ctx context.Context) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if err := c.open(); err != nil {
		return err
	}
	for _, id := range c.touched() {
		if err := c.repo.Update(ctx, c.r.cache[id]); err != nil {
			return fmt.Errorf("store order %s: %w", id, err)
		}
	}
	return nil
}

// Commit releases the held orders once the transaction has committed. Saved
// orders no longer wait for a flush.
func (c *Change) Commit() {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if c.done {
		return
	}
	for _, id := range c.touched() {
		c.r.dirty.Remove(id)
		delete(c.r.claims, id)
	}
	c.done = true
}

// Rollback restores every touched order, forgets the orders the change
// created and releases them all. It does nothing after Commit, so it can be
// deferred.
func (c *Change) Rollback() {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if c.done {
		return
	}
	for id, s := range c.before {
		restored, err := order.RestoreOrder(s.state)
		if err != nil {
			// the next read reloads it from the durable index
			delete(c.r.cache, id)
			c.r.dirty.Remove(id)
		} else {
			c.r.cache[id] = restored
			if !s.dirty {
				c.r.dirty.Remove(id)
			}
		}
		delete(c.r.claims, id)
	}
	for id := range c.created {
		delete(c.r.cache, id)
		c.r.dirty.Remove(id)
		delete(c.r.claims, id)
		if seq, err := id.Sequence(); err == nil && seq == c.r.next-1 {
			c.r.next = seq
		}
	}
	c.done = true
}

func (c *Change) open() error {
	if c.done {
		return errs.NewStateIsInvalidError("order change is already closed")
	}
	return nil
}

func (c *Change) hold(o *order.Order) {
	id := o.ID()
	if c.created.Has(id) {
		return
	}
	if _, held := c.before[id]; held {
		return
	}
	c.before[id] = snapshot{state: o.State(), dirty: c.r.dirty.Has(id)}
	c.r.claims[id] = c
}

func (c *Change) touched() []kernel.OrderID {
	ids := c.created.Clone()
	for id := range c.before {
		ids.Add(id)
	}
	return ids.Sorted()
}
