package queries

import (
	"context"
	"time"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/ports"
)

type FilterOrdersQueryHandler struct {
	staff  ports.StaffRepository
	orders *registry.Orders
}

func NewFilterOrdersQueryHandler(staff ports.StaffRepository, orders *registry.Orders) FilterOrdersQueryHandler {
	return FilterOrdersQueryHandler{
		staff:  staff,
		orders: orders,
	}
}

// Handle returns the matching orders sorted by ID.
func (h FilterOrdersQueryHandler) Handle(ctx context.Context, query FilterOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	member, err := h.staff.Get(ctx, query.StaffID())
	if err != nil {
		return nil, err
	}
	if err = member.Authorize(staff.FilterOrders); err != nil {
		return nil, err
	}

	f := query.Filter()
	var found []*order.Order
	switch {
	case f.Customer != "":
		found, err = h.orders.FilterByCustomer(ctx, f.Customer)
	case f.Delayed:
		found, err = h.orders.FilterDelayed(ctx, query.At())
	default:
		found, err = h.orders.FilterByDate(ctx, startOf(f), endOf(f))
	}
	if err != nil {
		return nil, err
	}

	found = dueWithin(found, f.From, f.To)
	if f.Delayed {
		found = delayedAt(found, query)
	}
	return toSummaries(found), nil
}

func startOf(f OrderFilter) time.Time {
	if f.From != nil {
		return *f.From
	}
	return time.Time{}
}

func endOf(f OrderFilter) time.Time {
	if f.To != nil {
		return *f.To
	}
	return farFuture
}

func delayedAt(orders []*order.Order, query FilterOrdersQuery) []*order.Order {
	kept := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() == order.Delayed || o.IsOverdue(query.At()) {
			kept = append(kept, o)
		}
	}
	return kept
}
