package commands

import (
	"context"
	"errors"

	"parcel/internal/core/application/registry"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/services"
)

// FlagDelayedOrdersCommandHandler logs a delay on overdue orders. The changes
// stay in the registry until the next flush.
type FlagDelayedOrdersCommandHandler struct {
	orders  *registry.Orders
	tracker services.DeliveryTracker
}

func NewFlagDelayedOrdersCommandHandler(
	orders *registry.Orders,
	tracker services.DeliveryTracker,
) FlagDelayedOrdersCommandHandler {
	return FlagDelayedOrdersCommandHandler{
		orders:  orders,
		tracker: tracker,
	}
}

// Handle returns the number of orders flagged. Orders that fail are skipped
// and reported in the joined error. Orders held by a running command are left
// for the next run.
func (h FlagDelayedOrdersCommandHandler) Handle(ctx context.Context, cmd FlagDelayedOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.orders.FilterDelayed(ctx, cmd.At())
	if err != nil {
		return 0, err
	}

	var (
		flagged int
		errList []error
	)
	for _, candidate := range candidates {
		if candidate.Status() != order.Normal {
			continue
		}
		updateErr := h.orders.Update(ctx, candidate.ID(), func(o *order.Order) error {
			ok, flagErr := h.tracker.FlagDelayed(o, cmd.At())
			if ok {
				flagged++
			}
			return flagErr
		})
		if errors.Is(updateErr, registry.ErrOrderBusy) {
			continue
		}
		errList = append(errList, updateErr)
	}

	return flagged, errors.Join(errList...)
}
