package commands

import (
	"context"

	"parcel/internal/core/application/registry"
)

type FlushOrdersCommandHandler struct {
	orders *registry.Orders
}

func NewFlushOrdersCommandHandler(orders *registry.Orders) FlushOrdersCommandHandler {
	return FlushOrdersCommandHandler{orders: orders}
}

// Handle returns the number of orders written.
func (h FlushOrdersCommandHandler) Handle(ctx context.Context, cmd FlushOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.orders.Flush(ctx)
}
