// Package queries contains the read operations of the service.
// Handlers read through the order registry and the repositories so that
// orders still waiting in the registry cache are returned in their latest
// state.
package queries

import (
	"time"

	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
)

// OrderSummary is the list form of an order.
type OrderSummary struct {
	ID          kernel.OrderID
	Payer       kernel.CustomerID
	Service     string
	Status      string
	Fee         float64
	CollectedAt time.Time
	DueAt       time.Time
	Origin      string
	Destination string
	BillID      *kernel.BillID
	LastEvent   string
}

// OrderDetails adds the package and the rendered history to OrderSummary.
type OrderDetails struct {
	OrderSummary

	BillingTiming string
	International bool
	Package       order.PackageSnapshot
	History       []string
}

// CustomerView is a customer without credentials.
type CustomerView struct {
	ID                kernel.CustomerID
	FirstName         string
	LastName          string
	Address           string
	Phone             string
	Email             string
	BillingPreference string
	BillCount         int
}

func toSummary(o *order.Order) OrderSummary {
	s := OrderSummary{
		ID:          o.ID(),
		Payer:       o.Payer(),
		Service:     o.Service().String(),
		Status:      o.Status().String(),
		Fee:         o.Fee(),
		CollectedAt: o.CollectedAt(),
		DueAt:       o.DueAt(),
		Origin:      o.Origin().String(),
		Destination: o.Destination().String(),
		LastEvent:   o.LastLog().Summarize(),
	}
	if id, ok := o.BillID(); ok {
		s.BillID = &id
	}
	return s
}

func toSummaries(orders []*order.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, toSummary(o))
	}
	return out
}

func toDetails(o *order.Order) OrderDetails {
	logs := o.AllLogs()
	history := make([]string, 0, len(logs))
	for _, e := range logs {
		history = append(history, e.String())
	}

	return OrderDetails{
		OrderSummary:  toSummary(o),
		BillingTiming: o.BillingTiming().String(),
		International: o.IsInternational(),
		Package:       o.Package().Snapshot(),
		History:       history,
	}
}

func toCustomerView(c *customer.Customer) CustomerView {
	return CustomerView{
		ID:                c.ID(),
		FirstName:         c.FirstName(),
		LastName:          c.LastName(),
		Address:           c.Address().Address(),
		Phone:             c.Phone(),
		Email:             c.Email(),
		BillingPreference: c.BillingPreference().String(),
		BillCount:         c.BillCount(),
	}
}
