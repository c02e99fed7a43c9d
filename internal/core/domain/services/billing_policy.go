package services

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/order"
)

// BillingPolicy applies an order's billing timing:
//   - in advance: billed and issued when the order is placed
//   - monthly: aggregated when the order is placed, issued by IssueMonthly
//   - on delivery: billed and issued when the order is delivered
type BillingPolicy struct{}

func NewBillingPolicy() BillingPolicy {
	return BillingPolicy{}
}

// OnPlacement bills a freshly placed order. It returns the covering bill, or
// nil for orders billed on delivery.
func (p BillingPolicy) OnPlacement(c *customer.Customer, o *order.Order, now time.Time) (*bill.Bill, error) {
	switch o.BillingTiming() {
	case order.InAdvance:
		return p.billAndIssue(c, o, now)
	case order.Monthly:
		return c.BillOrder(o, now)
	case order.OnDelivery, order.UnknownTiming:
	}
	return nil, nil
}

// OnDelivery bills a delivered order whose timing is on delivery. It returns
// nil for other timings.
func (p BillingPolicy) OnDelivery(c *customer.Customer, o *order.Order, now time.Time) (*bill.Bill, error) {
	if o.BillingTiming() != order.OnDelivery || o.Status() != order.Delivered {
		return nil, nil
	}
	return p.billAndIssue(c, o, now)
}

// IssueMonthly issues every open monthly bill of the customer and returns them.
func (p BillingPolicy) IssueMonthly(c *customer.Customer, now time.Time) ([]*bill.Bill, error) {
	var (
		issued []*bill.Bill
		err    error
	)
	for _, b := range c.OpenMonthlyBills() {
		if issueErr := b.Issue(now); issueErr != nil {
			err = errors.Join(err, issueErr)
			continue
		}
		issued = append(issued, b)
	}
	return issued, err
}

func (p BillingPolicy) billAndIssue(c *customer.Customer, o *order.Order, now time.Time) (*bill.Bill, error) {
	b, err := c.BillOrder(o, now)
	if err != nil {
		return nil, err
	}
	if b.IsIssued() {
		return b, nil
	}
	if err = b.Issue(now); err != nil {
		return nil, err
	}
	return b, nil
}
