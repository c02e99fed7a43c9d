package order

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// BillingTiming decides when an order's fee is invoiced.
type BillingTiming int

const (
	UnknownTiming BillingTiming = iota
	// InAdvance orders are billed and the bill issued when the order is placed.
	InAdvance
	// OnDelivery orders are billed and the bill issued when the package is delivered.
	OnDelivery
	// Monthly orders are aggregated into one bill per month.
	Monthly
)

var timingNames = map[BillingTiming]string{
	InAdvance:  "in_advance",
	OnDelivery: "on_delivery",
	Monthly:    "monthly",
}

func ParseBillingTiming(s string) (BillingTiming, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for timing, n := range timingNames {
		if n == name {
			return timing, nil
		}
	}
	return UnknownTiming, errs.NewValueIsInvalidErrorWithCause("billing timing", fmt.Errorf("%q is not a billing timing", s))
}

func (t BillingTiming) Validate() error {
	if _, ok := timingNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("billing timing", fmt.Errorf("%d is not a valid billing timing", t))
	}
	return nil
}

func (t BillingTiming) String() string {
	if n, ok := timingNames[t]; ok {
		return n
	}
	return "unknown"
}
