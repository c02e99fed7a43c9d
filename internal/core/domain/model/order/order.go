package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// LogKind selects the history entry NewLog appends. Kinds are single letters
// and are matched case-insensitively; any letter not listed below logs an
// Other entry without touching the status.
type LogKind string

const (
	LogArrival LogKind = "A"
	LogTransit LogKind = "T"
	LogBroken  LogKind = "C"
	LogMissing LogKind = "M"
	LogDelayed LogKind = "D"
)

// LogArgs carries the variant-specific fields of a history entry.
//
//   - Arrival uses Destination as the location arrived at
//   - Transit uses Vehicle, Origin and Destination
//   - every other kind uses Summary and the optional Detail
type LogArgs struct {
	Vehicle     vehicle.Carrier
	Origin      location.Location
	Destination location.Location
	Summary     string
	Detail      string
}

// Order represents a customer's shipment. It is the aggregate root that owns the
// package and the delivery history, and knows its fee and its bill.
//
// Order follows these invariants:
//   - The due date is the collection date plus the service's day offset
//   - The fee is computed once, on first access, and then memoised
//   - The bill reference is written at most once
//   - The history is append-only and starts with an arrival at the origin
//   - The status changes only through NewLog
type Order struct {
	id            kernel.OrderID
	payer         kernel.CustomerID
	timing        BillingTiming
	service       Service
	collectedAt   time.Time
	dueAt         time.Time
	origin        location.Location
	destination   location.Location
	international bool
	pkg           *Package

	// fee is nil until first computed
	fee    *float64
	billID *kernel.BillID
	status Status
	log    []Entry

	guard guard.ConstructorGuard
}

// State carries every field of an Order, for persistence adapters.
type State struct {
	ID            kernel.OrderID
	Payer         kernel.CustomerID
	Timing        BillingTiming
	Service       Service
	CollectedAt   time.Time
	DueAt         time.Time
	Origin        location.Location
	Destination   location.Location
	International bool
	Package       PackageSnapshot
	Fee           *float64
	BillID        *kernel.BillID
	Status        Status
	Log           []Entry
}

// NewOrder creates an order for a package handed over to a collector.
//
// Parameters:
//   - id: identifier allocated by the order registry
//   - payer: customer who pays for the order
//   - timing: when the fee is invoiced
//   - service: delivery speed, which fixes the due date
//   - origin, destination: route of the package
//   - collectorID: signature of whoever collected the package
//   - international: cross-border shipment flag
//   - pkg: the package, owned by the order from now on
//   - collectedAt: collection time
//
// Returns:
//   - *Order: the order in Normal status with an arrival at origin in its history
//   - error: joined validation errors
//
// Example:
//
//	pkg, _ := order.NewPackage(order.Size{10, 10, 10}, 0.5, 100, "books", false, false)
//	o, err := order.NewOrder(id, "C00001", order.InAdvance, order.Standard,
//	    origin, destination, "S00001", false, pkg, time.Now())
func NewOrder(
	id kernel.OrderID,
	payer kernel.CustomerID,
	timing BillingTiming,
	service Service,
	origin location.Location,
	destination location.Location,
	collectorID string,
	international bool,
	pkg *Package,
	collectedAt time.Time,
) (*Order, error) {
	o := &Order{
		international: international,
		status:        Normal,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPayer(payer),
		o.setTiming(timing),
		o.setService(service),
		o.setRoute(origin, destination),
		o.setPackage(pkg),
		o.setCollectedAt(collectedAt),
	); err != nil {
		return nil, err
	}

	first, err := NewArrival(collectorID, origin, collectedAt)
	if err != nil {
		return nil, err
	}
	o.log = []Entry{first}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recomputing the due
// date or the fee.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		international: s.International,
		dueAt:         s.DueAt,
		guard:         guard.NewConstructorGuard(),
	}

	pkg, pkgErr := RestorePackage(s.Package)

	var logErr error
	if len(s.Log) == 0 {
		logErr = errs.NewValueIsRequiredError("order history")
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setPayer(s.Payer),
		o.setTiming(s.Timing),
		o.setService(s.Service),
		o.setRoute(s.Origin, s.Destination),
		pkgErr,
		s.Status.Validate(),
		logErr,
	); err != nil {
		return nil, err
	}
	if s.CollectedAt.IsZero() || s.DueAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("collection and due dates")
	}
	if s.BillID != nil {
		if err := s.BillID.Validate(); err != nil {
			return nil, err
		}
		billID := *s.BillID
		o.billID = &billID
	}
	if s.Fee != nil {
		fee := *s.Fee
		o.fee = &fee
	}

	o.collectedAt = s.CollectedAt
	o.pkg = pkg
	o.status = s.Status
	o.log = append([]Entry(nil), s.Log...)

	return o, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Payer returns the customer who pays for the order.
func (o *Order) Payer() kernel.CustomerID {
	return o.payer
}

func (o *Order) BillingTiming() BillingTiming {
	return o.timing
}

func (o *Order) Service() Service {
	return o.service
}

func (o *Order) CollectedAt() time.Time {
	return o.collectedAt
}

func (o *Order) DueAt() time.Time {
	return o.dueAt
}

func (o *Order) Origin() location.Location {
	return o.origin
}

func (o *Order) Destination() location.Location {
	return o.destination
}

func (o *Order) IsInternational() bool {
	return o.international
}

// Package returns the owned package. Description changes made through it do
// not affect an already computed fee.
func (o *Order) Package() *Package {
	return o.pkg
}

// SizeClass classifies the package by the sum of its dimensions. NewPackage
// and RestorePackage reject sizes without a class, so the error is dropped.
func (o *Order) SizeClass() SizeClass {
	c, _ := ClassifySize(o.pkg.Size().Index())
	return c
}

// WeightClass classifies the package by weight. NewPackage and
// RestorePackage reject weights without a class, so the error is dropped.
func (o *Order) WeightClass() WeightClass {
	c, _ := ClassifyWeight(o.pkg.Weight())
	return c
}

// Fee returns the order's fee, computing it on the first call.
// Later calls return the memoised value.
func (o *Order) Fee() float64 {
	if o.fee == nil {
		fee := CalculateFee(o.service, o.origin, o.destination, o.pkg)
		o.fee = &fee
	}
	return *o.fee
}

// BillID returns the bill covering the order, if any.
func (o *Order) BillID() (kernel.BillID, bool) {
	if o.billID == nil {
		return "", false
	}
	return *o.billID, true
}

// IsBilled reports whether a bill already covers the order.
func (o *Order) IsBilled() bool {
	return o.billID != nil
}

// AttachBill records the bill covering the order.
//
// Returns:
//   - nil on success or when the same bill is attached again
//   - StateIsInvalidError if a different bill already covers the order
//   - validation error if billID is malformed
func (o *Order) AttachBill(billID kernel.BillID) error {
	if err := billID.Validate(); err != nil {
		return err
	}
	if o.billID != nil {
		if *o.billID == billID {
			return nil
		}
		return errs.NewStateIsInvalidErrorWithCause("order bill",
			fmt.Errorf("order %s is already covered by bill %s", o.id, *o.billID))
	}
	o.billID = &billID
	return nil
}

func (o *Order) Status() Status {
	return o.status
}

// IsOverdue reports whether an order in Normal status is past its due date at now.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.status == Normal && now.After(o.dueAt)
}

// NewLog appends a history entry and updates the status accordingly.
//
// Kinds:
//   - A: arrival at args.Destination; sets Delivered when it is a destination
//     rather than a repository
//   - T: transit on args.Vehicle from args.Origin to args.Destination
//   - C, M, D: set Broken, Missing or Delayed, then log an Other entry
//   - anything else: log an Other entry
//
// Parameters:
//   - kind: log kind letter, case-insensitive
//   - signer: signature of the reporter
//   - at: time the event is recorded
//   - args: variant fields
//
// Returns:
//   - the appended entry
//   - validation error if args do not fit the kind; the order is unchanged
//
// Example:
//
//	_, err := o.NewLog(order.LogBroken, "S00002", now, order.LogArgs{
//	    Summary: "Accident",
//	    Detail:  "The package fell on the ground and broke.",
//	})
func (o *Order) NewLog(kind LogKind, signer string, at time.Time, args LogArgs) (Entry, error) {
	var (
		entry  Entry
		err    error
		status = o.status
	)

	switch LogKind(strings.ToUpper(strings.TrimSpace(string(kind)))) {
	case LogArrival:
		entry, err = NewArrival(signer, args.Destination, at)
		if args.Destination.IsDestination() {
			status = Delivered
		}
	case LogTransit:
		entry, err = NewTransit(signer, args.Vehicle, args.Origin, args.Destination, at)
	case LogBroken:
		status = Broken
		entry, err = NewOther(signer, args.Summary, args.Detail, at)
	case LogMissing:
		status = Missing
		entry, err = NewOther(signer, args.Summary, args.Detail, at)
	case LogDelayed:
		status = Delayed
		entry, err = NewOther(signer, args.Summary, args.Detail, at)
	default:
		entry, err = NewOther(signer, args.Summary, args.Detail, at)
	}
	if err != nil {
		return Entry{}, err
	}

	o.status = status
	o.log = append(o.log, entry)
	return entry, nil
}

// LastLog returns the most recent history entry.
func (o *Order) LastLog() Entry {
	return o.log[len(o.log)-1]
}

// EarlierLogs returns up to step most recent entries, oldest first. A step
// of 0 returns the whole history and a negative step returns nothing.
func (o *Order) EarlierLogs(step int) []Entry {
	if step < 0 {
		return []Entry{}
	}
	if step == 0 || step > len(o.log) {
		step = len(o.log)
	}
	return append([]Entry(nil), o.log[len(o.log)-step:]...)
}

// AllLogs returns a copy of the whole history, oldest first.
func (o *Order) AllLogs() []Entry {
	return append([]Entry(nil), o.log...)
}

// State exposes every field of the order for persistence adapters.
func (o *Order) State() State {
	s := State{
		ID:            o.id,
		Payer:         o.payer,
		Timing:        o.timing,
		Service:       o.service,
		CollectedAt:   o.collectedAt,
		DueAt:         o.dueAt,
		Origin:        o.origin,
		Destination:   o.destination,
		International: o.international,
		Package:       o.pkg.Snapshot(),
		Status:        o.status,
		Log:           o.AllLogs(),
	}
	if o.fee != nil {
		fee := *o.fee
		s.Fee = &fee
	}
	if o.billID != nil {
		billID := *o.billID
		s.BillID = &billID
	}
	return s
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPayer(payer kernel.CustomerID) error {
	if err := payer.Validate(); err != nil {
		return err
	}
	o.payer = payer
	return nil
}

func (o *Order) setTiming(timing BillingTiming) error {
	if err := timing.Validate(); err != nil {
		return err
	}
	o.timing = timing
	return nil
}

func (o *Order) setService(service Service) error {
	if err := service.Validate(); err != nil {
		return err
	}
	o.service = service
	return nil
}

func (o *Order) setRoute(origin location.Location, destination location.Location) error {
	if err := errors.Join(origin.Validate(), destination.Validate()); err != nil {
		return err
	}
	o.origin = origin
	o.destination = destination
	return nil
}

func (o *Order) setPackage(pkg *Package) error {
	if pkg == nil {
		return errs.NewValueIsRequiredError("package")
	}
	o.pkg = pkg
	return nil
}

// setCollectedAt also fixes the due date, so setService must run first.
func (o *Order) setCollectedAt(collectedAt time.Time) error {
	if collectedAt.IsZero() {
		return errs.NewValueIsRequiredError("collection date")
	}
	o.collectedAt = collectedAt
	o.dueAt = collectedAt.AddDate(0, 0, o.service.Days())
	return nil
}
