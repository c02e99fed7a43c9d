package bill

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	// DateLayout is the layout of due dates in snapshots.
	DateLayout = "2006-01-02"
	// PaymentTermDays is the time a standard bill gives from issue to due date.
	PaymentTermDays = 15
	// MonthlyDueDay is the day of the following month a monthly bill is due.
	MonthlyDueDay = 15
)

// ErrBillIsNotConstructed is returned by Validate for a zero-value Bill.
var ErrBillIsNotConstructed = errors.New("Bill must be created via NewBill or NewMonthlyBill constructor")

// Kind distinguishes standard bills from monthly aggregates.
type Kind int

const (
	Standard Kind = iota
	Monthly
)

func (k Kind) String() string {
	if k == Monthly {
		return "monthly"
	}
	return "standard"
}

// Item is anything a bill can charge for.
type Item interface {
	ID() kernel.OrderID
	Fee() float64
}

// Bill charges a customer for the orders in its manifest.
type Bill struct {
	id       kernel.BillID
	kind     Kind
	amount   float64
	issued   bool
	dueDate  *time.Time
	paid     bool
	record   *PaymentRecord
	manifest []kernel.OrderID
	guard    guard.ConstructorGuard
}

// Snapshot is the persisted form of a bill.
type Snapshot struct {
	IDSuffix      string                 `json:"id_suffix"`
	Amount        float64                `json:"amount"`
	IssueStatus   bool                   `json:"issue_status"`
	PaymentStatus bool                   `json:"payment_status"`
	DueDate       string                 `json:"due_date,omitempty"`
	Manifest      []kernel.OrderID       `json:"manifest"`
	PaymentRecord *PaymentRecordSnapshot `json:"payment_record,omitempty"`
	Monthly       bool                   `json:"monthly"`
}

// NewBill creates an open standard bill seeded with its first item.
//
// Parameters:
//   - id: bill identifier derived from the owner and the owner's bill counter
//   - first: the order that triggered the bill
//
// Returns:
//   - *Bill: open bill whose amount is the item's fee
//   - error: validation error for a malformed id or a nil item
func NewBill(id kernel.BillID, first Item) (*Bill, error) {
	return newBill(id, Standard, first)
}

// NewMonthlyBill creates an open monthly bill seeded with its first item.
// The due date is the 15th of the month following now.
func NewMonthlyBill(id kernel.BillID, first Item, now time.Time) (*Bill, error) {
	b, err := newBill(id, Monthly, first)
	if err != nil {
		return nil, err
	}
	due := time.Date(now.Year(), now.Month()+1, MonthlyDueDay, 0, 0, 0, 0, time.UTC)
	b.dueDate = &due
	return b, nil
}

func newBill(id kernel.BillID, kind Kind, first Item) (*Bill, error) {
	b := &Bill{
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}

	var itemErr error
	if first == nil {
		itemErr = errs.NewValueIsRequiredError("bill item")
	}
	if err := errors.Join(b.setID(id), itemErr); err != nil {
		return nil, err
	}

	b.manifest = []kernel.OrderID{first.ID()}
	b.amount = first.Fee()
	return b, nil
}

// FromSnapshot rebuilds a bill owned by owner, restoring every field verbatim.
func FromSnapshot(s Snapshot, owner kernel.CustomerID) (*Bill, error) {
	id, err := kernel.BillIDFromSuffix(owner, s.IDSuffix)
	if err != nil {
		return nil, err
	}

	b := &Bill{
		id:       id,
		kind:     Standard,
		amount:   s.Amount,
		issued:   s.IssueStatus,
		paid:     s.PaymentStatus,
		manifest: slices.Clone(s.Manifest),
		guard:    guard.NewConstructorGuard(),
	}
	if s.Monthly {
		b.kind = Monthly
	}

	if s.DueDate != "" {
		due, err := time.Parse(DateLayout, s.DueDate)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("due date", err)
		}
		b.dueDate = &due
	}

	if s.PaymentRecord != nil {
		record, err := NewPaymentRecord(s.PaymentRecord.TransactionID, s.PaymentRecord.Method)
		if err != nil {
			return nil, err
		}
		b.record = &record
	}
	if b.paid && b.record == nil {
		return nil, errs.NewValueIsRequiredError("payment record of a paid bill")
	}

	for _, orderID := range b.manifest {
		if err = orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Bill) Validate() error {
	if b == nil {
		return ErrBillIsNotConstructed
	}
	return b.guard.Validate(ErrBillIsNotConstructed)
}

func (b *Bill) ID() kernel.BillID {
	return b.id
}

// Owner returns the customer the bill belongs to.
func (b *Bill) Owner() kernel.CustomerID {
	return b.id.Owner()
}

func (b *Bill) Kind() Kind {
	return b.kind
}

func (b *Bill) IsMonthly() bool {
	return b.kind == Monthly
}

func (b *Bill) Amount() float64 {
	return b.amount
}

func (b *Bill) IsIssued() bool {
	return b.issued
}

// DueDate is set at construction for monthly bills and on issue for standard bills.
func (b *Bill) DueDate() (time.Time, bool) {
	if b.dueDate == nil {
		return time.Time{}, false
	}
	return *b.dueDate, true
}

// VerifyPayment reports whether the bill has been paid.
func (b *Bill) VerifyPayment() bool {
	return b.paid
}

func (b *Bill) PaymentRecord() (PaymentRecord, bool) {
	if b.record == nil {
		return PaymentRecord{}, false
	}
	return *b.record, true
}

// Manifest lists the covered orders in the order they were added.
func (b *Bill) Manifest() []kernel.OrderID {
	return slices.Clone(b.manifest)
}

func (b *Bill) Covers(orderID kernel.OrderID) bool {
	return slices.Contains(b.manifest, orderID)
}

// State names the position of the bill in its lifecycle: open, issued or paid.
func (b *Bill) State() string {
	switch {
	case b.paid:
		return "paid"
	case b.issued:
		return "issued"
	default:
		return "open"
	}
}

// AddItem appends an order to the manifest and its fee to the amount.
//
// Returns:
//   - StateIsInvalidError if the bill is a monthly bill that was already
//     issued, or any bill that was already paid
//   - ValueIsInvalidError if the order is already on the manifest
func (b *Bill) AddItem(item Item) error {
	if item == nil {
		return errs.NewValueIsRequiredError("bill item")
	}
	if b.kind == Monthly && b.issued {
		return errs.NewStateIsInvalidErrorWithCause("bill",
			fmt.Errorf("monthly bill %s is already issued", b.id))
	}
	if b.paid {
		return errs.NewStateIsInvalidErrorWithCause("bill",
			fmt.Errorf("bill %s is already paid", b.id))
	}
	if b.Covers(item.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("bill item",
			fmt.Errorf("order %s is already on bill %s", item.ID(), b.id))
	}

	b.manifest = append(b.manifest, item.ID())
	b.amount += item.Fee()
	return nil
}

// Issue invoices the bill. A standard bill becomes due PaymentTermDays after
// now; a monthly bill keeps the due date fixed at construction.
func (b *Bill) Issue(now time.Time) error {
	if b.issued {
		return errs.NewStateIsInvalidErrorWithCause("bill",
			fmt.Errorf("bill %s is already issued", b.id))
	}
	if b.kind == Standard {
		due := time.Date(now.Year(), now.Month(), now.Day()+PaymentTermDays, 0, 0, 0, 0, time.UTC)
		b.dueDate = &due
	}
	b.issued = true
	return nil
}

// Pay settles the bill after the verifier accepts the transaction.
//
// Parameters:
//   - ctx: passed to the verifier
//   - verifier: payment provider check
//   - transactionID: the provider's transaction reference
//   - method: how the customer paid
//
// Returns:
//   - nil when the bill is now paid and holds a PaymentRecord
//   - StateIsInvalidError if the bill was already paid or the verifier
//     rejected the transaction; the bill is unchanged
//   - validation error for an empty transaction ID or unknown method
//   - the verifier's error, wrapped
func (b *Bill) Pay(ctx context.Context, verifier TransactionVerifier, transactionID string, method PaymentMethod) error {
	if b.paid {
		return errs.NewStateIsInvalidErrorWithCause("bill",
			fmt.Errorf("bill %s is already paid", b.id))
	}

	record, err := NewPaymentRecord(transactionID, method)
	if err != nil {
		return err
	}

	accepted, err := verifier.Verify(ctx, record.TransactionID(), b.amount)
	if err != nil {
		return fmt.Errorf("verify transaction %s: %w", record.TransactionID(), err)
	}
	if !accepted {
		return errs.NewStateIsInvalidErrorWithCause("bill payment",
			fmt.Errorf("transaction %s was rejected", record.TransactionID()))
	}

	b.paid = true
	b.record = &record
	return nil
}

// Snapshot returns the persisted form of the bill.
func (b *Bill) Snapshot() Snapshot {
	s := Snapshot{
		IDSuffix:      b.id.Suffix(),
		Amount:        b.amount,
		IssueStatus:   b.issued,
		PaymentStatus: b.paid,
		Manifest:      slices.Clone(b.manifest),
		Monthly:       b.kind == Monthly,
	}
	if b.dueDate != nil {
		s.DueDate = b.dueDate.Format(DateLayout)
	}
	if b.record != nil {
		record := b.record.Snapshot()
		s.PaymentRecord = &record
	}
	return s
}

func (b *Bill) setID(id kernel.BillID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}
