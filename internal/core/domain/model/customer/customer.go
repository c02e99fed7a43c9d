// Package customer provides the Customer aggregate: contact details,
// credentials, billing preference and the customer's bills.
package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned by Validate for a zero-value Customer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer owns its bills. Orders are referenced by identifier and live in
// the order registry.
//
// Invariants:
//   - The phone number holds digits and spaces only
//   - The address is a Destination
//   - Bills are kept in creation order; the bill counter equals the number of bills
//   - Each order is covered by at most one bill
type Customer struct {
	id          kernel.CustomerID
	firstName   string
	lastName    string
	address     location.Location
	phone       string
	email       string
	password    kernel.PasswordHash
	billingPref order.BillingTiming
	billCount   int
	bills       []*bill.Bill
	guard       guard.ConstructorGuard
}

// State carries every field of a Customer, for persistence adapters.
type State struct {
	ID          kernel.CustomerID
	FirstName   string
	LastName    string
	Address     location.Location
	Phone       string
	Email       string
	Password    kernel.PasswordHash
	BillingPref order.BillingTiming
	BillCount   int
	Bills       []*bill.Bill
}

// NewCustomer registers a customer with no bills.
//
// Parameters:
//   - id: identifier allocated from the customer sequence
//   - firstName, lastName: required
//   - address: delivery address, must be a Destination
//   - phone: digits and spaces only
//   - email: a single address; uniqueness is enforced by the customer store
//   - password: bcrypt hash of the customer's password
//   - billingPref: timing applied to the customer's new orders
//
// Returns:
//   - *Customer: the customer
//   - error: joined validation errors
//
// Example:
//
//	hash, _ := kernel.HashPassword("0000", bcrypt.DefaultCost)
//	c, err := customer.NewCustomer("C00001", "Samuel", "Lai", home,
//	    "0912 345 678", "samuel@example.com", hash, order.InAdvance)
func NewCustomer(
	id kernel.CustomerID,
	firstName string,
	lastName string,
	address location.Location,
	phone string,
	email string,
	password kernel.PasswordHash,
	billingPref order.BillingTiming,
) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(firstName, lastName),
		c.SetAddress(address),
		c.SetPhone(phone),
		c.setEmail(email),
		c.SetPassword(password),
		c.SetBillingPreference(billingPref),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer rebuilds a customer and its bills from persistence.
func RestoreCustomer(s State) (*Customer, error) {
	c, err := NewCustomer(s.ID, s.FirstName, s.LastName, s.Address, s.Phone, s.Email, s.Password, s.BillingPref)
	if err != nil {
		return nil, err
	}

	for _, b := range s.Bills {
		if err = b.Validate(); err != nil {
			return nil, err
		}
		if b.Owner() != c.id {
			return nil, errs.NewValueIsInvalidErrorWithCause("bill",
				fmt.Errorf("bill %s does not belong to %s", b.ID(), c.id))
		}
	}
	if s.BillCount < len(s.Bills) {
		return nil, errs.NewValueIsOutOfRangeError("bill count", s.BillCount, len(s.Bills), kernel.MaxBillSequence)
	}

	c.bills = append([]*bill.Bill(nil), s.Bills...)
	c.billCount = s.BillCount
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.CustomerID {
	return c.id
}

func (c *Customer) FirstName() string {
	return c.firstName
}

func (c *Customer) LastName() string {
	return c.lastName
}

func (c *Customer) Address() location.Location {
	return c.address
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) Password() kernel.PasswordHash {
	return c.password
}

func (c *Customer) BillingPreference() order.BillingTiming {
	return c.billingPref
}

// BillCount is the number of bills ever created for the customer.
func (c *Customer) BillCount() int {
	return c.billCount
}

// VerifyPassword reports whether plain matches the stored hash.
func (c *Customer) VerifyPassword(plain string) bool {
	return c.password.Matches(plain)
}

// SetAddress replaces the customer's address. Only destinations are accepted.
func (c *Customer) SetAddress(address location.Location) error {
	if err := address.Validate(); err != nil {
		return err
	}
	if !address.IsDestination() {
		return errs.NewValueIsInvalidErrorWithCause("address",
			fmt.Errorf("%s is a repository, not a destination", address))
	}
	c.address = address
	return nil
}

// SetPhone replaces the phone number. Only digits and spaces are accepted; the
// error names the first offending character.
func (c *Customer) SetPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone number")
	}
	for _, ch := range phone {
		if !unicode.IsDigit(ch) && ch != ' ' {
			return errs.NewValueIsInvalidErrorWithCause("phone number",
				fmt.Errorf("contains invalid character '%c'", ch))
		}
	}
	c.phone = phone
	return nil
}

func (c *Customer) SetPassword(password kernel.PasswordHash) error {
	if err := password.Validate(); err != nil {
		return err
	}
	c.password = password
	return nil
}

// SetBillingPreference changes the timing used for the customer's future orders.
func (c *Customer) SetBillingPreference(pref order.BillingTiming) error {
	if err := pref.Validate(); err != nil {
		return err
	}
	c.billingPref = pref
	return nil
}

// CheckAccess returns an AccessDeniedError unless the customer pays for the order.
func (c *Customer) CheckAccess(o *order.Order) error {
	if o.Payer() != c.id {
		return errs.NewAccessDeniedErrorWithCause("order", o.ID(),
			fmt.Errorf("customer %s does not pay for it", c.id))
	}
	return nil
}

// Bills lists the customer's bills in creation order.
func (c *Customer) Bills() []*bill.Bill {
	return append([]*bill.Bill(nil), c.bills...)
}

// Bill looks a bill up by identifier.
func (c *Customer) Bill(id kernel.BillID) (*bill.Bill, error) {
	for _, b := range c.bills {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("bill", id)
}

// LastBill returns the most recently created bill, whatever its kind or state.
func (c *Customer) LastBill() (*bill.Bill, bool) {
	if len(c.bills) == 0 {
		return nil, false
	}
	return c.bills[len(c.bills)-1], true
}

// OpenMonthlyBills lists monthly bills that have not been issued yet.
func (c *Customer) OpenMonthlyBills() []*bill.Bill {
	var open []*bill.Bill
	for _, b := range c.bills {
		if b.IsMonthly() && !b.IsIssued() {
			open = append(open, b)
		}
	}
	return open
}

// BillOrder puts an order on a bill and attaches the bill to the order.
//
// An order that already has a bill is left alone. Otherwise a new bill is
// created for the order when any of these hold:
//   - the order is not billed monthly
//   - the customer has no bills yet
//   - the customer's most recently created bill is issued or paid
//
// The new bill is a monthly bill for monthly orders and a standard bill
// otherwise. In every other case the order is added to the most recently
// created bill.
//
// Returns:
//   - the bill that covers the order
//   - ObjectNotFoundError if the order names a bill the customer does not hold
//   - AccessDeniedError if the customer does not pay for the order
//   - the bill's error if the order cannot be added to it
func (c *Customer) BillOrder(o *order.Order, now time.Time) (*bill.Bill, error) {
	if err := c.CheckAccess(o); err != nil {
		return nil, err
	}
	if id, billed := o.BillID(); billed {
		return c.Bill(id)
	}

	last, hasLast := c.LastBill()
	if o.BillingTiming() != order.Monthly || !hasLast || last.IsIssued() || last.VerifyPayment() {
		b, err := c.openBill(o, now)
		if err != nil {
			return nil, err
		}
		return b, o.AttachBill(b.ID())
	}

	if err := last.AddItem(o); err != nil {
		return nil, err
	}
	return last, o.AttachBill(last.ID())
}

// Pay settles one of the customer's bills.
func (c *Customer) Pay(ctx context.Context, billID kernel.BillID, verifier bill.TransactionVerifier, transactionID string, method bill.PaymentMethod) error {
	b, err := c.Bill(billID)
	if err != nil {
		return err
	}
	return b.Pay(ctx, verifier, transactionID, method)
}

// State exposes every field of the customer for persistence adapters.
func (c *Customer) State() State {
	return State{
		ID:          c.id,
		FirstName:   c.firstName,
		LastName:    c.lastName,
		Address:     c.address,
		Phone:       c.phone,
		Email:       c.email,
		Password:    c.password,
		BillingPref: c.billingPref,
		BillCount:   c.billCount,
		Bills:       c.Bills(),
	}
}

func (c *Customer) openBill(o *order.Order, now time.Time) (*bill.Bill, error) {
	id, err := kernel.NewBillID(c.id, c.billCount+1)
	if err != nil {
		return nil, err
	}

	var b *bill.Bill
	if o.BillingTiming() == order.Monthly {
		b, err = bill.NewMonthlyBill(id, o, now)
	} else {
		b, err = bill.NewBill(id, o)
	}
	if err != nil {
		return nil, err
	}

	c.bills = append(c.bills, b)
	c.billCount++
	return b, nil
}

func (c *Customer) setID(id kernel.CustomerID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(firstName string, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	var err error
	if firstName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("first name"))
	}
	if lastName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("last name"))
	}
	if err != nil {
		return err
	}
	c.firstName = firstName
	c.lastName = lastName
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a plain email address", email))
	}
	c.email = email
	return nil
}
