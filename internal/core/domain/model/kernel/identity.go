package kernel

import (
	"fmt"
	"regexp"
	"strconv"

	"parcel/internal/pkg/errs"
)

const (
	// MaxCustomerSequence is the largest sequence representable in a CustomerID.
	MaxCustomerSequence = 99999
	// MaxStaffSequence is the largest sequence representable in a StaffID.
	MaxStaffSequence = 99999
	// MaxOrderSequence is the largest sequence representable in an OrderID.
	MaxOrderSequence = 9999999999999
	// MaxBillSequence is the largest per-customer bill sequence representable in a BillID.
	MaxBillSequence = 9999
)

var (
	customerIDPattern = regexp.MustCompile(`^C\d{5}$`)
	orderIDPattern    = regexp.MustCompile(`^O\d{13}$`)
	billIDPattern     = regexp.MustCompile(`^B\d{9}$`)
	staffIDPattern    = regexp.MustCompile(`^S\d{5}$`)
	billSuffixPattern = regexp.MustCompile(`^\d{4}$`)
)

// CustomerID identifies a customer: "C" followed by a 5-digit zero-padded sequence.
type CustomerID string

// NewCustomerID formats a customer sequence number as an identifier.
func NewCustomerID(seq int) (CustomerID, error) {
	if seq < 0 || seq > MaxCustomerSequence {
		return "", errs.NewValueIsOutOfRangeError("customer sequence", seq, 0, MaxCustomerSequence)
	}
	return CustomerID(fmt.Sprintf("C%05d", seq)), nil
}

// ParseCustomerID checks s against the customer identifier format.
func ParseCustomerID(s string) (CustomerID, error) {
	id := CustomerID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id CustomerID) Validate() error {
	return validateFormat("customer ID", string(id), customerIDPattern)
}

// Digits returns the numeric part of the identifier, used to derive bill identifiers.
func (id CustomerID) Digits() string {
	if len(id) == 0 {
		return ""
	}
	return string(id)[1:]
}

func (id CustomerID) String() string {
	return string(id)
}

// OrderID identifies an order: "O" followed by a 13-digit zero-padded sequence.
type OrderID string

// NewOrderID formats an order sequence number as an identifier.
func NewOrderID(seq int64) (OrderID, error) {
	if seq < 0 || seq > MaxOrderSequence {
		return "", errs.NewValueIsOutOfRangeError("order sequence", seq, 0, MaxOrderSequence)
	}
	return OrderID(fmt.Sprintf("O%013d", seq)), nil
}

// ParseOrderID checks s against the order identifier format.
func ParseOrderID(s string) (OrderID, error) {
	id := OrderID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id OrderID) Validate() error {
	return validateFormat("order ID", string(id), orderIDPattern)
}

func (id OrderID) String() string {
	return string(id)
}

// Sequence returns the numeric part of a valid identifier.
func (id OrderID) Sequence() (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(id)[1:], 10, 64)
}

// BillID identifies a bill: "B", the owning customer's digits and a 4-digit
// per-customer sequence, e.g. B000420003 is the third bill of C00042.
type BillID string

// NewBillID derives a bill identifier from its owner and the owner's bill sequence.
func NewBillID(owner CustomerID, seq int) (BillID, error) {
	if err := owner.Validate(); err != nil {
		return "", err
	}
	if seq < 0 || seq > MaxBillSequence {
		return "", errs.NewValueIsOutOfRangeError("bill sequence", seq, 0, MaxBillSequence)
	}
	return BillID(fmt.Sprintf("B%s%04d", owner.Digits(), seq)), nil
}

// BillIDFromSuffix rebuilds a bill identifier from the suffix kept in a bill snapshot.
func BillIDFromSuffix(owner CustomerID, suffix string) (BillID, error) {
	if err := owner.Validate(); err != nil {
		return "", err
	}
	if !billSuffixPattern.MatchString(suffix) {
		return "", errs.NewValueIsInvalidErrorWithCause("bill ID suffix", fmt.Errorf("%q is not 4 digits", suffix))
	}
	return BillID("B" + owner.Digits() + suffix), nil
}

// ParseBillID checks s against the bill identifier format.
func ParseBillID(s string) (BillID, error) {
	id := BillID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id BillID) Validate() error {
	return validateFormat("bill ID", string(id), billIDPattern)
}

// Owner returns the identifier of the customer the bill belongs to.
func (id BillID) Owner() CustomerID {
	if len(id) != 10 {
		return ""
	}
	return CustomerID("C" + string(id)[1:6])
}

// Suffix returns the part of the identifier that follows the owner's identifier length,
// which is the per-customer sequence.
func (id BillID) Suffix() string {
	if len(id) != 10 {
		return ""
	}
	return string(id)[6:]
}

func (id BillID) String() string {
	return string(id)
}

// StaffID identifies a staff member: "S" followed by a 5-digit zero-padded sequence.
type StaffID string

// NewStaffID formats a staff sequence number as an identifier.
func NewStaffID(seq int) (StaffID, error) {
	if seq < 0 || seq > MaxStaffSequence {
		return "", errs.NewValueIsOutOfRangeError("staff sequence", seq, 0, MaxStaffSequence)
	}
	return StaffID(fmt.Sprintf("S%05d", seq)), nil
}

// ParseStaffID checks s against the staff identifier format.
func ParseStaffID(s string) (StaffID, error) {
	id := StaffID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id StaffID) Validate() error {
	return validateFormat("staff ID", string(id), staffIDPattern)
}

func (id StaffID) String() string {
	return string(id)
}

func validateFormat(param string, value string, pattern *regexp.Regexp) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if !pattern.MatchString(value) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q does not match %s", value, pattern))
	}
	return nil
}
