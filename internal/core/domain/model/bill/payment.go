package bill

import (
	"context"
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// PaymentMethod is how a bill was paid. The numeric values are part of the
// persisted snapshot format.
type PaymentMethod int

const (
	Cash PaymentMethod = iota
	Card
	Wire
)

var methodNames = map[PaymentMethod]string{
	Cash: "cash",
	Card: "card",
	Wire: "wire",
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not a payment method", s))
}

func (m PaymentMethod) Validate() error {
	if _, ok := methodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if n, ok := methodNames[m]; ok {
		return n
	}
	return "unknown"
}

// PaymentRecord is the immutable receipt of a completed payment.
type PaymentRecord struct {
	transactionID string
	method        PaymentMethod
}

// PaymentRecordSnapshot is the persisted form of a PaymentRecord.
type PaymentRecordSnapshot struct {
	TransactionID string        `json:"transaction_id"`
	Method        PaymentMethod `json:"method"`
}

func NewPaymentRecord(transactionID string, method PaymentMethod) (PaymentRecord, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return PaymentRecord{}, errs.NewValueIsRequiredError("transaction ID")
	}
	if err := method.Validate(); err != nil {
		return PaymentRecord{}, err
	}
	return PaymentRecord{transactionID: transactionID, method: method}, nil
}

func (r PaymentRecord) TransactionID() string {
	return r.transactionID
}

func (r PaymentRecord) Method() PaymentMethod {
	return r.method
}

func (r PaymentRecord) Snapshot() PaymentRecordSnapshot {
	return PaymentRecordSnapshot{TransactionID: r.transactionID, Method: r.method}
}

// TransactionVerifier confirms with the payment provider that a transaction
// covers the given amount.
type TransactionVerifier interface {
	Verify(ctx context.Context, transactionID string, amount float64) (bool, error)
}
