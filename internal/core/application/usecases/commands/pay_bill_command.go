package commands

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrPayBillCommandIsNotConstructed = errors.New(
	"PayBillCommand must be created via NewPayBillCommand constructor",
)

// PayBillCommand settles one of the customer's bills with a transaction that
// the payment verifier must accept.
type PayBillCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.CustomerID
	billID        kernel.BillID
	transactionID string
	method        bill.PaymentMethod

	guard guard.ConstructorGuard
}

func NewPayBillCommand(
	customerID kernel.CustomerID,
	billID kernel.BillID,
	transactionID string,
	method bill.PaymentMethod,
) (PayBillCommand, error) {
	cmd := PayBillCommand{
		customerID:    customerID,
		billID:        billID,
		transactionID: strings.TrimSpace(transactionID),
		method:        method,
		guard:         guard.NewConstructorGuard(),
	}

	var ownerErr error
	if billID.Validate() == nil && billID.Owner() != customerID {
		ownerErr = errs.NewAccessDeniedError("bill", billID)
	}

	if err := errors.Join(
		customerID.Validate(),
		billID.Validate(),
		required("transaction id", cmd.transactionID),
		method.Validate(),
		ownerErr,
	); err != nil {
		return PayBillCommand{}, err
	}

	return cmd, nil
}

func (c PayBillCommand) Validate() error {
	return c.guard.Validate(ErrPayBillCommandIsNotConstructed)
}

func (c PayBillCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c PayBillCommand) BillID() kernel.BillID {
	return c.billID
}

func (c PayBillCommand) TransactionID() string {
	return c.transactionID
}

func (c PayBillCommand) Method() bill.PaymentMethod {
	return c.method
}
