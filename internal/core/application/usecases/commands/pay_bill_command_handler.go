package commands

import (
	"context"
	"errors"
	"fmt"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/metrics"
)

// PayBillCommandHandler pays a bill through the transaction verifier.
// Rejected payments leave the bill unpaid and are recorded in the security log.
type PayBillCommandHandler struct {
	uowFactory  CustomerUoWFactory
	verifier    bill.TransactionVerifier
	securityLog ports.SecurityLog
}

func NewPayBillCommandHandler(
	uowFactory CustomerUoWFactory,
	verifier bill.TransactionVerifier,
	securityLog ports.SecurityLog,
) PayBillCommandHandler {
	return PayBillCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		securityLog: securityLog,
	}
}

func (h PayBillCommandHandler) Handle(ctx context.Context, cmd PayBillCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()
	c, err := repo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	subject := cmd.CustomerID().String()
	detail := fmt.Sprintf("bill=%s transaction=%s method=%s", cmd.BillID(), cmd.TransactionID(), cmd.Method())

	if err = c.Pay(ctx, cmd.BillID(), h.verifier, cmd.TransactionID(), cmd.Method()); err != nil {
		if errors.Is(err, errs.ErrStateIsInvalid) {
			metrics.PaymentsTotal.WithLabelValues(cmd.Method().String(), metrics.ResultRejected).Inc()
			h.securityLog.Record(ports.EventPaymentFailed, subject, detail)
		}
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.PaymentsTotal.WithLabelValues(cmd.Method().String(), metrics.ResultAccepted).Inc()
	h.securityLog.Record(ports.EventPayment, subject, detail)
	return nil
}
