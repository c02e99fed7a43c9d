package commands

import (
	"context"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/services"
	"parcel/internal/pkg/metrics"
)

// IssueMonthlyBillsCommandHandler closes the month: every customer holding an
// open monthly bill gets it issued in one transaction.
type IssueMonthlyBillsCommandHandler struct {
	uowFactory CustomerUoWFactory
	policy     services.BillingPolicy
}

func NewIssueMonthlyBillsCommandHandler(
	uowFactory CustomerUoWFactory,
	policy services.BillingPolicy,
) IssueMonthlyBillsCommandHandler {
	return IssueMonthlyBillsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the number of bills issued.
func (h IssueMonthlyBillsCommandHandler) Handle(ctx context.Context, cmd IssueMonthlyBillsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()
	customers, err := repo.ListWithOpenMonthlyBills(ctx)
	if err != nil {
		return 0, err
	}

	var issued []*bill.Bill
	for _, c := range customers {
		bills, issueErr := h.policy.IssueMonthly(c, cmd.At())
		if issueErr != nil {
			return 0, issueErr
		}
		if err = repo.Update(ctx, c); err != nil {
			return 0, err
		}
		issued = append(issued, bills...)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if len(issued) > 0 {
		metrics.BillsIssuedTotal.WithLabelValues(bill.Monthly.String()).Add(float64(len(issued)))
	}
	return len(issued), nil
}
