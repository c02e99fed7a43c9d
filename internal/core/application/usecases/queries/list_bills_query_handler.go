package queries

import (
	"context"
	"encoding/json"
	"time"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListBillsQueryHandler reads bills straight from the bills table. Bills
// change only inside customer transactions, so the table is always current.
type ListBillsQueryHandler struct {
	db *gorm.DB
}

func NewListBillsQueryHandler(db *gorm.DB) ListBillsQueryHandler {
	return ListBillsQueryHandler{db: db}
}

func (h ListBillsQueryHandler) Handle(ctx context.Context, query ListBillsQuery) ([]BillView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var known int64
	if err := h.db.WithContext(ctx).Raw(`SELECT count(*) FROM customers WHERE id = ?`,
		query.CustomerID().String()).Scan(&known).Error; err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, errs.NewObjectNotFoundError("customer", query.CustomerID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			monthly,
			amount,
			issued,
			due_date,
			paid,
			manifest,
			transaction_id,
			method
		FROM bills
		WHERE customer_id = ?
		ORDER BY id
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]BillView, 0)
	for rows.Next() {
		var (
			view          BillView
			id            string
			monthly       bool
			dueDate       *time.Time
			manifest      []byte
			transactionID *string
			method        *int
		)

		err = rows.Scan(
			&id,
			&monthly,
			&view.Amount,
			&view.Issued,
			&dueDate,
			&view.Paid,
			&manifest,
			&transactionID,
			&method,
		)
		if err != nil {
			return nil, err
		}

		view.ID = kernel.BillID(id)
		view.Kind = bill.Standard.String()
		if monthly {
			view.Kind = bill.Monthly.String()
		}
		if dueDate != nil {
			view.DueDate = dueDate.Format(bill.DateLayout)
		}
		if err = json.Unmarshal(manifest, &view.Manifest); err != nil {
			return nil, err
		}
		if transactionID != nil {
			view.TransactionID = *transactionID
		}
		if method != nil {
			view.Method = bill.PaymentMethod(*method).String()
		}

		bills = append(bills, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}
