// Package customerrepo persists customers and their bills. Bills are stored
// one row each, built from the bill snapshot.
package customerrepo

import (
	"time"

	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/customer"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
)

type CustomerDTO struct {
	ID           string    `gorm:"type:varchar(6);primaryKey"`
	FirstName    string    `gorm:"type:varchar(255);not null"`
	LastName     string    `gorm:"type:varchar(255);not null"`
	Address      string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(32);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(72);not null"`
	BillingPref  int       `gorm:"type:smallint;not null"`
	BillCount    int       `gorm:"not null"`
	Bills        []BillDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type BillDTO struct {
	ID            string     `gorm:"type:varchar(16);primaryKey"`
	CustomerID    string     `gorm:"type:varchar(6);not null;index"`
	Monthly       bool       `gorm:"not null"`
	Amount        float64    `gorm:"type:double precision;not null"`
	Issued        bool       `gorm:"not null"`
	DueDate       *time.Time `gorm:"type:date"`
	Paid          bool       `gorm:"not null"`
	Manifest      []string   `gorm:"type:jsonb;serializer:json;not null"`
	TransactionID *string    `gorm:"type:varchar(255)"`
	Method        *int       `gorm:"type:smallint"`
}

func (BillDTO) TableName() string {
	return "bills"
}

func fromDomain(c *customer.Customer) (CustomerDTO, error) {
	s := c.State()

	bills := make([]BillDTO, 0, len(s.Bills))
	for _, b := range s.Bills {
		dto, err := billFromDomain(b)
		if err != nil {
			return CustomerDTO{}, err
		}
		bills = append(bills, dto)
	}

	return CustomerDTO{
		ID:           s.ID.String(),
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Address:      s.Address.Address(),
		Phone:        s.Phone,
		Email:        s.Email,
		PasswordHash: string(s.Password),
		BillingPref:  int(s.BillingPref),
		BillCount:    s.BillCount,
		Bills:        bills,
	}, nil
}

func billFromDomain(b *bill.Bill) (BillDTO, error) {
	snap := b.Snapshot()

	manifest := make([]string, 0, len(snap.Manifest))
	for _, id := range snap.Manifest {
		manifest = append(manifest, id.String())
	}

	dto := BillDTO{
		ID:         b.ID().String(),
		CustomerID: b.Owner().String(),
		Monthly:    snap.Monthly,
		Amount:     snap.Amount,
		Issued:     snap.IssueStatus,
		Paid:       snap.PaymentStatus,
		Manifest:   manifest,
	}
	if snap.DueDate != "" {
		due, err := time.Parse(bill.DateLayout, snap.DueDate)
		if err != nil {
			return BillDTO{}, err
		}
		dto.DueDate = &due
	}
	if snap.PaymentRecord != nil {
		transactionID := snap.PaymentRecord.TransactionID
		method := int(snap.PaymentRecord.Method)
		dto.TransactionID = &transactionID
		dto.Method = &method
	}
	return dto, nil
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	address, err := location.NewDestination(dto.Address)
	if err != nil {
		return nil, err
	}
	password, err := kernel.RestorePasswordHash(dto.PasswordHash)
	if err != nil {
		return nil, err
	}

	id := kernel.CustomerID(dto.ID)
	bills := make([]*bill.Bill, 0, len(dto.Bills))
	for _, billDTO := range dto.Bills {
		b, billErr := billToDomain(billDTO, id)
		if billErr != nil {
			return nil, billErr
		}
		bills = append(bills, b)
	}

	return customer.RestoreCustomer(customer.State{
		ID:          id,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Address:     address,
		Phone:       dto.Phone,
		Email:       dto.Email,
		Password:    password,
		BillingPref: order.BillingTiming(dto.BillingPref),
		BillCount:   dto.BillCount,
		Bills:       bills,
	})
}

func billToDomain(dto BillDTO, owner kernel.CustomerID) (*bill.Bill, error) {
	id := kernel.BillID(dto.ID)
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snap := bill.Snapshot{
		IDSuffix:      id.Suffix(),
		Amount:        dto.Amount,
		IssueStatus:   dto.Issued,
		PaymentStatus: dto.Paid,
		Monthly:       dto.Monthly,
		Manifest:      make([]kernel.OrderID, 0, len(dto.Manifest)),
	}
	for _, orderID := range dto.Manifest {
		snap.Manifest = append(snap.Manifest, kernel.OrderID(orderID))
	}
	if dto.DueDate != nil {
		snap.DueDate = dto.DueDate.Format(bill.DateLayout)
	}
	if dto.TransactionID != nil && dto.Method != nil {
		snap.PaymentRecord = &bill.PaymentRecordSnapshot{
			TransactionID: *dto.TransactionID,
			Method:        bill.PaymentMethod(*dto.Method),
		}
	}

	return bill.FromSnapshot(snap, owner)
}
