package http

import (
	"time"

	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
)

type NewCustomer struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	BillingPreference string `json:"billing_preference"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileChange struct {
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	BillingPreference string `json:"billing_preference"`
}

type NewPackage struct {
	Size        [3]int  `json:"size"`
	Weight      float64 `json:"weight"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Dangerous   bool    `json:"dangerous"`
	Fragile     bool    `json:"fragile"`
}

type NewOrder struct {
	CollectorID   string     `json:"collector_id"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Service       string     `json:"service"`
	International bool       `json:"international"`
	Package       NewPackage `json:"package"`
}

type Payment struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
}

type NewStaff struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Password   string `json:"password"`
	Assignment string `json:"assignment"`
}

type OrderEvent struct {
	Event       string `json:"event"`
	From        string `json:"from"`
	Description string `json:"description"`
}

type NewVehicle struct {
	Type  string `json:"type"`
	Plate string `json:"plate"`
}

type NewRepository struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type Created struct {
	ID string `json:"id"`
}

type PlacedOrder struct {
	ID     kernel.OrderID `json:"id"`
	Fee    float64        `json:"fee"`
	DueAt  string         `json:"due_at"`
	BillID *kernel.BillID `json:"bill_id,omitempty"`
}

type OrderStatus struct {
	ID     kernel.OrderID `json:"id"`
	Status string         `json:"status"`
}

type Vehicle struct {
	Kind  string `json:"kind"`
	Plate string `json:"plate"`
}

type Customer struct {
	ID                kernel.CustomerID `json:"id"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Address           string            `json:"address"`
	Phone             string            `json:"phone"`
	Email             string            `json:"email"`
	BillingPreference string            `json:"billing_preference"`
	BillCount         int               `json:"bill_count"`
}

type Order struct {
	ID          kernel.OrderID    `json:"id"`
	Payer       kernel.CustomerID `json:"payer"`
	Service     string            `json:"service"`
	Status      string            `json:"status"`
	Fee         float64           `json:"fee"`
	CollectedAt time.Time         `json:"collected_at"`
	DueAt       time.Time         `json:"due_at"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	BillID      *kernel.BillID    `json:"bill_id,omitempty"`
	LastEvent   string            `json:"last_event"`
}

type OrderDetails struct {
	Order

	BillingTiming string                `json:"billing_timing"`
	International bool                  `json:"international"`
	Package       order.PackageSnapshot `json:"package"`
	History       []string              `json:"history"`
}

type Bill struct {
	ID            kernel.BillID    `json:"id"`
	Kind          string           `json:"kind"`
	Amount        float64          `json:"amount"`
	Issued        bool             `json:"issued"`
	DueDate       string           `json:"due_date,omitempty"`
	Paid          bool             `json:"paid"`
	Manifest      []kernel.OrderID `json:"manifest"`
	TransactionID string           `json:"transaction_id,omitempty"`
	Method        string           `json:"method,omitempty"`
}

func toCustomer(v queries.CustomerView) Customer {
	return Customer{
		ID:                v.ID,
		FirstName:         v.FirstName,
		LastName:          v.LastName,
		Address:           v.Address,
		Phone:             v.Phone,
		Email:             v.Email,
		BillingPreference: v.BillingPreference,
		BillCount:         v.BillCount,
	}
}

func toOrder(s queries.OrderSummary) Order {
	return Order{
		ID:          s.ID,
		Payer:       s.Payer,
		Service:     s.Service,
		Status:      s.Status,
		Fee:         s.Fee,
		CollectedAt: s.CollectedAt,
		DueAt:       s.DueAt,
		Origin:      s.Origin,
		Destination: s.Destination,
		BillID:      s.BillID,
		LastEvent:   s.LastEvent,
	}
}

func toOrders(summaries []queries.OrderSummary) []Order {
	response := make([]Order, len(summaries))
	for i, s := range summaries {
		response[i] = toOrder(s)
	}
	return response
}

func toOrderDetails(d queries.OrderDetails) OrderDetails {
	return OrderDetails{
		Order:         toOrder(d.OrderSummary),
		BillingTiming: d.BillingTiming,
		International: d.International,
		Package:       d.Package,
		History:       d.History,
	}
}

func toBills(views []queries.BillView) []Bill {
	response := make([]Bill, len(views))
	for i, v := range views {
		manifest := v.Manifest
		if manifest == nil {
			manifest = []kernel.OrderID{}
		}
		response[i] = Bill{
			ID:            v.ID,
			Kind:          v.Kind,
			Amount:        v.Amount,
			Issued:        v.Issued,
			DueDate:       v.DueDate,
			Paid:          v.Paid,
			Manifest:      manifest,
			TransactionID: v.TransactionID,
			Method:        v.Method,
		}
	}
	return response
}
