// Package orderrepo persists orders and their history. An order is one row in
// orders; every history entry is a row in order_entries keyed by its UUID.
package orderrepo

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID            string      `gorm:"type:varchar(14);primaryKey"`
	Payer         string      `gorm:"type:varchar(6);not null;index"`
	Timing        int         `gorm:"type:smallint;not null"`
	Service       int         `gorm:"type:smallint;not null"`
	CollectedAt   time.Time   `gorm:"not null"`
	DueAt         time.Time   `gorm:"not null;index"`
	Origin        LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination   LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	International bool
	Package       PackageDTO `gorm:"embedded;embeddedPrefix:package_"`
	Fee           *float64
	BillID        *string    `gorm:"type:varchar(16);index"`
	Status        int        `gorm:"type:smallint;not null;index"`
	Entries       []EntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LocationDTO struct {
	Kind    int    `gorm:"type:smallint"`
	Address string `gorm:"type:varchar(255)"`
	Name    string `gorm:"type:varchar(255)"`
}

type PackageDTO struct {
	Length      int
	Width       int
	Height      int
	Weight      float64
	Value       float64
	Description string
	Dangerous   bool
	Fragile     bool
}

// EntryDTO is one history entry. Seq keeps the order of the log.
type EntryDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID      string      `gorm:"type:varchar(14);not null;index"`
	Seq          int         `gorm:"not null"`
	Kind         int         `gorm:"type:smallint;not null"`
	Signature    string      `gorm:"type:varchar(64);not null"`
	RecordedAt   time.Time   `gorm:"not null"`
	CarrierKind  int         `gorm:"type:smallint"`
	CarrierPlate string      `gorm:"type:varchar(32)"`
	Origin       LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination  LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Summary      string
	Detail       string
}

func (EntryDTO) TableName() string {
	return "order_entries"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.State()

	var billID *string
	if s.BillID != nil {
		id := s.BillID.String()
		billID = &id
	}

	entries := make([]EntryDTO, 0, len(s.Log))
	for i, e := range s.Log {
		entries = append(entries, entryFromDomain(s.ID, i, e))
	}

	return OrderDTO{
		ID:            s.ID.String(),
		Payer:         s.Payer.String(),
		Timing:        int(s.Timing),
		Service:       int(s.Service),
		CollectedAt:   s.CollectedAt,
		DueAt:         s.DueAt,
		Origin:        locationFromDomain(s.Origin),
		Destination:   locationFromDomain(s.Destination),
		International: s.International,
		Package: PackageDTO{
			Length:      s.Package.Size[0],
			Width:       s.Package.Size[1],
			Height:      s.Package.Size[2],
			Weight:      s.Package.Weight,
			Value:       s.Package.Value,
			Description: s.Package.ContentDescription,
			Dangerous:   s.Package.IsDangerous,
			Fragile:     s.Package.IsFragile,
		},
		Fee:     s.Fee,
		BillID:  billID,
		Status:  int(s.Status),
		Entries: entries,
	}
}

func entryFromDomain(orderID kernel.OrderID, seq int, e order.Entry) EntryDTO {
	s := e.State()
	dto := EntryDTO{
		ID:         s.ID.Google(),
		OrderID:    orderID.String(),
		Seq:        seq,
		Kind:       int(s.Kind),
		Signature:  s.Signature,
		RecordedAt: s.RecordedAt,
		Summary:    s.Summary,
		Detail:     s.Detail,
	}
	if s.Kind == order.TransitEntry {
		dto.CarrierKind = int(s.Carrier.Kind())
		dto.CarrierPlate = s.Carrier.Plate()
		dto.Origin = locationFromDomain(s.Origin)
	}
	if s.Kind != order.OtherEntry {
		dto.Destination = locationFromDomain(s.Destination)
	}
	return dto
}

func locationFromDomain(l location.Location) LocationDTO {
	return LocationDTO{
		Kind:    int(l.Kind()),
		Address: l.Address(),
		Name:    l.Name(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	origin, err := restoreLocation(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := restoreLocation(dto.Destination)
	if err != nil {
		return nil, err
	}

	log := make([]order.Entry, 0, len(dto.Entries))
	for _, entryDTO := range dto.Entries {
		e, entryErr := entryToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		log = append(log, e)
	}

	var billID *kernel.BillID
	if dto.BillID != nil {
		id := kernel.BillID(*dto.BillID)
		billID = &id
	}

	return order.RestoreOrder(order.State{
		ID:            kernel.OrderID(dto.ID),
		Payer:         kernel.CustomerID(dto.Payer),
		Timing:        order.BillingTiming(dto.Timing),
		Service:       order.Service(dto.Service),
		CollectedAt:   dto.CollectedAt.UTC(),
		DueAt:         dto.DueAt.UTC(),
		Origin:        origin,
		Destination:   destination,
		International: dto.International,
		Package: order.PackageSnapshot{
			Size:               order.Size{dto.Package.Length, dto.Package.Width, dto.Package.Height},
			Weight:             dto.Package.Weight,
			Value:              dto.Package.Value,
			ContentDescription: dto.Package.Description,
			IsDangerous:        dto.Package.Dangerous,
			IsFragile:          dto.Package.Fragile,
		},
		Fee:    dto.Fee,
		BillID: billID,
		Status: order.Status(dto.Status),
		Log:    log,
	})
}

func entryToDomain(dto EntryDTO) (order.Entry, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return order.Entry{}, err
	}

	s := order.EntryState{
		ID:         id,
		Kind:       order.EntryKind(dto.Kind),
		Signature:  dto.Signature,
		RecordedAt: dto.RecordedAt.UTC(),
		Summary:    dto.Summary,
		Detail:     dto.Detail,
	}

	if s.Kind == order.TransitEntry {
		if s.Carrier, err = vehicle.NewCarrier(vehicle.Kind(dto.CarrierKind), dto.CarrierPlate); err != nil {
			return order.Entry{}, err
		}
		if s.Origin, err = restoreLocation(dto.Origin); err != nil {
			return order.Entry{}, err
		}
	}
	if s.Kind == order.TransitEntry || s.Kind == order.ArrivalEntry {
		if s.Destination, err = restoreLocation(dto.Destination); err != nil {
			return order.Entry{}, err
		}
	}

	return order.RestoreEntry(s)
}

func restoreLocation(dto LocationDTO) (location.Location, error) {
	return location.Restore(location.Kind(dto.Kind), dto.Address, dto.Name)
}
