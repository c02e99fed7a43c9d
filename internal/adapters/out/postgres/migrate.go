package postgres

import (
	"fmt"

	"parcel/internal/adapters/out/postgres/customerrepo"
	"parcel/internal/adapters/out/postgres/fleetrepo"
	"parcel/internal/adapters/out/postgres/orderrepo"
	"parcel/internal/adapters/out/postgres/staffrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&customerrepo.BillDTO{},
		&staffrepo.StaffDTO{},
		&fleetrepo.VehicleDTO{},
		&fleetrepo.RepositoryDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
