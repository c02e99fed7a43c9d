package location

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

// ErrRepositoryIsNotConstructed is returned by Validate for a zero-value Repository.
var ErrRepositoryIsNotConstructed = errors.New("Repository must be created via NewRepository constructor")

// Repository is a depot where packages wait between legs of a delivery.
//
// The repository name is its identity. The inventory records which orders are
// physically at the repository right now; staff add to it with Receive when a
// package arrives and remove from it with Ship when it leaves on a vehicle.
type Repository struct {
	location  Location
	inventory kernel.OrderSet
	guard     guard.ConstructorGuard
}

// NewRepository creates an empty repository.
//
// Parameters:
//   - address: street address of the depot (required)
//   - name: unique repository name (required)
//
// Returns:
//   - *Repository: the repository with an empty inventory
//   - error: joined validation errors
func NewRepository(address string, name string) (*Repository, error) {
	loc, err := NewRepositoryLocation(address, name)
	if err != nil {
		return nil, err
	}
	return &Repository{
		location:  loc,
		inventory: kernel.NewOrderSet(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreRepository rebuilds a repository and its inventory from persistence.
func RestoreRepository(address string, name string, inventory []kernel.OrderID) (*Repository, error) {
	repo, err := NewRepository(address, name)
	if err != nil {
		return nil, err
	}

	var invalid error
	for _, id := range inventory {
		invalid = errors.Join(invalid, id.Validate())
	}
	if invalid != nil {
		return nil, invalid
	}

	repo.inventory.Add(inventory...)
	return repo, nil
}

func (r *Repository) Validate() error {
	if r == nil {
		return ErrRepositoryIsNotConstructed
	}
	return r.guard.Validate(ErrRepositoryIsNotConstructed)
}

// Location returns the Repository variant of Location for use as an order
// origin, destination or arrival point.
func (r *Repository) Location() Location {
	return r.location
}

func (r *Repository) Name() string {
	return r.location.name
}

func (r *Repository) Address() string {
	return r.location.address
}

// Receive adds orders to the inventory. Orders already held are ignored.
func (r *Repository) Receive(ids ...kernel.OrderID) {
	r.inventory.Add(ids...)
}

// Ship removes orders from the inventory. Orders not held are ignored.
func (r *Repository) Ship(ids ...kernel.OrderID) {
	r.inventory.Remove(ids...)
}

func (r *Repository) Holds(id kernel.OrderID) bool {
	return r.inventory.Has(id)
}

// Inventory returns the held order identifiers in ascending order.
func (r *Repository) Inventory() []kernel.OrderID {
	return r.inventory.Sorted()
}

func (r *Repository) String() string {
	return r.location.String()
}
