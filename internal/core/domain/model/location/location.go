package location

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// Kind discriminates the Location variants.
type Kind int

const (
	UnknownKind Kind = iota
	DestinationKind
	RepositoryKind
)

func (k Kind) String() string {
	switch k {
	case DestinationKind:
		return "destination"
	case RepositoryKind:
		return "repository"
	case UnknownKind:
		return "unknown"
	}
	return "unknown"
}

// ParseKind reads the persisted form produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "destination":
		return DestinationKind, nil
	case "repository":
		return RepositoryKind, nil
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("location kind", fmt.Errorf("%q is not a location kind", s))
}

// Location is an immutable place value: either a Destination (address only)
// or a Repository (address and name).
type Location struct {
	kind    Kind
	address string
	name    string
}

// NewDestination returns the Destination variant for a delivery address.
func NewDestination(address string) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, errs.NewValueIsRequiredError("address")
	}
	return Location{kind: DestinationKind, address: address}, nil
}

// NewRepositoryLocation returns the Repository variant. Most callers obtain it
// from Repository.Location instead.
func NewRepositoryLocation(address string, name string) (Location, error) {
	address = strings.TrimSpace(address)
	name = strings.TrimSpace(name)

	var err error
	if address == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address"))
	}
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("repository name"))
	}
	if err != nil {
		return Location{}, err
	}
	return Location{kind: RepositoryKind, address: address, name: name}, nil
}

// Restore rebuilds a Location from its persisted kind, address and name.
func Restore(kind Kind, address string, name string) (Location, error) {
	switch kind {
	case DestinationKind:
		return NewDestination(address)
	case RepositoryKind:
		return NewRepositoryLocation(address, name)
	case UnknownKind:
	}
	return Location{}, errs.NewValueIsInvalidErrorWithCause("location kind", fmt.Errorf("%d is not a location kind", kind))
}

func (l Location) Kind() Kind {
	return l.kind
}

func (l Location) Address() string {
	return l.address
}

// Name is empty for destinations.
func (l Location) Name() string {
	return l.name
}

// IsDestination reports whether the location is the final address of a delivery.
// Arrival at a destination completes the delivery; arrival at a repository does not.
func (l Location) IsDestination() bool {
	return l.kind == DestinationKind
}

// Validate rejects the zero value and unknown kinds.
func (l Location) Validate() error {
	switch l.kind {
	case DestinationKind:
		if l.address == "" {
			return errs.NewValueIsRequiredError("address")
		}
		return nil
	case RepositoryKind:
		if l.address == "" || l.name == "" {
			return errs.NewValueIsRequiredError("repository address and name")
		}
		return nil
	case UnknownKind:
	}
	return errs.NewValueIsInvalidErrorWithCause("location", fmt.Errorf("%s is not a location kind", l.kind))
}

// String renders a destination by its address and a repository by its name.
func (l Location) String() string {
	switch l.kind {
	case DestinationKind:
		return l.address
	case RepositoryKind:
		return l.name
	case UnknownKind:
	}
	return ""
}

func (l Location) IsEqual(other Location) bool {
	return l == other
}
