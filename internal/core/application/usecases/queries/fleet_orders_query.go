package queries

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrFleetOrdersQueryIsNotConstructed = errors.New(
	"FleetOrdersQuery must be created via NewFleetOrdersQuery constructor",
)

// FleetOrdersQuery lists the orders on board a vehicle or stored in a
// repository. Exactly one of plate and repository must be set.
type FleetOrdersQuery struct {
	staffID    kernel.StaffID
	plate      string
	repository string

	guard guard.ConstructorGuard
}

func NewFleetOrdersQuery(staffID kernel.StaffID, plate string, repository string) (FleetOrdersQuery, error) {
	q := FleetOrdersQuery{
		staffID:    staffID,
		plate:      strings.TrimSpace(plate),
		repository: strings.TrimSpace(repository),
		guard:      guard.NewConstructorGuard(),
	}

	var targetErr error
	switch {
	case q.plate == "" && q.repository == "":
		targetErr = errs.NewValueIsRequiredError("vehicle or repository")
	case q.plate != "" && q.repository != "":
		targetErr = errs.NewValueIsInvalidErrorWithCause("fleet target",
			errors.New("set either a vehicle or a repository"))
	}

	if err := errors.Join(staffID.Validate(), targetErr); err != nil {
		return FleetOrdersQuery{}, err
	}
	return q, nil
}

func (q FleetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFleetOrdersQueryIsNotConstructed)
}

func (q FleetOrdersQuery) StaffID() kernel.StaffID {
	return q.staffID
}

func (q FleetOrdersQuery) Plate() string {
	return q.plate
}

func (q FleetOrdersQuery) Repository() string {
	return q.repository
}
