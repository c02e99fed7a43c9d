// Package staff provides the Staff aggregate: employees who handle packages,
// serve customers or manage the fleet.
package staff

import (
	"errors"
	"fmt"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// ErrStaffIsNotConstructed is returned by Validate for a zero-value Staff.
var ErrStaffIsNotConstructed = errors.New("Staff must be created via NewStaff constructor")

// Staff is an employee. Repository staff are assigned to a repository by name
// and drivers to a vehicle by license plate; other roles have no assignment.
type Staff struct {
	id         kernel.StaffID
	firstName  string
	lastName   string
	role       Role
	password   kernel.PasswordHash
	assignment string
	guard      guard.ConstructorGuard
}

// NewStaff creates a staff member.
//
// Parameters:
//   - id: identifier allocated from the staff sequence
//   - firstName, lastName: required
//   - role: position of the member
//   - password: bcrypt hash of the member's password
//   - assignment: repository name for repository staff, vehicle plate for
//     drivers, empty otherwise
//
// Returns:
//   - *Staff: the member
//   - error: joined validation errors
func NewStaff(
	id kernel.StaffID,
	firstName string,
	lastName string,
	role Role,
	password kernel.PasswordHash,
	assignment string,
) (*Staff, error) {
	s := &Staff{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		guard:     guard.NewConstructorGuard(),
	}

	var nameErr error
	if s.firstName == "" {
		nameErr = errors.Join(nameErr, errs.NewValueIsRequiredError("first name"))
	}
	if s.lastName == "" {
		nameErr = errors.Join(nameErr, errs.NewValueIsRequiredError("last name"))
	}

	if err := errors.Join(
		s.setID(id),
		nameErr,
		s.setRole(role, assignment),
		s.setPassword(password),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Staff) Validate() error {
	if s == nil {
		return ErrStaffIsNotConstructed
	}
	return s.guard.Validate(ErrStaffIsNotConstructed)
}

func (s *Staff) ID() kernel.StaffID {
	return s.id
}

func (s *Staff) FirstName() string {
	return s.firstName
}

func (s *Staff) LastName() string {
	return s.lastName
}

func (s *Staff) Role() Role {
	return s.role
}

func (s *Staff) Password() kernel.PasswordHash {
	return s.password
}

// Assignment is the repository name or vehicle plate the member works with.
func (s *Staff) Assignment() string {
	return s.assignment
}

// Repository returns the assigned repository name for repository staff.
func (s *Staff) Repository() (string, bool) {
	if !s.role.NeedsRepository() {
		return "", false
	}
	return s.assignment, true
}

// Vehicle returns the assigned vehicle plate for drivers.
func (s *Staff) Vehicle() (string, bool) {
	if !s.role.NeedsVehicle() {
		return "", false
	}
	return s.assignment, true
}

func (s *Staff) VerifyPassword(plain string) bool {
	return s.password.Matches(plain)
}

// Authorize returns an AccessDeniedError unless the member's role allows the action.
func (s *Staff) Authorize(a Action) error {
	if !s.role.Allows(a) {
		return errs.NewAccessDeniedErrorWithCause("staff", s.id,
			fmt.Errorf("%s may not %s", s.role, a))
	}
	return nil
}

func (s *Staff) setID(id kernel.StaffID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Staff) setRole(role Role, assignment string) error {
	if err := role.Validate(); err != nil {
		return err
	}
	assignment = strings.TrimSpace(assignment)
	switch {
	case role.NeedsRepository() && assignment == "":
		return errs.NewValueIsRequiredError("repository assignment")
	case role.NeedsVehicle() && assignment == "":
		return errs.NewValueIsRequiredError("vehicle assignment")
	case !role.NeedsRepository() && !role.NeedsVehicle():
		assignment = ""
	}
	s.role = role
	s.assignment = assignment
	return nil
}

func (s *Staff) setPassword(password kernel.PasswordHash) error {
	if err := password.Validate(); err != nil {
		return err
	}
	s.password = password
	return nil
}
