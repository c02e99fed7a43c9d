package staff

import (
	"fmt"
	"strings"

	"parcel/internal/pkg/errs"
)

// Role is a staff member's position. It decides which actions the member may
// take and whether the member is assigned to a repository or a vehicle.
type Role int

const (
	UnknownRole Role = iota
	RepoStaff
	Driver
	CustomerService
	Management
)

// Action is something a staff member may be allowed to do.
type Action int

const (
	ReportArrival Action = iota + 1
	ReportTransit
	ReportDelivered
	ReportDamage
	ReportLoss
	FilterOrders
	FilterFleet
	ManageFleet
	ManageStaff
)

var roleNames = map[Role]string{
	RepoStaff:       "repo_staff",
	Driver:          "driver",
	CustomerService: "customer_service",
	Management:      "management",
}

var actionNames = map[Action]string{
	ReportArrival:   "report arrival",
	ReportTransit:   "report transit",
	ReportDelivered: "report delivery",
	ReportDamage:    "report damage",
	ReportLoss:      "report loss",
	FilterOrders:    "filter orders",
	FilterFleet:     "filter vehicle and repository orders",
	ManageFleet:     "manage vehicles and repositories",
	ManageStaff:     "register staff",
}

var permissions = map[Role]map[Action]bool{
	RepoStaff: {
		ReportArrival: true,
		ReportDamage:  true,
		ReportLoss:    true,
	},
	Driver: {
		ReportTransit:   true,
		ReportDelivered: true,
		ReportDamage:    true,
		ReportLoss:      true,
	},
	CustomerService: {
		FilterOrders: true,
	},
	Management: {
		FilterOrders: true,
		FilterFleet:  true,
		ManageFleet:  true,
		ManageStaff:  true,
	},
}

func ParseRole(s string) (Role, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a staff role", s))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a staff role", r))
	}
	return nil
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "unknown"
}

// Allows reports whether the role grants the action.
func (r Role) Allows(a Action) bool {
	return permissions[r][a]
}

// NeedsRepository reports whether members with this role work at a repository.
func (r Role) NeedsRepository() bool {
	return r == RepoStaff
}

// NeedsVehicle reports whether members with this role drive a vehicle.
func (r Role) NeedsVehicle() bool {
	return r == Driver
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown action"
}
