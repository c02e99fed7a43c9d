package staff_test

import (
	"errors"
	"testing"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T) kernel.PasswordHash {
	t.Helper()
	h, err := kernel.HashPassword("securepass", bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewStaff(t *testing.T) {
	password := hash(t)

	tests := []struct {
		name       string
		role       staff.Role
		assignment string
		wantErr    error
		wantAssign string
	}{
		{name: "driver with vehicle", role: staff.Driver, assignment: "AAA-0000", wantAssign: "AAA-0000"},
		{name: "repo staff with repository", role: staff.RepoStaff, assignment: "Repo0", wantAssign: "Repo0"},
		{name: "management drops assignment", role: staff.Management, assignment: "Repo0", wantAssign: ""},
		{name: "driver without vehicle", role: staff.Driver, wantErr: errs.ErrValueIsRequired},
		{name: "repo staff without repository", role: staff.RepoStaff, wantErr: errs.ErrValueIsRequired},
		{name: "unknown role", role: staff.UnknownRole, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := staff.NewStaff("S00001", "John", "Doe", tt.role, password, tt.assignment)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, s.Validate())
			assert.Equal(t, tt.wantAssign, s.Assignment())
			assert.True(t, s.VerifyPassword("securepass"))
			assert.False(t, s.VerifyPassword("wrongpass"))
		})
	}
}

func TestStaff_Assignments(t *testing.T) {
	driver, err := staff.NewStaff("S00002", "Dana", "Road", staff.Driver, hash(t), "VAN-1")
	require.NoError(t, err)

	plate, ok := driver.Vehicle()
	assert.True(t, ok)
	assert.Equal(t, "VAN-1", plate)
	_, ok = driver.Repository()
	assert.False(t, ok)
}

func TestStaff_Authorize(t *testing.T) {
	tests := []struct {
		role    staff.Role
		allowed []staff.Action
		denied  []staff.Action
	}{
		{
			role:    staff.RepoStaff,
			allowed: []staff.Action{staff.ReportArrival, staff.ReportDamage, staff.ReportLoss},
			denied:  []staff.Action{staff.ReportTransit, staff.ReportDelivered, staff.FilterOrders, staff.ManageFleet},
		},
		{
			role:    staff.Driver,
			allowed: []staff.Action{staff.ReportTransit, staff.ReportDelivered, staff.ReportDamage, staff.ReportLoss},
			denied:  []staff.Action{staff.ReportArrival, staff.FilterOrders},
		},
		{
			role:    staff.CustomerService,
			allowed: []staff.Action{staff.FilterOrders},
			denied:  []staff.Action{staff.FilterFleet, staff.ManageFleet, staff.ReportDamage},
		},
		{
			role:    staff.Management,
			allowed: []staff.Action{staff.FilterOrders, staff.FilterFleet, staff.ManageFleet, staff.ManageStaff},
			denied:  []staff.Action{staff.ReportArrival, staff.ReportTransit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			s, err := staff.NewStaff("S00003", "Ann", "Lee", tt.role, hash(t), "X-1")
			require.NoError(t, err)

			for _, a := range tt.allowed {
				assert.NoError(t, s.Authorize(a), a.String())
			}
			for _, a := range tt.denied {
				assert.True(t, errors.Is(s.Authorize(a), errs.ErrAccessDenied), a.String())
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []staff.Role{staff.RepoStaff, staff.Driver, staff.CustomerService, staff.Management} {
		parsed, err := staff.ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	parsed, err := staff.ParseRole("Customer Service")
	require.NoError(t, err)
	assert.Equal(t, staff.CustomerService, parsed)

	_, err = staff.ParseRole("janitor")
	assert.Error(t, err)
}
