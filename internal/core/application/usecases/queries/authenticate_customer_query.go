package queries

import (
	"errors"
	"strings"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrAuthenticateCustomerQueryIsNotConstructed = errors.New(
	"AuthenticateCustomerQuery must be created via NewAuthenticateCustomerQuery constructor",
)

// AuthenticateCustomerQuery checks a customer's email and password.
type AuthenticateCustomerQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateCustomerQuery(email string, password string) (AuthenticateCustomerQuery, error) {
	q := AuthenticateCustomerQuery{
		email:    strings.ToLower(strings.TrimSpace(email)),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}

	var emailErr, passwordErr error
	if q.email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return AuthenticateCustomerQuery{}, err
	}

	return q, nil
}

func (q AuthenticateCustomerQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateCustomerQueryIsNotConstructed)
}

func (q AuthenticateCustomerQuery) Email() string {
	return q.email
}

func (q AuthenticateCustomerQuery) Password() string {
	return q.password
}
