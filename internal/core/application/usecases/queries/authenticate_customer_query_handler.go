package queries

import (
	"context"
	"errors"

	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// AuthenticateCustomerQueryHandler verifies customer credentials. Every
// attempt ends up in the security log; unknown emails and wrong passwords
// fail the same way.
type AuthenticateCustomerQueryHandler struct {
	customers   ports.CustomerRepository
	securityLog ports.SecurityLog
}

func NewAuthenticateCustomerQueryHandler(
	customers ports.CustomerRepository,
	securityLog ports.SecurityLog,
) AuthenticateCustomerQueryHandler {
	return AuthenticateCustomerQueryHandler{
		customers:   customers,
		securityLog: securityLog,
	}
}

func (h AuthenticateCustomerQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateCustomerQuery,
) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}

	c, err := h.customers.GetByEmail(ctx, query.Email())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		h.securityLog.Record(ports.EventLoginFailed, query.Email(), "unknown email")
		return CustomerView{}, errs.NewAccessDeniedError("credentials", query.Email())
	case err != nil:
		return CustomerView{}, err
	}

	if !c.VerifyPassword(query.Password()) {
		h.securityLog.Record(ports.EventLoginFailed, c.ID().String(), "wrong password")
		return CustomerView{}, errs.NewAccessDeniedError("credentials", query.Email())
	}

	h.securityLog.Record(ports.EventLoginSuccess, c.ID().String(), query.Email())
	return toCustomerView(c), nil
}
