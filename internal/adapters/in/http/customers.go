package http

import (
	"net/http"
	"strings"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RegisterCustomer handles POST /api/v1/customers.
func (s *Server) RegisterCustomer(c echo.Context) error {
	var body NewCustomer
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pref, err := order.ParseBillingTiming(body.BillingPreference)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRegisterCustomerCommand(body.FirstName, body.LastName, body.Address,
		body.Phone, body.Email, body.Password, pref)
	if err != nil {
		return s.fail(c, err)
	}

	id, err := s.handlers.RegisterCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// Login handles POST /api/v1/customers/login.
func (s *Server) Login(c echo.Context) error {
	var body Credentials
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	query, err := queries.NewAuthenticateCustomerQuery(body.Email, body.Password)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.AuthenticateCustomer.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomer(view))
}

// GetCustomer handles GET /api/v1/customers/:id.
func (s *Server) GetCustomer(c echo.Context) error {
	query, err := queries.NewGetCustomerQuery(kernel.CustomerID(c.Param("id")))
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetCustomer.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomer(view))
}

// UpdateProfile handles PUT /api/v1/customers/:id/profile. Empty fields are
// left unchanged.
func (s *Server) UpdateProfile(c echo.Context) error {
	var body ProfileChange
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pref := order.UnknownTiming
	if strings.TrimSpace(body.BillingPreference) != "" {
		parsed, err := order.ParseBillingTiming(body.BillingPreference)
		if err != nil {
			return s.fail(c, err)
		}
		pref = parsed
	}
	return s.updateProfile(c, body.Address, body.Phone, pref)
}

// UpdateBillingPreference handles PUT /api/v1/customers/:id/billing-preference.
func (s *Server) UpdateBillingPreference(c echo.Context) error {
	var body ProfileChange
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pref, err := order.ParseBillingTiming(body.BillingPreference)
	if err != nil {
		return s.fail(c, err)
	}
	return s.updateProfile(c, "", "", pref)
}

func (s *Server) updateProfile(c echo.Context, address string, phone string, pref order.BillingTiming) error {
	cmd, err := commands.NewUpdateProfileCommand(kernel.CustomerID(c.Param("id")), address, phone, pref)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.UpdateProfile.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/customers/:id/orders. The parcel is
// collected now by the member named in the body.
func (s *Server) PlaceOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	service, err := order.ParseService(body.Service)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.CustomerID(c.Param("id")),
		kernel.StaffID(body.CollectorID),
		body.Origin,
		body.Destination,
		service,
		body.International,
		commands.PackageDetails{
			Size:        order.Size(body.Package.Size),
			Weight:      body.Package.Weight,
			Value:       body.Package.Value,
			Description: body.Package.Description,
			Dangerous:   body.Package.Dangerous,
			Fragile:     body.Package.Fragile,
		},
		s.now().UTC(),
	)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, PlacedOrder{
		ID:     result.OrderID,
		Fee:    result.Fee,
		DueAt:  result.DueAt,
		BillID: result.BillID,
	})
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders?from=&to=.
// Dates use the YYYY-MM-DD form and bound the due date.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return s.fail(c, err)
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(kernel.CustomerID(c.Param("id")), from, to)
	if err != nil {
		return s.fail(c, err)
	}
	summaries, err := s.handlers.GetCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrders(summaries))
}

// GetOrder handles GET /api/v1/customers/:id/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(kernel.CustomerID(c.Param("id")), kernel.OrderID(c.Param("orderId")))
	if err != nil {
		return s.fail(c, err)
	}
	details, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderDetails(details))
}

// ListBills handles GET /api/v1/customers/:id/bills.
func (s *Server) ListBills(c echo.Context) error {
	query, err := queries.NewListBillsQuery(kernel.CustomerID(c.Param("id")))
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListBills.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toBills(views))
}

// PayBill handles POST /api/v1/customers/:id/bills/:billId/payment.
func (s *Server) PayBill(c echo.Context) error {
	var body Payment
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	method, err := bill.ParsePaymentMethod(body.Method)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewPayBillCommand(kernel.CustomerID(c.Param("id")), kernel.BillID(c.Param("billId")),
		body.TransactionID, method)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.PayBill.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// dateParam reads an optional YYYY-MM-DD query parameter as a UTC day.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &day, nil
}
