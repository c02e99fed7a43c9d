package http

import (
	"net/http"
	"strconv"
	"strings"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RegisterStaff handles POST /api/v1/staff. The registrar is read from the
// staff header and may be absent only for the first member.
func (s *Server) RegisterStaff(c echo.Context) error {
	var body NewStaff
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	role, err := staff.ParseRole(body.Role)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRegisterStaffCommand(staffID(c), body.FirstName, body.LastName, role,
		body.Password, body.Assignment)
	if err != nil {
		return s.fail(c, err)
	}

	id, err := s.handlers.RegisterStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// ReportEvent handles POST /api/v1/orders/:id/events.
func (s *Server) ReportEvent(c echo.Context) error {
	var body OrderEvent
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID := kernel.OrderID(c.Param("id"))
	cmd, err := commands.NewReportEventCommand(staffID(c), orderID, commands.OrderEvent(body.Event),
		body.From, body.Description, s.now().UTC())
	if err != nil {
		return s.fail(c, err)
	}

	status, err := s.handlers.ReportEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, OrderStatus{ID: orderID, Status: status.String()})
}

// FilterOrders handles GET /api/v1/orders?customer=&from=&to=&delayed=.
func (s *Server) FilterOrders(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return s.fail(c, err)
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return s.fail(c, err)
	}
	var delayed bool
	if raw := strings.TrimSpace(c.QueryParam("delayed")); raw != "" {
		if delayed, err = strconv.ParseBool(raw); err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("delayed", err))
		}
	}

	filter := queries.OrderFilter{
		Customer: kernel.CustomerID(strings.TrimSpace(c.QueryParam("customer"))),
		From:     from,
		To:       to,
		Delayed:  delayed,
	}
	query, err := queries.NewFilterOrdersQuery(staffID(c), filter, s.now().UTC())
	if err != nil {
		return s.fail(c, err)
	}

	summaries, err := s.handlers.FilterOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrders(summaries))
}
