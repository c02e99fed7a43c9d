package http

import (
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// AddVehicle handles POST /api/v1/vehicles.
func (s *Server) AddVehicle(c echo.Context) error {
	var body NewVehicle
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAddVehicleCommand(staffID(c), body.Type, body.Plate)
	if err != nil {
		return s.fail(c, err)
	}
	carrier, err := s.handlers.AddVehicle.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Vehicle{Kind: carrier.Kind().String(), Plate: carrier.Plate()})
}

// AddRepository handles POST /api/v1/repositories.
func (s *Server) AddRepository(c echo.Context) error {
	var body NewRepository
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAddRepositoryCommand(staffID(c), body.Address, body.Name)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.AddRepository.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: cmd.Name()})
}

// VehicleOrders handles GET /api/v1/vehicles/:plate/orders.
func (s *Server) VehicleOrders(c echo.Context) error {
	return s.fleetOrders(c, c.Param("plate"), "")
}

// RepositoryOrders handles GET /api/v1/repositories/:name/orders.
func (s *Server) RepositoryOrders(c echo.Context) error {
	return s.fleetOrders(c, "", c.Param("name"))
}

func (s *Server) fleetOrders(c echo.Context, plate string, repository string) error {
	query, err := queries.NewFleetOrdersQuery(staffID(c), plate, repository)
	if err != nil {
		return s.fail(c, err)
	}
	summaries, err := s.handlers.FleetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrders(summaries))
}
