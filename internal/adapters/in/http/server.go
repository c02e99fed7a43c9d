// Package http exposes the parcel service over a JSON API built on echo.
package http

import (
	"context"
	"net/http"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StaffHeader carries the ID of the staff member making a request.
const StaffHeader = "X-Staff-ID"

type (
	registerCustomerHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterCustomerCommand) (kernel.CustomerID, error)
	}
	updateProfileHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateProfileCommand) error
	}
	placeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderResult, error)
	}
	payBillHandler interface {
		Handle(ctx context.Context, cmd commands.PayBillCommand) error
	}
	registerStaffHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterStaffCommand) (kernel.StaffID, error)
	}
	reportEventHandler interface {
		Handle(ctx context.Context, cmd commands.ReportEventCommand) (order.Status, error)
	}
	addVehicleHandler interface {
		Handle(ctx context.Context, cmd commands.AddVehicleCommand) (vehicle.Carrier, error)
	}
	addRepositoryHandler interface {
		Handle(ctx context.Context, cmd commands.AddRepositoryCommand) error
	}

	authenticateCustomerHandler interface {
		Handle(ctx context.Context, query queries.AuthenticateCustomerQuery) (queries.CustomerView, error)
	}
	getCustomerHandler interface {
		Handle(ctx context.Context, query queries.GetCustomerQuery) (queries.CustomerView, error)
	}
	getCustomerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderSummary, error)
	}
	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error)
	}
	listBillsHandler interface {
		Handle(ctx context.Context, query queries.ListBillsQuery) ([]queries.BillView, error)
	}
	filterOrdersHandler interface {
		Handle(ctx context.Context, query queries.FilterOrdersQuery) ([]queries.OrderSummary, error)
	}
	fleetOrdersHandler interface {
		Handle(ctx context.Context, query queries.FleetOrdersQuery) ([]queries.OrderSummary, error)
	}
)

// Handlers lists the use cases served by the API.
type Handlers struct {
	// Command handlers
	RegisterCustomer registerCustomerHandler
	UpdateProfile    updateProfileHandler
	PlaceOrder       placeOrderHandler
	PayBill          payBillHandler
	RegisterStaff    registerStaffHandler
	ReportEvent      reportEventHandler
	AddVehicle       addVehicleHandler
	AddRepository    addRepositoryHandler

	// Query handlers
	AuthenticateCustomer authenticateCustomerHandler
	GetCustomer          getCustomerHandler
	GetCustomerOrders    getCustomerOrdersHandler
	GetOrder             getOrderHandler
	ListBills            listBillsHandler
	FilterOrders         filterOrdersHandler
	FleetOrders          fleetOrdersHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers   Handlers
	now        func() time.Time
	logger     *zap.Logger
	loginLimit rate.Limit
	loginBurst int
}

func NewServer(handlers Handlers, now func() time.Time, logger *zap.Logger) *Server {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		now:      now,
		logger:   logger,
	}
}

// WithLoginRateLimit limits login attempts per client IP. A zero limit
// leaves the endpoint unlimited.
func (s *Server) WithLoginRateLimit(limit rate.Limit, burst int) *Server {
	s.loginLimit = limit
	s.loginBurst = burst
	return s
}

// NewEcho builds the echo instance with middleware and every route.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	e.Use(requestMetrics())

	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/customers", s.RegisterCustomer)
	api.POST("/customers/login", s.Login, s.loginLimiter()...)
	api.GET("/customers/:id", s.GetCustomer)
	api.PUT("/customers/:id/profile", s.UpdateProfile)
	api.PUT("/customers/:id/billing-preference", s.UpdateBillingPreference)
	api.POST("/customers/:id/orders", s.PlaceOrder)
	api.GET("/customers/:id/orders", s.GetCustomerOrders)
	api.GET("/customers/:id/orders/:orderId", s.GetOrder)
	api.GET("/customers/:id/bills", s.ListBills)
	api.POST("/customers/:id/bills/:billId/payment", s.PayBill)

	api.POST("/staff", s.RegisterStaff)
	api.POST("/orders/:id/events", s.ReportEvent)
	api.GET("/orders", s.FilterOrders)

	api.POST("/vehicles", s.AddVehicle)
	api.GET("/vehicles/:plate/orders", s.VehicleOrders)
	api.POST("/repositories", s.AddRepository)
	api.GET("/repositories/:name/orders", s.RepositoryOrders)
}

func (s *Server) loginLimiter() []echo.MiddlewareFunc {
	if s.loginLimit <= 0 {
		return nil
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      s.loginLimit,
		Burst:     s.loginBurst,
		ExpiresIn: 10 * time.Minute,
	})
	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			s.logger.Warn("login rate limited", zap.String("client", identifier))
			return c.JSON(http.StatusTooManyRequests, Error{Code: http.StatusTooManyRequests, Message: "too many login attempts"})
		},
	})}
}

func staffID(c echo.Context) kernel.StaffID {
	return kernel.StaffID(c.Request().Header.Get(StaffHeader))
}
