package cmd

import (
	"fmt"
	"time"

	httpadapter "parcel/internal/adapters/in/http"
	"parcel/internal/adapters/out/payment"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/core/application/registry"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/bill"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/jobs"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	orders      *registry.Orders
	policy      services.BillingPolicy
	tracker     services.DeliveryTracker
	securityLog ports.SecurityLog
	verifier    bill.TransactionVerifier
	logger      *zap.Logger
}

// NewCompositionRoot wires the use cases to gorm. The order registry is
// loaded from the database here, so the schema must already be migrated.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	securityLog ports.SecurityLog,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, logger)

	orders, err := registry.NewOrders(uowFactory.Create().OrderRepository())
	if err != nil {
		return nil, fmt.Errorf("load order registry: %w", err)
	}

	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  uowFactory,
		orders:      orders,
		policy:      services.NewBillingPolicy(),
		tracker:     services.NewDeliveryTracker(),
		securityLog: securityLog,
		verifier:    payment.NewStubVerifier(config.DeclinedPrefix, logger.Named("payment")),
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) customerUoWFactory() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) staffUoWFactory() commands.StaffUoWFactory {
	return FuncStaffUoWFactory(func() commands.StaffUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// Commands

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	return commands.NewRegisterCustomerCommandHandler(c.customerUoWFactory(), c.securityLog, c.config.PasswordCost)
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	return commands.NewUpdateProfileCommandHandler(c.customerUoWFactory(), c.securityLog)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.fullUoWFactory(), c.orders, c.policy)
}

func (c *CompositionRoot) CreatePayBillCommandHandler() commands.PayBillCommandHandler {
	return commands.NewPayBillCommandHandler(c.customerUoWFactory(), c.verifier, c.securityLog)
}

func (c *CompositionRoot) CreateRegisterStaffCommandHandler() commands.RegisterStaffCommandHandler {
	return commands.NewRegisterStaffCommandHandler(c.staffUoWFactory(), c.securityLog, c.config.PasswordCost)
}

func (c *CompositionRoot) CreateReportEventCommandHandler() commands.ReportEventCommandHandler {
	return commands.NewReportEventCommandHandler(c.fullUoWFactory(), c.orders, c.tracker, c.policy)
}

func (c *CompositionRoot) CreateAddVehicleCommandHandler() commands.AddVehicleCommandHandler {
	return commands.NewAddVehicleCommandHandler(c.staffUoWFactory())
}

func (c *CompositionRoot) CreateAddRepositoryCommandHandler() commands.AddRepositoryCommandHandler {
	return commands.NewAddRepositoryCommandHandler(c.staffUoWFactory())
}

func (c *CompositionRoot) CreateIssueMonthlyBillsCommandHandler() commands.IssueMonthlyBillsCommandHandler {
	return commands.NewIssueMonthlyBillsCommandHandler(c.customerUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateFlagDelayedOrdersCommandHandler() commands.FlagDelayedOrdersCommandHandler {
	return commands.NewFlagDelayedOrdersCommandHandler(c.orders, c.tracker)
}

func (c *CompositionRoot) CreateFlushOrdersCommandHandler() commands.FlushOrdersCommandHandler {
	return commands.NewFlushOrdersCommandHandler(c.orders)
}

// Queries

func (c *CompositionRoot) CreateAuthenticateCustomerQueryHandler() queries.AuthenticateCustomerQueryHandler {
	return queries.NewAuthenticateCustomerQueryHandler(c.uowFactory.Create().CustomerRepository(), c.securityLog)
}

func (c *CompositionRoot) CreateGetCustomerQueryHandler() queries.GetCustomerQueryHandler {
	return queries.NewGetCustomerQueryHandler(c.uowFactory.Create().CustomerRepository())
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.uowFactory.Create().CustomerRepository(), c.orders)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().CustomerRepository(), c.orders)
}

func (c *CompositionRoot) CreateListBillsQueryHandler() queries.ListBillsQueryHandler {
	return queries.NewListBillsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFilterOrdersQueryHandler() queries.FilterOrdersQueryHandler {
	return queries.NewFilterOrdersQueryHandler(c.uowFactory.Create().StaffRepository(), c.orders)
}

func (c *CompositionRoot) CreateFleetOrdersQueryHandler() queries.FleetOrdersQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewFleetOrdersQueryHandler(uow.StaffRepository(), uow.FleetRepository(), c.orders)
}

// Adapters

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	handlers := httpadapter.Handlers{
		RegisterCustomer: c.CreateRegisterCustomerCommandHandler(),
		UpdateProfile:    c.CreateUpdateProfileCommandHandler(),
		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		PayBill:          c.CreatePayBillCommandHandler(),
		RegisterStaff:    c.CreateRegisterStaffCommandHandler(),
		ReportEvent:      c.CreateReportEventCommandHandler(),
		AddVehicle:       c.CreateAddVehicleCommandHandler(),
		AddRepository:    c.CreateAddRepositoryCommandHandler(),

		AuthenticateCustomer: c.CreateAuthenticateCustomerQueryHandler(),
		GetCustomer:          c.CreateGetCustomerQueryHandler(),
		GetCustomerOrders:    c.CreateGetCustomerOrdersQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListBills:            c.CreateListBillsQueryHandler(),
		FilterOrders:         c.CreateFilterOrdersQueryHandler(),
		FleetOrders:          c.CreateFleetOrdersQueryHandler(),
	}
	return httpadapter.NewServer(handlers, time.Now, c.logger.Named("http")).
		WithLoginRateLimit(rate.Limit(c.config.LoginAttemptsPerMinute/60), c.config.LoginBurst)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateIssueMonthlyBillsCommandHandler(),
		c.CreateFlagDelayedOrdersCommandHandler(),
		c.CreateFlushOrdersCommandHandler(),
		jobs.Schedules{
			MonthlyBilling: c.config.MonthlyBillingSchedule,
			DelayedOrders:  c.config.DelayedOrdersSchedule,
			OrdersFlush:    c.config.OrdersFlushSchedule,
		},
		c.logger.Named("jobs"),
	)
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncStaffUoWFactory func() commands.StaffUoW

func (f FuncStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
