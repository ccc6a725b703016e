package cmd

import (
	"log/slog"

	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	numbers    *services.OrderNumberGenerator
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the unit of work to publisher, which receives the
// events of every committed order.
func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher),
		numbers:    services.NewOrderNumberGenerator(),
		clock:      clock.NewSystem(),
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.numbers, c.clock)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateSubmitDeliveryCommandHandler() commands.SubmitDeliveryCommandHandler {
	return commands.NewSubmitDeliveryCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateRequestRevisionCommandHandler() commands.RequestRevisionCommandHandler {
	return commands.NewRequestRevisionCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateResolveRevisionCommandHandler() commands.ResolveRevisionCommandHandler {
	return commands.NewResolveRevisionCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateRefundEscrowCommandHandler() commands.RefundEscrowCommandHandler {
	return commands.NewRefundEscrowCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateFlagOverdueOrdersCommandHandler() commands.FlagOverdueOrdersCommandHandler {
	return commands.NewFlagOverdueOrdersCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCapabilitiesQueryHandler() queries.GetOrderCapabilitiesQueryHandler {
	var f queries.OrderReaderFactory = FuncOrderReaderFactory(func() queries.OrderReader {
		return c.uowFactory.Create()
	})
	return queries.NewGetOrderCapabilitiesQueryHandler(f)
}

func (c *CompositionRoot) CreateListAuditRecordsQueryHandler() queries.ListAuditRecordsQueryHandler {
	return queries.NewListAuditRecordsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AcceptOrder:      c.CreateAcceptOrderCommandHandler(),
		TransitionOrder:  c.CreateTransitionOrderCommandHandler(),
		SubmitDelivery:   c.CreateSubmitDeliveryCommandHandler(),
		RequestRevision:  c.CreateRequestRevisionCommandHandler(),
		ResolveRevision:  c.CreateResolveRevisionCommandHandler(),
		CompleteOrder:    c.CreateCompleteOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		RefundEscrow:     c.CreateRefundEscrowCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		GetCapabilities:  c.CreateGetOrderCapabilitiesQueryHandler(),
		ListAuditRecords: c.CreateListAuditRecordsQueryHandler(),
	})
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateFlagOverdueOrdersCommandHandler(),
		c.config.OverdueScanSchedule,
		c.config.OverdueBatchSize,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderReaderFactory func() queries.OrderReader

func (f FuncOrderReaderFactory) Create() queries.OrderReader {
	return f()
}
