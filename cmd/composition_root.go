package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/dispatch"
	"ordering/internal/adapters/out/loyalty"
	"ordering/internal/adapters/out/notifier"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	dispatcher *dispatch.AsyncDispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	var notifierClient ports.Notifier = notifier.Noop{}
	if config.NotifierBaseURL != "" {
		notifierClient = notifier.NewClient(config.NotifierBaseURL, config.SideEffectTimeout, logger)
	}

	var loyaltyClient ports.LoyaltyService = loyalty.Noop{}
	if config.LoyaltyBaseURL != "" {
		loyaltyClient = loyalty.NewClient(config.LoyaltyBaseURL, config.SideEffectTimeout, logger)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.KafkaOrderEventsTopic),
		publisher:  publisher,
		dispatcher: dispatch.NewAsyncDispatcher(notifierClient, loyaltyClient, config.SideEffectTimeout, logger),
		logger:     logger,
	}
}

// Dispatcher is exposed so shutdown can wait for in-flight side effects.
func (c *CompositionRoot) Dispatcher() *dispatch.AsyncDispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, services.NewWholesaleRuleEvaluator(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateEditOrderItemsCommandHandler() commands.EditOrderItemsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderItemsCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	changeStatus := c.CreateChangeOrderStatusCommandHandler()
	editItems := c.CreateEditOrderItemsCommandHandler()

	return httpin.NewServer(
		&createOrder,
		&changeStatus,
		&editItems,
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateOutboxRelayJob() (*jobs.OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(c.config.OutboxBatchSize)
	if err != nil {
		return nil, err
	}
	return jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(), cmd, c.config.OutboxRelaySchedule, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	outboxRelay, err := c.CreateOutboxRelayJob()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(outboxRelay), nil
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
