package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/fanout"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"
)

// CompositionRoot wires adapters into handlers. All handlers share one
// fanout hub and one unit of work factory; each Create* call hands out a
// fresh handler value.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	hub         *fanout.Hub
	verifier    services.HandoffVerifier
	deliveryFee kernel.Money
	config      Config
	logger      *slog.Logger
}

// NewCompositionRoot builds the root. Config values are trusted here;
// parse errors belong to the caller.
func NewCompositionRoot(
	config Config, gormDB *gorm.DB, logger *slog.Logger,
) (CompositionRoot, error) {
	verifier, err := services.NewHandoffVerifier(config.CodeTTL, config.CodeMaxAttempts)
	if err != nil {
		return CompositionRoot{}, err
	}

	fee, err := kernel.NewMoney(config.DeliveryFee)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:         fanout.NewHub(fanout.DefaultBufferSize),
		verifier:    verifier,
		deliveryFee: fee,
		config:      config,
		logger:      logger,
	}, nil
}

// Hub exposes the fanout hub so the WebSocket gateway can subscribe clients.
func (c *CompositionRoot) Hub() *fanout.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateMarkOrderPreparingCommandHandler() commands.MarkOrderPreparingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderPreparingCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	var f commands.ReadyUoWFactory = FuncReadyUoWFactory(func() commands.ReadyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderReadyCommandHandler(f, c.verifier, c.hub)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateRecordPickupCommandHandler() commands.RecordPickupCommandHandler {
	var f commands.HandoffUoWFactory = FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPickupCommandHandler(f, c.verifier, c.hub)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	var f commands.HandoffUoWFactory = FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTransitCommandHandler(f, c.verifier, c.hub)
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDeliveryCommandHandler(f, c.verifier, c.hub, c.deliveryFee)
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailDeliveryCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateRequeueOrderCommandHandler() commands.RequeueOrderCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequeueOrderCommandHandler(f, c.verifier, c.hub)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateReportCourierLocationCommandHandler() commands.ReportCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportCourierLocationCommandHandler(f)
}

func (c *CompositionRoot) CreatePurgeExpiredCodesCommandHandler() commands.PurgeExpiredCodesCommandHandler {
	var f commands.CodeUoWFactory = FuncCodeUoWFactory(func() commands.CodeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeExpiredCodesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetEligibleOrdersQueryHandler() queries.GetEligibleOrdersQueryHandler {
	return queries.NewGetEligibleOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierEarningsQueryHandler() queries.GetCourierEarningsQueryHandler {
	return queries.NewGetCourierEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentQueryHandler() queries.GetActiveAssignmentQueryHandler {
	return queries.NewGetActiveAssignmentQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeExpiredCodesCommandHandler(),
		c.config.CodeCleanupSpec,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncReadyUoWFactory func() commands.ReadyUoW

func (f FuncReadyUoWFactory) Create() commands.ReadyUoW {
	return f()
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW {
	return f()
}

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCodeUoWFactory func() commands.CodeUoW

func (f FuncCodeUoWFactory) Create() commands.CodeUoW {
	return f()
}
