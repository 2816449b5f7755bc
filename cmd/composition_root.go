package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/marketplaceapi"
	"fulfillment/internal/adapters/out/postgres"
	appservices "fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/application/usecases/workflow"
	"fulfillment/internal/core/domain/model/kernel"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and application service of the
// fulfillment service. One root owns one workflow session.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	workflow   *workflow.FulfillmentWorkflow
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph: the marketplace API client, the
// rate-shopping and label-purchase services over it, and the workflow session.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	origin, err := kernel.NewPostalCode(config.OriginZip)
	if err != nil {
		return CompositionRoot{}, err
	}

	client, err := marketplaceapi.NewClient(
		config.MarketplaceAPIURL, config.MarketplaceAPIKey, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	wf, err := workflow.NewFulfillmentWorkflow(
		origin,
		client,
		appservices.NewRateShoppingEngine(domainservices.NewAddressParser(), client),
		appservices.NewLabelPurchaseOrchestrator(client),
		domainservices.NewRateCatalog(),
		uowFactory,
		logger,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		workflow:   wf,
		logger:     logger,
	}, nil
}

// Workflow returns the single workflow session of this service instance.
func (c *CompositionRoot) Workflow() *workflow.FulfillmentWorkflow {
	return c.workflow
}

// CreateGetRecentShipmentsQueryHandler builds the recent-history read-side handler.
func (c *CompositionRoot) CreateGetRecentShipmentsQueryHandler() queries.GetRecentShipmentsQueryHandler {
	return queries.NewGetRecentShipmentsQueryHandler(c.gormDB)
}

// CreateGetOrderShipmentsQueryHandler builds the per-order history read-side handler.
func (c *CompositionRoot) CreateGetOrderShipmentsQueryHandler() queries.GetOrderShipmentsQueryHandler {
	return queries.NewGetOrderShipmentsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the operator-facing HTTP server.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.workflow,
		c.CreateGetRecentShipmentsQueryHandler(),
		c.CreateGetOrderShipmentsQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.workflow, c.logger)
}
