package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// ShipmentQueryHandlerTestSuite provides integration tests for the shipment
// read-side handlers against a real PostgreSQL database seeded through the
// repository.
type ShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	recentHandler  queries.GetRecentShipmentsQueryHandler
	byOrderHandler queries.GetOrderShipmentsQueryHandler
	repository     *shipmentrepo.GormShipmentRepository
}

func (suite *ShipmentQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}))

	suite.recentHandler = queries.NewGetRecentShipmentsQueryHandler(db)
	suite.byOrderHandler = queries.NewGetOrderShipmentsQueryHandler(db)
	suite.repository = shipmentrepo.NewGormShipmentRepository(db, noopTracker{})
}

func (suite *ShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ShipmentQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments").Error
	suite.Require().NoError(err)
}

func (suite *ShipmentQueryHandlerTestSuite) seedShipment(
	orderID string, carrier shipment.Carrier, cost string, purchasedAt time.Time,
) *shipment.Record {
	quote := shipment.RateQuote{
		Carrier: carrier,
		Service: "Ground Advantage",
		Cost:    decimal.RequireFromString(cost),
	}
	record, err := shipment.NewRecord(
		kernel.NewUUID(),
		orderID,
		quote,
		"9400100000000000000001",
		"https://labels.example/1.pdf",
		purchasedAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), record))
	return record
}

func (suite *ShipmentQueryHandlerTestSuite) TestRecent_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetRecentShipmentsQuery(10)
	suite.Require().NoError(err)

	result, err := suite.recentHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ShipmentQueryHandlerTestSuite) TestRecent_ReturnsNewestFirstWithinLimit() {
	base := time.Now().UTC().Truncate(time.Second)
	oldest := suite.seedShipment("114-001", shipment.USPS, "8.40", base.Add(-3*time.Hour))
	middle := suite.seedShipment("114-002", shipment.UPS, "9.75", base.Add(-2*time.Hour))
	newest := suite.seedShipment("114-003", shipment.FedEx, "11.20", base.Add(-time.Hour))

	query, err := queries.NewGetRecentShipmentsQuery(2)
	suite.Require().NoError(err)

	result, err := suite.recentHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)

	for _, r := range result {
		suite.NotEqual(oldest.ID(), r.ID, "Oldest shipment should fall outside the limit")
	}
}

func (suite *ShipmentQueryHandlerTestSuite) TestRecent_MapsAllFields() {
	purchasedAt := time.Now().UTC().Truncate(time.Second)
	record := suite.seedShipment("114-001", shipment.UPS, "9.75", purchasedAt)

	query, err := queries.NewGetRecentShipmentsQuery(10)
	suite.Require().NoError(err)

	result, err := suite.recentHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(record.ID(), result[0].ID)
	suite.Equal("114-001", result[0].OrderID)
	suite.Equal("UPS", result[0].Carrier)
	suite.Equal("Ground Advantage", result[0].Service)
	suite.True(decimal.RequireFromString("9.75").Equal(result[0].Cost))
	suite.Equal(record.TrackingNumber(), result[0].TrackingNumber)
	suite.Equal(record.LabelURL(), result[0].LabelURL)
	suite.WithinDuration(purchasedAt, result[0].PurchasedAt, time.Second)
}

func (suite *ShipmentQueryHandlerTestSuite) TestRecent_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetRecentShipmentsQuery{}

	result, err := suite.recentHandler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetRecentShipmentsQuery constructor")
}

func (suite *ShipmentQueryHandlerTestSuite) TestByOrder_ReturnsOnlyThatOrderNewestFirst() {
	base := time.Now().UTC().Truncate(time.Second)
	first := suite.seedShipment("114-001", shipment.USPS, "8.40", base.Add(-2*time.Hour))
	retry := suite.seedShipment("114-001", shipment.USPS, "8.40", base)
	suite.seedShipment("114-002", shipment.UPS, "9.75", base.Add(-time.Hour))

	query, err := queries.NewGetOrderShipmentsQuery("114-001")
	suite.Require().NoError(err)

	result, err := suite.byOrderHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(retry.ID(), result[0].ID)
	suite.Equal(first.ID(), result[1].ID)
}

func (suite *ShipmentQueryHandlerTestSuite) TestByOrder_UnknownOrder_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderShipmentsQuery("114-999")
	suite.Require().NoError(err)

	result, err := suite.byOrderHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func TestShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentQueryHandlerTestSuite))
}
