package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

type funcReaderFactory func() queries.OrderReader

func (f funcReaderFactory) Create() queries.OrderReader { return f() }

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	catalog  pgtest.Catalog
	factory  *postgres_adapter.GormUnitOfWorkFactory
	clock    clock.Clock
	admin    order.Actor
	stranger order.Actor
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.admin = order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}
	suite.stranger = order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	c, err := pgtest.SeedCatalog(context.Background(), suite.database.DB, catalogRevisions(2))
	suite.Require().NoError(err)
	suite.catalog = c
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, nil)
	suite.clock = clock.NewFixed(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func catalogRevisions(n int) *int { return &n }

func (suite *QueriesIntegrationTestSuite) uows() commands.UoWFactory {
	return funcUoWFactory(func() commands.UoW { return suite.factory.Create() })
}

// revisedOrder stores an order that was delivered twice with one accepted revision.
func (suite *QueriesIntegrationTestSuite) revisedOrder() *order.Order {
	ctx := context.Background()
	seller := suite.catalog.Seller()
	customer := suite.catalog.Customer()
	now := suite.clock.Now()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o, err := suite.catalog.NewOrder("ORD-20260314-QQQQQQ", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.Accept(seller, now))

	first, err := o.Deliver(seller, kernel.NewUUID(), "v1", []string{"https://cdn.example.com/v1.png"}, nil, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, first))

	request, err := o.RequestRevision(customer, kernel.NewUUID(), "darker colours", 0, now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RevisionRepository().Add(ctx, request))

	second, err := o.Deliver(seller, kernel.NewUUID(), "v2", nil, request, now.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, second))
	suite.Require().NoError(uow.RevisionRepository().Update(ctx, request))

	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	ctx := context.Background()
	o := suite.revisedOrder()
	handler := queries.NewGetOrderQueryHandler(suite.database.DB)

	suite.Run("should return details with history to a party", func() {
		query, err := queries.NewGetOrderQuery(o.ID(), suite.catalog.Customer())
		suite.Require().NoError(err)

		resp, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Equal("ORD-20260314-QQQQQQ", resp.Number)
		suite.Equal("delivered", resp.Status)
		suite.Equal("held", resp.EscrowStatus)
		suite.Equal("1000.00", resp.TotalAmount.String())
		suite.Equal("150.00", resp.PlatformFee.String())
		suite.Equal("850.00", resp.SellerEarnings.String())
		suite.Equal("basic", resp.Package.Tier)
		suite.Require().NotNil(resp.Package.Revisions)
		suite.Equal(2, *resp.Package.Revisions)
		suite.Equal("Acme", resp.Requirements["brand"])

		suite.Require().Len(resp.Deliveries, 2)
		suite.Equal("v1", resp.Deliveries[0].Message)
		suite.Equal([]string{"https://cdn.example.com/v1.png"}, resp.Deliveries[0].Attachments)
		suite.Equal("v2", resp.Deliveries[1].Message)
		suite.Empty(resp.Deliveries[1].Attachments)

		suite.Require().Len(resp.Revisions, 1)
		suite.Equal("accepted", resp.Revisions[0].Status)
		suite.Equal("darker colours", resp.Revisions[0].Message)
		suite.NotNil(resp.Revisions[0].ResolvedAt)
	})

	suite.Run("should allow admins", func() {
		query, err := queries.NewGetOrderQuery(o.ID(), suite.admin)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().NoError(err)
	})

	suite.Run("should reject strangers", func() {
		query, err := queries.NewGetOrderQuery(o.ID(), suite.stranger)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrForbidden)
	})

	suite.Run("should report unknown orders", func() {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.admin)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderCapabilities() {
	ctx := context.Background()
	o := suite.revisedOrder()
	handler := queries.NewGetOrderCapabilitiesQueryHandler(funcReaderFactory(func() queries.OrderReader {
		return suite.factory.Create()
	}))

	query, err := queries.NewGetOrderCapabilitiesQuery(o.ID(), suite.catalog.Customer())
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(order.Delivered, resp.Status)
	suite.True(resp.Complete)
	suite.True(resp.RequestRevision)
	suite.False(resp.Refund)
	suite.Require().NotNil(resp.RevisionsLeft)
	suite.Equal(1, *resp.RevisionsLeft)

	stranger, err := queries.NewGetOrderCapabilitiesQuery(o.ID(), suite.stranger)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, stranger)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestListAuditRecords() {
	ctx := context.Background()
	o := suite.revisedOrder()
	handler := queries.NewListAuditRecordsQueryHandler(suite.database.DB)

	suite.Run("should be empty before any admin action", func() {
		query, err := queries.NewListAuditRecordsQuery(o.ID(), suite.admin)
		suite.Require().NoError(err)

		records, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Empty(records)
	})

	suite.Run("should list the refund", func() {
		refund, err := commands.NewRefundEscrowCommand(o.ID(), suite.admin, "seller unreachable")
		suite.Require().NoError(err)
		_, err = commands.NewRefundEscrowCommandHandler(suite.uows(), suite.clock).Handle(ctx, refund)
		suite.Require().NoError(err)

		query, err := queries.NewListAuditRecordsQuery(o.ID(), suite.admin)
		suite.Require().NoError(err)

		records, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Require().NotEmpty(records)
		last := records[len(records)-1]
		suite.Equal("refund", last.Action)
		suite.Equal("seller unreachable", last.Reason)
		suite.Equal("1000.00", last.Amount.String())
		suite.True(suite.admin.ID.IsEqual(last.ActorID))
	})

	suite.Run("should keep the log append-only", func() {
		err := suite.database.DB.Exec(`DELETE FROM audit_records`).Error

		suite.Require().Error(err)
	})

	suite.Run("should be admin only", func() {
		query, err := queries.NewListAuditRecordsQuery(o.ID(), suite.catalog.Customer())
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrForbidden)
	})

	suite.Run("should report unknown orders", func() {
		query, err := queries.NewListAuditRecordsQuery(kernel.NewUUID(), suite.admin)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
