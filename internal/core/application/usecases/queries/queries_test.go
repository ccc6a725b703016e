package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
	ports.OrderRepository
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRevisionRepository struct {
	mock.Mock
	ports.RevisionRepository
}

func (m *MockRevisionRepository) CountAccepted(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

type mockReader struct {
	orders    *MockOrderRepository
	revisions *MockRevisionRepository
}

func (r mockReader) OrderRepository() ports.OrderRepository       { return r.orders }
func (r mockReader) RevisionRepository() ports.RevisionRepository { return r.revisions }
func (r mockReader) Create() queries.OrderReader                  { return r }

func pendingOrder(t *testing.T, customer, seller kernel.UUID) *order.Order {
	t.Helper()
	snapshot, err := catalog.NewPackageSnapshot(catalog.TierBasic, kernel.MustMoney("40"), 2, catalog.Revisions(0))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-TEST-000001", order.Purchase{
		CustomerID: customer,
		SellerID:   seller,
		GigID:      kernel.NewUUID(),
		PackageID:  kernel.NewUUID(),
		Package:    snapshot,
	}, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	o.MarkPersisted()
	o.PullEvents()
	return o
}

func TestQueryConstructors(t *testing.T) {
	actor := order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller}

	t.Run("should reject a missing order id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{}, actor)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = queries.NewGetOrderCapabilitiesQuery(kernel.UUID{}, actor)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = queries.NewListAuditRecordsQuery(kernel.UUID{}, actor)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an anonymous actor", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.NewUUID(), order.Actor{Role: order.RoleCustomer})

		assert.Error(t, err)
	})

	t.Run("should refuse zero value queries", func(t *testing.T) {
		var q queries.GetOrderCapabilitiesQuery

		_, err := queries.NewGetOrderCapabilitiesQueryHandler(mockReader{}).Handle(context.Background(), q)

		assert.True(t, errors.Is(err, queries.ErrGetOrderCapabilitiesQueryIsNotConstructed))
	})
}

func TestGetOrderCapabilitiesQueryHandler(t *testing.T) {
	ctx := context.Background()
	customer := order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}
	seller := order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller}

	t.Run("should report seller capabilities of a pending order", func(t *testing.T) {
		o := pendingOrder(t, customer.ID, seller.ID)
		reader := mockReader{orders: &MockOrderRepository{}, revisions: &MockRevisionRepository{}}
		reader.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		reader.revisions.On("CountAccepted", ctx, o.ID()).Return(0, nil).Once()

		query, err := queries.NewGetOrderCapabilitiesQuery(o.ID(), seller)
		require.NoError(t, err)

		resp, err := queries.NewGetOrderCapabilitiesQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, resp.Status)
		assert.True(t, resp.Accept)
		assert.False(t, resp.Deliver)
		assert.Equal(t, []order.Status{order.InProgress, order.Cancelled}, resp.Transitions)
		require.NotNil(t, resp.RevisionsLeft)
		assert.Equal(t, 0, *resp.RevisionsLeft)
		reader.orders.AssertExpectations(t)
		reader.revisions.AssertExpectations(t)
	})

	t.Run("should not count revisions for strangers", func(t *testing.T) {
		o := pendingOrder(t, customer.ID, seller.ID)
		reader := mockReader{orders: &MockOrderRepository{}, revisions: &MockRevisionRepository{}}
		reader.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetOrderCapabilitiesQuery(o.ID(), order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller})
		require.NoError(t, err)

		_, err = queries.NewGetOrderCapabilitiesQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrForbidden)
		reader.revisions.AssertNotCalled(t, "CountAccepted", mock.Anything, mock.Anything)
	})

	t.Run("should pass through not found", func(t *testing.T) {
		id := kernel.NewUUID()
		reader := mockReader{orders: &MockOrderRepository{}, revisions: &MockRevisionRepository{}}
		reader.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetOrderCapabilitiesQuery(id, customer)
		require.NoError(t, err)

		_, err = queries.NewGetOrderCapabilitiesQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
