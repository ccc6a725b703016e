package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *order.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Delivery, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*order.Delivery), args.Error(1)
}

type MockRevisionRepository struct{ mock.Mock }

func (m *MockRevisionRepository) Add(ctx context.Context, r *order.RevisionRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRevisionRepository) Update(ctx context.Context, r *order.RevisionRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRevisionRepository) Get(ctx context.Context, id kernel.UUID) (*order.RevisionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RevisionRequest), args.Error(1)
}

func (m *MockRevisionRepository) FindPending(ctx context.Context, orderID kernel.UUID) (*order.RevisionRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RevisionRequest), args.Error(1)
}

func (m *MockRevisionRepository) CountAccepted(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockRevisionRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.RevisionRequest, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*order.RevisionRequest), args.Error(1)
}

// memoryRevisionRepository keeps revision requests by pointer, so domain
// resolutions are visible to later counts without an Update round trip.
type memoryRevisionRepository struct {
	requests []*order.RevisionRequest
}

func newMemoryRevisionRepository() *memoryRevisionRepository {
	return &memoryRevisionRepository{}
}

func (r *memoryRevisionRepository) Add(_ context.Context, request *order.RevisionRequest) error {
	r.requests = append(r.requests, request)
	return nil
}

func (r *memoryRevisionRepository) Update(_ context.Context, request *order.RevisionRequest) error {
	for _, stored := range r.requests {
		if stored.ID().IsEqual(request.ID()) {
			return nil
		}
	}
	return errs.NewObjectNotFoundError("revision_request", request.ID().String())
}

func (r *memoryRevisionRepository) Get(_ context.Context, id kernel.UUID) (*order.RevisionRequest, error) {
	for _, stored := range r.requests {
		if stored.ID().IsEqual(id) {
			return stored, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("revision_request", id.String())
}

func (r *memoryRevisionRepository) FindPending(_ context.Context, orderID kernel.UUID) (*order.RevisionRequest, error) {
	for i := len(r.requests) - 1; i >= 0; i-- {
		stored := r.requests[i]
		if stored.OrderID().IsEqual(orderID) && stored.Status() == order.RevisionPending {
			return stored, nil
		}
	}
	return nil, nil
}

func (r *memoryRevisionRepository) CountAccepted(_ context.Context, orderID kernel.UUID) (int, error) {
	count := 0
	for _, stored := range r.requests {
		if stored.OrderID().IsEqual(orderID) && stored.Status() == order.RevisionAccepted {
			count++
		}
	}
	return count, nil
}

func (r *memoryRevisionRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*order.RevisionRequest, error) {
	var history []*order.RevisionRequest
	for _, stored := range r.requests {
		if stored.OrderID().IsEqual(orderID) {
			history = append(history, stored)
		}
	}
	return history, nil
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetGig(ctx context.Context, id kernel.UUID) (*catalog.Gig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Gig), args.Error(1)
}

func (m *MockCatalogRepository) GetPackage(ctx context.Context, id kernel.UUID) (*catalog.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockCatalogRepository) IncrementOrdersCount(ctx context.Context, gigID kernel.UUID) error {
	return m.Called(ctx, gigID).Error(0)
}

type MockPartyRepository struct{ mock.Mock }

func (m *MockPartyRepository) EnsureCustomer(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPartyRepository) IncrementCompletedTasks(ctx context.Context, sellerID kernel.UUID) error {
	return m.Called(ctx, sellerID).Error(0)
}

func (m *MockPartyRepository) CompletedTasks(ctx context.Context, sellerID kernel.UUID) (int, error) {
	args := m.Called(ctx, sellerID)
	return args.Int(0), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, r *audit.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockAuditRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Record, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*audit.Record), args.Error(1)
}

// MockUoW returns fixed repository mocks; only the transaction calls are expected
// explicitly.
type MockUoW struct {
	mock.Mock
	orders       *MockOrderRepository
	deliver      *MockDeliveryRepository
	revisions    *MockRevisionRepository
	catalog      *MockCatalogRepository
	parties      *MockPartyRepository
	audit        *MockAuditRepository
	revisionRepo ports.RevisionRepository
}

func newMockUoW() *MockUoW {
	m := &MockUoW{
		orders:    new(MockOrderRepository),
		deliver:   new(MockDeliveryRepository),
		revisions: new(MockRevisionRepository),
		catalog:   new(MockCatalogRepository),
		parties:   new(MockPartyRepository),
		audit:     new(MockAuditRepository),
	}
	m.revisionRepo = m.revisions
	return m
}

// withRevisions swaps the revision mock for a stateful repository.
func (m *MockUoW) withRevisions(repo ports.RevisionRepository) *MockUoW {
	m.revisionRepo = repo
	return m
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository { return m.deliver }
func (m *MockUoW) RevisionRepository() ports.RevisionRepository { return m.revisionRepo }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository   { return m.catalog }
func (m *MockUoW) PartyRepository() ports.PartyRepository       { return m.parties }
func (m *MockUoW) AuditRepository() ports.AuditRepository       { return m.audit }

func (m *MockUoW) AssertExpectations(t *testing.T) {
	m.Mock.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.deliver.AssertExpectations(t)
	m.revisions.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.parties.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

// expectTx sets up Begin and the deferred Rollback, plus Commit when commit is true.
func (m *MockUoW) expectTx(ctx context.Context, commit bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commit {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Maybe()
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockNumberGenerator struct{ mock.Mock }

func (m *MockNumberGenerator) Next(now time.Time) (string, error) {
	args := m.Called(now)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testClock() clock.Clock {
	return clock.NewFixed(testNow)
}

type fixture struct {
	customer order.Actor
	seller   order.Actor
	admin    order.Actor
	gig      *catalog.Gig
	pkg      *catalog.Package
}

func newFixture(t *testing.T, revisions *int) fixture {
	t.Helper()

	f := fixture{
		customer: order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer},
		seller:   order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller},
		admin:    order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin},
	}

	var err error
	f.gig, err = catalog.NewGig(kernel.NewUUID(), f.seller.ID, "Logo design", catalog.GigActive, 0)
	require.NoError(t, err)
	f.pkg, err = catalog.NewPackage(kernel.NewUUID(), f.gig.ID(), catalog.TierBasic, kernel.MustMoney("1000"), 3, revisions)
	require.NoError(t, err)
	return f
}

// order builds an order of the fixture and walks it to status through the domain.
func (f fixture) order(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-FIXTURE", order.Purchase{
		CustomerID: f.customer.ID,
		SellerID:   f.seller.ID,
		GigID:      f.gig.ID(),
		PackageID:  f.pkg.ID(),
		Package:    f.pkg.Snapshot(),
	}, testNow)
	require.NoError(t, err)

	steps := map[order.Status]func(){
		order.InProgress: func() { require.NoError(t, o.Accept(f.seller, testNow)) },
		order.Delivered: func() {
			_, err := o.Deliver(f.seller, kernel.NewUUID(), "", nil, nil, testNow)
			require.NoError(t, err)
		},
		order.RevisionRequested: func() {
			_, err := o.RequestRevision(f.customer, kernel.NewUUID(), "again", 0, testNow)
			require.NoError(t, err)
		},
		order.Completed: func() { require.NoError(t, o.Complete(f.customer, testNow)) },
		order.Cancelled: func() { require.NoError(t, o.Cancel(f.customer, "", testNow)) },
	}
	path := map[order.Status][]order.Status{
		order.Pending:           {},
		order.InProgress:        {order.InProgress},
		order.Delivered:         {order.InProgress, order.Delivered},
		order.RevisionRequested: {order.InProgress, order.Delivered, order.RevisionRequested},
		order.Completed:         {order.InProgress, order.Delivered, order.Completed},
		order.Cancelled:         {order.Cancelled},
	}
	for _, step := range path[status] {
		steps[step]()
	}

	o.MarkPersisted()
	o.PullEvents()
	return o
}
