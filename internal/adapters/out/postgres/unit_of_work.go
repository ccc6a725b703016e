// Package postgres provides the GORM implementation of the Unit of Work pattern.
// The Unit of Work keeps one transaction across every repository of the order
// engine and tracks the order aggregates written in it.
//
// Domain events recorded on tracked orders are handed to the event publisher only
// after Commit succeeds. Rollback discards them, so no notification ever describes
// a change that was not stored.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, dispatcher)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	if err := o.Complete(actor, now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.PartyRepository().IncrementCompletedTasks(ctx, o.SellerID()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // publishes EventCompleted
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction and must not be shared
//     between goroutines
//   - Mutations lock the order row with GetForUpdate; the status compare-and-swap
//     in OrderRepository.Update catches writers that skipped the lock
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/auditrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher receives the events of every committed transaction.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, dispatcher)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

func (f *GormUnitOfWorkFactory) create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the order, delivery,
// revision, catalog, party and audit repositories.
//
// Repositories obtained before Begin run on the plain connection; reads that do
// not need a transaction use the unit of work that way.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and then publishes the events recorded on
// tracked orders. Publishing never fails the commit.
//
// Returns error if no active transaction exists or if the commit operation fails.
// In that case no event is published.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	events := uow.pullEvents()
	if len(events) > 0 && uow.publisher != nil {
		uow.publisher.Publish(ctx, events)
	}
	return nil
}

// Rollback discards all changes and all recorded events.
//
// Returns error if no active transaction exists, which is the case after a
// successful Commit; handlers defer Rollback and ignore that error.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) pullEvents() []order.Event {
	var events []order.Event
	for _, tracked := range uow.trackedAggregates {
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			events = append(events, o.PullEvents()...)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return events
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides access to order persistence within the unit of work.
// Orders added or updated through it are tracked for event publishing.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return orderrepo.NewGormDeliveryRepository(uow.conn())
}

func (uow *GormUnitOfWork) RevisionRepository() ports.RevisionRepository {
	return orderrepo.NewGormRevisionRepository(uow.conn())
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) PartyRepository() ports.PartyRepository {
	return catalogrepo.NewGormPartyRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
