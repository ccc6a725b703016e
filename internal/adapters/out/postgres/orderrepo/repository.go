package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolation       = "23505"
	orderNumberConstraint = "uq_orders_order_number"
	lockStrengthForUpdate = "UPDATE"
	lockSkipLocked        = "SKIP LOCKED"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker registers written aggregates with the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order inside a savepoint, so an order number collision leaves
// the surrounding transaction usable for the next attempt.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if isOrderNumberCollision(err) {
		return ports.ErrOrderNumberTaken
	}
	if err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update compares and swaps on the persisted status. Losing the swap means another
// transition committed first; the caller gets the transition error it would have
// received had it read the winner's status.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Updates(dto.mutableColumns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.lostSwap(ctx, aggregate)
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) lostSwap(ctx context.Context, aggregate *order.Order) error {
	var current string
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("status").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err != nil {
		return err
	}

	winner, err := order.ParseStatus(current)
	if err != nil {
		return err
	}
	return errs.NewInvalidTransitionError(
		winner.String(),
		aggregate.Status().String(),
		order.Names(winner.AllowedTransitions()),
	)
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: lockStrengthForUpdate}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: lockStrengthForUpdate, Options: lockSkipLocked}).
		Where("status IN ?", []string{
			order.Pending.String(),
			order.InProgress.String(),
		}).
		Where("delivery_date < ? AND last_delivered_at IS NULL AND overdue_notified_at IS NULL", now).
		Order("delivery_date").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func isOrderNumberCollision(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && pgErr.ConstraintName == orderNumberConstraint
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
