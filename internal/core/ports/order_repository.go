// Package ports defines the contracts between the order engine core and its
// infrastructure: repositories, the unit of work, and the notification boundary.
package ports

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by OrderRepository.Add when the order number
// collides with an existing order. The order itself was not stored.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Returns ErrOrderNumberTaken on a number collision,
	// leaving the surrounding transaction usable for a retry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order if storage still holds aggregate.PersistedStatus().
	// When another transition won the race it returns the InvalidTransitionError the
	// caller would have received against the winner's status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Every mutation reads the order through this method.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOverdue returns up to limit orders still owing work whose delivery date is
	// before now and that have not been flagged yet, locked and skipping rows held
	// by other transactions.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}

// DeliveryRepository stores the immutable deliveries of an order.
type DeliveryRepository interface {
	Add(ctx context.Context, delivery *order.Delivery) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Delivery, error)
}

// RevisionRepository stores revision requests.
type RevisionRepository interface {
	Add(ctx context.Context, request *order.RevisionRequest) error
	Update(ctx context.Context, request *order.RevisionRequest) error
	Get(ctx context.Context, id kernel.UUID) (*order.RevisionRequest, error)

	// FindPending returns the outstanding pending request of an order, or nil.
	FindPending(ctx context.Context, orderID kernel.UUID) (*order.RevisionRequest, error)

	// CountAccepted counts accepted requests. Callers hold the order lock so the
	// count and a following Add are consistent.
	CountAccepted(ctx context.Context, orderID kernel.UUID) (int, error)

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.RevisionRequest, error)
}
