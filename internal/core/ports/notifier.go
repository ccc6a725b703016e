package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// EventPublisher receives the events of a committed unit of work.
// Implementations must not fail the caller; delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event)
}

// Notification is one message to one recipient.
type Notification struct {
	RecipientID kernel.UUID
	OrderID     kernel.UUID
	Type        string
	Title       string
	Message     string
	Data        map[string]any
	CreatedAt   time.Time
}

// Notifier delivers notifications. It is fire-and-forget from the engine's point of
// view: errors are logged by the caller and never roll back an order change.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
