// Package notifications turns committed order events into per-recipient
// notifications and hands them to the Notifier. Delivery is best effort: failures
// are logged and counted, never returned.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultTimeout bounds one Notify call.
const DefaultTimeout = 5 * time.Second

const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
)

// Dispatcher implements ports.EventPublisher.
//
// Example:
//
//	dispatcher, err := notifications.NewDispatcher(kafkaNotifier, logger, otel.Meter("marketplace"))
//	if err != nil {
//	    return err
//	}
//	uowFactory := postgres.NewGormUnitOfWorkFactory(db, dispatcher)
type Dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
	timeout  time.Duration

	transitions   metric.Int64Counter
	notifications metric.Int64Counter
}

func NewDispatcher(notifier ports.Notifier, logger *slog.Logger, meter metric.Meter) (*Dispatcher, error) {
	transitions, err := meter.Int64Counter("marketplace.order.transitions",
		metric.WithDescription("Committed order events by type"))
	if err != nil {
		return nil, err
	}
	notifications, err := meter.Int64Counter("marketplace.notifications",
		metric.WithDescription("Notification deliveries by outcome"))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		notifier:      notifier,
		logger:        logger.With("component", "notifications"),
		timeout:       DefaultTimeout,
		transitions:   transitions,
		notifications: notifications,
	}, nil
}

// Publish notifies the recipients of each event in order. The caller's
// cancellation does not abort delivery, since the change has already committed.
func (d *Dispatcher) Publish(ctx context.Context, events []order.Event) {
	ctx = context.WithoutCancel(ctx)

	for _, event := range events {
		d.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("event", string(event.Type))))

		for _, n := range Compose(event) {
			d.notify(ctx, n)
		}
	}
}

func (d *Dispatcher) notify(ctx context.Context, n ports.Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	outcome := outcomeDelivered
	if err := d.notifier.Notify(ctx, n); err != nil {
		outcome = outcomeFailed
		d.logger.WarnContext(ctx, "notification delivery failed",
			"order_id", n.OrderID.String(),
			"recipient_id", n.RecipientID.String(),
			"type", n.Type,
			"error", err,
		)
	}
	d.notifications.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
