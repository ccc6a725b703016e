package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// EventType names something that happened to an order.
type EventType string

const (
	EventPlaced            EventType = "order.placed"
	EventAccepted          EventType = "order.accepted"
	EventRevisionStarted   EventType = "order.revision_started"
	EventDelivered         EventType = "order.delivered"
	EventRevisionRequested EventType = "order.revision_requested"
	EventRevisionResolved  EventType = "order.revision_resolved"
	EventCompleted         EventType = "order.completed"
	EventCancelled         EventType = "order.cancelled"
	EventRefunded          EventType = "order.refunded"
	EventOverdue           EventType = "order.overdue"
)

// Event is recorded by the Order aggregate on every successful mutation and
// published after the surrounding transaction commits.
type Event struct {
	Type           EventType
	OrderID        kernel.UUID
	OrderNumber    string
	Actor          Actor
	PreviousStatus Status
	Status         Status
	// Recipients are the parties to notify: the counter-party of a customer or
	// seller action, both parties for admin and system actions.
	Recipients []kernel.UUID
	Reason     string
	// SubjectID is the delivery or revision request the event is about, if any.
	SubjectID  *kernel.UUID
	Amount     kernel.Money
	OccurredAt time.Time
}

func (o *Order) record(eventType EventType, actor Actor, previous Status, at time.Time, opts ...func(*Event)) {
	e := Event{
		Type:           eventType,
		OrderID:        o.id,
		OrderNumber:    o.number,
		Actor:          actor,
		PreviousStatus: previous,
		Status:         o.status,
		Recipients:     o.recipientsFor(actor),
		Amount:         o.split.Total(),
		OccurredAt:     at,
	}
	for _, opt := range opts {
		opt(&e)
	}
	o.events = append(o.events, e)
}

func withReason(reason string) func(*Event) {
	return func(e *Event) { e.Reason = reason }
}

func withSubject(id kernel.UUID) func(*Event) {
	return func(e *Event) { e.SubjectID = &id }
}

func (o *Order) recipientsFor(actor Actor) []kernel.UUID {
	switch {
	case o.isCustomer(actor):
		return []kernel.UUID{o.sellerID}
	case o.isSeller(actor):
		return []kernel.UUID{o.customerID}
	default:
		return []kernel.UUID{o.customerID, o.sellerID}
	}
}
