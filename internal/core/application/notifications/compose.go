package notifications

import (
	"fmt"
	"maps"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// Compose builds one notification per event recipient.
func Compose(event order.Event) []ports.Notification {
	title, message := describe(event)

	data := map[string]any{
		"order_id":     event.OrderID.String(),
		"order_number": event.OrderNumber,
		"status":       event.Status.String(),
		"amount":       event.Amount.String(),
	}
	if event.PreviousStatus != order.Unknown {
		data["previous_status"] = event.PreviousStatus.String()
	}
	if event.Reason != "" {
		data["reason"] = event.Reason
	}
	if event.SubjectID != nil {
		data["subject_id"] = event.SubjectID.String()
	}

	out := make([]ports.Notification, 0, len(event.Recipients))
	for _, recipient := range event.Recipients {
		out = append(out, ports.Notification{
			RecipientID: recipient,
			OrderID:     event.OrderID,
			Type:        string(event.Type),
			Title:       title,
			Message:     message,
			Data:        maps.Clone(data),
			CreatedAt:   event.OccurredAt,
		})
	}
	return out
}

func describe(e order.Event) (string, string) {
	n := e.OrderNumber
	switch e.Type {
	case order.EventPlaced:
		return "New order received", fmt.Sprintf("Order %s was placed for %s.", n, e.Amount)
	case order.EventAccepted:
		return "Order accepted", fmt.Sprintf("The seller started working on order %s.", n)
	case order.EventRevisionStarted:
		return "Revision in progress", fmt.Sprintf("The seller started the requested revision on order %s.", n)
	case order.EventDelivered:
		return "Order delivered", fmt.Sprintf("Order %s has been delivered. Review the work and complete the order or request a revision.", n)
	case order.EventRevisionRequested:
		return "Revision requested", fmt.Sprintf("A revision was requested on order %s: %s", n, e.Reason)
	case order.EventRevisionResolved:
		return "Revision request " + e.Reason, fmt.Sprintf("The revision request on order %s was %s.", n, e.Reason)
	case order.EventCompleted:
		return "Order completed", fmt.Sprintf("Order %s was completed and the payment released.", n)
	case order.EventCancelled:
		if e.Reason != "" {
			return "Order cancelled", fmt.Sprintf("Order %s was cancelled: %s", n, e.Reason)
		}
		return "Order cancelled", fmt.Sprintf("Order %s was cancelled.", n)
	case order.EventRefunded:
		return "Payment refunded", fmt.Sprintf("The payment of %s for order %s was refunded: %s", e.Amount, n, e.Reason)
	case order.EventOverdue:
		return "Order overdue", fmt.Sprintf("Order %s is past its delivery date.", n)
	default:
		return "Order updated", fmt.Sprintf("Order %s is now %s.", n, e.Status)
	}
}
