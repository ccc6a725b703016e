package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via Order.Deliver or RestoreDelivery")

// Delivery is a seller-submitted artifact bundle. It is immutable once created.
// Attachments are opaque URIs resolved by the storage collaborator; an empty
// delivery (no message, no attachments) is allowed.
type Delivery struct {
	id            kernel.UUID
	orderID       kernel.UUID
	message       string
	attachments   []string
	deliveredAt   time.Time
	isConstructed bool
}

func newDelivery(id, orderID kernel.UUID, message string, attachments []string, deliveredAt time.Time) (*Delivery, error) {
	var attachmentErrs []error
	for i, uri := range attachments {
		if strings.TrimSpace(uri) == "" {
			attachmentErrs = append(attachmentErrs, errs.NewValueIsInvalidErrorWithCause(
				"attachments", fmt.Errorf("attachment %d is blank", i)))
		}
	}

	if err := errors.Join(append(attachmentErrs, id.Validate(), orderID.Validate())...); err != nil {
		return nil, err
	}

	copied := make([]string, len(attachments))
	copy(copied, attachments)

	return &Delivery{
		id:            id,
		orderID:       orderID,
		message:       strings.TrimSpace(message),
		attachments:   copied,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// RestoreDelivery rebuilds a persisted delivery.
func RestoreDelivery(id, orderID kernel.UUID, message string, attachments []string, deliveredAt time.Time) (*Delivery, error) {
	return newDelivery(id, orderID, message, attachments, deliveredAt)
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID        { return d.id }
func (d *Delivery) OrderID() kernel.UUID   { return d.orderID }
func (d *Delivery) Message() string        { return d.message }
func (d *Delivery) DeliveredAt() time.Time { return d.deliveredAt }

// Attachments returns a copy of the attachment URIs in submission order.
func (d *Delivery) Attachments() []string {
	out := make([]string, len(d.attachments))
	copy(out, d.attachments)
	return out
}
