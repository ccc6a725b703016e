package commands

import (
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrSubmitDeliveryCommandIsNotConstructed = errors.New(
	"SubmitDeliveryCommand must be created via NewSubmitDeliveryCommand constructor",
)

// SubmitDeliveryCommand carries a seller's delivery. Message and attachments are
// optional; attachments are URIs already resolved by the file storage service.
type SubmitDeliveryCommand struct {
	orderTarget
	message     string
	attachments []string

	guard guard.ConstructorGuard
}

func NewSubmitDeliveryCommand(
	orderID kernel.UUID,
	actor order.Actor,
	message string,
	attachments []string,
) (SubmitDeliveryCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return SubmitDeliveryCommand{}, err
	}

	return SubmitDeliveryCommand{
		orderTarget: target,
		message:     message,
		attachments: slices.Clone(attachments),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDeliveryCommandIsNotConstructed)
}

func (c SubmitDeliveryCommand) Message() string       { return c.message }
func (c SubmitDeliveryCommand) Attachments() []string { return slices.Clone(c.attachments) }
