package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// SubmitDeliveryCommandHandler records a delivery and moves the order to delivered.
// A delivery against revision_requested accepts the outstanding revision request,
// which is what consumes the package revision allowance.
type SubmitDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewSubmitDeliveryCommandHandler(uowFactory UoWFactory, clk clock.Clock) SubmitDeliveryCommandHandler {
	return SubmitDeliveryCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h SubmitDeliveryCommandHandler) Handle(ctx context.Context, command SubmitDeliveryCommand) (*order.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	delivery, err := deliverOrder(ctx, uow, o, command.Actor(), command.Message(), command.Attachments(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return delivery, nil
}
