package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// CancelOrderCommandHandler cancels an order. Administrative cancellations write an
// audit record in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
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

	if err = cancelOrder(ctx, uow, o, command.Actor(), command.Reason(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
