package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// CompleteOrderCommandHandler completes an order and increments the seller's
// completed tasks in the same transaction. The counter uses an atomic update, so
// concurrent completions for one seller never lose an increment.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, command CompleteOrderCommand) (*order.Order, error) {
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

	if err = completeOrder(ctx, uow, o, command.Actor(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
