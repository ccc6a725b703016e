package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// AcceptOrderCommandHandler moves an order to in_progress under the order row lock.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (*order.Order, error) {
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

	if err = acceptOrder(ctx, uow, o, command.Actor(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
