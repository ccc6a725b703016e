package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// TransitionOrderCommandHandler is the single entry point for status changes by
// target status. It locks the order, runs the shared authorization and transition
// checks, then performs the operation the target implies:
//
//	in_progress         accept (or start a requested revision)
//	delivered           an empty delivery
//	revision_requested  a revision request with the reason as message
//	completed           completion and the seller's completed tasks counter
//	cancelled           cancellation, audited for admins
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewTransitionOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) (*order.Order, error) {
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

	actor := command.Actor()
	if err = o.CheckTransition(actor, command.Target(), command.Reason()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	switch command.Target() {
	case order.InProgress:
		err = acceptOrder(ctx, uow, o, actor, now)
	case order.Delivered:
		_, err = deliverOrder(ctx, uow, o, actor, "", nil, now)
	case order.RevisionRequested:
		_, err = requestRevision(ctx, uow, o, actor, command.Reason(), now)
	case order.Completed:
		err = completeOrder(ctx, uow, o, actor, now)
	case order.Cancelled:
		err = cancelOrder(ctx, uow, o, actor, command.Reason(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
