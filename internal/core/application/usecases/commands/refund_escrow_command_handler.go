package commands

import (
	"context"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// RefundEscrowCommandHandler refunds a held escrow and appends the audit record
// keyed by order, admin, time and reason.
type RefundEscrowCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewRefundEscrowCommandHandler(uowFactory UoWFactory, clk clock.Clock) RefundEscrowCommandHandler {
	return RefundEscrowCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h RefundEscrowCommandHandler) Handle(ctx context.Context, command RefundEscrowCommand) (*order.Order, error) {
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

	now := h.clock.Now()
	actor := command.Actor()
	if err = o.Refund(actor, command.Reason(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = appendAudit(ctx, uow, o, actor, audit.ActionRefund, command.Reason(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
