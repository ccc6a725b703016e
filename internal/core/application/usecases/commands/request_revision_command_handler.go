package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// RequestRevisionCommandHandler opens a revision request. The accepted-request count
// used for the quota is read while the order row is locked, so two concurrent
// requests cannot both pass the check.
type RequestRevisionCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewRequestRevisionCommandHandler(uowFactory UoWFactory, clk clock.Clock) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h RequestRevisionCommandHandler) Handle(
	ctx context.Context,
	command RequestRevisionCommand,
) (*order.RevisionRequest, error) {
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

	request, err := requestRevision(ctx, uow, o, command.Actor(), command.Message(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
