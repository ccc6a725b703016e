package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

type ResolveRevisionCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewResolveRevisionCommandHandler(uowFactory UoWFactory, clk clock.Clock) ResolveRevisionCommandHandler {
	return ResolveRevisionCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h ResolveRevisionCommandHandler) Handle(
	ctx context.Context,
	command ResolveRevisionCommand,
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

	revisions := uow.RevisionRepository()
	request, err := revisions.Get(ctx, command.RevisionID())
	if err != nil {
		return nil, err
	}

	if err = o.ResolveRevision(command.Actor(), request, command.Outcome(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = revisions.Update(ctx, request); err != nil {
		return nil, err
	}
	// status is unchanged; the write registers the order's event with the unit of work
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
