package commands

import (
	"context"

	"marketplace/internal/pkg/clock"
)

// FlagOverdueOrdersCommandHandler stamps overdue orders once and lets the unit of
// work notify both parties. Status is not changed. Rows locked by a running
// transition are skipped and picked up by a later run.
type FlagOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewFlagOverdueOrdersCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) FlagOverdueOrdersCommandHandler {
	return FlagOverdueOrdersCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle returns how many orders were flagged.
func (h FlagOverdueOrdersCommandHandler) Handle(ctx context.Context, command FlagOverdueOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	repo := uow.OrderRepository()

	orders, err := repo.ListOverdue(ctx, now, command.BatchSize())
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, o := range orders {
		if !o.MarkOverdue(now) {
			continue
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
		flagged++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return flagged, nil
}
