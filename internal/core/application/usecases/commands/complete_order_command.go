package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand is the customer accepting a delivered order.
type CompleteOrderCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID kernel.UUID, actor order.Actor) (CompleteOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return CompleteOrderCommand{}, err
	}
	return CompleteOrderCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}
