package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is the seller taking a pending order, or starting work on a
// requested revision.
type AcceptOrderCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID kernel.UUID, actor order.Actor) (AcceptOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
