package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand requests a move of an order to target. Reason is the
// cancellation reason for a move to cancelled and the revision message for a move
// to revision_requested; other targets ignore it.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, admin, order.Cancelled, "duplicate purchase")
//	o, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct {
	orderTarget
	target order.Status
	reason string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
	reason string,
) (TransitionOrderCommand, error) {
	t, targetErr := newOrderTarget(orderID, actor)
	if err := errors.Join(targetErr, target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderTarget: t,
		target:      target,
		reason:      strings.TrimSpace(reason),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Target() order.Status { return c.target }
func (c TransitionOrderCommand) Reason() string       { return c.reason }
