package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels a non-terminal order. Parties may omit the reason;
// an admin must give one.
type CancelOrderCommand struct {
	orderTarget
	reason string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor order.Actor, reason string) (CancelOrderCommand, error) {
	target, targetErr := newOrderTarget(orderID, actor)

	var reasonErr error
	reason = strings.TrimSpace(reason)
	if actor.IsAdmin() && reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(targetErr, reasonErr); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{orderTarget: target, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Reason() string { return c.reason }
