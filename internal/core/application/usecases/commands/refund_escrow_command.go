package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRefundEscrowCommandIsNotConstructed = errors.New(
	"RefundEscrowCommand must be created via NewRefundEscrowCommand constructor",
)

// RefundEscrowCommand is an admin reversal of the money held for an order.
type RefundEscrowCommand struct {
	orderTarget
	reason string

	guard guard.ConstructorGuard
}

func NewRefundEscrowCommand(orderID kernel.UUID, actor order.Actor, reason string) (RefundEscrowCommand, error) {
	target, targetErr := newOrderTarget(orderID, actor)

	var reasonErr error
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(targetErr, reasonErr); err != nil {
		return RefundEscrowCommand{}, err
	}

	return RefundEscrowCommand{orderTarget: target, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RefundEscrowCommand) Validate() error {
	return c.guard.Validate(ErrRefundEscrowCommandIsNotConstructed)
}

func (c RefundEscrowCommand) Reason() string { return c.reason }
