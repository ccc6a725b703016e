package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand is a customer asking for changes to delivered work.
type RequestRevisionCommand struct {
	orderTarget
	message string

	guard guard.ConstructorGuard
}

func NewRequestRevisionCommand(orderID kernel.UUID, actor order.Actor, message string) (RequestRevisionCommand, error) {
	target, targetErr := newOrderTarget(orderID, actor)

	var messageErr error
	message = strings.TrimSpace(message)
	if message == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}

	if err := errors.Join(targetErr, messageErr); err != nil {
		return RequestRevisionCommand{}, err
	}

	return RequestRevisionCommand{orderTarget: target, message: message, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

func (c RequestRevisionCommand) Message() string { return c.message }
