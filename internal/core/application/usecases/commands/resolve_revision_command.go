package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrResolveRevisionCommandIsNotConstructed = errors.New(
	"ResolveRevisionCommand must be created via NewResolveRevisionCommand constructor",
)

// ResolveRevisionCommand is the seller's bookkeeping answer to a pending revision
// request. It does not move the order.
type ResolveRevisionCommand struct {
	orderTarget
	revisionID kernel.UUID
	outcome    order.RevisionStatus

	guard guard.ConstructorGuard
}

func NewResolveRevisionCommand(
	orderID kernel.UUID,
	revisionID kernel.UUID,
	actor order.Actor,
	outcome order.RevisionStatus,
) (ResolveRevisionCommand, error) {
	target, targetErr := newOrderTarget(orderID, actor)
	_, outcomeErr := order.ParseRevisionStatus(string(outcome))
	if err := errors.Join(targetErr, revisionID.Validate(), outcomeErr); err != nil {
		return ResolveRevisionCommand{}, err
	}

	return ResolveRevisionCommand{
		orderTarget: target,
		revisionID:  revisionID,
		outcome:     outcome,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveRevisionCommand) Validate() error {
	return c.guard.Validate(ErrResolveRevisionCommandIsNotConstructed)
}

func (c ResolveRevisionCommand) RevisionID() kernel.UUID       { return c.revisionID }
func (c ResolveRevisionCommand) Outcome() order.RevisionStatus { return c.outcome }
