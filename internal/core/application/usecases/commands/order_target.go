package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// orderTarget is embedded by commands that act on one existing order on behalf of an actor.
type orderTarget struct {
	orderID kernel.UUID
	actor   order.Actor
}

func newOrderTarget(orderID kernel.UUID, actor order.Actor) (orderTarget, error) {
	_, actorErr := order.NewActor(actor.ID, actor.Role)
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return orderTarget{}, err
	}
	return orderTarget{orderID: orderID, actor: actor}, nil
}

// OrderID returns the order the command acts on.
func (t orderTarget) OrderID() kernel.UUID {
	return t.orderID
}

// Actor returns the caller the command runs on behalf of.
func (t orderTarget) Actor() order.Actor {
	return t.actor
}
