// Package queries contains read operations. Handlers read through raw SQL on the
// GORM connection unless a domain rule has to be evaluated, in which case they load
// the aggregate through the repositories.
package queries

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// authorizeView allows the order's parties and admins.
func authorizeView(actor order.Actor, customerID, sellerID kernel.UUID) error {
	if actor.IsAdmin() || actor.ID.IsEqual(customerID) || actor.ID.IsEqual(sellerID) {
		return nil
	}
	return errs.NewAuthorizationError(actor.ID.String(), actor.Role.String(), "view order")
}

func newQueryTarget(orderID kernel.UUID, actor order.Actor) error {
	_, actorErr := order.NewActor(actor.ID, actor.Role)
	if err := orderID.Validate(); err != nil {
		return err
	}
	return actorErr
}
