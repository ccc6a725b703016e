package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderCapabilitiesQueryIsNotConstructed = errors.New(
	"GetOrderCapabilitiesQuery must be created via NewGetOrderCapabilitiesQuery constructor",
)

// GetOrderCapabilitiesQuery asks which actions the actor may take on the order now.
type GetOrderCapabilitiesQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderCapabilitiesQuery(orderID kernel.UUID, actor order.Actor) (GetOrderCapabilitiesQuery, error) {
	if err := newQueryTarget(orderID, actor); err != nil {
		return GetOrderCapabilitiesQuery{}, err
	}
	return GetOrderCapabilitiesQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderCapabilitiesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCapabilitiesQueryIsNotConstructed)
}

func (q GetOrderCapabilitiesQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderCapabilitiesQuery) Actor() order.Actor   { return q.actor }

type GetOrderCapabilitiesQueryResponse struct {
	OrderID kernel.UUID
	Status  order.Status
	order.Capabilities
}
