package commands

import (
	"errors"
	"maps"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's purchase of a gig package.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, gigID, packageID, map[string]any{"brand": "Acme"})
//	if err != nil {
//	    return fmt.Errorf("invalid purchase: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed, seller earns %s", o.Number(), o.Split().SellerEarnings())
type CreateOrderCommand struct {
	customer     order.Actor
	gigID        kernel.UUID
	packageID    kernel.UUID
	requirements map[string]any

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers. Requirements are free-form answers
// and may be nil.
func NewCreateOrderCommand(
	customer order.Actor,
	gigID, packageID kernel.UUID,
	requirements map[string]any,
) (CreateOrderCommand, error) {
	_, actorErr := order.NewActor(customer.ID, customer.Role)
	if err := errors.Join(actorErr, gigID.Validate(), packageID.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		customer:     customer,
		gigID:        gigID,
		packageID:    packageID,
		requirements: maps.Clone(requirements),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Actor  { return c.customer }
func (c CreateOrderCommand) GigID() kernel.UUID     { return c.gigID }
func (c CreateOrderCommand) PackageID() kernel.UUID { return c.packageID }

func (c CreateOrderCommand) Requirements() map[string]any {
	return maps.Clone(c.requirements)
}
