package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its deliveries and revision history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("%s is %s with %d deliveries\n", details.Number, details.Status, len(details.Deliveries))
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor order.Actor) (GetOrderQuery, error) {
	if err := newQueryTarget(orderID, actor); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) Actor() order.Actor   { return q.actor }

// GetOrderQueryResponse is the read model of an order.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	CustomerID         kernel.UUID
	SellerID           kernel.UUID
	GigID              kernel.UUID
	PackageID          kernel.UUID
	Package            PackageResponse
	Requirements       map[string]any
	Status             string
	EscrowStatus       string
	TotalAmount        kernel.Money
	PlatformFee        kernel.Money
	SellerEarnings     kernel.Money
	DeliveryDate       time.Time
	CreatedAt          time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	RefundedAt         *time.Time
	Deliveries         []DeliveryResponse
	Revisions          []RevisionResponse
}

// PackageResponse holds the package terms captured at purchase time.
type PackageResponse struct {
	Tier         string
	Price        kernel.Money
	DeliveryDays int
	Revisions    *int
}

type DeliveryResponse struct {
	ID          kernel.UUID
	Message     string
	Attachments []string
	DeliveredAt time.Time
}

type RevisionResponse struct {
	ID          kernel.UUID
	RequesterID kernel.UUID
	Message     string
	Status      string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
