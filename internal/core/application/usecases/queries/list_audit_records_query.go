package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrListAuditRecordsQueryIsNotConstructed = errors.New(
	"ListAuditRecordsQuery must be created via NewListAuditRecordsQuery constructor",
)

// ListAuditRecordsQuery reads the administrative actions taken on one order.
type ListAuditRecordsQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewListAuditRecordsQuery(orderID kernel.UUID, actor order.Actor) (ListAuditRecordsQuery, error) {
	if err := newQueryTarget(orderID, actor); err != nil {
		return ListAuditRecordsQuery{}, err
	}
	return ListAuditRecordsQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListAuditRecordsQueryIsNotConstructed)
}

func (q ListAuditRecordsQuery) OrderID() kernel.UUID { return q.orderID }
func (q ListAuditRecordsQuery) Actor() order.Actor   { return q.actor }

type AuditRecordResponse struct {
	ID         kernel.UUID
	ActorID    kernel.UUID
	Action     string
	Reason     string
	Amount     kernel.Money
	RecordedAt time.Time
}
