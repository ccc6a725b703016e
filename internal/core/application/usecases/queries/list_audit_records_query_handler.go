package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListAuditRecordsQueryHandler returns the audit log of an order, oldest first.
// Only admins may read it.
type ListAuditRecordsQueryHandler struct {
	db *gorm.DB
}

func NewListAuditRecordsQueryHandler(db *gorm.DB) ListAuditRecordsQueryHandler {
	return ListAuditRecordsQueryHandler{db: db}
}

func (h ListAuditRecordsQueryHandler) Handle(
	ctx context.Context,
	query ListAuditRecordsQuery,
) ([]AuditRecordResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() {
		return nil, errs.NewAuthorizationError(actor.ID.String(), actor.Role.String(), "read the audit log of")
	}

	db := h.db.WithContext(ctx)

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, query.OrderID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := db.Raw(`
		SELECT id, actor_id, action, reason, amount, recorded_at
		FROM audit_records
		WHERE order_id = ?
		ORDER BY recorded_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]AuditRecordResponse, 0)
	for rows.Next() {
		var r AuditRecordResponse
		var id, actorID uuid.UUID
		var amount decimal.Decimal

		if err = rows.Scan(&id, &actorID, &r.Action, &r.Reason, &amount, &r.RecordedAt); err != nil {
			return nil, err
		}
		ids, idErr := uuidsFromBytes(id, actorID)
		if idErr != nil {
			return nil, idErr
		}
		r.ID, r.ActorID = ids[0], ids[1]
		if r.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
