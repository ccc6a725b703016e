package ports

import (
	"context"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
)

// AuditRepository is the append-only log of administrative actions. There is no
// update or delete.
type AuditRepository interface {
	Append(ctx context.Context, record *audit.Record) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Record, error)
}
