// Package auditrepo stores the administrative audit log. The table rejects
// updates and deletes, so the repository only appends and reads.
package auditrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecordDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID       `gorm:"type:uuid;not null"`
	Action     string          `gorm:"type:varchar(16);not null"`
	Reason     string          `gorm:"type:text;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RecordedAt time.Time       `gorm:"not null"`
}

func (RecordDTO) TableName() string {
	return "audit_records"
}

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := RecordDTO{
		ID:         record.ID().Bytes(),
		OrderID:    record.OrderID().Bytes(),
		ActorID:    record.ActorID().Bytes(),
		Action:     string(record.Action()),
		Reason:     record.Reason(),
		Amount:     record.Amount().Amount(),
		RecordedAt: record.RecordedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAuditRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*audit.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toDomain(dto RecordDTO) (*audit.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	return audit.RestoreRecord(id, orderID, actorID, audit.Action(dto.Action), dto.Reason, amount, dto.RecordedAt)
}
