// Package orderrepo persists the order aggregate together with its deliveries and
// revision requests.
package orderrepo

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders row. Package terms are copied into the row at purchase
// time and never change afterwards.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber         string          `gorm:"type:varchar(32);uniqueIndex:uq_orders_order_number"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;index"`
	SellerID            uuid.UUID       `gorm:"type:uuid;index"`
	GigID               uuid.UUID       `gorm:"type:uuid"`
	PackageID           uuid.UUID       `gorm:"type:uuid"`
	PackageTier         string          `gorm:"type:varchar(16)"`
	PackagePrice        decimal.Decimal `gorm:"type:numeric(12,2)"`
	PackageDeliveryDays int
	PackageRevisions    *int
	Requirements        datatypes.JSONMap `gorm:"type:jsonb"`
	Status              string            `gorm:"type:varchar(32)"`
	EscrowStatus        string            `gorm:"type:varchar(16)"`
	TotalAmount         decimal.Decimal   `gorm:"type:numeric(12,2)"`
	PlatformFee         decimal.Decimal   `gorm:"type:numeric(12,2)"`
	SellerEarnings      decimal.Decimal   `gorm:"type:numeric(12,2)"`
	DeliveryDate        time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancellationReason  *string
	CancelledByID       *uuid.UUID `gorm:"type:uuid"`
	CancelledByRole     *string    `gorm:"type:varchar(16)"`
	RefundedAt          *time.Time
	LastDeliveredAt     *time.Time
	OverdueNotifiedAt   *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	pkg := o.Package()
	split := o.Split()

	dto := OrderDTO{
		ID:                  o.ID().Bytes(),
		OrderNumber:         o.Number(),
		CustomerID:          o.CustomerID().Bytes(),
		SellerID:            o.SellerID().Bytes(),
		GigID:               o.GigID().Bytes(),
		PackageID:           o.PackageID().Bytes(),
		PackageTier:         pkg.Tier().String(),
		PackagePrice:        pkg.Price().Amount(),
		PackageDeliveryDays: pkg.DeliveryDays(),
		PackageRevisions:    pkg.Revisions(),
		Requirements:        datatypes.JSONMap(o.Requirements()),
		Status:              o.Status().String(),
		EscrowStatus:        o.Escrow().String(),
		TotalAmount:         split.Total().Amount(),
		PlatformFee:         split.PlatformFee().Amount(),
		SellerEarnings:      split.SellerEarnings().Amount(),
		DeliveryDate:        o.DeliveryDate(),
		CreatedAt:           o.CreatedAt(),
		CompletedAt:         o.CompletedAt(),
		CancelledAt:         o.CancelledAt(),
		RefundedAt:          o.RefundedAt(),
		LastDeliveredAt:     o.LastDeliveredAt(),
		OverdueNotifiedAt:   o.OverdueNotifiedAt(),
	}
	if dto.Requirements == nil {
		dto.Requirements = datatypes.JSONMap{}
	}
	if reason := o.CancellationReason(); reason != "" {
		dto.CancellationReason = &reason
	}
	if by := o.CancelledBy(); by != nil {
		role := by.Role.String()
		dto.CancelledByRole = &role
		if by.ID.Validate() == nil {
			id := by.ID.Bytes()
			dto.CancelledByID = &id
		}
	}
	return dto
}

// mutableColumns are the columns a lifecycle operation may change. updated_at is
// maintained by GORM.
func (dto OrderDTO) mutableColumns() map[string]any {
	return map[string]any{
		"status":              dto.Status,
		"escrow_status":       dto.EscrowStatus,
		"delivery_date":       dto.DeliveryDate,
		"completed_at":        dto.CompletedAt,
		"cancelled_at":        dto.CancelledAt,
		"cancellation_reason": dto.CancellationReason,
		"cancelled_by_id":     dto.CancelledByID,
		"cancelled_by_role":   dto.CancelledByRole,
		"refunded_at":         dto.RefundedAt,
		"last_delivered_at":   dto.LastDeliveredAt,
		"overdue_notified_at": dto.OverdueNotifiedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuidsFromBytes(dto.ID, dto.CustomerID, dto.SellerID, dto.GigID, dto.PackageID)
	if err != nil {
		return nil, err
	}

	tier, tierErr := catalog.ParseTier(dto.PackageTier)
	price, priceErr := kernel.NewMoney(dto.PackagePrice)
	total, totalErr := kernel.NewMoney(dto.TotalAmount)
	fee, feeErr := kernel.NewMoney(dto.PlatformFee)
	earnings, earningsErr := kernel.NewMoney(dto.SellerEarnings)
	status, statusErr := order.ParseStatus(dto.Status)
	escrow, escrowErr := order.ParseEscrowStatus(dto.EscrowStatus)
	if err = errors.Join(tierErr, priceErr, totalErr, feeErr, earningsErr, statusErr, escrowErr); err != nil {
		return nil, err
	}

	snapshot, err := catalog.NewPackageSnapshot(tier, price, dto.PackageDeliveryDays, dto.PackageRevisions)
	if err != nil {
		return nil, err
	}
	split, err := order.RestoreEscrowSplit(total, fee, earnings)
	if err != nil {
		return nil, err
	}

	var cancelledBy *order.Actor
	if dto.CancelledByRole != nil {
		actor := order.Actor{Role: order.Role(*dto.CancelledByRole)}
		if dto.CancelledByID != nil {
			if actor.ID, err = kernel.UUIDFromBytes(dto.CancelledByID[:]); err != nil {
				return nil, err
			}
		}
		cancelledBy = &actor
	}

	var reason string
	if dto.CancellationReason != nil {
		reason = *dto.CancellationReason
	}

	return order.RestoreOrder(order.State{
		ID:     ids[0],
		Number: dto.OrderNumber,
		Purchase: order.Purchase{
			CustomerID:   ids[1],
			SellerID:     ids[2],
			GigID:        ids[3],
			PackageID:    ids[4],
			Package:      snapshot,
			Requirements: map[string]any(dto.Requirements),
		},
		Split:              split,
		Escrow:             escrow,
		Status:             status,
		DeliveryDate:       dto.DeliveryDate,
		CreatedAt:          dto.CreatedAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: reason,
		CancelledBy:        cancelledBy,
		RefundedAt:         dto.RefundedAt,
		LastDeliveredAt:    dto.LastDeliveredAt,
		OverdueNotifiedAt:  dto.OverdueNotifiedAt,
	})
}

// DeliveryDTO is the deliveries row.
type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Message     *string
	Attachments pq.StringArray `gorm:"type:text[]"`
	DeliveredAt time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func deliveryFromDomain(d *order.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:          d.ID().Bytes(),
		OrderID:     d.OrderID().Bytes(),
		Attachments: pq.StringArray(d.Attachments()),
		DeliveredAt: d.DeliveredAt(),
	}
	if dto.Attachments == nil {
		dto.Attachments = pq.StringArray{}
	}
	if msg := d.Message(); msg != "" {
		dto.Message = &msg
	}
	return dto
}

func deliveryToDomain(dto DeliveryDTO) (*order.Delivery, error) {
	ids, err := uuidsFromBytes(dto.ID, dto.OrderID)
	if err != nil {
		return nil, err
	}
	var message string
	if dto.Message != nil {
		message = *dto.Message
	}
	return order.RestoreDelivery(ids[0], ids[1], message, []string(dto.Attachments), dto.DeliveredAt)
}

// RevisionRequestDTO is the revision_requests row.
type RevisionRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	RequesterID uuid.UUID `gorm:"type:uuid"`
	Message     string
	Status      string `gorm:"type:varchar(16)"`
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

func (RevisionRequestDTO) TableName() string {
	return "revision_requests"
}

func revisionFromDomain(r *order.RevisionRequest) RevisionRequestDTO {
	return RevisionRequestDTO{
		ID:          r.ID().Bytes(),
		OrderID:     r.OrderID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		Message:     r.Message(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		ResolvedAt:  r.ResolvedAt(),
	}
}

func revisionToDomain(dto RevisionRequestDTO) (*order.RevisionRequest, error) {
	ids, err := uuidsFromBytes(dto.ID, dto.OrderID, dto.RequesterID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseRevisionStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreRevisionRequest(ids[0], ids[1], ids[2], dto.Message, status, dto.CreatedAt, dto.ResolvedAt)
}

func uuidsFromBytes(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
