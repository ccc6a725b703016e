package orderrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository. Deliveries are
// insert-only.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, delivery *order.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(delivery)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDeliveryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("delivered_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*order.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := deliveryToDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}
