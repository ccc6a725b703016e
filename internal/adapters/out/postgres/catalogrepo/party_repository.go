package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartyRepository implements ports.PartyRepository over the customers and
// sellers profile tables.
type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) AddCustomer(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&CustomerDTO{ID: id.Bytes()}).Error
}

func (r *GormPartyRepository) AddSeller(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&SellerDTO{ID: id.Bytes()}).Error
}

func (r *GormPartyRepository) EnsureCustomer(ctx context.Context, id kernel.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("customer", id.String())
	}
	return nil
}

func (r *GormPartyRepository) IncrementCompletedTasks(ctx context.Context, sellerID kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&SellerDTO{}).
		Where("id = ?", sellerID.Bytes()).
		Update("completed_tasks", gorm.Expr("completed_tasks + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("seller", sellerID.String())
	}
	return nil
}

func (r *GormPartyRepository) CompletedTasks(ctx context.Context, sellerID kernel.UUID) (int, error) {
	var dto SellerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", sellerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("seller", sellerID.String())
		}
		return 0, err
	}
	return dto.CompletedTasks, nil
}
