package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRevisionRepository implements ports.RevisionRepository.
type GormRevisionRepository struct {
	db *gorm.DB
}

func NewGormRevisionRepository(db *gorm.DB) *GormRevisionRepository {
	return &GormRevisionRepository{db: db}
}

func (r *GormRevisionRepository) Add(ctx context.Context, request *order.RevisionRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := revisionFromDomain(request)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update resolves a request. Only pending rows are written; a resolved request
// never changes again.
func (r *GormRevisionRepository) Update(ctx context.Context, request *order.RevisionRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := revisionFromDomain(request)
	result := r.db.WithContext(ctx).Model(&RevisionRequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, order.RevisionPending.String()).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, request.ID())
		if err != nil {
			return err
		}
		return errs.NewInvalidStateError("resolve revision request", current.Status().String(), order.RevisionPending.String())
	}
	return nil
}

func (r *GormRevisionRepository) Get(ctx context.Context, id kernel.UUID) (*order.RevisionRequest, error) {
	var dto RevisionRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("revision_request", id.String())
		}
		return nil, err
	}
	return revisionToDomain(dto)
}

func (r *GormRevisionRepository) FindPending(ctx context.Context, orderID kernel.UUID) (*order.RevisionRequest, error) {
	var dtos []RevisionRequestDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), order.RevisionPending.String()).
		Order("created_at DESC").
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	return revisionToDomain(dtos[0])
}

func (r *GormRevisionRepository) CountAccepted(ctx context.Context, orderID kernel.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RevisionRequestDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), order.RevisionAccepted.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormRevisionRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.RevisionRequest, error) {
	var dtos []RevisionRequestDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*order.RevisionRequest, 0, len(dtos))
	for _, dto := range dtos {
		req, err := revisionToDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
