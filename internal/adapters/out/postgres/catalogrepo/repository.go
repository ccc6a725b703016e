package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AddGig stores a gig. The catalog is owned by another service; this is used to
// seed listings.
func (r *GormCatalogRepository) AddGig(ctx context.Context, gig *catalog.Gig) error {
	if err := gig.Validate(); err != nil {
		return err
	}

	dto := gigFromDomain(gig)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddPackage stores a package of an existing gig.
func (r *GormCatalogRepository) AddPackage(ctx context.Context, pkg *catalog.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := packageFromDomain(pkg)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCatalogRepository) GetGig(ctx context.Context, id kernel.UUID) (*catalog.Gig, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GigDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gig", id.String())
		}
		return nil, err
	}

	return gigToDomain(dto)
}

func (r *GormCatalogRepository) GetPackage(ctx context.Context, id kernel.UUID) (*catalog.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return packageToDomain(dto)
}

func (r *GormCatalogRepository) IncrementOrdersCount(ctx context.Context, gigID kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&GigDTO{}).
		Where("id = ?", gigID.Bytes()).
		Update("orders_count", gorm.Expr("orders_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gig", gigID.String())
	}
	return nil
}
