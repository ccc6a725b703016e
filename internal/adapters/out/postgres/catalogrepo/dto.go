// Package catalogrepo reads the gig catalog and maintains the counters the order
// engine updates: gig order counts and seller completed tasks.
package catalogrepo

import (
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type SellerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompletedTasks int       `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (SellerDTO) TableName() string {
	return "sellers"
}

type GigDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	OrdersCount int       `gorm:"not null;default:0"`
}

func (GigDTO) TableName() string {
	return "gigs"
}

type PackageDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GigID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tier         string          `gorm:"type:varchar(16);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryDays int             `gorm:"not null"`
	Revisions    *int
}

func (PackageDTO) TableName() string {
	return "packages"
}

func gigFromDomain(g *catalog.Gig) GigDTO {
	return GigDTO{
		ID:          g.ID().Bytes(),
		SellerID:    g.SellerID().Bytes(),
		Title:       g.Title(),
		Status:      string(g.Status()),
		OrdersCount: g.OrdersCount(),
	}
}

func gigToDomain(dto GigDTO) (*catalog.Gig, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewGig(id, sellerID, dto.Title, catalog.GigStatus(dto.Status), dto.OrdersCount)
}

func packageFromDomain(p *catalog.Package) PackageDTO {
	snapshot := p.Snapshot()
	return PackageDTO{
		ID:           p.ID().Bytes(),
		GigID:        p.GigID().Bytes(),
		Tier:         snapshot.Tier().String(),
		Price:        snapshot.Price().Amount(),
		DeliveryDays: snapshot.DeliveryDays(),
		Revisions:    snapshot.Revisions(),
	}
}

func packageToDomain(dto PackageDTO) (*catalog.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	gigID, err := kernel.UUIDFromBytes(dto.GigID[:])
	if err != nil {
		return nil, err
	}
	tier, err := catalog.ParseTier(dto.Tier)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.NewPackage(id, gigID, tier, price, dto.DeliveryDays, dto.Revisions)
}
