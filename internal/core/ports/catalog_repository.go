package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// CatalogRepository reads gigs and packages and maintains the gig order counter.
type CatalogRepository interface {
	GetGig(ctx context.Context, id kernel.UUID) (*catalog.Gig, error)
	GetPackage(ctx context.Context, id kernel.UUID) (*catalog.Package, error)

	// IncrementOrdersCount adds one to the gig's order counter with an atomic update.
	IncrementOrdersCount(ctx context.Context, gigID kernel.UUID) error
}

// PartyRepository checks party records and maintains seller statistics.
type PartyRepository interface {
	// EnsureCustomer returns an ObjectNotFoundError if no customer profile exists.
	EnsureCustomer(ctx context.Context, id kernel.UUID) error

	// IncrementCompletedTasks adds one to the seller's completed tasks with an atomic update.
	IncrementCompletedTasks(ctx context.Context, sellerID kernel.UUID) error

	CompletedTasks(ctx context.Context, sellerID kernel.UUID) (int, error)
}
