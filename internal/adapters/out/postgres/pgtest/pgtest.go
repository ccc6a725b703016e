// Package pgtest starts a disposable PostgreSQL for integration tests and seeds
// the catalog rows an order needs.
package pgtest

import (
	"context"
	"time"

	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated PostgreSQL container.
type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies the embedded migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = migrations.Up(dsn); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DSN: dsn, DB: db}, nil
}

// Truncate empties every table. TRUNCATE does not fire the audit log's row
// triggers.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE audit_records, revision_requests, deliveries, orders,
		packages, gigs, sellers, customers`).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Catalog is one seller with an active gig and a basic package priced 1000.00
// with three delivery days, and one customer.
type Catalog struct {
	CustomerID kernel.UUID
	SellerID   kernel.UUID
	Gig        *catalog.Gig
	Package    *catalog.Package
}

// SeedCatalog stores a fresh Catalog. revisions == nil means unlimited revisions.
func SeedCatalog(ctx context.Context, db *gorm.DB, revisions *int) (Catalog, error) {
	parties := catalogrepo.NewGormPartyRepository(db)
	gigs := catalogrepo.NewGormCatalogRepository(db)

	c := Catalog{CustomerID: kernel.NewUUID(), SellerID: kernel.NewUUID()}
	if err := parties.AddCustomer(ctx, c.CustomerID); err != nil {
		return Catalog{}, err
	}
	if err := parties.AddSeller(ctx, c.SellerID); err != nil {
		return Catalog{}, err
	}

	gig, err := catalog.NewGig(kernel.NewUUID(), c.SellerID, "Logo design", catalog.GigActive, 0)
	if err != nil {
		return Catalog{}, err
	}
	if err = gigs.AddGig(ctx, gig); err != nil {
		return Catalog{}, err
	}

	pkg, err := catalog.NewPackage(kernel.NewUUID(), gig.ID(), catalog.TierBasic, kernel.MustMoney("1000"), 3, revisions)
	if err != nil {
		return Catalog{}, err
	}
	if err = gigs.AddPackage(ctx, pkg); err != nil {
		return Catalog{}, err
	}

	c.Gig = gig
	c.Package = pkg
	return c, nil
}

// NewOrder builds an unsaved pending order for the seeded package.
func (c Catalog) NewOrder(number string, now time.Time) (*order.Order, error) {
	return order.NewOrder(kernel.NewUUID(), number, order.Purchase{
		CustomerID:   c.CustomerID,
		SellerID:     c.SellerID,
		GigID:        c.Gig.ID(),
		PackageID:    c.Package.ID(),
		Package:      c.Package.Snapshot(),
		Requirements: map[string]any{"brand": "Acme"},
	}, now)
}

func (c Catalog) Customer() order.Actor {
	return order.Actor{ID: c.CustomerID, Role: order.RoleCustomer}
}

func (c Catalog) Seller() order.Actor {
	return order.Actor{ID: c.SellerID, Role: order.RoleSeller}
}
