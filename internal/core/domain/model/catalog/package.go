package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPackageIsNotConstructed         = errors.New("Package must be created via NewPackage constructor")
	ErrPackageSnapshotIsNotConstructed = errors.New("PackageSnapshot must be created via NewPackageSnapshot or Package.Snapshot")
)

// Revisions returns a pointer to n, for literal allowances.
func Revisions(n int) *int {
	return &n
}

// Package is a priced tier of a gig as currently listed in the catalog.
type Package struct {
	id            kernel.UUID
	gigID         kernel.UUID
	snapshot      PackageSnapshot
	isConstructed bool
}

// NewPackage validates a catalog package. revisions == nil means unlimited revisions.
func NewPackage(
	id, gigID kernel.UUID,
	tier Tier,
	price kernel.Money,
	deliveryDays int,
	revisions *int,
) (*Package, error) {
	snapshot, snapshotErr := NewPackageSnapshot(tier, price, deliveryDays, revisions)
	if err := errors.Join(id.Validate(), gigID.Validate(), snapshotErr); err != nil {
		return nil, err
	}

	return &Package{id: id, gigID: gigID, snapshot: snapshot, isConstructed: true}, nil
}

func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

func (p *Package) ID() kernel.UUID {
	return p.id
}

func (p *Package) GigID() kernel.UUID {
	return p.gigID
}

// BelongsTo reports whether the package is listed under gigID.
func (p *Package) BelongsTo(gigID kernel.UUID) bool {
	return p.gigID.IsEqual(gigID)
}

// Snapshot returns the purchase-time copy of the package terms.
func (p *Package) Snapshot() PackageSnapshot {
	return p.snapshot
}

// PackageSnapshot is the copy of package terms an order is bound to.
type PackageSnapshot struct {
	tier         Tier
	price        kernel.Money
	deliveryDays int
	revisions    *int
	guard        guard.ConstructorGuard
}

// NewPackageSnapshot validates package terms. Price must be positive, delivery days at
// least one, and a non-nil revision allowance must not be negative.
func NewPackageSnapshot(tier Tier, price kernel.Money, deliveryDays int, revisions *int) (PackageSnapshot, error) {
	var priceErr error
	if err := price.Validate(); err != nil {
		priceErr = err
	} else if !price.IsPositive() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}

	var daysErr error
	if deliveryDays < 1 {
		daysErr = errs.NewValueIsInvalidErrorWithCause("delivery_days", fmt.Errorf("%d is less than 1", deliveryDays))
	}

	var revisionsErr error
	if revisions != nil && *revisions < 0 {
		revisionsErr = errs.NewValueIsInvalidErrorWithCause("revisions", fmt.Errorf("%d is negative", *revisions))
	}

	if err := errors.Join(tier.Validate(), priceErr, daysErr, revisionsErr); err != nil {
		return PackageSnapshot{}, err
	}

	s := PackageSnapshot{
		tier:         tier,
		price:        price,
		deliveryDays: deliveryDays,
		guard:        guard.NewConstructorGuard(),
	}
	if revisions != nil {
		s.revisions = Revisions(*revisions)
	}
	return s, nil
}

func (s PackageSnapshot) Validate() error {
	return s.guard.Validate(ErrPackageSnapshotIsNotConstructed)
}

func (s PackageSnapshot) Tier() Tier {
	return s.tier
}

func (s PackageSnapshot) Price() kernel.Money {
	return s.price
}

func (s PackageSnapshot) DeliveryDays() int {
	return s.deliveryDays
}

// Revisions returns a copy of the allowance; nil means unlimited.
func (s PackageSnapshot) Revisions() *int {
	if s.revisions == nil {
		return nil
	}
	return Revisions(*s.revisions)
}

// RevisionQuotaLeft reports whether another revision may be requested after
// accepted revisions have already been used.
func (s PackageSnapshot) RevisionQuotaLeft(accepted int) bool {
	return s.revisions == nil || accepted < *s.revisions
}
