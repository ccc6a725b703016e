package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// OrderPlacement turns a customer's purchase of a catalog package into a new Order.
//
// Business rules:
//   - The gig must be purchasable (active)
//   - The package must be listed under the gig
//   - The order is bound to a snapshot of the package terms, not the live row
//
// Example usage:
//
//	placement := services.NewOrderPlacement()
//	o, err := placement.Place(kernel.NewUUID(), number, customerID, gig, pkg, requirements, now)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // gig paused or package from another gig
//	}
type OrderPlacement struct{}

func NewOrderPlacement() OrderPlacement {
	return OrderPlacement{}
}

// Place validates the catalog references and creates the order in Pending.
func (OrderPlacement) Place(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	gig *catalog.Gig,
	pkg *catalog.Package,
	requirements map[string]any,
	now time.Time,
) (*order.Order, error) {
	if err := gig.Validate(); err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	if !gig.IsPurchasable() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"gig_id",
			fmt.Errorf("gig %s is %s and cannot be purchased", gig.ID(), gig.Status()),
		)
	}
	if !pkg.BelongsTo(gig.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"package_id",
			fmt.Errorf("package %s does not belong to gig %s", pkg.ID(), gig.ID()),
		)
	}

	return order.NewOrder(id, number, order.Purchase{
		CustomerID:   customerID,
		SellerID:     gig.SellerID(),
		GigID:        gig.ID(),
		PackageID:    pkg.ID(),
		Package:      pkg.Snapshot(),
		Requirements: requirements,
	}, now)
}
