// Package catalog holds the read-only view of gigs and their pricing packages
// that the order engine consults at purchase time.
//
// Catalog rows can change after a purchase, so an order never keeps a reference
// to a live Package. It keeps a PackageSnapshot instead: tier, price, delivery days
// and revision allowance copied when the order is placed. The snapshot is the
// authority for the delivery deadline and the revision quota for the life of the order.
//
// Example:
//
//	gig, _ := catalog.NewGig(gigID, sellerID, "Logo design", catalog.GigActive, 0)
//	pkg, _ := catalog.NewPackage(pkgID, gigID, catalog.TierBasic, kernel.MustMoney("1000"), 3, catalog.Revisions(1))
//
//	if gig.IsPurchasable() && pkg.BelongsTo(gig.ID()) {
//	    snapshot := pkg.Snapshot()
//	    _ = snapshot.Price() // 1000.00
//	}
package catalog
