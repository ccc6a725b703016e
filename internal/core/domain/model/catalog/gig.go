package catalog

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrGigIsNotConstructed = errors.New("Gig must be created via NewGig constructor")

// GigStatus is the listing state of a gig. Only active gigs can be purchased.
type GigStatus string

const (
	GigActive   GigStatus = "active"
	GigPaused   GigStatus = "paused"
	GigDraft    GigStatus = "draft"
	GigArchived GigStatus = "archived"
)

func (s GigStatus) Validate() error {
	switch s {
	case GigActive, GigPaused, GigDraft, GigArchived:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("gig_status", fmt.Errorf("%q is not a known gig status", string(s)))
	}
}

// Gig is a seller's fixed-price listing.
type Gig struct {
	id            kernel.UUID
	sellerID      kernel.UUID
	title         string
	status        GigStatus
	ordersCount   int
	isConstructed bool
}

func NewGig(id, sellerID kernel.UUID, title string, status GigStatus, ordersCount int) (*Gig, error) {
	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}

	var countErr error
	if ordersCount < 0 {
		countErr = errs.NewValueIsInvalidErrorWithCause("orders_count", fmt.Errorf("%d is negative", ordersCount))
	}

	if err := errors.Join(id.Validate(), sellerID.Validate(), titleErr, status.Validate(), countErr); err != nil {
		return nil, err
	}

	return &Gig{
		id:            id,
		sellerID:      sellerID,
		title:         title,
		status:        status,
		ordersCount:   ordersCount,
		isConstructed: true,
	}, nil
}

func (g *Gig) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGigIsNotConstructed
	}
	return nil
}

func (g *Gig) ID() kernel.UUID       { return g.id }
func (g *Gig) SellerID() kernel.UUID { return g.sellerID }
func (g *Gig) Title() string         { return g.title }
func (g *Gig) Status() GigStatus     { return g.status }
func (g *Gig) OrdersCount() int      { return g.ordersCount }

// IsPurchasable reports whether new orders may be placed against the gig.
func (g *Gig) IsPurchasable() bool {
	return g.status == GigActive
}
