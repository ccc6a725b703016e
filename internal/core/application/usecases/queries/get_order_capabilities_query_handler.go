package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

// OrderReader gives read access to orders and their revision requests. The GORM
// unit of work satisfies it without a transaction.
type OrderReader interface {
	OrderRepository() ports.OrderRepository
	RevisionRepository() ports.RevisionRepository
}

type OrderReaderFactory interface {
	Create() OrderReader
}

// GetOrderCapabilitiesQueryHandler evaluates the same domain rules that guard the
// mutations, so a capability reported here matches what the command would accept
// at the time of the read.
type GetOrderCapabilitiesQueryHandler struct {
	readerFactory OrderReaderFactory
}

func NewGetOrderCapabilitiesQueryHandler(readerFactory OrderReaderFactory) GetOrderCapabilitiesQueryHandler {
	return GetOrderCapabilitiesQueryHandler{readerFactory: readerFactory}
}

func (h GetOrderCapabilitiesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCapabilitiesQuery,
) (GetOrderCapabilitiesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderCapabilitiesQueryResponse{}, err
	}

	reader := h.readerFactory.Create()
	o, err := reader.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderCapabilitiesQueryResponse{}, err
	}

	actor := query.Actor()
	if err = authorizeView(actor, o.CustomerID(), o.SellerID()); err != nil {
		return GetOrderCapabilitiesQueryResponse{}, err
	}

	accepted, err := reader.RevisionRepository().CountAccepted(ctx, o.ID())
	if err != nil {
		return GetOrderCapabilitiesQueryResponse{}, err
	}

	return GetOrderCapabilitiesQueryResponse{
		OrderID:      o.ID(),
		Status:       o.Status(),
		Capabilities: o.CapabilitiesFor(actor, accepted),
	}, nil
}
