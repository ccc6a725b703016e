package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"
)

// maxOrderNumberAttempts bounds the retries on order number collisions.
const maxOrderNumberAttempts = 5

// OrderNumberGenerator supplies candidate order numbers.
type OrderNumberGenerator interface {
	Next(now time.Time) (string, error)
}

// CreateOrderCommandHandler places orders. In one transaction it checks the
// customer, gig and package, stores the order under a fresh number, and bumps the
// gig's order counter. The seller is notified after commit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	numbers    OrderNumberGenerator
	placement  services.OrderPlacement
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	numbers OrderNumberGenerator,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
		placement:  services.NewOrderPlacement(),
		clock:      clk,
	}
}

// Handle returns the placed order. Fails with ObjectNotFoundError for an unknown
// customer, gig or package, ValueIsInvalidError when the gig is not purchasable or
// the package belongs to another gig, and AuthorizationError when the actor is not
// a customer.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	customer := command.Customer()
	if customer.Role != order.RoleCustomer {
		return nil, errs.NewAuthorizationError(customer.ID.String(), customer.Role.String(), "place orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PartyRepository().EnsureCustomer(ctx, customer.ID); err != nil {
		return nil, err
	}

	catalogRepo := uow.CatalogRepository()
	gig, err := catalogRepo.GetGig(ctx, command.GigID())
	if err != nil {
		return nil, err
	}
	pkg, err := catalogRepo.GetPackage(ctx, command.PackageID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	orderRepo := uow.OrderRepository()

	var placed *order.Order
	for attempt := 1; placed == nil; attempt++ {
		if attempt > maxOrderNumberAttempts {
			return nil, fmt.Errorf("allocate order number after %d attempts: %w",
				maxOrderNumberAttempts, ports.ErrOrderNumberTaken)
		}

		number, numberErr := h.numbers.Next(now)
		if numberErr != nil {
			return nil, numberErr
		}

		candidate, placeErr := h.placement.Place(
			kernel.NewUUID(), number, customer.ID, gig, pkg, command.Requirements(), now)
		if placeErr != nil {
			return nil, placeErr
		}

		err = orderRepo.Add(ctx, candidate)
		switch {
		case errors.Is(err, ports.ErrOrderNumberTaken):
			continue
		case err != nil:
			return nil, err
		}
		placed = candidate
	}

	if err = catalogRepo.IncrementOrdersCount(ctx, gig.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
