package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// The helpers below run one lifecycle operation against an order already locked by
// the caller. They are shared by the dedicated handlers and the generic transition.

func acceptOrder(ctx context.Context, uow OrderRepoFactory, o *order.Order, actor order.Actor, now time.Time) error {
	if err := o.Accept(actor, now); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}

func deliverOrder(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	actor order.Actor,
	message string,
	attachments []string,
	now time.Time,
) (*order.Delivery, error) {
	revisions := uow.RevisionRepository()

	// The order may have been re-accepted after a revision request, so the pending
	// request is looked up from in_progress as well.
	var pending *order.RevisionRequest
	if s := o.Status(); s == order.InProgress || s == order.RevisionRequested {
		var err error
		if pending, err = revisions.FindPending(ctx, o.ID()); err != nil {
			return nil, err
		}
	}

	delivery, err := o.Deliver(actor, kernel.NewUUID(), message, attachments, pending, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.DeliveryRepository().Add(ctx, delivery); err != nil {
		return nil, err
	}
	if pending != nil {
		if err = revisions.Update(ctx, pending); err != nil {
			return nil, err
		}
	}
	return delivery, nil
}

func requestRevision(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	actor order.Actor,
	message string,
	now time.Time,
) (*order.RevisionRequest, error) {
	revisions := uow.RevisionRepository()

	accepted, err := revisions.CountAccepted(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	request, err := o.RequestRevision(actor, kernel.NewUUID(), message, accepted, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = revisions.Add(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func completeOrder(ctx context.Context, uow UoW, o *order.Order, actor order.Actor, now time.Time) error {
	if err := o.Complete(actor, now); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.PartyRepository().IncrementCompletedTasks(ctx, o.SellerID())
}

func cancelOrder(ctx context.Context, uow UoW, o *order.Order, actor order.Actor, reason string, now time.Time) error {
	if err := o.Cancel(actor, reason, now); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return nil
	}
	return appendAudit(ctx, uow, o, actor, audit.ActionCancel, o.CancellationReason(), now)
}

func appendAudit(
	ctx context.Context,
	uow AuditRepoFactory,
	o *order.Order,
	actor order.Actor,
	action audit.Action,
	reason string,
	now time.Time,
) error {
	record, err := audit.NewRecord(kernel.NewUUID(), o.ID(), actor.ID, action, reason, o.Split().Total(), now)
	if err != nil {
		return err
	}
	return uow.AuditRepository().Append(ctx, record)
}
