package order

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Purchase is what a customer bought: the parties, the catalog references and the
// package terms in force at purchase time.
type Purchase struct {
	CustomerID   kernel.UUID
	SellerID     kernel.UUID
	GigID        kernel.UUID
	PackageID    kernel.UUID
	Package      catalog.PackageSnapshot
	Requirements map[string]any
}

// Order is the aggregate root of the order lifecycle. It owns the status machine,
// the escrow split and the rules on who may move the order where.
//
// Order follows these invariants:
//   - Total equals platform fee plus seller earnings, with the fee at PlatformFeeRate
//   - Status only changes along the transition table (see Status)
//   - Completed and Cancelled are terminal
//   - Package terms and requirements never change after creation
//
// Every successful mutation records exactly one Event, drained with PullEvents after
// the change is persisted.
type Order struct {
	id           kernel.UUID
	number       string
	customerID   kernel.UUID
	sellerID     kernel.UUID
	gigID        kernel.UUID
	packageID    kernel.UUID
	pkg          catalog.PackageSnapshot
	requirements map[string]any
	split        EscrowSplit
	escrow       EscrowStatus
	status       Status

	deliveryDate       time.Time
	createdAt          time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string
	cancelledBy        *Actor
	refundedAt         *time.Time
	lastDeliveredAt    *time.Time
	overdueNotifiedAt  *time.Time

	// persistedStatus is the status last read from or written to storage. Repositories
	// use it as the compare-and-swap guard.
	persistedStatus Status
	events          []Event
	isConstructed   bool
}

// NewOrder places a new order in Pending with escrow held. The delivery deadline is
// now plus the package delivery days.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-LZ0K3N2A-7QX2PM", order.Purchase{
//	    CustomerID: customerID,
//	    SellerID:   gig.SellerID(),
//	    GigID:      gig.ID(),
//	    PackageID:  pkg.ID(),
//	    Package:    pkg.Snapshot(),
//	}, now)
func NewOrder(id kernel.UUID, number string, purchase Purchase, now time.Time) (*Order, error) {
	var numberErr error
	if strings.TrimSpace(number) == "" {
		numberErr = errs.NewValueIsRequiredError("order_number")
	}

	var splitErr error
	var split EscrowSplit
	if err := purchase.Package.Validate(); err != nil {
		splitErr = err
	} else {
		split, splitErr = SplitEscrow(purchase.Package.Price())
	}

	if err := errors.Join(
		id.Validate(),
		numberErr,
		purchase.CustomerID.Validate(),
		purchase.SellerID.Validate(),
		purchase.GigID.Validate(),
		purchase.PackageID.Validate(),
		splitErr,
	); err != nil {
		return nil, err
	}

	if purchase.CustomerID.IsEqual(purchase.SellerID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("customer_id", errors.New("seller cannot purchase own gig"))
	}

	o := &Order{
		id:            id,
		number:        number,
		customerID:    purchase.CustomerID,
		sellerID:      purchase.SellerID,
		gigID:         purchase.GigID,
		packageID:     purchase.PackageID,
		pkg:           purchase.Package,
		requirements:  maps.Clone(purchase.Requirements),
		split:         split,
		escrow:        EscrowHeld,
		status:        Pending,
		deliveryDate:  now.AddDate(0, 0, purchase.Package.DeliveryDays()),
		createdAt:     now,
		isConstructed: true,
	}
	o.record(EventPlaced, Actor{ID: o.customerID, Role: RoleCustomer}, Unknown, now)
	return o, nil
}

// State is the full persisted form of an Order, used by repositories to rebuild it.
type State struct {
	ID                 kernel.UUID
	Number             string
	Purchase           Purchase
	Split              EscrowSplit
	Escrow             EscrowStatus
	Status             Status
	DeliveryDate       time.Time
	CreatedAt          time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CancelledBy        *Actor
	RefundedAt         *time.Time
	LastDeliveredAt    *time.Time
	OverdueNotifiedAt  *time.Time
}

// RestoreOrder rebuilds an order from storage without recording events.
func RestoreOrder(s State) (*Order, error) {
	var escrowErr error
	if _, err := ParseEscrowStatus(string(s.Escrow)); err != nil {
		escrowErr = err
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.Purchase.CustomerID.Validate(),
		s.Purchase.SellerID.Validate(),
		s.Purchase.GigID.Validate(),
		s.Purchase.PackageID.Validate(),
		s.Purchase.Package.Validate(),
		s.Split.Validate(),
		s.Status.Validate(),
		escrowErr,
	); err != nil {
		return nil, err
	}

	if s.Status == Completed && s.CompletedAt == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("completed_at", fmt.Errorf("order %s is completed", s.Number))
	}
	if s.Status == Cancelled && s.CancelledAt == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("cancelled_at", fmt.Errorf("order %s is cancelled", s.Number))
	}

	return &Order{
		id:                 s.ID,
		number:             s.Number,
		customerID:         s.Purchase.CustomerID,
		sellerID:           s.Purchase.SellerID,
		gigID:              s.Purchase.GigID,
		packageID:          s.Purchase.PackageID,
		pkg:                s.Purchase.Package,
		requirements:       maps.Clone(s.Purchase.Requirements),
		split:              s.Split,
		escrow:             s.Escrow,
		status:             s.Status,
		deliveryDate:       s.DeliveryDate,
		createdAt:          s.CreatedAt,
		completedAt:        s.CompletedAt,
		cancelledAt:        s.CancelledAt,
		cancellationReason: s.CancellationReason,
		cancelledBy:        s.CancelledBy,
		refundedAt:         s.RefundedAt,
		lastDeliveredAt:    s.LastDeliveredAt,
		overdueNotifiedAt:  s.OverdueNotifiedAt,
		persistedStatus:    s.Status,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) Number() string                   { return o.number }
func (o *Order) CustomerID() kernel.UUID          { return o.customerID }
func (o *Order) SellerID() kernel.UUID            { return o.sellerID }
func (o *Order) GigID() kernel.UUID               { return o.gigID }
func (o *Order) PackageID() kernel.UUID           { return o.packageID }
func (o *Order) Package() catalog.PackageSnapshot { return o.pkg }
func (o *Order) Split() EscrowSplit               { return o.split }
func (o *Order) Escrow() EscrowStatus             { return o.escrow }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) DeliveryDate() time.Time          { return o.deliveryDate }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) CompletedAt() *time.Time          { return o.completedAt }
func (o *Order) CancelledAt() *time.Time          { return o.cancelledAt }
func (o *Order) CancellationReason() string       { return o.cancellationReason }
func (o *Order) CancelledBy() *Actor              { return o.cancelledBy }
func (o *Order) RefundedAt() *time.Time           { return o.refundedAt }
func (o *Order) LastDeliveredAt() *time.Time      { return o.lastDeliveredAt }
func (o *Order) OverdueNotifiedAt() *time.Time    { return o.overdueNotifiedAt }

// Requirements returns a copy of the answers captured at purchase.
func (o *Order) Requirements() map[string]any {
	return maps.Clone(o.requirements)
}

// PersistedStatus is the status storage is expected to hold when this order is saved.
func (o *Order) PersistedStatus() Status {
	return o.persistedStatus
}

// MarkPersisted is called by repositories after a successful write.
func (o *Order) MarkPersisted() {
	o.persistedStatus = o.status
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// IsParty reports whether actor is this order's customer or seller.
func (o *Order) IsParty(actor Actor) bool {
	return o.isCustomer(actor) || o.isSeller(actor)
}

func (o *Order) isCustomer(actor Actor) bool {
	return actor.Role == RoleCustomer && actor.ID.IsEqual(o.customerID)
}

func (o *Order) isSeller(actor Actor) bool {
	return actor.Role == RoleSeller && actor.ID.IsEqual(o.sellerID)
}

func (o *Order) forbid(actor Actor, action string) error {
	return errs.NewAuthorizationError(actor.ID.String(), actor.Role.String(), fmt.Sprintf("%s order %s", action, o.number))
}

// CheckTransition runs the checks every status change goes through, in order:
// the actor must be a party or an admin, the (current, to) pair must be in the
// transition table, and the actor's role must be allowed to make that move.
// Admin cancellations require a non-blank reason.
func (o *Order) CheckTransition(actor Actor, to Status, reason string) error {
	action := "move to " + to.String()
	if !o.IsParty(actor) && !actor.IsAdmin() {
		return o.forbid(actor, action)
	}

	if _, err := o.status.TransitionTo(to); err != nil {
		return err
	}

	switch to {
	case InProgress, Delivered:
		if !o.isSeller(actor) {
			return o.forbid(actor, action)
		}
	case RevisionRequested, Completed:
		if !o.isCustomer(actor) {
			return o.forbid(actor, action)
		}
	case Cancelled:
		if actor.IsAdmin() && strings.TrimSpace(reason) == "" {
			return errs.NewValueIsRequiredError("reason")
		}
	}
	return nil
}

// Accept moves the order to InProgress. From Pending this is the seller taking the
// order; from RevisionRequested it is the seller starting on the requested changes.
func (o *Order) Accept(actor Actor, now time.Time) error {
	if err := o.CheckTransition(actor, InProgress, ""); err != nil {
		return err
	}

	previous := o.status
	o.status = InProgress

	eventType := EventAccepted
	if previous == RevisionRequested {
		eventType = EventRevisionStarted
	}
	o.record(eventType, actor, previous, now)
	return nil
}

// Deliver records a seller delivery and moves the order to Delivered, refreshing
// the delivery date to now. From RevisionRequested the order passes through
// InProgress in the same call. pending, when given, is the outstanding revision
// request and becomes accepted on either path.
//
// Returns AuthorizationError when actor is not the seller and InvalidStateError
// when the order is not InProgress or RevisionRequested.
func (o *Order) Deliver(
	actor Actor,
	deliveryID kernel.UUID,
	message string,
	attachments []string,
	pending *RevisionRequest,
	now time.Time,
) (*Delivery, error) {
	if !o.isSeller(actor) {
		return nil, o.forbid(actor, "deliver")
	}
	if o.status != InProgress && o.status != RevisionRequested {
		return nil, errs.NewInvalidStateError("deliver", o.status.String(), InProgress.String(), RevisionRequested.String())
	}

	delivery, err := newDelivery(deliveryID, o.id, message, attachments, now)
	if err != nil {
		return nil, err
	}

	previous := o.status
	current := o.status
	if current == RevisionRequested {
		if current, err = current.TransitionTo(InProgress); err != nil {
			return nil, err
		}
	}
	if pending != nil {
		if !pending.orderID.IsEqual(o.id) {
			return nil, errs.NewObjectNotFoundError("revision_request", pending.id.String())
		}
		if err = pending.resolve(RevisionAccepted, now); err != nil {
			return nil, err
		}
	}

	if o.status, err = current.TransitionTo(Delivered); err != nil {
		return nil, err
	}
	o.deliveryDate = now
	o.lastDeliveredAt = &now
	o.record(EventDelivered, actor, previous, now, withSubject(deliveryID))
	return delivery, nil
}

// RequestRevision opens a pending revision request and moves the order to
// RevisionRequested. accepted is the number of accepted requests already on the
// order, counted by the caller under the order lock.
//
// Returns AuthorizationError when actor is not the customer, InvalidStateError
// when the order is not Delivered, ValueIsRequiredError for a blank message and
// QuotaExceededError when the package allowance is used up.
func (o *Order) RequestRevision(
	actor Actor,
	requestID kernel.UUID,
	message string,
	accepted int,
	now time.Time,
) (*RevisionRequest, error) {
	if !o.isCustomer(actor) {
		return nil, o.forbid(actor, "request revision on")
	}
	if o.status != Delivered {
		return nil, errs.NewInvalidStateError("request revision", o.status.String(), Delivered.String())
	}
	message = normalizeMessage(message)
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if !o.pkg.RevisionQuotaLeft(accepted) {
		return nil, errs.NewQuotaExceededError("revisions", *o.pkg.Revisions(), accepted)
	}
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	next, err := o.status.TransitionTo(RevisionRequested)
	if err != nil {
		return nil, err
	}
	previous := o.status
	o.status = next

	request := &RevisionRequest{
		id:            requestID,
		orderID:       o.id,
		requesterID:   actor.ID,
		message:       message,
		status:        RevisionPending,
		createdAt:     now,
		isConstructed: true,
	}
	o.record(EventRevisionRequested, actor, previous, now, withReason(message), withSubject(requestID))
	return request, nil
}

// ResolveRevision lets the seller mark a pending revision request accepted or
// rejected. The order status is not touched.
func (o *Order) ResolveRevision(actor Actor, request *RevisionRequest, outcome RevisionStatus, now time.Time) error {
	if !o.isSeller(actor) {
		return o.forbid(actor, "resolve revision on")
	}
	if err := request.Validate(); err != nil {
		return err
	}
	if !request.orderID.IsEqual(o.id) {
		return errs.NewObjectNotFoundError("revision_request", request.id.String())
	}
	if err := request.resolve(outcome, now); err != nil {
		return err
	}

	o.record(EventRevisionResolved, actor, o.status, now, withReason(outcome.String()), withSubject(request.id))
	return nil
}

// Complete is the customer's acceptance of a delivered order. It stamps completedAt
// and releases the escrow to the seller.
func (o *Order) Complete(actor Actor, now time.Time) error {
	if err := o.CheckTransition(actor, Completed, ""); err != nil {
		return err
	}

	previous := o.status
	o.status = Completed
	o.completedAt = &now
	o.escrow = EscrowReleased
	o.record(EventCompleted, actor, previous, now)
	return nil
}

// Cancel moves a non-terminal order to Cancelled and records who did it. Parties
// may omit the reason; admins must give one.
func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if err := o.CheckTransition(actor, Cancelled, reason); err != nil {
		return err
	}

	previous := o.status
	o.cancel(actor, reason, now)
	o.record(EventCancelled, actor, previous, now, withReason(reason))
	return nil
}

func (o *Order) cancel(actor Actor, reason string, now time.Time) {
	by := actor
	o.status = Cancelled
	o.cancelledAt = &now
	o.cancellationReason = reason
	o.cancelledBy = &by
}

// Refund is the admin reversal of a held escrow. A non-terminal order is cancelled
// in the same step with reason as its cancellation reason; an already cancelled
// order only has its escrow marked refunded. Completed orders have released their
// escrow and cannot be refunded.
func (o *Order) Refund(actor Actor, reason string, now time.Time) error {
	if !actor.IsAdmin() {
		return o.forbid(actor, "refund escrow of")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if o.escrow != EscrowHeld {
		return errs.NewInvalidStateError("refund escrow", o.escrow.String(), EscrowHeld.String())
	}

	previous := o.status
	if !o.status.IsTerminal() {
		if _, err := o.status.TransitionTo(Cancelled); err != nil {
			return err
		}
		o.cancel(actor, reason, now)
	}
	o.escrow = EscrowRefunded
	o.refundedAt = &now
	o.record(EventRefunded, actor, previous, now, withReason(reason))
	return nil
}

// IsOverdue reports whether the delivery deadline has passed before the first
// delivery. Once anything was delivered the deadline is met, and later revision
// rounds have no deadline of their own.
func (o *Order) IsOverdue(now time.Time) bool {
	if o.lastDeliveredAt != nil {
		return false
	}
	switch o.status {
	case Pending, InProgress:
		return now.After(o.deliveryDate)
	default:
		return false
	}
}

// MarkOverdue stamps the order as overdue once and records an event for both
// parties. It returns false if the order is not overdue or was already flagged.
func (o *Order) MarkOverdue(now time.Time) bool {
	if o.overdueNotifiedAt != nil || !o.IsOverdue(now) {
		return false
	}
	o.overdueNotifiedAt = &now
	o.record(EventOverdue, SystemActor(), o.status, now)
	return true
}
