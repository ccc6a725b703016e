package order

// Capabilities tells a caller which actions an actor may take on an order right now.
// It is computed by the same rules that guard the mutations, so a UI can gate
// buttons without duplicating them.
type Capabilities struct {
	Accept          bool
	Deliver         bool
	RequestRevision bool
	ResolveRevision bool
	Complete        bool
	Cancel          bool
	Refund          bool
	// Transitions are the target statuses the actor may request through the generic
	// transition operation.
	Transitions []Status
	// RevisionsLeft is nil when the package allows unlimited revisions.
	RevisionsLeft *int
}

// CapabilitiesFor evaluates every operation for actor. accepted is the number of
// accepted revision requests on the order.
func (o *Order) CapabilitiesFor(actor Actor, accepted int) Capabilities {
	// placeholder reason so the admin reason rule does not hide cancellation
	const reason = "-"

	caps := Capabilities{Transitions: []Status{}}
	for _, to := range o.status.AllowedTransitions() {
		if o.CheckTransition(actor, to, reason) != nil {
			continue
		}
		if to == RevisionRequested && !o.pkg.RevisionQuotaLeft(accepted) {
			continue
		}
		caps.Transitions = append(caps.Transitions, to)
	}

	caps.Accept = o.CheckTransition(actor, InProgress, "") == nil
	caps.Deliver = o.isSeller(actor) && (o.status == InProgress || o.status == RevisionRequested)
	caps.RequestRevision = o.isCustomer(actor) && o.status == Delivered && o.pkg.RevisionQuotaLeft(accepted)
	caps.ResolveRevision = o.isSeller(actor)
	caps.Complete = o.CheckTransition(actor, Completed, "") == nil
	caps.Cancel = o.CheckTransition(actor, Cancelled, reason) == nil
	caps.Refund = actor.IsAdmin() && o.escrow == EscrowHeld

	if limit := o.pkg.Revisions(); limit != nil {
		left := max(*limit-accepted, 0)
		caps.RevisionsLeft = &left
	}
	return caps
}
