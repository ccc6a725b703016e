// Package order contains the Order aggregate: the lifecycle state machine of a
// purchased gig, its escrow split, and its deliveries and revision requests.
//
// Every mutation goes through one authorization check and one transition check
// before any state changes:
//
//	o.CheckTransition(actor, order.Completed, "")
//	// forbidden:          actor is neither customer, seller nor admin, or has the wrong role
//	// invalid_transition: (current, target) is not in the table
//	// validation_error:   admin cancellation without a reason
//
// Operations with their own preconditions (Deliver, RequestRevision, Refund)
// report InvalidStateError naming the current status instead.
//
// The aggregate does not persist or notify. It records an Event per successful
// mutation; the unit of work drains them with PullEvents after commit and hands
// them to the notification dispatcher.
//
// Example:
//
//	o, _ := order.NewOrder(id, number, purchase, now)
//	_ = o.Accept(seller, now)
//	delivery, _ := o.Deliver(seller, kernel.NewUUID(), "first draft", []string{"s3://bucket/draft.png"}, nil, now)
//	_ = o.Complete(customer, now)
//	o.Split().SellerEarnings() // 850.00 for a 1000.00 package
package order
