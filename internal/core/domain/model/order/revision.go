package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrRevisionRequestIsNotConstructed = errors.New(
	"RevisionRequest must be created via Order.RequestRevision or RestoreRevisionRequest")

// RevisionStatus is the bookkeeping state of a revision request. It is
// independent of the order Status.
type RevisionStatus string

const (
	RevisionPending  RevisionStatus = "pending"
	RevisionAccepted RevisionStatus = "accepted"
	RevisionRejected RevisionStatus = "rejected"
)

func ParseRevisionStatus(s string) (RevisionStatus, error) {
	switch r := RevisionStatus(s); r {
	case RevisionPending, RevisionAccepted, RevisionRejected:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("revision_status", fmt.Errorf("%q is not a valid revision status", s))
	}
}

func (r RevisionStatus) String() string {
	return string(r)
}

// RevisionRequest is a customer's request to redo delivered work. Accepted
// requests count against the package revision allowance.
type RevisionRequest struct {
	id            kernel.UUID
	orderID       kernel.UUID
	requesterID   kernel.UUID
	message       string
	status        RevisionStatus
	createdAt     time.Time
	resolvedAt    *time.Time
	isConstructed bool
}

// RestoreRevisionRequest rebuilds a persisted revision request.
func RestoreRevisionRequest(
	id, orderID, requesterID kernel.UUID,
	message string,
	status RevisionStatus,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*RevisionRequest, error) {
	_, statusErr := ParseRevisionStatus(string(status))
	if err := errors.Join(id.Validate(), orderID.Validate(), requesterID.Validate(), statusErr); err != nil {
		return nil, err
	}

	return &RevisionRequest{
		id:            id,
		orderID:       orderID,
		requesterID:   requesterID,
		message:       message,
		status:        status,
		createdAt:     createdAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

func (r *RevisionRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRevisionRequestIsNotConstructed
	}
	return nil
}

func (r *RevisionRequest) ID() kernel.UUID          { return r.id }
func (r *RevisionRequest) OrderID() kernel.UUID     { return r.orderID }
func (r *RevisionRequest) RequesterID() kernel.UUID { return r.requesterID }
func (r *RevisionRequest) Message() string          { return r.message }
func (r *RevisionRequest) Status() RevisionStatus   { return r.status }
func (r *RevisionRequest) CreatedAt() time.Time     { return r.createdAt }
func (r *RevisionRequest) ResolvedAt() *time.Time   { return r.resolvedAt }

// resolve moves a pending request to accepted or rejected.
func (r *RevisionRequest) resolve(outcome RevisionStatus, at time.Time) error {
	if outcome != RevisionAccepted && outcome != RevisionRejected {
		return errs.NewValueIsInvalidErrorWithCause("resolution", fmt.Errorf("%q is not accepted or rejected", outcome))
	}
	if r.status != RevisionPending {
		return errs.NewInvalidStateError("resolve revision request", r.status.String(), RevisionPending.String())
	}
	r.status = outcome
	r.resolvedAt = &at
	return nil
}

func normalizeMessage(message string) string {
	return strings.TrimSpace(message)
}
