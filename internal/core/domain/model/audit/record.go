// Package audit models the append-only log of administrative overrides.
// Records are written in the same transaction as the order change they describe
// and are never updated or deleted.
package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

// Action is the administrative operation that was audited.
type Action string

const (
	ActionCancel Action = "cancel"
	ActionRefund Action = "refund"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionCancel, ActionRefund:
		return a, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not cancel or refund", s))
	}
}

// Record is keyed by (order, actor, time, reason). Amount is the order total the
// action applied to.
type Record struct {
	id            kernel.UUID
	orderID       kernel.UUID
	actorID       kernel.UUID
	action        Action
	reason        string
	amount        kernel.Money
	recordedAt    time.Time
	isConstructed bool
}

// NewRecord validates an audit entry. The reason is mandatory.
func NewRecord(
	id, orderID, actorID kernel.UUID,
	action Action,
	reason string,
	amount kernel.Money,
	recordedAt time.Time,
) (*Record, error) {
	var reasonErr error
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	_, actionErr := ParseAction(string(action))

	var timeErr error
	if recordedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("recorded_at")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		actionErr,
		reasonErr,
		amount.Validate(),
		timeErr,
	); err != nil {
		return nil, err
	}

	return &Record{
		id:            id,
		orderID:       orderID,
		actorID:       actorID,
		action:        action,
		reason:        strings.TrimSpace(reason),
		amount:        amount,
		recordedAt:    recordedAt,
		isConstructed: true,
	}, nil
}

// RestoreRecord rebuilds a stored record.
func RestoreRecord(
	id, orderID, actorID kernel.UUID,
	action Action,
	reason string,
	amount kernel.Money,
	recordedAt time.Time,
) (*Record, error) {
	return NewRecord(id, orderID, actorID, action, reason, amount, recordedAt)
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID       { return r.id }
func (r *Record) OrderID() kernel.UUID  { return r.orderID }
func (r *Record) ActorID() kernel.UUID  { return r.actorID }
func (r *Record) Action() Action        { return r.action }
func (r *Record) Reason() string        { return r.reason }
func (r *Record) Amount() kernel.Money  { return r.amount }
func (r *Record) RecordedAt() time.Time { return r.recordedAt }
