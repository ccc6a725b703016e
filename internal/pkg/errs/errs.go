package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrForbidden         = errors.New("action is forbidden")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrInvalidState      = errors.New("operation is not allowed in the current state")
	ErrQuotaExceeded     = errors.New("quota exceeded")
)

// ObjectNotFoundError reports that a referenced entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

func (e *ObjectNotFoundError) Details() map[string]any {
	return map[string]any{"object": e.ParamName, "id": fmt.Sprintf("%v", e.ID)}
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Details() map[string]any {
	return map[string]any{"param": e.ParamName}
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(fmt.Sprintf("%v", e.Value)), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

func (e *ValueIsOutOfRangeError) Details() map[string]any {
	return map[string]any{"param": e.ParamName, "min": e.Min, "max": e.Max}
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Details() map[string]any {
	return map[string]any{"param": e.ParamName}
}

// AuthorizationError reports that the actor may not perform Action on the object.
type AuthorizationError struct {
	ActorID string
	Role    string
	Action  string
}

func NewAuthorizationError(actorID, role, action string) *AuthorizationError {
	return &AuthorizationError{ActorID: actorID, Role: role, Action: action}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s %s may not %s", ErrForbidden, e.Role, e.ActorID, e.Action)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrForbidden
}

func (e *AuthorizationError) Details() map[string]any {
	return map[string]any{"actor_id": e.ActorID, "role": e.Role, "action": e.Action}
}

// InvalidTransitionError reports a (From, To) pair missing from the transition table.
// Allowed lists the targets reachable from From.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func NewInvalidTransitionError(from, to string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Allowed: allowed}
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: %s -> %s (allowed from %s: %s)", ErrInvalidTransition, e.From, e.To, e.From, allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func (e *InvalidTransitionError) Details() map[string]any {
	allowed := e.Allowed
	if allowed == nil {
		allowed = []string{}
	}
	return map[string]any{"from": e.From, "to": e.To, "allowed": allowed}
}

// InvalidStateError reports that Operation requires one of Expected but the object is in Current.
type InvalidStateError struct {
	Operation string
	Current   string
	Expected  []string
}

func NewInvalidStateError(operation, current string, expected ...string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current, Expected: expected}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s requires %s, current is %s",
		ErrInvalidState, e.Operation, strings.Join(e.Expected, " or "), e.Current)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

func (e *InvalidStateError) Details() map[string]any {
	return map[string]any{"operation": e.Operation, "current": e.Current, "expected": e.Expected}
}

// QuotaExceededError reports an exhausted allowance.
type QuotaExceededError struct {
	Resource string
	Limit    int
	Used     int
}

func NewQuotaExceededError(resource string, limit, used int) *QuotaExceededError {
	return &QuotaExceededError{Resource: resource, Limit: limit, Used: used}
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %s limit reached, package includes %d, %d already used",
		ErrQuotaExceeded, e.Resource, e.Limit, e.Used)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

func (e *QuotaExceededError) Details() map[string]any {
	return map[string]any{"resource": e.Resource, "limit": e.Limit, "used": e.Used}
}

// sanitize keeps user-controlled values on one line.
func sanitize(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
