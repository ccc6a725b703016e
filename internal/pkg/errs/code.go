package errs

import "errors"

// Code is the stable, machine-readable identifier of an error kind.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeForbidden         Code = "forbidden"
	CodeInvalidTransition Code = "invalid_transition"
	CodeInvalidState      Code = "invalid_state"
	CodeQuotaExceeded     Code = "quota_exceeded"
	CodeValidation        Code = "validation_error"
	CodeInternal          Code = "internal_error"
)

// CodeOf classifies err. Anything that is not a known business or input error is
// reported as CodeInternal.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrQuotaExceeded):
		return CodeQuotaExceeded
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return CodeValidation
	default:
		return CodeInternal
	}
}

// IsBusiness reports whether err is recoverable by the caller.
func IsBusiness(err error) bool {
	code := CodeOf(err)
	return code != "" && code != CodeInternal
}

// Details returns the structured context of the first error in the chain that carries any.
func Details(err error) map[string]any {
	var d interface{ Details() map[string]any }
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}
