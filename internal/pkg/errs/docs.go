// Package errs provides standardized error types for the marketplace order engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of error types:
//   - Input errors: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - Business errors: ObjectNotFoundError, AuthorizationError, InvalidTransitionError,
//     InvalidStateError, QuotaExceededError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works across wrapping
//
// Every sentinel maps to a stable Code via CodeOf. Callers (the HTTP adapter, jobs)
// branch on the code instead of matching message strings. Errors that carry
// structured context expose it through Details so it can be rendered as-is.
package errs
