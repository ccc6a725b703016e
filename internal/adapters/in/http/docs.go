// Package http is the REST adapter of the marketplace order engine.
//
// Requests under /api/v1 pass two middlewares before reaching a handler:
//
//  1. ValidateRequests checks them against the embedded openapi.yaml
//     (github.com/getkin/kin-openapi).
//  2. ResolveActor reads X-Actor-ID and X-Actor-Role, the identity supplied by
//     the authentication proxy.
//
// Handlers build a command or query, call its handler and return any error as
// is. NewErrorHandler maps the error code to a status:
//
//	not_found          404
//	forbidden          403
//	invalid_transition 409
//	invalid_state      409
//	quota_exceeded     422
//	validation_error   400
//	internal_error     500
//
// The body is always {"code", "error", "details"}. Internal errors are logged
// and their message is not returned.
//
// The same document is served at /openapi.json and through Swagger UI at /swagger/.
package http
