// Package services provides domain services that span more than one aggregate
// of the marketplace order engine.
//
// The package includes:
//   - OrderPlacement: checks a gig and package against each other and places an order
//   - OrderNumberGenerator: human-readable, collision-resistant order numbers
package services
