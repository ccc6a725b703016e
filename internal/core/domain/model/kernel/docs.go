// Package kernel provides the value objects shared by every aggregate of the
// marketplace order engine.
//
// The package includes:
//   - UUID: identifiers of orders, parties, gigs and packages
//   - Money: non-negative amounts backed by shopspring/decimal, rounded to cents
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and are rejected by Validate.
package kernel
