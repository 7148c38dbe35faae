// Package billing contains the recurring rent billing and loyalty domain:
// the lease schedule resolver, the per-month rent payment aggregate and its
// classification rules, loyalty tier derivation, and pure pricing helpers.
//
// Everything date-dependent takes the reference date as an argument; callers
// obtain it from a shared.Clock so behavior stays deterministic under test.
package billing
