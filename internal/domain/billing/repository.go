package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RentPaymentRepository defines the interface for rent payment persistence.
// The backing store must enforce a uniqueness constraint on
// (lease_id, tenant_id, billing_month); Create reports a violation as
// shared.ErrAlreadyExists so the ledger can re-fetch the winning row.
type RentPaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RentPayment, error)

	// FindForMonth finds the payment for a (lease, tenant, billing month).
	// Returns shared.ErrNotFound when no row exists yet.
	FindForMonth(ctx context.Context, leaseID, tenantID uuid.UUID, month time.Time) (*RentPayment, error)

	// FindByLeaseAndTenant finds all payments on a lease for a tenant,
	// ascending by billing month.
	FindByLeaseAndTenant(ctx context.Context, leaseID, tenantID uuid.UUID) ([]RentPayment, error)

	// FindByTenantAtProperty finds every payment a tenant has on any lease
	// at a property, ascending by billing month. This is the loyalty tier
	// engine's input.
	FindByTenantAtProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]RentPayment, error)

	// FindByCheckoutSession finds the unsettled payments stamped with a
	// checkout session on a lease.
	FindByCheckoutSession(ctx context.Context, leaseID uuid.UUID, sessionID string) ([]RentPayment, error)

	// FindLastPaid finds the most recently billed settled payment on a
	// lease. Returns shared.ErrNotFound when nothing has been paid yet.
	FindLastPaid(ctx context.Context, leaseID uuid.UUID) (*RentPayment, error)

	// Create inserts a new payment. Returns shared.ErrAlreadyExists when a
	// row for the same (lease, tenant, billing month) already exists.
	Create(ctx context.Context, payment *RentPayment) error

	// Save updates an existing payment
	Save(ctx context.Context, payment *RentPayment) error

	// DeleteByLease removes all payments for a lease (lease cascade)
	DeleteByLease(ctx context.Context, leaseID uuid.UUID) error
}

// LoyaltyStandingRepository defines the interface for loyalty standing
// persistence. The backing store must enforce a uniqueness constraint on
// (tenant_id, property_id).
type LoyaltyStandingRepository interface {
	// FindByTenantAndProperty finds the standing for a (tenant, property)
	// pair. Returns shared.ErrNotFound when none has been computed yet.
	FindByTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (*LoyaltyStanding, error)

	// Upsert atomically creates or updates the standing for the pair, so
	// concurrent recomputations cannot lose writes.
	Upsert(ctx context.Context, standing *LoyaltyStanding) error
}
