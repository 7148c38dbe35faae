package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeaseRepository defines the interface for lease persistence.
// Billing only reads leases; writes exist for the leasing subsystem and tests.
type LeaseRepository interface {
	// FindByID finds a lease by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)

	// FindActiveByTenant finds the lease in force for a tenant on the given
	// date. Returns shared.ErrNotFound when the tenant has no active lease.
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID, date time.Time) (*Lease, error)

	// FindAllByTenant finds all leases for a tenant, newest move-in first
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]Lease, error)

	// Save creates or updates a lease
	Save(ctx context.Context, lease *Lease) error

	// Delete removes a lease and cascades to its payments
	Delete(ctx context.Context, id uuid.UUID) error
}
