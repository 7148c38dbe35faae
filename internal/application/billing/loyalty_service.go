package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/rentbase/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoyaltyService maintains the persisted loyalty standing for each
// (tenant, property) pair. Reads serve the stored standing as-is; the tier is
// only recomputed from payment history when a settlement makes it stale and
// PersistTier is called. A tenant with no standing yet is bronze.
type LoyaltyService struct {
	leaseRepo    leasing.LeaseRepository
	paymentRepo  billing.RentPaymentRepository
	standingRepo billing.LoyaltyStandingRepository
	clock        shared.Clock
	logger       *zap.Logger
}

// LoyaltyServiceConfig contains configuration for LoyaltyService
type LoyaltyServiceConfig struct {
	LeaseRepo    leasing.LeaseRepository
	PaymentRepo  billing.RentPaymentRepository
	StandingRepo billing.LoyaltyStandingRepository
	Clock        shared.Clock
	Logger       *zap.Logger
}

// NewLoyaltyService creates a new LoyaltyService
func NewLoyaltyService(cfg LoyaltyServiceConfig) *LoyaltyService {
	if cfg.Clock == nil {
		cfg.Clock = shared.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &LoyaltyService{
		leaseRepo:    cfg.LeaseRepo,
		paymentRepo:  cfg.PaymentRepo,
		standingRepo: cfg.StandingRepo,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}
}

// CurrentTier reads the tenant's stored standing at a property, defaulting to
// bronze when none has been persisted yet. It never recomputes from history;
// that is PersistTier's job after a settlement.
func (s *LoyaltyService) CurrentTier(ctx context.Context, tenantID, propertyID uuid.UUID) (billing.Tier, error) {
	standing, err := s.standingRepo.FindByTenantAndProperty(ctx, tenantID, propertyID)
	if err == shared.ErrNotFound {
		return billing.TierBronze, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load loyalty standing: %w", err)
	}
	return standing.Tier, nil
}

// ComputeTier derives the tenant's tier at a property from every payment they
// have there, across all leases.
func (s *LoyaltyService) ComputeTier(ctx context.Context, tenantID, propertyID uuid.UUID) (billing.Tier, error) {
	payments, err := s.paymentRepo.FindByTenantAtProperty(ctx, tenantID, propertyID)
	if err != nil {
		return "", fmt.Errorf("failed to load payment history: %w", err)
	}
	return billing.ComputeTier(payments, s.clock.Now()), nil
}

// PersistTier recomputes the tenant's tier at a property and writes it
// through to the stored standing. The upsert is atomic, so concurrent
// recomputations converge on the same row. Returns the resulting tier.
func (s *LoyaltyService) PersistTier(ctx context.Context, tenantID, propertyID uuid.UUID) (billing.Tier, error) {
	tier, err := s.ComputeTier(ctx, tenantID, propertyID)
	if err != nil {
		return "", err
	}

	standing, err := s.standingRepo.FindByTenantAndProperty(ctx, tenantID, propertyID)
	switch {
	case err == shared.ErrNotFound:
		standing, err = billing.NewLoyaltyStanding(tenantID, propertyID, tier)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("failed to load loyalty standing: %w", err)
	default:
		if !standing.UpdateTier(tier) {
			// Unchanged, nothing to write
			return tier, nil
		}
	}

	if err := s.standingRepo.Upsert(ctx, standing); err != nil {
		return "", fmt.Errorf("failed to persist loyalty standing: %w", err)
	}

	s.logger.Info("Loyalty tier updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("property_id", propertyID.String()),
		zap.String("tier", tier.String()))
	return tier, nil
}

// GetStatus resolves the tenant's active lease and reports their loyalty
// standing at that property, including progress toward the next tier. The
// tier is the stored standing, not a recomputation; the on-time and
// unpaid-late figures come from the live payment history.
// Returns shared.ErrNoActiveLease when the tenant has no lease in force.
func (s *LoyaltyService) GetStatus(ctx context.Context, tenantID uuid.UUID) (*LoyaltyStatusResult, error) {
	today := s.clock.Now()

	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenantID, today)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNoActiveLease
		}
		return nil, fmt.Errorf("failed to resolve active lease: %w", err)
	}

	tier, err := s.CurrentTier(ctx, tenantID, lease.PropertyID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByTenantAtProperty(ctx, tenantID, lease.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}

	onTime := billing.OnTimeCount(payments)

	result := &LoyaltyStatusResult{
		Tier:            tier.String(),
		DiscountPercent: tier.DiscountPercentage(),
		OnTimeCount:     onTime,
		HasUnpaidLate:   billing.HasUnpaidLate(payments, today),
	}
	if next, ok := tier.Next(); ok {
		result.NextTier = next.String()
		result.PaymentsToNextTier = billing.PaymentsNeededForNext(tier, onTime)
	}
	return result, nil
}
