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

// RentLedgerService materializes and reads the rent ledger. Reads are
// self-healing: resolving the outstanding balance first backfills any billing
// month the schedule says must exist, so there is no separate billing job to
// fall behind.
type RentLedgerService struct {
	leaseRepo   leasing.LeaseRepository
	paymentRepo billing.RentPaymentRepository
	loyaltySvc  *LoyaltyService
	clock       shared.Clock
	logger      *zap.Logger
}

// RentLedgerServiceConfig contains configuration for RentLedgerService
type RentLedgerServiceConfig struct {
	LeaseRepo   leasing.LeaseRepository
	PaymentRepo billing.RentPaymentRepository
	LoyaltySvc  *LoyaltyService
	Clock       shared.Clock
	Logger      *zap.Logger
}

// NewRentLedgerService creates a new RentLedgerService
func NewRentLedgerService(cfg RentLedgerServiceConfig) *RentLedgerService {
	if cfg.Clock == nil {
		cfg.Clock = shared.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &RentLedgerService{
		leaseRepo:   cfg.LeaseRepo,
		paymentRepo: cfg.PaymentRepo,
		loyaltySvc:  cfg.LoyaltySvc,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
	}
}

// Materialize ensures a payment row exists for every billing month the
// lease's schedule requires, and returns the full set in ascending month
// order. Existing rows are never modified. When two requests race to create
// the same month, the storage uniqueness constraint picks one winner and the
// loser re-fetches the winning row.
//
// A lease with no resolved monthly rent produces an empty ledger and a
// warning; billing has nothing to charge until the rent is configured.
func (s *RentLedgerService) Materialize(ctx context.Context, lease *leasing.Lease) ([]billing.RentPayment, error) {
	schedule, ok := billing.ResolveSchedule(lease.MoveInDate, s.clock.Now())
	if !ok {
		return nil, nil
	}

	rent, ok := lease.MonthlyRentAmount()
	if !ok {
		s.logger.Warn("Lease has no resolved monthly rent, skipping materialization",
			zap.String("lease_id", lease.ID.String()),
			zap.String("tenant_id", lease.TenantID.String()))
		return nil, nil
	}

	payments := make([]billing.RentPayment, 0, len(schedule.Months()))
	for _, month := range schedule.Months() {
		existing, err := s.paymentRepo.FindForMonth(ctx, lease.ID, lease.TenantID, month)
		if err == nil {
			payments = append(payments, *existing)
			continue
		}
		if err != shared.ErrNotFound {
			return nil, fmt.Errorf("failed to load payment for month %s: %w", month.Format("2006-01"), err)
		}

		payment, err := billing.NewRentPayment(lease.ID, lease.TenantID, rent, month)
		if err != nil {
			return nil, err
		}
		err = s.paymentRepo.Create(ctx, payment)
		if err == shared.ErrAlreadyExists {
			// Lost the insert race; the winning row is authoritative
			payment, err = s.paymentRepo.FindForMonth(ctx, lease.ID, lease.TenantID, month)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to materialize payment for month %s: %w", month.Format("2006-01"), err)
		}
		payments = append(payments, *payment)
	}
	return payments, nil
}

// GetOutstanding resolves the tenant's active lease, backfills its ledger,
// and returns every unsettled payment priced under the tenant's stored
// loyalty standing. Returns shared.ErrNoActiveLease when the tenant has no
// lease in force.
func (s *RentLedgerService) GetOutstanding(ctx context.Context, tenantID uuid.UUID) (*OutstandingResult, error) {
	today := s.clock.Now()

	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenantID, today)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNoActiveLease
		}
		return nil, fmt.Errorf("failed to resolve active lease: %w", err)
	}

	payments, err := s.Materialize(ctx, lease)
	if err != nil {
		return nil, err
	}

	tier, err := s.loyaltySvc.CurrentTier(ctx, tenantID, lease.PropertyID)
	if err != nil {
		return nil, err
	}

	var outstanding []billing.RentPayment
	for i := range payments {
		if !payments[i].IsPaid() {
			outstanding = append(outstanding, payments[i])
		}
	}

	discount := tier.DiscountPercentageDecimal()
	views := make([]PaymentView, 0, len(outstanding))
	for i := range outstanding {
		views = append(views, toPaymentView(&outstanding[i], tier, today))
	}

	overdue := billing.OverduePayments(outstanding, today)
	overdueViews := make([]PaymentView, 0, len(overdue))
	for i := range overdue {
		overdueViews = append(overdueViews, toPaymentView(&overdue[i], tier, today))
	}

	return &OutstandingResult{
		LeaseID:         lease.ID,
		TenantID:        tenantID,
		Tier:            tier.String(),
		DiscountPercent: tier.DiscountPercentage(),
		Payments:        views,
		OverduePayments: overdueViews,
		TotalOwed:       billing.TotalOwed(outstanding, discount).StringFixed(2),
		OriginalTotal:   billing.OriginalTotal(outstanding).StringFixed(2),
		HasOverdue:      billing.HasOverdue(outstanding, today),
	}, nil
}

// GetLastPaidDate reports when rent was last settled on the tenant's active
// lease. The dates are nil when nothing has been paid yet.
func (s *RentLedgerService) GetLastPaidDate(ctx context.Context, tenantID uuid.UUID) (*LastPaidResult, error) {
	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenantID, s.clock.Now())
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNoActiveLease
		}
		return nil, fmt.Errorf("failed to resolve active lease: %w", err)
	}

	last, err := s.paymentRepo.FindLastPaid(ctx, lease.ID)
	if err == shared.ErrNotFound {
		return &LastPaidResult{LeaseID: lease.ID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last paid payment: %w", err)
	}

	month := last.BillingMonth
	return &LastPaidResult{
		LeaseID:      lease.ID,
		PaidDate:     last.PaidDate,
		BillingMonth: &month,
	}, nil
}
