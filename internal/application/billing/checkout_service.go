package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/rentbase/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrNothingOutstanding is returned when a checkout intent is requested but
// the tenant has no unsettled rent.
var ErrNothingOutstanding = shared.NewDomainError("NOTHING_OUTSTANDING", "No outstanding rent to pay")

// CheckoutService drives the two-step settlement flow: create a hosted
// checkout session for the tenant's outstanding balance, then confirm the
// session and settle the payments it covers once the gateway reports it paid.
type CheckoutService struct {
	ledgerSvc   *RentLedgerService
	loyaltySvc  *LoyaltyService
	leaseRepo   leasing.LeaseRepository
	paymentRepo billing.RentPaymentRepository
	gateway     billing.CheckoutGateway
	idemStore   shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	clock       shared.Clock
	logger      *zap.Logger
}

// CheckoutServiceConfig contains configuration for CheckoutService
type CheckoutServiceConfig struct {
	LedgerSvc   *RentLedgerService
	LoyaltySvc  *LoyaltyService
	LeaseRepo   leasing.LeaseRepository
	PaymentRepo billing.RentPaymentRepository
	Gateway     billing.CheckoutGateway
	IdemStore   shared.IdempotencyStore
	IdemConfig  shared.IdempotencyConfig
	Clock       shared.Clock
	Logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cfg CheckoutServiceConfig) *CheckoutService {
	if cfg.Clock == nil {
		cfg.Clock = shared.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.IdemConfig.TTL == 0 {
		cfg.IdemConfig = shared.DefaultIdempotencyConfig()
	}
	return &CheckoutService{
		ledgerSvc:   cfg.LedgerSvc,
		loyaltySvc:  cfg.LoyaltySvc,
		leaseRepo:   cfg.LeaseRepo,
		paymentRepo: cfg.PaymentRepo,
		gateway:     cfg.Gateway,
		idemStore:   cfg.IdemStore,
		idemConfig:  cfg.IdemConfig,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
	}
}

// CreateIntent creates a hosted checkout session covering every unsettled
// payment on the tenant's active lease, priced under their stored loyalty
// standing, and stamps those payments with the session ID so a later
// confirmation can find them. Returns ErrNothingOutstanding when the ledger
// has nothing unsettled.
func (s *CheckoutService) CreateIntent(ctx context.Context, tenantID uuid.UUID) (*CheckoutIntentResult, error) {
	today := s.clock.Now()

	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenantID, today)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNoActiveLease
		}
		return nil, fmt.Errorf("failed to resolve active lease: %w", err)
	}

	if _, ok := lease.MonthlyRentAmount(); !ok {
		return nil, shared.ErrRentNotConfigured
	}

	payments, err := s.ledgerSvc.Materialize(ctx, lease)
	if err != nil {
		return nil, err
	}

	var outstanding []billing.RentPayment
	for i := range payments {
		if !payments[i].IsPaid() {
			outstanding = append(outstanding, payments[i])
		}
	}
	if len(outstanding) == 0 {
		return nil, ErrNothingOutstanding
	}

	tier, err := s.loyaltySvc.CurrentTier(ctx, tenantID, lease.PropertyID)
	if err != nil {
		return nil, err
	}

	total := billing.TotalOwed(outstanding, tier.DiscountPercentageDecimal())
	months := make([]string, 0, len(outstanding))
	billingMonths := make([]time.Time, 0, len(outstanding))
	for i := range outstanding {
		months = append(months, outstanding[i].BillingMonth.Format("January 2006"))
		billingMonths = append(billingMonths, outstanding[i].BillingMonth)
	}

	session, err := s.gateway.CreateSession(ctx, billing.CreateCheckoutInput{
		TenantID:      tenantID,
		LeaseID:       lease.ID,
		Amount:        total,
		Description:   fmt.Sprintf("Rent for %s", strings.Join(months, ", ")),
		BillingMonths: billingMonths,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	// Stamp the session onto the payments it covers so ConfirmSettlement can
	// find exactly this set later
	for i := range outstanding {
		outstanding[i].AttachCheckoutSession(session.ID)
		if err := s.paymentRepo.Save(ctx, &outstanding[i]); err != nil {
			return nil, fmt.Errorf("failed to stamp checkout session: %w", err)
		}
	}

	s.logger.Info("Checkout session created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("lease_id", lease.ID.String()),
		zap.String("session_id", session.ID),
		zap.Int("payments", len(outstanding)),
		zap.String("amount", total.StringFixed(2)))

	return &CheckoutIntentResult{
		SessionID:     session.ID,
		URL:           session.URL,
		Amount:        total.StringFixed(2),
		BillingMonths: billingMonths,
	}, nil
}

// ConfirmSettlement verifies a checkout session with the gateway and, if the
// gateway reports it paid, settles every payment stamped with it, then
// refreshes the tenant's loyalty standing. The paid date is the confirmation
// date and the settlement reference is the gateway's payment intent ID.
//
// Replayed confirmations return shared.ErrNothingToConfirm: once via the
// idempotency store, and failing that via the already-settled payments.
func (s *CheckoutService) ConfirmSettlement(ctx context.Context, tenantID uuid.UUID, sessionID string) (*ConfirmResult, error) {
	if sessionID == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Checkout session ID is required")
	}

	idemKey := "checkout:confirm:" + sessionID
	if s.idemStore != nil && s.idemConfig.Enabled {
		processed, err := s.idemStore.IsProcessed(ctx, idemKey)
		if err != nil {
			s.logger.Warn("Idempotency check failed, continuing",
				zap.String("session_id", sessionID), zap.Error(err))
		} else if processed {
			return nil, shared.ErrNothingToConfirm
		}
	}

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	if session.TenantID != tenantID {
		return nil, shared.ErrUnauthorized
	}
	if !session.PaymentStatus.IsPaid() {
		s.logger.Info("Checkout session not yet paid",
			zap.String("session_id", sessionID),
			zap.String("payment_status", string(session.PaymentStatus)))
		return nil, shared.ErrNothingToConfirm
	}

	payments, err := s.paymentRepo.FindByCheckoutSession(ctx, session.LeaseID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for session: %w", err)
	}

	// The stamped rows are authoritative; the session's month metadata only
	// cross-checks them
	if n := len(session.BillingMonths); n > 0 && n != len(payments) {
		s.logger.Warn("Session billing months do not match stamped payments",
			zap.String("session_id", sessionID),
			zap.Int("session_months", n),
			zap.Int("stamped_payments", len(payments)))
	}

	today := s.clock.Now()
	settled := 0
	var paidDate *time.Time
	for i := range payments {
		if payments[i].IsPaid() {
			continue
		}
		if err := payments[i].MarkPaid(today, session.PaymentIntentID); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, &payments[i]); err != nil {
			return nil, fmt.Errorf("failed to settle payment: %w", err)
		}
		paidDate = payments[i].PaidDate
		settled++
	}
	if settled == 0 {
		return nil, shared.ErrNothingToConfirm
	}

	lease, err := s.leaseRepo.FindByID(ctx, session.LeaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}
	tier, err := s.loyaltySvc.PersistTier(ctx, tenantID, lease.PropertyID)
	if err != nil {
		return nil, err
	}

	if s.idemStore != nil && s.idemConfig.Enabled {
		if _, err := s.idemStore.MarkProcessed(ctx, idemKey, s.idemConfig.TTL); err != nil {
			s.logger.Warn("Failed to mark confirmation processed",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	s.logger.Info("Settlement confirmed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("session_id", sessionID),
		zap.Int("payments_settled", settled),
		zap.String("tier", tier.String()))

	return &ConfirmResult{
		Confirmed:       true,
		PaymentsSettled: settled,
		Tier:            tier.String(),
		PaidDate:        paidDate,
	}, nil
}
