package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"
)

const billingMonthLayout = "2006-01"

// StripeCheckoutGateway implements billing.CheckoutGateway on Stripe hosted
// Checkout Sessions. The tenant and lease travel as session metadata so a
// later confirmation can verify ownership without any local session state.
type StripeCheckoutGateway struct {
	config config.StripeConfig
	logger *zap.Logger
}

// NewStripeCheckoutGateway creates a new Stripe checkout gateway
func NewStripeCheckoutGateway(cfg config.StripeConfig, logger *zap.Logger) (*StripeCheckoutGateway, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	stripe.Key = cfg.SecretKey

	return &StripeCheckoutGateway{
		config: cfg,
		logger: logger,
	}, nil
}

// CreateSession creates a hosted checkout session for the given charge
func (g *StripeCheckoutGateway) CreateSession(ctx context.Context, input billing.CreateCheckoutInput) (*billing.CheckoutSession, error) {
	months := make([]string, 0, len(input.BillingMonths))
	for _, m := range input.BillingMonths {
		months = append(months, m.Format(billingMonthLayout))
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.config.SuccessURL),
		CancelURL:  stripe.String(g.config.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.config.Currency),
					UnitAmount: stripe.Int64(input.Amount.Cents()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"tenant_id":      input.TenantID.String(),
			"lease_id":       input.LeaseID.String(),
			"billing_months": strings.Join(months, ","),
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		g.logger.Error("Failed to create Stripe checkout session",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	g.logger.Info("Created Stripe checkout session",
		zap.String("session_id", sess.ID),
		zap.String("tenant_id", input.TenantID.String()),
		zap.Int64("amount_cents", input.Amount.Cents()))

	return toDomainSession(sess)
}

// GetSession retrieves a session by ID
func (g *StripeCheckoutGateway) GetSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		g.logger.Error("Failed to retrieve Stripe checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to retrieve checkout session: %w", err)
	}

	return toDomainSession(sess)
}

// toDomainSession maps a Stripe session to the gateway-neutral view
func toDomainSession(sess *stripe.CheckoutSession) (*billing.CheckoutSession, error) {
	tenantID, err := uuid.Parse(sess.Metadata["tenant_id"])
	if err != nil {
		return nil, fmt.Errorf("stripe: session %s has no valid tenant_id metadata", sess.ID)
	}
	leaseID, err := uuid.Parse(sess.Metadata["lease_id"])
	if err != nil {
		return nil, fmt.Errorf("stripe: session %s has no valid lease_id metadata", sess.ID)
	}

	status := billing.CheckoutPaymentStatusUnpaid
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired {
		status = billing.CheckoutPaymentStatusPaid
	}

	months, err := parseBillingMonths(sess.Metadata["billing_months"])
	if err != nil {
		return nil, fmt.Errorf("stripe: session %s has invalid billing_months metadata: %w", sess.ID, err)
	}

	paymentIntentID := ""
	if sess.PaymentIntent != nil {
		paymentIntentID = sess.PaymentIntent.ID
	}

	return &billing.CheckoutSession{
		ID:              sess.ID,
		URL:             sess.URL,
		PaymentStatus:   status,
		PaymentIntentID: paymentIntentID,
		TenantID:        tenantID,
		LeaseID:         leaseID,
		BillingMonths:   months,
	}, nil
}

// parseBillingMonths decodes the billing_months metadata stamped on a session
func parseBillingMonths(joined string) ([]time.Time, error) {
	if joined == "" {
		return nil, nil
	}
	parts := strings.Split(joined, ",")
	months := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		m, err := time.Parse(billingMonthLayout, p)
		if err != nil {
			return nil, fmt.Errorf("invalid billing month %q: %w", p, err)
		}
		months = append(months, m)
	}
	return months, nil
}

// Ensure StripeCheckoutGateway implements CheckoutGateway
var _ billing.CheckoutGateway = (*StripeCheckoutGateway)(nil)
