package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
)

// CheckoutPaymentStatus represents the settlement state a checkout gateway
// reports for a session.
type CheckoutPaymentStatus string

const (
	CheckoutPaymentStatusPaid   CheckoutPaymentStatus = "paid"
	CheckoutPaymentStatusUnpaid CheckoutPaymentStatus = "unpaid"
)

// IsPaid returns true if the gateway captured the payment
func (s CheckoutPaymentStatus) IsPaid() bool {
	return s == CheckoutPaymentStatusPaid
}

// CheckoutSession is the gateway-neutral view of a hosted checkout session.
// BillingMonths echoes the months the session was created for, when the
// gateway carries them.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   CheckoutPaymentStatus
	PaymentIntentID string
	TenantID        uuid.UUID
	LeaseID         uuid.UUID
	BillingMonths   []time.Time
}

// CreateCheckoutInput describes the charge a checkout session is created for
type CreateCheckoutInput struct {
	TenantID      uuid.UUID
	LeaseID       uuid.UUID
	Amount        valueobject.Money
	Description   string
	BillingMonths []time.Time
}

// CheckoutGateway is the port to the external payment-capture collaborator.
// Payment capture itself is out of scope; the billing engine only creates
// sessions and later asks whether one settled.
type CheckoutGateway interface {
	// CreateSession creates a hosted checkout session for the given charge
	CreateSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutSession, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
