package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement status of a rent payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING" // Created, not yet settled
	PaymentStatusLate    PaymentStatus = "LATE"    // Flagged late, not yet settled
	PaymentStatusPaid    PaymentStatus = "PAID"    // Settled
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusLate, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled returns true if the payment has been settled
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid
}

// onTimeDeadlineDay is the last day of the billing month on which a
// settlement still counts as on-time. The 10th counts; the 11th does not.
const onTimeDeadlineDay = 10

// RentPayment represents one month's rent obligation for one tenant on one
// lease. At most one exists per (lease, tenant, billing month); the ledger
// enforces that through a storage-level uniqueness constraint.
//
// PaidDate and SettlementRef are only ever set together with the PAID
// status, via MarkPaid - a paid payment always carries its paid date.
type RentPayment struct {
	shared.BaseAggregateRoot
	LeaseID      uuid.UUID       `json:"lease_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	Amount       decimal.Decimal `json:"amount"` // Original, undiscounted
	DueDate      time.Time       `json:"due_date"`
	BillingMonth time.Time       `json:"billing_month"`
	Status       PaymentStatus   `json:"status"`
	PaidDate     *time.Time      `json:"paid_date"`
	// SettlementRef is the external payment-capture reference (e.g. a
	// Stripe payment intent ID) recorded when the payment settles.
	SettlementRef string `json:"settlement_ref,omitempty"`
	// CheckoutSessionID links the payment to a pending checkout session so
	// a later confirmation can find the rows it should settle.
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
}

// NewRentPayment creates a pending rent payment for a billing month.
// The due date is always the first day of the billing month.
func NewRentPayment(leaseID, tenantID uuid.UUID, amount valueobject.Money, billingMonth time.Time) (*RentPayment, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if billingMonth.IsZero() {
		return nil, shared.NewDomainError("INVALID_BILLING_MONTH", "Billing month is required")
	}

	month := MonthOf(billingMonth)
	return &RentPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LeaseID:           leaseID,
		TenantID:          tenantID,
		Amount:            amount.Amount(),
		DueDate:           month,
		BillingMonth:      month,
		Status:            PaymentStatusPending,
	}, nil
}

// AmountMoney returns the original amount as a Money value object
func (p *RentPayment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// IsPaid returns true if the payment has been settled
func (p *RentPayment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// MarkPaid settles the payment with the given paid date and settlement
// reference. Settling an already-paid payment is an invalid state
// transition; callers treat it as nothing to confirm.
func (p *RentPayment) MarkPaid(paidDate time.Time, settlementRef string) error {
	if p.IsPaid() {
		return shared.ErrInvalidState
	}
	if paidDate.IsZero() {
		return shared.NewDomainError("INVALID_PAID_DATE", "Paid date is required")
	}

	p.Status = PaymentStatusPaid
	p.PaidDate = &paidDate
	p.SettlementRef = settlementRef
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// MarkLate flags an unsettled payment as late
func (p *RentPayment) MarkLate() error {
	if p.IsPaid() {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusLate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AttachCheckoutSession stamps the payment with a pending checkout session
func (p *RentPayment) AttachCheckoutSession(sessionID string) {
	p.CheckoutSessionID = sessionID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsOverdue reports whether the payment is overdue on the given date: not
// settled, and either past the 10th of its own billing month or past the
// billing month entirely. A payment for a future month is never overdue,
// whatever its status.
func (p *RentPayment) IsOverdue(today time.Time) bool {
	if p.IsPaid() {
		return false
	}
	if p.BillingMonth.IsZero() {
		return false
	}
	if SameMonth(today, p.BillingMonth) {
		return today.Day() > onTimeDeadlineDay
	}
	return MonthOf(today).After(p.BillingMonth)
}

// IsOnTime reports whether the payment was settled on or before the 10th
// of its billing month. Exactly the 10th counts; the 11th does not.
func (p *RentPayment) IsOnTime() bool {
	if !p.IsPaid() || p.PaidDate == nil || p.BillingMonth.IsZero() {
		return false
	}
	deadline := time.Date(p.BillingMonth.Year(), p.BillingMonth.Month(), onTimeDeadlineDay, 0, 0, 0, 0, time.UTC)
	paid := time.Date(p.PaidDate.Year(), p.PaidDate.Month(), p.PaidDate.Day(), 0, 0, 0, 0, time.UTC)
	return !paid.After(deadline)
}

// IsUnpaidLate reports whether the payment is both unsettled and overdue on
// the given date. One such payment anywhere in a tenant's history at a
// property caps the loyalty tier at bronze.
func (p *RentPayment) IsUnpaidLate(today time.Time) bool {
	if p.IsPaid() || p.BillingMonth.IsZero() {
		return false
	}
	return (p.Status == PaymentStatusPending || p.Status == PaymentStatusLate) && p.IsOverdue(today)
}
