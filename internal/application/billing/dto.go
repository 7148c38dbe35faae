package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
)

// PaymentView is the API-facing projection of one rent payment, priced under
// the tenant's current loyalty discount.
type PaymentView struct {
	ID              uuid.UUID  `json:"id"`
	BillingMonth    time.Time  `json:"billing_month"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	Amount          string     `json:"amount"`          // Chargeable, discount applied
	OriginalAmount  string     `json:"original_amount"` // Undiscounted rent
	DiscountPercent int        `json:"discount_percent"`
	DiscountApplied bool       `json:"discount_applied"`
	DiscountAmount  string     `json:"discount_amount,omitempty"`
	PaidDate        *time.Time `json:"paid_date,omitempty"`
	SettlementRef   string     `json:"settlement_ref,omitempty"`
	Overdue         bool       `json:"overdue"`
}

// OutstandingResult is the tenant's current unpaid rent snapshot. The
// overdue subset is repeated under its own key so clients need not re-derive
// it from the per-row flags.
type OutstandingResult struct {
	LeaseID         uuid.UUID     `json:"lease_id"`
	TenantID        uuid.UUID     `json:"tenant_id"`
	Tier            string        `json:"tier"`
	DiscountPercent int           `json:"discount_percent"`
	Payments        []PaymentView `json:"payments"`
	OverduePayments []PaymentView `json:"overdue_payments"`
	TotalOwed       string        `json:"total_owed"`
	OriginalTotal   string        `json:"original_total"`
	HasOverdue      bool          `json:"has_overdue"`
}

// LastPaidResult reports the most recent settled payment on the active lease.
// Both dates are nil when nothing has been paid yet.
type LastPaidResult struct {
	LeaseID      uuid.UUID  `json:"lease_id"`
	PaidDate     *time.Time `json:"paid_date"`
	BillingMonth *time.Time `json:"billing_month"`
}

// LoyaltyStatusResult is the tenant's loyalty standing at their active
// lease's property.
type LoyaltyStatusResult struct {
	Tier               string `json:"tier"`
	DiscountPercent    int    `json:"discount_percent"`
	OnTimeCount        int    `json:"on_time_count"`
	HasUnpaidLate      bool   `json:"has_unpaid_late"`
	NextTier           string `json:"next_tier,omitempty"`
	PaymentsToNextTier int    `json:"payments_to_next_tier"`
}

// CheckoutIntentResult is the hosted checkout session created for the
// tenant's outstanding balance.
type CheckoutIntentResult struct {
	SessionID     string      `json:"session_id"`
	URL           string      `json:"url"`
	Amount        string      `json:"amount"`
	BillingMonths []time.Time `json:"billing_months"`
}

// ConfirmResult reports the outcome of a settlement confirmation
type ConfirmResult struct {
	Confirmed       bool       `json:"confirmed"`
	PaymentsSettled int        `json:"payments_settled"`
	Tier            string     `json:"tier"`
	PaidDate        *time.Time `json:"paid_date,omitempty"`
}

func toPaymentView(p *billing.RentPayment, tier billing.Tier, today time.Time) PaymentView {
	original := p.AmountMoney()
	chargeable := billing.ChargeableAmount(p, tier.DiscountPercentageDecimal())

	view := PaymentView{
		ID:              p.ID,
		BillingMonth:    p.BillingMonth,
		DueDate:         p.DueDate,
		Status:          p.Status.String(),
		Amount:          chargeable.StringFixed(2),
		OriginalAmount:  original.StringFixed(2),
		DiscountPercent: tier.DiscountPercentage(),
		PaidDate:        p.PaidDate,
		SettlementRef:   p.SettlementRef,
		Overdue:         p.IsOverdue(today),
	}

	if tier.DiscountPercentage() > 0 {
		view.DiscountApplied = true
		view.DiscountAmount = original.MustSubtract(chargeable).StringFixed(2)
	}

	return view
}
