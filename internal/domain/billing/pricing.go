package billing

import (
	"time"

	"github.com/rentbase/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Pricing helpers are pure aggregations over a ledger snapshot: they never
// re-fetch, so results stay consistent with the payments they were given.

// ChargeableAmount prices one payment under a percentage discount, rounded
// half-up at the cent boundary. A zero discount returns the original amount
// exactly.
func ChargeableAmount(p *RentPayment, discountPct decimal.Decimal) valueobject.Money {
	return p.AmountMoney().ApplyDiscount(discountPct)
}

// TotalOwed sums the chargeable amounts over the given payments
func TotalOwed(payments []RentPayment, discountPct decimal.Decimal) valueobject.Money {
	total := valueobject.ZeroUSD()
	for i := range payments {
		total = total.MustAdd(ChargeableAmount(&payments[i], discountPct))
	}
	return total
}

// OriginalTotal sums the raw, undiscounted amounts over the given payments
func OriginalTotal(payments []RentPayment) valueobject.Money {
	total := valueobject.ZeroUSD()
	for i := range payments {
		total = total.MustAdd(payments[i].AmountMoney())
	}
	return total
}

// OverduePayments returns the subset of payments overdue on the given date,
// preserving input order.
func OverduePayments(payments []RentPayment, today time.Time) []RentPayment {
	var overdue []RentPayment
	for i := range payments {
		if payments[i].IsOverdue(today) {
			overdue = append(overdue, payments[i])
		}
	}
	return overdue
}

// HasOverdue reports whether any of the payments is overdue on the given date
func HasOverdue(payments []RentPayment, today time.Time) bool {
	for i := range payments {
		if payments[i].IsOverdue(today) {
			return true
		}
	}
	return false
}
