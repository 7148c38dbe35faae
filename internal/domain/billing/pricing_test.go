package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeableAmount(t *testing.T) {
	p := newTestPayment(t, date(2024, time.December, 1))

	t.Run("five percent discount", func(t *testing.T) {
		got := ChargeableAmount(p, decimal.NewFromInt(5))
		assert.Equal(t, "1235.00", got.StringFixed(2))
	})

	t.Run("three percent discount", func(t *testing.T) {
		got := ChargeableAmount(p, decimal.NewFromInt(3))
		assert.Equal(t, "1261.00", got.StringFixed(2))
	})

	t.Run("zero discount is the exact original", func(t *testing.T) {
		got := ChargeableAmount(p, decimal.Zero)
		assert.True(t, got.Amount().Equal(p.Amount))
	})
}

func TestTotals(t *testing.T) {
	leaseID := uuid.New()
	tenantID := uuid.New()

	var payments []RentPayment
	for _, month := range []time.Time{date(2024, time.November, 1), date(2024, time.December, 1)} {
		p, err := NewRentPayment(leaseID, tenantID, mustMoney(t, "1300.00"), month)
		require.NoError(t, err)
		payments = append(payments, *p)
	}

	t.Run("total owed applies the discount per payment", func(t *testing.T) {
		total := TotalOwed(payments, decimal.NewFromInt(5))
		assert.Equal(t, "2470.00", total.StringFixed(2))
	})

	t.Run("original total ignores the discount", func(t *testing.T) {
		total := OriginalTotal(payments)
		assert.Equal(t, "2600.00", total.StringFixed(2))
	})

	t.Run("empty snapshot sums to zero", func(t *testing.T) {
		assert.True(t, TotalOwed(nil, decimal.NewFromInt(5)).IsZero())
		assert.True(t, OriginalTotal(nil).IsZero())
	})
}

func TestOverduePayments(t *testing.T) {
	leaseID := uuid.New()
	tenantID := uuid.New()

	november, err := NewRentPayment(leaseID, tenantID, mustMoney(t, "1300.00"), date(2024, time.November, 1))
	require.NoError(t, err)
	december, err := NewRentPayment(leaseID, tenantID, mustMoney(t, "1300.00"), date(2024, time.December, 1))
	require.NoError(t, err)
	payments := []RentPayment{*november, *december}

	t.Run("before the cutoff only the past month is overdue", func(t *testing.T) {
		today := date(2024, time.December, 5)
		overdue := OverduePayments(payments, today)
		require.Len(t, overdue, 1)
		assert.Equal(t, date(2024, time.November, 1), overdue[0].BillingMonth)
		assert.True(t, HasOverdue(payments, today))
	})

	t.Run("after the cutoff both are overdue, order preserved", func(t *testing.T) {
		today := date(2024, time.December, 11)
		overdue := OverduePayments(payments, today)
		require.Len(t, overdue, 2)
		assert.Equal(t, date(2024, time.November, 1), overdue[0].BillingMonth)
		assert.Equal(t, date(2024, time.December, 1), overdue[1].BillingMonth)
	})

	t.Run("nothing overdue", func(t *testing.T) {
		today := date(2024, time.November, 5)
		assert.Empty(t, OverduePayments(payments[1:], today))
		assert.False(t, HasOverdue(payments[1:], today))
	})
}
