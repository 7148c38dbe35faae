package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func newTestPayment(t *testing.T, month time.Time) *RentPayment {
	t.Helper()
	p, err := NewRentPayment(uuid.New(), uuid.New(), mustMoney(t, "1300.00"), month)
	require.NoError(t, err)
	return p
}

func TestNewRentPayment(t *testing.T) {
	t.Run("valid payment", func(t *testing.T) {
		leaseID := uuid.New()
		tenantID := uuid.New()
		p, err := NewRentPayment(leaseID, tenantID, mustMoney(t, "1300.00"), date(2024, time.December, 15))
		require.NoError(t, err)

		assert.Equal(t, leaseID, p.LeaseID)
		assert.Equal(t, tenantID, p.TenantID)
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.Equal(t, date(2024, time.December, 1), p.BillingMonth, "billing month is normalized to the first")
		assert.Equal(t, date(2024, time.December, 1), p.DueDate, "due date is the first day of the billing month")
		assert.Nil(t, p.PaidDate)
		assert.Empty(t, p.SettlementRef)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := NewRentPayment(uuid.New(), uuid.New(), valueobject.ZeroUSD(), date(2024, time.December, 1))
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_AMOUNT", derr.Code)
	})

	t.Run("missing billing month rejected", func(t *testing.T) {
		_, err := NewRentPayment(uuid.New(), uuid.New(), mustMoney(t, "1300.00"), time.Time{})
		assert.Error(t, err)
	})

	t.Run("nil lease rejected", func(t *testing.T) {
		_, err := NewRentPayment(uuid.Nil, uuid.New(), mustMoney(t, "1300.00"), date(2024, time.December, 1))
		assert.Error(t, err)
	})
}

func TestRentPaymentMarkPaid(t *testing.T) {
	t.Run("settles with paid date and reference", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		paidOn := date(2024, time.December, 8)

		require.NoError(t, p.MarkPaid(paidOn, "pi_123"))
		assert.Equal(t, PaymentStatusPaid, p.Status)
		require.NotNil(t, p.PaidDate)
		assert.Equal(t, paidOn, *p.PaidDate)
		assert.Equal(t, "pi_123", p.SettlementRef)
	})

	t.Run("settling twice is an invalid transition", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.December, 8), "pi_123"))

		err := p.MarkPaid(date(2024, time.December, 9), "pi_456")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, "pi_123", p.SettlementRef, "original settlement untouched")
	})

	t.Run("zero paid date rejected", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		assert.Error(t, p.MarkPaid(time.Time{}, "pi_123"))
	})
}

func TestRentPaymentMarkLate(t *testing.T) {
	p := newTestPayment(t, date(2024, time.December, 1))
	require.NoError(t, p.MarkLate())
	assert.Equal(t, PaymentStatusLate, p.Status)

	require.NoError(t, p.MarkPaid(date(2025, time.January, 3), "pi_1"))
	assert.ErrorIs(t, p.MarkLate(), shared.ErrInvalidState)
}

func TestRentPaymentIsOverdue(t *testing.T) {
	tests := []struct {
		name  string
		month time.Time
		today time.Time
		want  bool
	}{
		{"10th of billing month is not overdue", date(2024, time.December, 1), date(2024, time.December, 10), false},
		{"11th of billing month is overdue", date(2024, time.December, 1), date(2024, time.December, 11), true},
		{"any day after the billing month is overdue", date(2024, time.November, 1), date(2024, time.December, 1), true},
		{"future month is never overdue", date(2025, time.January, 1), date(2024, time.December, 25), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPayment(t, tt.month)
			assert.Equal(t, tt.want, p.IsOverdue(tt.today))
		})
	}

	t.Run("paid payment is never overdue", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.November, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.December, 20), "pi_1"))
		assert.False(t, p.IsOverdue(date(2024, time.December, 25)))
	})

	t.Run("late status in a future month is still not overdue", func(t *testing.T) {
		p := newTestPayment(t, date(2025, time.January, 1))
		require.NoError(t, p.MarkLate())
		assert.False(t, p.IsOverdue(date(2024, time.December, 25)))
	})
}

func TestRentPaymentIsOnTime(t *testing.T) {
	t.Run("paid on the 10th is on time", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.December, 10), "pi_1"))
		assert.True(t, p.IsOnTime())
	})

	t.Run("paid on the 11th is not on time", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.December, 11), "pi_1"))
		assert.False(t, p.IsOnTime())
	})

	t.Run("paid early in a prior month is on time", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.November, 28), "pi_1"))
		assert.True(t, p.IsOnTime())
	})

	t.Run("unsettled payment is not on time", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		assert.False(t, p.IsOnTime())
	})
}

func TestRentPaymentIsUnpaidLate(t *testing.T) {
	t.Run("pending and overdue", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.November, 1))
		assert.True(t, p.IsUnpaidLate(date(2024, time.December, 5)))
	})

	t.Run("late and overdue", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.November, 1))
		require.NoError(t, p.MarkLate())
		assert.True(t, p.IsUnpaidLate(date(2024, time.December, 5)))
	})

	t.Run("pending but not yet overdue", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.December, 1))
		assert.False(t, p.IsUnpaidLate(date(2024, time.December, 10)))
	})

	t.Run("settled payment is never unpaid-late", func(t *testing.T) {
		p := newTestPayment(t, date(2024, time.November, 1))
		require.NoError(t, p.MarkPaid(date(2024, time.December, 20), "pi_1"))
		assert.False(t, p.IsUnpaidLate(date(2024, time.December, 25)))
	})
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentStatusPending.IsValid())
	assert.True(t, PaymentStatusLate.IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.False(t, PaymentStatus("SETTLED").IsValid())
}
