package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
	"github.com/rentbase/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLeaseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Payments migrate too so Delete can cascade
	err = db.AutoMigrate(&models.LeaseModel{}, &models.RentPaymentModel{})
	require.NoError(t, err)

	return db
}

func newTestLease(t *testing.T, tenantID uuid.UUID, moveIn time.Time, moveOut *time.Time) *leasing.Lease {
	t.Helper()
	rent, err := valueobject.NewMoneyUSDFromString("1300.00")
	require.NoError(t, err)

	lease, err := leasing.NewLease(tenantID, uuid.New(), uuid.New(), moveIn, moveOut, &rent)
	require.NoError(t, err)
	return lease
}

func TestGormLeaseRepository_SaveAndFindByID(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	t.Run("round-trips a lease", func(t *testing.T) {
		tenantID := uuid.New()
		moveIn := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		lease := newTestLease(t, tenantID, moveIn, nil)

		err := repo.Save(ctx, lease)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, lease.ID)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
		assert.Equal(t, tenantID, found.TenantID)
		assert.Nil(t, found.MoveOutDate)

		rent, ok := found.MonthlyRentAmount()
		require.True(t, ok)
		assert.Equal(t, "1300.00", rent.StringFixed(2))
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("preserves a missing rent", func(t *testing.T) {
		lease, err := leasing.NewLease(uuid.New(), uuid.New(), uuid.New(),
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil, nil)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, lease))

		found, err := repo.FindByID(ctx, lease.ID)
		require.NoError(t, err)
		_, ok := found.MonthlyRentAmount()
		assert.False(t, ok)
	})
}

func TestGormLeaseRepository_FindActiveByTenant(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	today := time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)

	t.Run("finds an open-ended lease", func(t *testing.T) {
		tenantID := uuid.New()
		lease := newTestLease(t, tenantID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)
		require.NoError(t, repo.Save(ctx, lease))

		found, err := repo.FindActiveByTenant(ctx, tenantID, today)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
	})

	t.Run("lease ending today is still active", func(t *testing.T) {
		tenantID := uuid.New()
		moveOut := today
		lease := newTestLease(t, tenantID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), &moveOut)
		require.NoError(t, repo.Save(ctx, lease))

		found, err := repo.FindActiveByTenant(ctx, tenantID, today)
		require.NoError(t, err)
		assert.Equal(t, lease.ID, found.ID)
	})

	t.Run("excludes an ended lease", func(t *testing.T) {
		tenantID := uuid.New()
		moveOut := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)
		lease := newTestLease(t, tenantID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), &moveOut)
		require.NoError(t, repo.Save(ctx, lease))

		_, err := repo.FindActiveByTenant(ctx, tenantID, today)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("excludes a lease that has not started", func(t *testing.T) {
		tenantID := uuid.New()
		lease := newTestLease(t, tenantID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
		require.NoError(t, repo.Save(ctx, lease))

		_, err := repo.FindActiveByTenant(ctx, tenantID, today)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("most recent move-in wins when leases overlap", func(t *testing.T) {
		tenantID := uuid.New()
		older := newTestLease(t, tenantID, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), nil)
		newer := newTestLease(t, tenantID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), nil)
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		found, err := repo.FindActiveByTenant(ctx, tenantID, today)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, found.ID)
	})
}

func TestGormLeaseRepository_FindAllByTenant(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	first := newTestLease(t, tenantID, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), nil)
	second := newTestLease(t, tenantID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	// Another tenant's lease must not leak in
	require.NoError(t, repo.Save(ctx, newTestLease(t, uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)))

	leases, err := repo.FindAllByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, second.ID, leases[0].ID, "newest move-in should come first")
	assert.Equal(t, first.ID, leases[1].ID)
}

func TestGormLeaseRepository_Delete(t *testing.T) {
	db := setupLeaseTestDB(t)
	repo := NewGormLeaseRepository(db)
	paymentRepo := NewGormRentPaymentRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	lease := newTestLease(t, tenantID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, repo.Save(ctx, lease))

	rent, err := valueobject.NewMoneyUSDFromString("1300.00")
	require.NoError(t, err)
	payment := newTestPayment(t, lease.ID, tenantID, rent, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, paymentRepo.Create(ctx, payment))

	err = repo.Delete(ctx, lease.ID)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, lease.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	remaining, err := paymentRepo.FindByLeaseAndTenant(ctx, lease.ID, tenantID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "payments should be cascaded away with the lease")
}
