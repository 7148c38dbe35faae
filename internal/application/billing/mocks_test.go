package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/stretchr/testify/mock"
)

// mockLeaseRepo is a mock implementation of leasing.LeaseRepository
type mockLeaseRepo struct {
	mock.Mock
}

func (m *mockLeaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *mockLeaseRepo) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID, date time.Time) (*leasing.Lease, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *mockLeaseRepo) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.Lease), args.Error(1)
}

func (m *mockLeaseRepo) Save(ctx context.Context, lease *leasing.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *mockLeaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockRentPaymentRepo is a mock implementation of billing.RentPaymentRepository
type mockRentPaymentRepo struct {
	mock.Mock
}

func (m *mockRentPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) FindForMonth(ctx context.Context, leaseID, tenantID uuid.UUID, month time.Time) (*billing.RentPayment, error) {
	args := m.Called(ctx, leaseID, tenantID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) FindByLeaseAndTenant(ctx context.Context, leaseID, tenantID uuid.UUID) ([]billing.RentPayment, error) {
	args := m.Called(ctx, leaseID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) FindByTenantAtProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]billing.RentPayment, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) FindByCheckoutSession(ctx context.Context, leaseID uuid.UUID, sessionID string) ([]billing.RentPayment, error) {
	args := m.Called(ctx, leaseID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) FindLastPaid(ctx context.Context, leaseID uuid.UUID) (*billing.RentPayment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentPayment), args.Error(1)
}

func (m *mockRentPaymentRepo) Create(ctx context.Context, payment *billing.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockRentPaymentRepo) Save(ctx context.Context, payment *billing.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockRentPaymentRepo) DeleteByLease(ctx context.Context, leaseID uuid.UUID) error {
	args := m.Called(ctx, leaseID)
	return args.Error(0)
}

// mockLoyaltyStandingRepo is a mock implementation of billing.LoyaltyStandingRepository
type mockLoyaltyStandingRepo struct {
	mock.Mock
}

func (m *mockLoyaltyStandingRepo) FindByTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (*billing.LoyaltyStanding, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.LoyaltyStanding), args.Error(1)
}

func (m *mockLoyaltyStandingRepo) Upsert(ctx context.Context, standing *billing.LoyaltyStanding) error {
	args := m.Called(ctx, standing)
	return args.Error(0)
}

// mockCheckoutGateway is a mock implementation of billing.CheckoutGateway
type mockCheckoutGateway struct {
	mock.Mock
}

func (m *mockCheckoutGateway) CreateSession(ctx context.Context, input billing.CreateCheckoutInput) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutSession), args.Error(1)
}

func (m *mockCheckoutGateway) GetSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CheckoutSession), args.Error(1)
}

// mockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
