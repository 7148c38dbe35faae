package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentPaymentRepository implements RentPaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForMonth finds the payment for a (lease, tenant, billing month)
func (r *GormRentPaymentRepository) FindForMonth(ctx context.Context, leaseID, tenantID uuid.UUID, month time.Time) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("lease_id = ? AND tenant_id = ? AND billing_month = ?", leaseID, tenantID, billing.MonthOf(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLeaseAndTenant finds all payments on a lease for a tenant, ascending
// by billing month
func (r *GormRentPaymentRepository) FindByLeaseAndTenant(ctx context.Context, leaseID, tenantID uuid.UUID) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("lease_id = ? AND tenant_id = ?", leaseID, tenantID).
		Order("billing_month ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByTenantAtProperty finds every payment a tenant has on any lease at a
// property, ascending by billing month. Payments carry no property ID of
// their own, so this joins through the owning lease.
func (r *GormRentPaymentRepository) FindByTenantAtProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Where("rent_payments.tenant_id = ? AND leases.property_id = ?", tenantID, propertyID).
		Order("rent_payments.billing_month ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByCheckoutSession finds the unsettled payments stamped with a checkout
// session on a lease
func (r *GormRentPaymentRepository) FindByCheckoutSession(ctx context.Context, leaseID uuid.UUID, sessionID string) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("lease_id = ? AND checkout_session_id = ? AND status <> ?", leaseID, sessionID, billing.PaymentStatusPaid.String()).
		Order("billing_month ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindLastPaid finds the most recently billed settled payment on a lease
func (r *GormRentPaymentRepository) FindLastPaid(ctx context.Context, leaseID uuid.UUID) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("lease_id = ? AND status = ?", leaseID, billing.PaymentStatusPaid.String()).
		Order("billing_month DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new payment. A uniqueness violation on the
// (lease, tenant, billing month) index surfaces as shared.ErrAlreadyExists so
// the caller can re-fetch the row that won the race.
func (r *GormRentPaymentRepository) Create(ctx context.Context, payment *billing.RentPayment) error {
	model := models.RentPaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates an existing payment
func (r *GormRentPaymentRepository) Save(ctx context.Context, payment *billing.RentPayment) error {
	model := models.RentPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByLease removes all payments for a lease
func (r *GormRentPaymentRepository) DeleteByLease(ctx context.Context, leaseID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Delete(&models.RentPaymentModel{}).Error
}

func toDomainPayments(paymentModels []models.RentPaymentModel) []billing.RentPayment {
	payments := make([]billing.RentPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}

// isUniqueViolation reports whether the error is a unique constraint
// violation, covering PostgreSQL (code 23505) and the SQLite driver used in
// tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormRentPaymentRepository implements the interface
var _ billing.RentPaymentRepository = (*GormRentPaymentRepository)(nil)
