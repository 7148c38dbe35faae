package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTenant finds the lease in force for a tenant on the given date:
// moved in on or before it, and either open-ended or not yet moved out. When
// a tenant somehow has overlapping leases the most recent move-in wins.
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID, date time.Time) (*leasing.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND move_in_date <= ? AND (move_out_date IS NULL OR move_out_date >= ?)", tenantID, date, date).
		Order("move_in_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllByTenant finds all leases for a tenant, newest move-in first
func (r *GormLeaseRepository) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("move_in_date DESC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}

	leases := make([]leasing.Lease, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = *model.ToDomain()
	}
	return leases, nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, lease *leasing.Lease) error {
	model := models.LeaseModelFromDomain(lease)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a lease and cascades to its payments
func (r *GormLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lease_id = ?", id).Delete(&models.RentPaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LeaseModel{}, "id = ?", id).Error
	})
}

// Ensure GormLeaseRepository implements the interface
var _ leasing.LeaseRepository = (*GormLeaseRepository)(nil)
