package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLoyaltyStandingRepository implements LoyaltyStandingRepository using GORM
type GormLoyaltyStandingRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyStandingRepository creates a new GormLoyaltyStandingRepository
func NewGormLoyaltyStandingRepository(db *gorm.DB) *GormLoyaltyStandingRepository {
	return &GormLoyaltyStandingRepository{db: db}
}

// FindByTenantAndProperty finds the standing for a (tenant, property) pair
func (r *GormLoyaltyStandingRepository) FindByTenantAndProperty(ctx context.Context, tenantID, propertyID uuid.UUID) (*billing.LoyaltyStanding, error) {
	var model models.LoyaltyStandingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert atomically creates or updates the standing for the pair. Concurrent
// recomputations race on the (tenant_id, property_id) unique index; the
// conflict clause turns the loser's insert into an update instead of an
// error.
func (r *GormLoyaltyStandingRepository) Upsert(ctx context.Context, standing *billing.LoyaltyStanding) error {
	model := models.LoyaltyStandingModelFromDomain(standing)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "property_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tier",
			"updated_at",
		}),
	}).Create(model).Error
}

// Ensure GormLoyaltyStandingRepository implements the interface
var _ billing.LoyaltyStandingRepository = (*GormLoyaltyStandingRepository)(nil)
