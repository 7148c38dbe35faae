package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/leasing"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseModel is the GORM model for leases
type LeaseModel struct {
	BaseModel
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_leases_tenant"`
	PropertyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_leases_property"`
	UnitID      uuid.UUID  `gorm:"type:uuid;not null"`
	MoveInDate  time.Time  `gorm:"type:date;not null"`
	MoveOutDate *time.Time `gorm:"type:date"`

	// MonthlyRent is nullable: a lease whose price tier was never resolved
	// carries no rent, and billing must tolerate that.
	MonthlyRent *decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName returns the table name for the model
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the model to a domain entity
func (m *LeaseModel) ToDomain() *leasing.Lease {
	var rent *valueobject.Money
	if m.MonthlyRent != nil {
		money := valueobject.NewMoneyUSD(*m.MonthlyRent)
		rent = &money
	}

	return &leasing.Lease{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		PropertyID:  m.PropertyID,
		UnitID:      m.UnitID,
		MoveInDate:  m.MoveInDate,
		MoveOutDate: m.MoveOutDate,
		MonthlyRent: rent,
	}
}

// LeaseModelFromDomain creates a model from a domain entity
func LeaseModelFromDomain(l *leasing.Lease) *LeaseModel {
	model := &LeaseModel{
		TenantID:    l.TenantID,
		PropertyID:  l.PropertyID,
		UnitID:      l.UnitID,
		MoveInDate:  l.MoveInDate,
		MoveOutDate: l.MoveOutDate,
	}
	model.FromDomainBaseEntity(l.BaseEntity)

	if l.MonthlyRent != nil {
		amount := l.MonthlyRent.Amount()
		model.MonthlyRent = &amount
	}
	return model
}
