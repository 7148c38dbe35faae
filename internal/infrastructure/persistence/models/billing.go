package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// RentPaymentModel is the GORM model for rent payments. The composite unique
// index on (lease_id, tenant_id, billing_month) is what makes ledger
// materialization idempotent under concurrent requests.
type RentPaymentModel struct {
	AggregateModel
	LeaseID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rent_payments_ledger"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rent_payments_ledger;index:idx_rent_payments_tenant"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DueDate           time.Time       `gorm:"type:date;not null"`
	BillingMonth      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_rent_payments_ledger"`
	Status            string          `gorm:"type:varchar(20);not null;index:idx_rent_payments_status"`
	PaidDate          *time.Time      `gorm:"type:date"`
	SettlementRef     string          `gorm:"type:varchar(255)"`
	CheckoutSessionID string          `gorm:"type:varchar(255);index:idx_rent_payments_session"`
}

// TableName returns the table name for the model
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the model to a domain entity
func (m *RentPaymentModel) ToDomain() *billing.RentPayment {
	return &billing.RentPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		LeaseID:           m.LeaseID,
		TenantID:          m.TenantID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		BillingMonth:      m.BillingMonth,
		Status:            billing.PaymentStatus(m.Status),
		PaidDate:          m.PaidDate,
		SettlementRef:     m.SettlementRef,
		CheckoutSessionID: m.CheckoutSessionID,
	}
}

// RentPaymentModelFromDomain creates a model from a domain entity
func RentPaymentModelFromDomain(p *billing.RentPayment) *RentPaymentModel {
	model := &RentPaymentModel{
		LeaseID:           p.LeaseID,
		TenantID:          p.TenantID,
		Amount:            p.Amount,
		DueDate:           p.DueDate,
		BillingMonth:      p.BillingMonth,
		Status:            p.Status.String(),
		PaidDate:          p.PaidDate,
		SettlementRef:     p.SettlementRef,
		CheckoutSessionID: p.CheckoutSessionID,
	}
	model.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return model
}

// LoyaltyStandingModel is the GORM model for loyalty standings. One row per
// (tenant, property) pair, enforced by the composite unique index that Upsert
// conflicts on.
type LoyaltyStandingModel struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_standings_pair"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_standings_pair"`
	Tier       string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for the model
func (LoyaltyStandingModel) TableName() string {
	return "loyalty_standings"
}

// ToDomain converts the model to a domain entity
func (m *LoyaltyStandingModel) ToDomain() *billing.LoyaltyStanding {
	return &billing.LoyaltyStanding{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		PropertyID: m.PropertyID,
		Tier:       billing.Tier(m.Tier),
	}
}

// LoyaltyStandingModelFromDomain creates a model from a domain entity
func LoyaltyStandingModelFromDomain(s *billing.LoyaltyStanding) *LoyaltyStandingModel {
	model := &LoyaltyStandingModel{
		TenantID:   s.TenantID,
		PropertyID: s.PropertyID,
		Tier:       s.Tier.String(),
	}
	model.FromDomainBaseEntity(s.BaseEntity)
	return model
}
