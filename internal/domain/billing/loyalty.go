package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tier represents a tenant's loyalty tier at a property
type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
)

// Tier thresholds: on-time settlements required to hold a tier
const (
	silverOnTimeThreshold = 3
	goldOnTimeThreshold   = 6
)

// IsValid checks if the tier is a valid Tier
func (t Tier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold:
		return true
	}
	return false
}

// String returns the string representation of Tier
func (t Tier) String() string {
	return string(t)
}

// DiscountPercentage returns the rent discount granted by the tier.
// This is a fixed lookup, not user-configurable.
func (t Tier) DiscountPercentage() int {
	switch t {
	case TierSilver:
		return 3
	case TierGold:
		return 5
	default:
		return 0
	}
}

// DiscountPercentageDecimal returns the discount as a decimal for pricing
func (t Tier) DiscountPercentageDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(t.DiscountPercentage()))
}

// Next returns the tier above this one, or false for gold
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierBronze:
		return TierSilver, true
	case TierSilver:
		return TierGold, true
	default:
		return "", false
	}
}

// OnTimeCount counts the payments settled on or before the 10th of their
// billing month.
func OnTimeCount(payments []RentPayment) int {
	count := 0
	for i := range payments {
		if payments[i].IsOnTime() {
			count++
		}
	}
	return count
}

// HasUnpaidLate reports whether any payment is unsettled and overdue on the
// given date.
func HasUnpaidLate(payments []RentPayment, today time.Time) bool {
	for i := range payments {
		if payments[i].IsUnpaidLate(today) {
			return true
		}
	}
	return false
}

// ComputeTier derives the loyalty tier from a tenant's full payment history
// at a property. Any unpaid-late payment caps the tier at bronze regardless
// of the on-time count.
func ComputeTier(payments []RentPayment, today time.Time) Tier {
	onTime := OnTimeCount(payments)
	unpaidLate := HasUnpaidLate(payments, today)

	switch {
	case onTime >= goldOnTimeThreshold && !unpaidLate:
		return TierGold
	case onTime >= silverOnTimeThreshold && !unpaidLate:
		return TierSilver
	default:
		return TierBronze
	}
}

// PaymentsNeededForNext returns how many more on-time payments the tenant
// needs to reach the tier above the given one. Gold needs zero.
func PaymentsNeededForNext(current Tier, onTimeCount int) int {
	var threshold int
	switch current {
	case TierBronze:
		threshold = silverOnTimeThreshold
	case TierSilver:
		threshold = goldOnTimeThreshold
	default:
		return 0
	}
	return max(0, threshold-onTimeCount)
}

// LoyaltyStanding holds the persisted tier for one (tenant, property) pair.
// The stored tier is a cache of ComputeTier over the payment history: it is
// only recomputed when a caller explicitly asks for it after a settlement,
// not on every read.
type LoyaltyStanding struct {
	shared.BaseEntity
	TenantID   uuid.UUID `json:"tenant_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Tier       Tier      `json:"tier"`
}

// NewLoyaltyStanding creates a standing for a (tenant, property) pair
func NewLoyaltyStanding(tenantID, propertyID uuid.UUID, tier Tier) (*LoyaltyStanding, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainError("INVALID_TIER", "Tier is not valid")
	}

	return &LoyaltyStanding{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		PropertyID: propertyID,
		Tier:       tier,
	}, nil
}

// UpdateTier replaces the stored tier, returning true when it changed
func (s *LoyaltyStanding) UpdateTier(tier Tier) bool {
	if s.Tier == tier {
		return false
	}
	s.Tier = tier
	s.UpdatedAt = time.Now()
	return true
}
