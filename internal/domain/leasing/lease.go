package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/domain/shared/valueobject"
)

// Lease represents a signed lease binding a tenant to a unit at a property.
// It is owned by the leasing/application subsystem and is read-only to the
// billing engine: billing derives obligations from it but never mutates it.
type Lease struct {
	shared.BaseEntity
	TenantID    uuid.UUID  `json:"tenant_id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	UnitID      uuid.UUID  `json:"unit_id"`
	MoveInDate  time.Time  `json:"move_in_date"`
	MoveOutDate *time.Time `json:"move_out_date"`

	// MonthlyRent comes from the price tier chosen on the originating
	// rental application. Nil means the rent was never resolved - a
	// configuration gap the billing engine must tolerate.
	MonthlyRent *valueobject.Money `json:"monthly_rent"`
}

// NewLease creates a new lease
func NewLease(tenantID, propertyID, unitID uuid.UUID, moveIn time.Time, moveOut *time.Time, monthlyRent *valueobject.Money) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if moveIn.IsZero() {
		return nil, shared.NewDomainError("INVALID_MOVE_IN", "Move-in date is required")
	}
	if moveOut != nil && !moveOut.After(moveIn) {
		return nil, shared.NewDomainError("INVALID_MOVE_OUT", "Move-out date must be after move-in date")
	}
	if monthlyRent != nil && !monthlyRent.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}

	return &Lease{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		PropertyID:  propertyID,
		UnitID:      unitID,
		MoveInDate:  moveIn,
		MoveOutDate: moveOut,
		MonthlyRent: monthlyRent,
	}, nil
}

// MonthlyRentAmount returns the resolved monthly rent and whether one exists
func (l *Lease) MonthlyRentAmount() (valueobject.Money, bool) {
	if l.MonthlyRent == nil {
		return valueobject.Money{}, false
	}
	return *l.MonthlyRent, true
}

// IsActiveOn reports whether the lease is in force on the given date:
// moved in, and either open-ended or not yet moved out.
func (l *Lease) IsActiveOn(date time.Time) bool {
	if l.MoveInDate.After(date) {
		return false
	}
	if l.MoveOutDate != nil && l.MoveOutDate.Before(date) {
		return false
	}
	return true
}
