package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTenant      = "tenant"
	RoleLandlord    = "landlord"
	RoleAdmin       = "admin"
	RoleMaintenance = "maintenance"
	RoleAccountant  = "accountant"
)

const (
	AssignmentActive   = "active"
	AssignmentInactive = "inactive"
)

// RoleAssignment binds a user to a role on one property, optionally narrowed to a unit.
// A user may hold different roles on different properties.
type RoleAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_property_role" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignment_user_property_role" json:"property_id"`
	Property   *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	UnitID     *uuid.UUID `gorm:"type:uuid;index" json:"unit_id"`
	Unit       *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Role       string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_assignment_user_property_role" json:"role"`
	Status     string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsActive reports whether the assignment currently grants anything
func (a RoleAssignment) IsActive() bool {
	return a.Status == AssignmentActive
}
