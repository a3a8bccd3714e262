package model

import (
	"time"

	"github.com/google/uuid"
)

// Maintenance status flow: pending -> in-progress -> resolved. Transitions are not
// enforced; a landlord may skip in-progress or reopen a resolved request.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in-progress"
	MaintenanceResolved   = "resolved"
)

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

type MaintenanceRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant      *User      `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PropertyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	Property    *Property  `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Urgency     string     `gorm:"type:varchar(10);not null" json:"urgency"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}
