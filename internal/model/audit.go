package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionView   = "VIEW"
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
)

// Entity names recorded in the activity log
const (
	EntityDashboard          = "Dashboard"
	EntityProperties         = "Properties"
	EntityUnits              = "Units"
	EntityRoleAssignments    = "RoleAssignments"
	EntityMaintenanceRequest = "MaintenanceRequests"
	EntityPayments           = "Payments"
	EntityReceipts           = "Receipts"
	EntityAnnouncements      = "Announcements"
	EntityMessages           = "Messages"
	EntityNotifications      = "Notifications"
)

// ActivityLog is the append-only trail of who did what. PropertyID is set when the
// action concerns a property so landlords can follow activity on what they manage.
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PropertyID *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Action     string     `gorm:"type:varchar(20);not null;index" json:"action"`
	Entity     string     `gorm:"type:varchar(50);not null" json:"entity"`
	Details    string     `gorm:"type:text" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
