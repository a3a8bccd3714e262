package model

import (
	"time"

	"github.com/google/uuid"
)

// Account types chosen at signup. They only gate actions that are not yet bound
// to a property; everything property-scoped is decided by RoleAssignment rows.
const (
	AccountTenant      = "tenant"
	AccountLandlord    = "landlord"
	AccountAdmin       = "admin"
	AccountMaintenance = "maintenance"
	AccountAccountant  = "accountant"
)

// User is the authenticated identity
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName    string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone"`
	AccountType string    `gorm:"type:varchar(20);not null;default:'tenant'" json:"account_type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
