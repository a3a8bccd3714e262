package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	UnitVacant   = "vacant"
	UnitOccupied = "occupied"
)

// Property is owned by exactly one landlord and carries the receipt serial counter
type Property struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID              uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner                *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	PropertyCode         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"property_code"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	Address              string    `gorm:"type:text;not null" json:"address"`
	Type                 string    `gorm:"type:varchar(50);not null" json:"type"`
	ReceiptSerialCounter int       `gorm:"not null;default:0" json:"receipt_serial_counter"`
	LogoURL              string    `gorm:"type:text" json:"logo_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Unit belongs to one property and is optionally let to one tenant
type Unit struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	TenantID   *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id"`
	UnitName   string     `gorm:"type:varchar(100);not null" json:"unit_name"`
	Type       string     `gorm:"type:varchar(50)" json:"type"`
	Status     string     `gorm:"type:varchar(20);not null;default:'vacant'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
