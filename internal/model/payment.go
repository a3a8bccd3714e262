package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
)

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant        *User           `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	Property      *Property       `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Reference     string          `gorm:"type:varchar(100);not null" json:"reference"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt        time.Time       `gorm:"index" json:"paid_at"`
}
