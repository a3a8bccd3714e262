package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ReceiptPending = "pending"

// Receipt is issued by a landlord (or property admin) to a tenant.
// ReceiptNo is unique per property and derived from Property.ReceiptSerialCounter.
type Receipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant        *User           `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	Property      *Property       `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Period        string          `gorm:"type:varchar(50);not null" json:"period"`
	ReceiptNo     string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"receipt_no"`
	ApprovedBy    uuid.UUID       `gorm:"type:uuid;not null" json:"approved_by"`
	Approver      *User           `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt    time.Time       `gorm:"index" json:"approved_at"`
	ReceiptPDFURL string          `gorm:"column:receipt_pdf_url;type:text" json:"receipt_pdf_url"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FormatReceiptNo renders RCP-<last 8 chars of property id, uppercased>-<serial, 4 digits>
func FormatReceiptNo(propertyID uuid.UUID, serial int) string {
	id := propertyID.String()
	return fmt.Sprintf("RCP-%s-%04d", strings.ToUpper(id[len(id)-8:]), serial)
}
