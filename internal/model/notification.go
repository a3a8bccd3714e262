package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification event types
const (
	EventMaintenanceCreated  = "maintenance_created"
	EventMaintenanceResolved = "maintenance_resolved"
	EventMessageReceived     = "message_received"
	EventAnnouncementPosted  = "announcement_posted"
	EventPaymentRecorded     = "payment_recorded"
	EventReceiptIssued       = "receipt_issued"
	EventRoleAssigned        = "role_assigned"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Body        string     `gorm:"type:text" json:"body"`
	IsRead      bool       `gorm:"not null;default:false" json:"is_read"`
	EventType   string     `gorm:"type:varchar(50);not null;index" json:"event_type"`
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"reference_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}
