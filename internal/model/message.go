package model

import (
	"time"

	"github.com/google/uuid"
)

const MessageSent = "sent"

type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Body       string    `gorm:"column:message_body;type:text;not null" json:"message_body"`
	Status     string    `gorm:"type:varchar(20);not null;default:'sent'" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
