package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	return GetDB(ctx, r.db).Create(m).Error
}

// ListForUser returns messages the user sent or received, newest first
func (r *messageRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Message, error) {
	var out []model.Message
	db := GetDB(ctx, r.db).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&out).Error
	return out, err
}
