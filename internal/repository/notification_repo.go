package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindForUser(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error)
	SetRead(ctx context.Context, n *model.Notification, read bool) error
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return GetDB(ctx, r.db).Create(n).Error
}

// FindForUser only finds notifications addressed to userID
func (r *notificationRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	if err := GetDB(ctx, r.db).First(&n, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) SetRead(ctx context.Context, n *model.Notification, read bool) error {
	if err := GetDB(ctx, r.db).Model(n).Update("is_read", read).Error; err != nil {
		return err
	}
	n.IsRead = read
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	db := GetDB(ctx, r.db).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	err := db.Order("created_at desc").Find(&out).Error
	return out, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
