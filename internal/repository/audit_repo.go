package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

// ActivityFilter selects entries written by UserID, plus entries tagged with any of PropertyIDs
type ActivityFilter struct {
	UserID      uuid.UUID
	PropertyIDs []uuid.UUID
	Limit       int
	Offset      int
}

type AuditRepository interface {
	Log(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, f ActivityFilter) ([]model.ActivityLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.ActivityLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, f ActivityFilter) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	base := func() *gorm.DB {
		db := GetDB(ctx, r.db).Model(&model.ActivityLog{})
		if len(f.PropertyIDs) > 0 {
			return db.Where("user_id = ? OR property_id IN ?", f.UserID, f.PropertyIDs)
		}
		return db.Where("user_id = ?", f.UserID)
	}

	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base().Preload("User").Order("created_at desc").Offset(f.Offset).Limit(f.Limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
