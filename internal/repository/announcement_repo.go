package repository

import (
	"context"

	"gorm.io/gorm"

	"propertyhub/internal/model"
)

// announcements have no tenant party; tenants see them through their properties
var announcementColumns = scopeColumns{Property: "property_id", Direct: []string{"created_by"}}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	List(ctx context.Context, f ListFilter) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return GetDB(ctx, r.db).Create(a).Error
}

func (r *announcementRepository) List(ctx context.Context, f ListFilter) ([]model.Announcement, error) {
	var out []model.Announcement
	err := applyFilter(GetDB(ctx, r.db), f, announcementColumns).
		Preload("Property").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
