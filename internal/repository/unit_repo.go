package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

var unitColumns = scopeColumns{Tenant: "tenant_id", Property: "property_id", Direct: []string{"tenant_id"}}

type UnitRepository interface {
	Create(ctx context.Context, u *model.Unit) error
	Update(ctx context.Context, u *model.Unit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error)
	List(ctx context.Context, f ListFilter) ([]model.Unit, error)
}

type unitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, u *model.Unit) error {
	return GetDB(ctx, r.db).Create(u).Error
}

func (r *unitRepository) Update(ctx context.Context, u *model.Unit) error {
	return GetDB(ctx, r.db).Save(u).Error
}

func (r *unitRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	var u model.Unit
	if err := GetDB(ctx, r.db).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unitRepository) List(ctx context.Context, f ListFilter) ([]model.Unit, error) {
	var out []model.Unit
	err := applyFilter(GetDB(ctx, r.db), f, unitColumns).
		Order("unit_name asc").
		Find(&out).Error
	return out, err
}
