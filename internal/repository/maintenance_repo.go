package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

var maintenanceColumns = scopeColumns{Tenant: "tenant_id", Property: "property_id", Direct: []string{"tenant_id"}}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *model.MaintenanceRequest) error
	Update(ctx context.Context, m *model.MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceRequest, error)
	List(ctx context.Context, f ListFilter) ([]model.MaintenanceRequest, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, m *model.MaintenanceRequest) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *maintenanceRepository) Update(ctx context.Context, m *model.MaintenanceRequest) error {
	return GetDB(ctx, r.db).Omit("Tenant", "Property").Save(m).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceRequest, error) {
	var m model.MaintenanceRequest
	if err := GetDB(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) List(ctx context.Context, f ListFilter) ([]model.MaintenanceRequest, error) {
	var out []model.MaintenanceRequest
	err := applyFilter(GetDB(ctx, r.db), f, maintenanceColumns).
		Preload("Tenant").
		Preload("Property").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
