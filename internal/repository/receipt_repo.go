package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

var receiptColumns = scopeColumns{Tenant: "tenant_id", Property: "property_id", Direct: []string{"tenant_id", "approved_by"}}

type ReceiptRepository interface {
	Create(ctx context.Context, rc *model.Receipt) error
	Update(ctx context.Context, rc *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	List(ctx context.Context, f ListFilter) ([]model.Receipt, error)
}

type receiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, rc *model.Receipt) error {
	return GetDB(ctx, r.db).Create(rc).Error
}

func (r *receiptRepository) Update(ctx context.Context, rc *model.Receipt) error {
	return GetDB(ctx, r.db).Omit("Tenant", "Property", "Approver").Save(rc).Error
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rc model.Receipt
	if err := GetDB(ctx, r.db).First(&rc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *receiptRepository) List(ctx context.Context, f ListFilter) ([]model.Receipt, error) {
	var out []model.Receipt
	err := applyFilter(GetDB(ctx, r.db), f, receiptColumns).
		Preload("Tenant").
		Preload("Property").
		Preload("Approver").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
