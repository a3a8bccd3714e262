package repository

import (
	"context"

	"gorm.io/gorm"

	"propertyhub/internal/model"
)

var paymentColumns = scopeColumns{Tenant: "tenant_id", Property: "property_id", Direct: []string{"tenant_id"}}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	List(ctx context.Context, f ListFilter) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *paymentRepository) List(ctx context.Context, f ListFilter) ([]model.Payment, error) {
	var out []model.Payment
	err := applyFilter(GetDB(ctx, r.db), f, paymentColumns).
		Preload("Property").
		Order("paid_at desc").
		Find(&out).Error
	return out, err
}
