package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
)

var propertyColumns = scopeColumns{Property: "id", Direct: []string{"owner_id"}}

type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	Update(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	List(ctx context.Context, scope access.Scope, propertyID *uuid.UUID) ([]model.Property, error)
	OwnedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	NextReceiptSerial(ctx context.Context, propertyID uuid.UUID) (int, error)
	CountUnits(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *model.Property) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *propertyRepository) Update(ctx context.Context, p *model.Property) error {
	// the serial counter is only ever moved by NextReceiptSerial
	return GetDB(ctx, r.db).Omit("Owner", "ReceiptSerialCounter").Save(p).Error
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var p model.Property
	if err := GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) List(ctx context.Context, scope access.Scope, propertyID *uuid.UUID) ([]model.Property, error) {
	var out []model.Property
	err := applyFilter(GetDB(ctx, r.db), ListFilter{Scope: scope, PropertyID: propertyID}, propertyColumns).
		Order("name asc").
		Find(&out).Error
	return out, err
}

func (r *propertyRepository) OwnedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).Model(&model.Property{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

const nextReceiptSerialSQL = `UPDATE properties
SET receipt_serial_counter = receipt_serial_counter + 1, updated_at = NOW()
WHERE id = ? RETURNING receipt_serial_counter`

// NextReceiptSerial bumps the property's counter in a single statement and returns the new value.
// Concurrent callers serialize on the row lock, so each gets a distinct serial.
func (r *propertyRepository) NextReceiptSerial(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var serial int
	res := GetDB(ctx, r.db).Raw(nextReceiptSerialSQL, propertyID).Scan(&serial)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return serial, nil
}

func (r *propertyRepository) CountUnits(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PropertyID uuid.UUID
		Total      int64
	}
	err := GetDB(ctx, r.db).
		Model(&model.Unit{}).
		Select("property_id, COUNT(*) AS total").
		Where("property_id IN ?", propertyIDs).
		Group("property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PropertyID] = row.Total
	}
	return counts, nil
}
