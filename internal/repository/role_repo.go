package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/model"
)

// RoleRepository reads and writes per-property role assignments
type RoleRepository interface {
	Create(ctx context.Context, a *model.RoleAssignment) error
	Update(ctx context.Context, a *model.RoleAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RoleAssignment, error)
	Find(ctx context.Context, userID, propertyID uuid.UUID, role string) (*model.RoleAssignment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.RoleAssignment, error)
	ActiveUserIDs(ctx context.Context, propertyID uuid.UUID, roles ...string) ([]uuid.UUID, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, a *model.RoleAssignment) error {
	return GetDB(ctx, r.db).Create(a).Error
}

func (r *roleRepository) Update(ctx context.Context, a *model.RoleAssignment) error {
	return GetDB(ctx, r.db).Omit("User", "Property", "Unit").Save(a).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RoleAssignment, error) {
	var a model.RoleAssignment
	if err := GetDB(ctx, r.db).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *roleRepository) Find(ctx context.Context, userID, propertyID uuid.UUID, role string) (*model.RoleAssignment, error) {
	var a model.RoleAssignment
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND property_id = ? AND role = ?", userID, propertyID, role).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser returns every assignment of the user, active or not, with property and unit loaded
func (r *roleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.RoleAssignment, error) {
	var out []model.RoleAssignment
	err := GetDB(ctx, r.db).
		Preload("Property").
		Preload("Unit").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

func (r *roleRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.RoleAssignment, error) {
	var out []model.RoleAssignment
	err := GetDB(ctx, r.db).
		Preload("User").
		Preload("Unit").
		Where("property_id = ?", propertyID).
		Order("role asc, created_at asc").
		Find(&out).Error
	return out, err
}

// ActiveUserIDs lists distinct users holding any of roles on the property
func (r *roleRepository) ActiveUserIDs(ctx context.Context, propertyID uuid.UUID, roles ...string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).
		Model(&model.RoleAssignment{}).
		Distinct("user_id").
		Where("property_id = ? AND status = ? AND role IN ?", propertyID, model.AssignmentActive, roles).
		Pluck("user_id", &ids).Error
	return ids, err
}
