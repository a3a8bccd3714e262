package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

// --- DTOs ---

type AssignRoleRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Role   string `json:"role" binding:"required,oneof=tenant landlord admin maintenance accountant"`
	UnitID string `json:"unit_id" binding:"omitempty,uuid"`
}

type UpdateRoleStatusRequest struct {
	ID     string `json:"id" binding:"required,uuid"`
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// --- Interface ---

// RoleService manages who holds which role on a property
type RoleService interface {
	ListAssignments(ctx context.Context, userID, propertyID uuid.UUID) ([]model.RoleAssignment, error)
	Assign(ctx context.Context, userID, propertyID uuid.UUID, req AssignRoleRequest) (*model.RoleAssignment, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, req UpdateRoleStatusRequest) (*model.RoleAssignment, error)
}

type roleService struct {
	roleRepo     repository.RoleRepository
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
	txManager    repository.TransactionManager
	access       AccessService
	recorder     *Recorder
}

func NewRoleService(
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	txManager repository.TransactionManager,
	accessService AccessService,
	recorder *Recorder,
) RoleService {
	return &roleService{
		roleRepo:     roleRepo,
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		txManager:    txManager,
		access:       accessService,
		recorder:     recorder,
	}
}

func (s *roleService) authorize(ctx context.Context, userID, propertyID uuid.UUID) (*model.Property, error) {
	property, err := findProperty(ctx, s.propertyRepo, propertyID)
	if err != nil {
		return nil, err
	}
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpManageRoles, property.ID); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *roleService) ListAssignments(ctx context.Context, userID, propertyID uuid.UUID) ([]model.RoleAssignment, error) {
	if _, err := s.authorize(ctx, userID, propertyID); err != nil {
		return nil, err
	}
	assignments, err := s.roleRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return assignments, nil
}

// Assign grants a role on the property, reactivating an earlier assignment of the same role.
// A tenant assigned to a unit becomes that unit's occupant.
func (s *roleService) Assign(ctx context.Context, userID, propertyID uuid.UUID, req AssignRoleRequest) (*model.RoleAssignment, error) {
	property, err := s.authorize(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Store(err)
	}

	var unit *model.Unit
	if req.UnitID != "" {
		unitID, err := parseID("unit_id", req.UnitID)
		if err != nil {
			return nil, err
		}
		unit, err = s.unitRepo.FindByID(ctx, unitID)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, apperror.Store(err)
		}
		if unit == nil || unit.PropertyID != property.ID {
			return nil, apperror.Validation("unit_id does not belong to this property")
		}
	}

	tenancy := unit != nil && req.Role == model.RoleTenant
	var assignment *model.RoleAssignment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if tenancy {
			current, err := s.unitRepo.FindByID(txCtx, unit.ID)
			if err != nil {
				return err
			}
			if current.TenantID != nil && *current.TenantID != target.ID {
				return apperror.Validation("unit_id is already occupied by another tenant")
			}
			unit = current
		}

		existing, err := s.roleRepo.Find(txCtx, target.ID, property.ID, req.Role)
		switch {
		case err == nil:
			if tenancy && existing.UnitID != nil && *existing.UnitID != unit.ID {
				if err := s.vacate(txCtx, *existing.UnitID, target.ID); err != nil {
					return err
				}
			}
			existing.Status = model.AssignmentActive
			if unit != nil {
				existing.UnitID = &unit.ID
			}
			if err := s.roleRepo.Update(txCtx, existing); err != nil {
				return err
			}
			assignment = existing
		case apperror.IsNotFound(err):
			assignment = &model.RoleAssignment{
				UserID:     target.ID,
				PropertyID: property.ID,
				Role:       req.Role,
				Status:     model.AssignmentActive,
			}
			if unit != nil {
				assignment.UnitID = &unit.ID
			}
			if err := s.roleRepo.Create(txCtx, assignment); err != nil {
				return err
			}
		default:
			return err
		}

		if tenancy {
			unit.TenantID = &target.ID
			unit.Status = model.UnitOccupied
			return s.unitRepo.Update(txCtx, unit)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityRoleAssignments,
		fmt.Sprintf("Assigned %s role on %s to %s", req.Role, property.Name, target.Email))
	s.recorder.Notify(ctx, Notification{
		EventType:   model.EventRoleAssigned,
		Title:       "New role assigned",
		Body:        fmt.Sprintf("You are now %s at %s", req.Role, property.Name),
		ReferenceID: ref(property.ID),
	}, target.ID)
	return assignment, nil
}

// UpdateStatus activates or deactivates an assignment. Deactivating a tenant frees their unit.
func (s *roleService) UpdateStatus(ctx context.Context, userID uuid.UUID, req UpdateRoleStatusRequest) (*model.RoleAssignment, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Role assignment not found")
		}
		return nil, apperror.Store(err)
	}

	if _, err := s.authorize(ctx, userID, assignment.PropertyID); err != nil {
		return nil, err
	}

	assignment.Status = req.Status
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Update(txCtx, assignment); err != nil {
			return err
		}
		if req.Status != model.AssignmentInactive || assignment.Role != model.RoleTenant || assignment.UnitID == nil {
			return nil
		}
		return s.vacate(txCtx, *assignment.UnitID, assignment.UserID)
	})
	if err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(assignment.PropertyID), model.ActionUpdate, model.EntityRoleAssignments,
		fmt.Sprintf("Set %s assignment %s to %s", assignment.Role, assignment.ID, assignment.Status))
	return assignment, nil
}

// vacate frees the unit if tenantID still occupies it
func (s *roleService) vacate(ctx context.Context, unitID, tenantID uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if unit.TenantID == nil || *unit.TenantID != tenantID {
		return nil
	}
	unit.TenantID = nil
	unit.Status = model.UnitVacant
	return s.unitRepo.Update(ctx, unit)
}
