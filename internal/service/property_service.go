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

type CreatePropertyRequest struct {
	PropertyCode string `json:"property_code" binding:"required,max=50"`
	Name         string `json:"name" binding:"required,max=255"`
	Address      string `json:"address" binding:"required"`
	Type         string `json:"type" binding:"required,max=50"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
}

type UpdatePropertyRequest struct {
	ID      string  `json:"id" binding:"required,uuid"`
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address" binding:"omitempty,min=1"`
	Type    *string `json:"type" binding:"omitempty,min=1,max=50"`
	LogoURL *string `json:"logo_url" binding:"omitempty,url"`
}

type CreateUnitRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	UnitName   string `json:"unit_name" binding:"required,max=100"`
	Type       string `json:"type" binding:"omitempty,max=50"`
}

// --- Interface ---

type PropertyService interface {
	ListProperties(ctx context.Context, userID uuid.UUID) ([]model.Property, error)
	CreateProperty(ctx context.Context, userID uuid.UUID, accountType string, req CreatePropertyRequest) (*model.Property, error)
	UpdateProperty(ctx context.Context, userID uuid.UUID, req UpdatePropertyRequest) (*model.Property, error)
	ListUnits(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) ([]model.Unit, error)
	CreateUnit(ctx context.Context, userID uuid.UUID, req CreateUnitRequest) (*model.Unit, error)
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
	roleRepo     repository.RoleRepository
	txManager    repository.TransactionManager
	access       AccessService
	recorder     *Recorder
}

func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	roleRepo repository.RoleRepository,
	txManager repository.TransactionManager,
	accessService AccessService,
	recorder *Recorder,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		roleRepo:     roleRepo,
		txManager:    txManager,
		access:       accessService,
		recorder:     recorder,
	}
}

func (s *propertyService) ListProperties(ctx context.Context, userID uuid.UUID) ([]model.Property, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}

	properties := []model.Property{}
	scope := principal.Visibility()
	if !scope.Empty() {
		properties, err = s.propertyRepo.List(ctx, scope, nil)
		if err != nil {
			return nil, apperror.Store(err)
		}
	}

	s.recorder.Activity(ctx, userID, nil, model.ActionView, model.EntityProperties,
		fmt.Sprintf("Viewed %d properties", len(properties)))
	return properties, nil
}

// CreateProperty makes the caller the owner and an active landlord of the new property
func (s *propertyService) CreateProperty(ctx context.Context, userID uuid.UUID, accountType string, req CreatePropertyRequest) (*model.Property, error) {
	if accountType != model.AccountLandlord && accountType != model.AccountAdmin {
		return nil, apperror.Forbidden("Access denied: Only landlords can create properties")
	}

	property := &model.Property{
		OwnerID:      userID,
		PropertyCode: req.PropertyCode,
		Name:         req.Name,
		Address:      req.Address,
		Type:         req.Type,
		LogoURL:      req.LogoURL,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.propertyRepo.Create(txCtx, property); err != nil {
			return err
		}
		return s.roleRepo.Create(txCtx, &model.RoleAssignment{
			UserID:     userID,
			PropertyID: property.ID,
			Role:       model.RoleLandlord,
			Status:     model.AssignmentActive,
		})
	})
	if err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityProperties,
		fmt.Sprintf("Created property %s (%s)", property.Name, property.PropertyCode))
	return property, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, userID uuid.UUID, req UpdatePropertyRequest) (*model.Property, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	property, err := findProperty(ctx, s.propertyRepo, id)
	if err != nil {
		return nil, err
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpUpdateProperty, property.ID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.LogoURL != nil {
		property.LogoURL = *req.LogoURL
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionUpdate, model.EntityProperties,
		fmt.Sprintf("Updated property %s", property.Name))
	return property, nil
}

func (s *propertyService) ListUnits(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) ([]model.Unit, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if propertyID != nil {
		if err := principal.Authorize(access.OpViewProperty, *propertyID); err != nil {
			return nil, err
		}
	}

	scope := principal.Visibility()
	if scope.Empty() {
		return []model.Unit{}, nil
	}
	units, err := s.unitRepo.List(ctx, repository.ListFilter{Scope: scope, PropertyID: propertyID})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return units, nil
}

func (s *propertyService) CreateUnit(ctx context.Context, userID uuid.UUID, req CreateUnitRequest) (*model.Unit, error) {
	propertyID, err := parseID("property_id", req.PropertyID)
	if err != nil {
		return nil, err
	}

	property, err := findProperty(ctx, s.propertyRepo, propertyID)
	if err != nil {
		return nil, err
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpManageUnits, property.ID); err != nil {
		return nil, err
	}

	unit := &model.Unit{
		PropertyID: property.ID,
		UnitName:   req.UnitName,
		Type:       req.Type,
		Status:     model.UnitVacant,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityUnits,
		fmt.Sprintf("Created unit %s in %s", unit.UnitName, property.Name))
	return unit, nil
}
