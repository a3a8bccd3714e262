package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

// --- DTOs ---

type CreateMaintenanceRequest struct {
	PropertyID  string `json:"property_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required"`
	Urgency     string `json:"urgency" binding:"required,oneof=low medium high"`
}

type UpdateMaintenanceRequest struct {
	ID         string     `json:"id" binding:"required,uuid"`
	Status     string     `json:"status" binding:"required,oneof=pending in-progress resolved"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// --- Interface ---

type MaintenanceService interface {
	List(ctx context.Context, userID uuid.UUID, status string) ([]model.MaintenanceRequest, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateMaintenanceRequest) (*model.MaintenanceRequest, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateMaintenanceRequest) (*model.MaintenanceRequest, error)
}

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	propertyRepo    repository.PropertyRepository
	access          AccessService
	recorder        *Recorder
	now             func() time.Time
}

func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	propertyRepo repository.PropertyRepository,
	accessService AccessService,
	recorder *Recorder,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		propertyRepo:    propertyRepo,
		access:          accessService,
		recorder:        recorder,
		now:             time.Now,
	}
}

func (s *maintenanceService) List(ctx context.Context, userID uuid.UUID, status string) ([]model.MaintenanceRequest, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	scope := principal.Visibility()
	if scope.Empty() {
		return []model.MaintenanceRequest{}, nil
	}
	requests, err := s.maintenanceRepo.List(ctx, repository.ListFilter{Scope: scope, Status: status})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return requests, nil
}

func (s *maintenanceService) Create(ctx context.Context, userID uuid.UUID, req CreateMaintenanceRequest) (*model.MaintenanceRequest, error) {
	propertyID, err := parseID("property_id", req.PropertyID)
	if err != nil {
		return nil, err
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpCreateMaintenance, propertyID); err != nil {
		return nil, err
	}

	property, err := findProperty(ctx, s.propertyRepo, propertyID)
	if err != nil {
		return nil, err
	}

	request := &model.MaintenanceRequest{
		TenantID:    userID,
		PropertyID:  property.ID,
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
		Status:      model.MaintenancePending,
	}
	if err := s.maintenanceRepo.Create(ctx, request); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityMaintenanceRequest,
		fmt.Sprintf("Created maintenance request: %s", request.Title))

	landlords, err := s.access.Landlords(ctx, property)
	if err != nil {
		s.recorder.log.WithError(err).Warn("could not resolve landlords for maintenance notification")
	} else {
		s.recorder.Notify(ctx, Notification{
			EventType:   model.EventMaintenanceCreated,
			Title:       "New maintenance request",
			Body:        fmt.Sprintf("%s (%s urgency) at %s", request.Title, request.Urgency, property.Name),
			ReferenceID: ref(request.ID),
		}, landlords...)
	}
	return request, nil
}

// Update moves a request to any status; only a transition into resolved notifies the tenant
func (s *maintenanceService) Update(ctx context.Context, userID uuid.UUID, req UpdateMaintenanceRequest) (*model.MaintenanceRequest, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	request, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Maintenance request not found")
		}
		return nil, apperror.Store(err)
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpUpdateMaintenance, request.PropertyID); err != nil {
		return nil, err
	}

	request.Status = req.Status
	if req.Status == model.MaintenanceResolved {
		resolvedAt := s.now()
		if req.ResolvedAt != nil {
			resolvedAt = *req.ResolvedAt
		}
		request.ResolvedAt = &resolvedAt
	}
	if err := s.maintenanceRepo.Update(ctx, request); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(request.PropertyID), model.ActionUpdate, model.EntityMaintenanceRequest,
		fmt.Sprintf("Updated maintenance request %s to %s", request.Title, request.Status))

	if request.Status == model.MaintenanceResolved {
		s.recorder.Notify(ctx, Notification{
			EventType:   model.EventMaintenanceResolved,
			Title:       "Maintenance request resolved",
			Body:        fmt.Sprintf("Your request \"%s\" has been resolved", request.Title),
			ReferenceID: ref(request.ID),
		}, request.TenantID)
	}
	return request, nil
}
