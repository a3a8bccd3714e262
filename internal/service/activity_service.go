package service

import (
	"context"

	"github.com/google/uuid"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
	"propertyhub/pkg/pagination"
)

type ActivityResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	PropertyID *string `json:"property_id"`
	Action     string  `json:"action"`
	Entity     string  `json:"entity"`
	Details    string  `json:"details"`
	CreatedAt  string  `json:"created_at"`
}

type ActivityService interface {
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]ActivityResponse, int64, error)
}

type activityService struct {
	auditRepo repository.AuditRepository
	access    AccessService
}

func NewActivityService(auditRepo repository.AuditRepository, accessService AccessService) ActivityService {
	return &activityService{auditRepo: auditRepo, access: accessService}
}

// List returns the caller's own entries; managers also see entries on the properties they manage
func (s *activityService) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]ActivityResponse, int64, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.ActivityFilter{UserID: userID, Limit: page.Limit, Offset: page.Offset}
	if scope := principal.Visibility(); scope.Mode == access.ModeProperties {
		filter.PropertyIDs = scope.PropertyIDs
	}

	logs, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Store(err)
	}

	res := make([]ActivityResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toActivityResponse(l))
	}
	return res, total, nil
}

func toActivityResponse(l model.ActivityLog) ActivityResponse {
	name := ""
	if l.User != nil {
		name = l.User.FullName
	}
	var propertyID *string
	if l.PropertyID != nil {
		id := l.PropertyID.String()
		propertyID = &id
	}
	return ActivityResponse{
		ID:         l.ID.String(),
		UserID:     l.UserID.String(),
		UserName:   name,
		PropertyID: propertyID,
		Action:     l.Action,
		Entity:     l.Entity,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
