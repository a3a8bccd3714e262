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

type CreateAnnouncementRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	Body       string `json:"body" binding:"required"`
}

type AnnouncementService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Announcement, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateAnnouncementRequest) (*model.Announcement, error)
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	propertyRepo     repository.PropertyRepository
	access           AccessService
	recorder         *Recorder
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	propertyRepo repository.PropertyRepository,
	accessService AccessService,
	recorder *Recorder,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		propertyRepo:     propertyRepo,
		access:           accessService,
		recorder:         recorder,
	}
}

func (s *announcementService) List(ctx context.Context, userID uuid.UUID) ([]model.Announcement, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	scope := principal.Visibility()
	if scope.Empty() {
		return []model.Announcement{}, nil
	}
	announcements, err := s.announcementRepo.List(ctx, repository.ListFilter{Scope: scope})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return announcements, nil
}

// Create posts to a property and notifies each of its active tenants
func (s *announcementService) Create(ctx context.Context, userID uuid.UUID, req CreateAnnouncementRequest) (*model.Announcement, error) {
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
	if err := principal.Authorize(access.OpCreateAnnouncement, property.ID); err != nil {
		return nil, err
	}

	announcement := &model.Announcement{
		PropertyID: property.ID,
		CreatedBy:  userID,
		Body:       req.Body,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityAnnouncements,
		fmt.Sprintf("Posted announcement to %s", property.Name))

	tenants, err := s.access.Tenants(ctx, property.ID)
	if err != nil {
		s.recorder.log.WithError(err).Warn("could not resolve tenants for announcement notification")
		return announcement, nil
	}
	s.recorder.Notify(ctx, Notification{
		EventType:   model.EventAnnouncementPosted,
		Title:       "New announcement at " + property.Name,
		Body:        excerpt(announcement.Body, 140),
		ReferenceID: ref(announcement.ID),
	}, tenants...)
	return announcement, nil
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
