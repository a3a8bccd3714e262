package service

import (
	"context"

	"github.com/google/uuid"

	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

type UpdateNotificationRequest struct {
	ID     string `json:"id" binding:"required,uuid"`
	IsRead *bool  `json:"is_read" binding:"required"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateNotificationRequest) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (*MarkAllReadResponse, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	recorder         *Recorder
}

func NewNotificationService(notificationRepo repository.NotificationRepository, recorder *Recorder) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, recorder: recorder}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	notifications, err := s.notificationRepo.ListForUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return notifications, nil
}

// Update only touches the caller's own notifications; anyone else's reads as missing
func (s *notificationService) Update(ctx context.Context, userID uuid.UUID, req UpdateNotificationRequest) (*model.Notification, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	if req.IsRead == nil {
		return nil, apperror.Validation("is_read is required")
	}

	n, err := s.notificationRepo.FindForUser(ctx, id, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Notification not found")
		}
		return nil, apperror.Store(err)
	}

	if err := s.notificationRepo.SetRead(ctx, n, *req.IsRead); err != nil {
		return nil, apperror.Store(err)
	}

	if n.IsRead {
		s.recorder.Activity(ctx, userID, nil, model.ActionUpdate, model.EntityNotifications,
			"Marked notification as read: "+n.Title)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (*MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return &MarkAllReadResponse{Updated: updated}, nil
}
