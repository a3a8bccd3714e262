package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propertyhub/internal/model"
	"propertyhub/internal/repository"
)

// Pusher delivers a persisted notification to the recipient's live connections
type Pusher interface {
	Push(userID uuid.UUID, n *model.Notification)
}

// Recorder writes the activity trail and notifications that follow a primary write.
// Failures are logged and swallowed; the caller's request has already succeeded.
type Recorder struct {
	audit         repository.AuditRepository
	notifications repository.NotificationRepository
	pusher        Pusher
	log           *logrus.Logger
}

func NewRecorder(
	audit repository.AuditRepository,
	notifications repository.NotificationRepository,
	pusher Pusher,
	log *logrus.Logger,
) *Recorder {
	return &Recorder{audit: audit, notifications: notifications, pusher: pusher, log: log}
}

// Activity appends one entry to the activity log
func (r *Recorder) Activity(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID, action, entity, details string) {
	entry := &model.ActivityLog{
		UserID:     userID,
		PropertyID: propertyID,
		Action:     action,
		Entity:     entity,
		Details:    details,
	}
	if err := r.audit.Log(ctx, entry); err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
			"entity":  entity,
		}).Warn("activity log write failed")
	}
}

// Notification is the content shared by every recipient of one event
type Notification struct {
	EventType   string
	Title       string
	Body        string
	ReferenceID *uuid.UUID
}

// Notify stores one notification per recipient and pushes it over the websocket hub
func (r *Recorder) Notify(ctx context.Context, n Notification, recipients ...uuid.UUID) {
	for _, userID := range recipients {
		row := &model.Notification{
			UserID:      userID,
			Title:       n.Title,
			Body:        n.Body,
			EventType:   n.EventType,
			ReferenceID: n.ReferenceID,
		}
		if err := r.notifications.Create(ctx, row); err != nil {
			r.log.WithError(err).WithFields(logrus.Fields{
				"user_id":    userID,
				"event_type": n.EventType,
			}).Warn("notification write failed")
			continue
		}
		if r.pusher != nil {
			r.pusher.Push(userID, row)
		}
	}
}

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}
