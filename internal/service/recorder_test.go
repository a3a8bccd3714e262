package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/logger"
	"propertyhub/internal/model"
)

func TestRecorderSwallowsStoreFailures(t *testing.T) {
	s := newMemStore()
	s.failActivity = true
	s.failNotification = true
	var out bytes.Buffer
	pusher := &recordingPusher{}
	r := NewRecorder(fakeAudit{s}, fakeNotifications{s}, pusher, logger.NewWithOutput("info", "text", &out))
	user := uuid.New()

	assert.NotPanics(t, func() {
		r.Activity(context.Background(), user, nil, model.ActionView, model.EntityDashboard, "Viewed dashboard")
		r.Notify(context.Background(), Notification{EventType: model.EventMessageReceived, Title: "New message"}, user)
	})

	assert.Contains(t, out.String(), "activity log write failed")
	assert.Contains(t, out.String(), "notification write failed")
	assert.Empty(t, pusher.pushed)
}

func TestRecorderNotifiesEachRecipient(t *testing.T) {
	s := newMemStore()
	pusher := &recordingPusher{}
	r := NewRecorder(fakeAudit{s}, fakeNotifications{s}, pusher, logger.Discard())
	a, b := uuid.New(), uuid.New()

	r.Notify(context.Background(), Notification{EventType: model.EventAnnouncementPosted, Title: "Water shut-off"}, a, b)

	require.Len(t, s.notifications, 2)
	assert.Equal(t, 1, pusher.pushed[a])
	assert.Equal(t, 1, pusher.pushed[b])
	assert.False(t, s.notifications[0].IsRead)
}

func TestPrimaryWriteSucceedsWhenSideEffectsFail(t *testing.T) {
	e := newEnv()
	e.store.failActivity = true
	e.store.failNotification = true
	f := e.fixture("side")

	m, err := e.maintenance.Create(context.Background(), f.tenant.ID, leakyTap(f))

	require.NoError(t, err)
	assert.Contains(t, e.store.maintenance, m.ID)
}
