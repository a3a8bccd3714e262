package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/cache"
	"propertyhub/internal/logger"
	"propertyhub/internal/model"
	"propertyhub/internal/token"
)

func startServer(t *testing.T) (*Hub, *token.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(logger.Discard())
	go hub.Run(ctx)

	tokens := token.NewManager("ws-test", time.Hour)
	r := gin.New()
	r.GET("/ws", Handler(hub, tokens, cache.NoopBlocklist()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, tokens, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	_, _, url := startServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPushReachesOnlyTheRecipient(t *testing.T) {
	hub, tokens, url := startServer(t)
	userID := uuid.New()
	signed, _, err := tokens.Issue(userID, "ws@example.com", model.AccountTenant)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+signed, nil)
	require.NoError(t, err)
	defer conn.Close()

	// someone else's notification is never delivered here
	hub.Push(uuid.New(), &model.Notification{EventType: model.EventMessageReceived, Title: "not yours"})

	n := &model.Notification{ID: uuid.New(), UserID: userID, EventType: model.EventReceiptIssued, Title: "Receipt issued"}
	// registration races the dial, so keep pushing until the first frame lands
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.Push(userID, n)
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var got Event
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, model.EventReceiptIssued, got.Type)
	require.NotNil(t, got.Notification)
	assert.Equal(t, "Receipt issued", got.Notification.Title)
}

func TestPushWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(logger.Discard())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Push(uuid.New(), &model.Notification{EventType: model.EventRoleAssigned})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Push blocked with no hub loop running")
	}
}
