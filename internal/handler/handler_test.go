package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/cache"
	"propertyhub/internal/middleware"
	"propertyhub/internal/model"
	"propertyhub/internal/service"
	"propertyhub/internal/token"
	"propertyhub/pkg/apperror"
	"propertyhub/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Setup()
}

type stubMaintenance struct {
	calls int
	err   error
}

func (s *stubMaintenance) List(context.Context, uuid.UUID, string) ([]model.MaintenanceRequest, error) {
	s.calls++
	return []model.MaintenanceRequest{}, s.err
}

func (s *stubMaintenance) Create(_ context.Context, userID uuid.UUID, req service.CreateMaintenanceRequest) (*model.MaintenanceRequest, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.MaintenanceRequest{ID: uuid.New(), TenantID: userID, Title: req.Title, Status: model.MaintenancePending}, nil
}

func (s *stubMaintenance) Update(context.Context, uuid.UUID, service.UpdateMaintenanceRequest) (*model.MaintenanceRequest, error) {
	s.calls++
	return nil, s.err
}

type stubMessages struct {
	calls int
	err   error
}

func (s *stubMessages) List(context.Context, uuid.UUID) ([]model.Message, error) {
	return []model.Message{}, nil
}

func (s *stubMessages) Send(_ context.Context, userID uuid.UUID, req service.SendMessageRequest) (*model.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.Message{ID: uuid.New(), SenderID: userID, Body: req.MessageBody, Status: model.MessageSent}, nil
}

type stubPayments struct{ calls int }

func (s *stubPayments) List(context.Context, uuid.UUID) ([]model.Payment, error) {
	return []model.Payment{}, nil
}

func (s *stubPayments) Create(_ context.Context, userID uuid.UUID, req service.CreatePaymentRequest) (*model.Payment, error) {
	s.calls++
	return &model.Payment{ID: uuid.New(), TenantID: userID, Amount: *req.Amount, Status: model.PaymentPending}, nil
}

type harness struct {
	router *gin.Engine
	token  string
}

func newHarness(t *testing.T, register func(protected *gin.RouterGroup)) harness {
	t.Helper()
	tokens := token.NewManager("handler-test", time.Hour)
	signed, _, err := tokens.Issue(uuid.New(), "caller@example.com", model.AccountTenant)
	require.NoError(t, err)

	r := gin.New()
	register(r.Group("/api", middleware.RequireAuth(tokens, cache.NoopBlocklist())))
	return harness{router: r, token: signed}
}

func (h harness) do(method, path string, body interface{}, authed bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	return w, envelope
}

func TestCreateMaintenanceValidationNamesFirstField(t *testing.T) {
	svc := &stubMaintenance{}
	h := newHarness(t, NewMaintenanceHandler(svc).RegisterRoutes)

	w, body := h.do(http.MethodPost, "/api/maintenance", map[string]string{
		"title": "Leaky tap", "description": "drip", "urgency": "urgent",
	}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "property_id is required", body["error"])
	assert.Zero(t, svc.calls)

	w, body = h.do(http.MethodPost, "/api/maintenance", map[string]string{
		"property_id": uuid.NewString(), "title": "Leaky tap", "description": "drip", "urgency": "urgent",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "urgency must be one of [low, medium, high]", body["error"])
	assert.Zero(t, svc.calls)
}

func TestCreateMaintenanceSuccessEnvelope(t *testing.T) {
	svc := &stubMaintenance{}
	h := newHarness(t, NewMaintenanceHandler(svc).RegisterRoutes)

	w, body := h.do(http.MethodPost, "/api/maintenance", map[string]string{
		"property_id": uuid.NewString(), "title": "Leaky tap", "description": "drip", "urgency": "low",
	}, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.NotContains(t, body, "error")
}

func TestUnauthenticatedRequestsNeverReachService(t *testing.T) {
	svc := &stubMaintenance{}
	h := newHarness(t, NewMaintenanceHandler(svc).RegisterRoutes)

	w, body := h.do(http.MethodGet, "/api/maintenance", nil, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Zero(t, svc.calls)
}

func TestMaintenanceListRejectsUnknownStatus(t *testing.T) {
	svc := &stubMaintenance{}
	h := newHarness(t, NewMaintenanceHandler(svc).RegisterRoutes)

	w, _ := h.do(http.MethodGet, "/api/maintenance?status=closed", nil, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{apperror.Forbidden("Access denied: Only tenants can create maintenance requests"), http.StatusForbidden, "Access denied: Only tenants can create maintenance requests"},
		{apperror.NotFound("Property not found"), http.StatusNotFound, "Property not found"},
		{apperror.Store(assert.AnError), http.StatusInternalServerError, assert.AnError.Error()},
	}
	for _, tc := range cases {
		svc := &stubMaintenance{err: tc.err}
		h := newHarness(t, NewMaintenanceHandler(svc).RegisterRoutes)

		w, body := h.do(http.MethodPost, "/api/maintenance", map[string]string{
			"property_id": uuid.NewString(), "title": "t", "description": "d", "urgency": "high",
		}, true)

		assert.Equal(t, tc.code, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.msg, body["error"])
	}
}

func TestSendMessageBindsBeforeService(t *testing.T) {
	svc := &stubMessages{}
	h := newHarness(t, NewMessageHandler(svc).RegisterRoutes)

	w, body := h.do(http.MethodPost, "/api/messages", map[string]string{"receiver_id": "nope", "message_body": "hi"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "receiver_id must be a valid UUID", body["error"])
	assert.Zero(t, svc.calls)

	svc.err = apperror.Validation("Cannot send a message to yourself")
	w, body = h.do(http.MethodPost, "/api/messages", map[string]string{"receiver_id": uuid.NewString(), "message_body": "hi"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot send a message to yourself", body["error"])
}

func TestCreatePaymentRejectsNonPositiveAmountFirst(t *testing.T) {
	svc := &stubPayments{}
	h := newHarness(t, NewPaymentHandler(svc).RegisterRoutes)

	w, body := h.do(http.MethodPost, "/api/payments", map[string]interface{}{
		"property_id": uuid.NewString(), "amount": -5, "payment_method": "card",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "amount must be greater than 0", body["error"])

	w, body = h.do(http.MethodPost, "/api/payments", map[string]interface{}{
		"property_id": uuid.NewString(), "amount": "0.00", "reference": "r", "payment_method": "card",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "amount must be greater than 0", body["error"])
	assert.Zero(t, svc.calls)

	w, _ = h.do(http.MethodPost, "/api/payments", map[string]interface{}{
		"property_id": uuid.NewString(), "amount": "12.50", "reference": "r", "payment_method": "card",
	}, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.calls)
}
