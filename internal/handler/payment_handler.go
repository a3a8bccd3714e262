package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		payments.GET("", h.List)
		payments.POST("", h.Create)
	}
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Payment}
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(payments))
}

// Create godoc
// @Summary      Record a payment
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreatePaymentRequest  true  "Payment"
// @Success      201      {object}  response.Response{data=model.Payment}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(payment))
}
