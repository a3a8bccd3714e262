package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type ReceiptHandler struct {
	receiptService service.ReceiptService
}

func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	receipts := router.Group("/receipts")
	{
		receipts.GET("", h.List)
		receipts.POST("", h.Create)
		receipts.PUT("", h.Update)
	}
}

// List godoc
// @Summary      List receipts
// @Tags         receipts
// @Security     BearerAuth
// @Produce      json
// @Param        property_id  query     string  false  "Property filter"
// @Param        tenant_id    query     string  false  "Tenant filter"
// @Success      200          {object}  response.Response{data=[]model.Receipt}
// @Failure      403          {object}  response.Response
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	propertyID, ok := uuidQuery(c, "property_id")
	if !ok {
		return
	}
	tenantID, ok := uuidQuery(c, "tenant_id")
	if !ok {
		return
	}

	receipts, err := h.receiptService.List(c.Request.Context(), userID, service.ReceiptFilter{
		PropertyID: propertyID,
		TenantID:   tenantID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(receipts))
}

// Create godoc
// @Summary      Issue a receipt
// @Description  Numbers the receipt RCP-<property suffix>-<serial> from the property's counter
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateReceiptRequest  true  "Receipt"
// @Success      201      {object}  response.Response{data=model.Receipt}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}
	receipt, err := h.receiptService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(receipt))
}

// Update godoc
// @Summary      Update a receipt
// @Tags         receipts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdateReceiptRequest  true  "Fields to change, id required"
// @Success      200      {object}  response.Response{data=model.Receipt}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/receipts [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.UpdateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}
	receipt, err := h.receiptService.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(receipt))
}
