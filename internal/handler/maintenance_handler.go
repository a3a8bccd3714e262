package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/model"
	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	maintenance := router.Group("/maintenance")
	{
		maintenance.GET("", h.List)
		maintenance.POST("", h.Create)
		maintenance.PUT("", h.Update)
	}
}

// List godoc
// @Summary      List maintenance requests
// @Tags         maintenance
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "pending, in-progress or resolved"
// @Success      200     {object}  response.Response{data=[]model.MaintenanceRequest}
// @Failure      400     {object}  response.Response
// @Router       /api/maintenance [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	status := c.Query("status")
	switch status {
	case "", model.MaintenancePending, model.MaintenanceInProgress, model.MaintenanceResolved:
	default:
		c.JSON(http.StatusBadRequest, response.Error("status must be one of [pending in-progress resolved]"))
		return
	}

	requests, err := h.maintenanceService.List(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(requests))
}

// Create godoc
// @Summary      Open a maintenance request
// @Description  Only an active tenant of the property may open a request
// @Tags         maintenance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateMaintenanceRequest  true  "Request"
// @Success      201      {object}  response.Response{data=model.MaintenanceRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreateMaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}
	request, err := h.maintenanceService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(request))
}

// Update godoc
// @Summary      Change a maintenance request's status
// @Tags         maintenance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdateMaintenanceRequest  true  "Status change"
// @Success      200      {object}  response.Response{data=model.MaintenanceRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/maintenance [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.UpdateMaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}
	request, err := h.maintenanceService.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(request))
}
