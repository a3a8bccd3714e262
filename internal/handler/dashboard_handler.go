package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
}

// @Summary      Get dashboard
// @Description  Aggregate view: landlord, tenant or member depending on the caller's active roles
// @Tags         dashboard
// @Produce      json
// @Param        property_id  query     string  false  "Restrict to one property"
// @Success      200          {object}  response.Response{data=service.DashboardResponse}
// @Failure      400          {object}  response.Response  "Invalid property_id"
// @Failure      401          {object}  response.Response  "Unauthorized"
// @Failure      403          {object}  response.Response  "Property not visible"
// @Failure      500          {object}  response.Response  "Internal server error"
// @Security     BearerAuth
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	propertyID, ok := uuidQuery(c, "property_id")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dashboard))
}
