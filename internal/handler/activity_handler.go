package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/pagination"
	"propertyhub/pkg/response"
)

const activityPageSize = 50

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity", h.List)
}

// List godoc
// @Summary      Get activity log
// @Description  The caller's own entries; landlords and admins also see activity on the properties they manage
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 50)"
// @Success      200    {object}  response.Response{data=PagedResult}
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page := pagination.Parse(c, activityPageSize)

	entries, total, err := h.activityService.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(PagedResult{
		Items: entries,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}))
}
