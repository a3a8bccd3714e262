package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) RegisterRoutes(router *gin.RouterGroup) {
	announcements := router.Group("/announcements")
	{
		announcements.GET("", h.List)
		announcements.POST("", h.Create)
	}
}

// List godoc
// @Summary      List announcements
// @Tags         announcements
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Announcement}
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	announcements, err := h.announcementService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(announcements))
}

// Create godoc
// @Summary      Post an announcement
// @Description  Every active tenant of the property is notified
// @Tags         announcements
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateAnnouncementRequest  true  "Announcement"
// @Success      201      {object}  response.Response{data=model.Announcement}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	announcement, err := h.announcementService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(announcement))
}
