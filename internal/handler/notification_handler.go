package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.PUT("", h.Update)
		notifications.PUT("/read-all", h.MarkAllRead)
	}
}

// List godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        unread  query     bool  false  "Only unread"
// @Success      200     {object}  response.Response{data=[]model.Notification}
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	notifications, err := h.notificationService.List(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(notifications))
}

// Update godoc
// @Summary      Mark a notification read or unread
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdateNotificationRequest  true  "Read flag"
// @Success      200      {object}  response.Response{data=model.Notification}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/notifications [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.UpdateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.notificationService.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(n))
}

// MarkAllRead godoc
// @Summary      Mark every notification read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.MarkAllReadResponse}
// @Router       /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	res, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(res))
}
