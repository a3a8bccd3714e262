package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

// RoleHandler manages who holds which role on a property
type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/properties/:id/roles", h.ListRoles)
	router.POST("/properties/:id/roles", h.AssignRole)
	router.PUT("/roles", h.UpdateRole)
}

func propertyParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// ListRoles godoc
// @Summary      List role assignments of a property
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  response.Response{data=[]model.RoleAssignment}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/properties/{id}/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyParam(c)
	if !ok {
		return
	}
	assignments, err := h.roleService.ListAssignments(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(assignments))
}

// AssignRole godoc
// @Summary      Assign a role on a property
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Property ID"
// @Param        request  body      service.AssignRoleRequest  true  "Assignment"
// @Success      201      {object}  response.Response{data=model.RoleAssignment}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/properties/{id}/roles [post]
func (h *RoleHandler) AssignRole(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	propertyID, ok := propertyParam(c)
	if !ok {
		return
	}
	var req service.AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.roleService.Assign(c.Request.Context(), userID, propertyID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(assignment))
}

// UpdateRole godoc
// @Summary      Activate or deactivate a role assignment
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdateRoleStatusRequest  true  "Status change"
// @Success      200      {object}  response.Response{data=model.RoleAssignment}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/roles [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.UpdateRoleStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.roleService.UpdateStatus(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(assignment))
}
