package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/middleware"
	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type PropertyHandler struct {
	propertyService service.PropertyService
}

func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

func (h *PropertyHandler) RegisterRoutes(router *gin.RouterGroup) {
	properties := router.Group("/properties")
	{
		properties.GET("", h.ListProperties)
		properties.POST("", h.CreateProperty)
		properties.PUT("", h.UpdateProperty)
	}

	units := router.Group("/units")
	{
		units.GET("", h.ListUnits)
		units.POST("", h.CreateUnit)
	}
}

// ListProperties godoc
// @Summary      List properties
// @Description  Tenants see the properties they rent, landlords and admins the ones they manage
// @Tags         properties
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Property}
// @Failure      401  {object}  response.Response
// @Router       /api/properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	properties, err := h.propertyService.ListProperties(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(properties))
}

// CreateProperty godoc
// @Summary      Create a property
// @Tags         properties
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreatePropertyRequest  true  "Property"
// @Success      201      {object}  response.Response{data=model.Property}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := h.propertyService.CreateProperty(c.Request.Context(), userID, middleware.AccountType(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(property))
}

// UpdateProperty godoc
// @Summary      Update a property
// @Tags         properties
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.UpdatePropertyRequest  true  "Fields to change, id required"
// @Success      200      {object}  response.Response{data=model.Property}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/properties [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.UpdatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := h.propertyService.UpdateProperty(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(property))
}

// ListUnits godoc
// @Summary      List units
// @Tags         units
// @Security     BearerAuth
// @Produce      json
// @Param        property_id  query     string  false  "Property filter"
// @Success      200          {object}  response.Response{data=[]model.Unit}
// @Failure      403          {object}  response.Response
// @Router       /api/units [get]
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	propertyID, ok := uuidQuery(c, "property_id")
	if !ok {
		return
	}
	units, err := h.propertyService.ListUnits(c.Request.Context(), userID, propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(units))
}

// CreateUnit godoc
// @Summary      Create a unit
// @Tags         units
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateUnitRequest  true  "Unit"
// @Success      201      {object}  response.Response{data=model.Unit}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/units [post]
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req service.CreateUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	unit, err := h.propertyService.CreateUnit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(unit))
}
