package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propertyhub/internal/middleware"
	"propertyhub/pkg/apperror"
	"propertyhub/pkg/response"
	"propertyhub/pkg/validation"
)

// PagedResult wraps a page of items with its paging metadata
type PagedResult struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// respondError converts a service error into the envelope. 5xx causes are attached
// to the gin context so the request logger records them.
func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, response.Error(apperror.Message(err)))
}

// bindJSON decodes and validates the body, answering 400 with the first failing field
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(validation.FirstError(err)))
		return false
	}
	return true
}

// callerID answers 401 when the request is not authenticated
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses an optional uuid query parameter, answering 400 when malformed
func uuidQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(name+" must be a valid UUID"))
		return nil, false
	}
	return &id, true
}
