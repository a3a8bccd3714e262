package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Parse extracts and validates page/limit from query parameters.
// defaultLimit applies when the caller sends no usable limit; 0 means DefaultLimit.
func Parse(c *gin.Context, defaultLimit int) Params {
	if defaultLimit < MinLimit {
		defaultLimit = DefaultLimit
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	return New(page, limit, defaultLimit)
}

// New clamps page/limit into range and computes the offset
func New(page, limit, defaultLimit int) Params {
	if defaultLimit < MinLimit {
		defaultLimit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
