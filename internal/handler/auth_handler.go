package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"propertyhub/internal/middleware"
	"propertyhub/internal/service"
	"propertyhub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	production  bool
}

func NewAuthHandler(authService service.AuthService, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

// RegisterRoutes mounts signup/login/logout on public and the session read on protected
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
	protected.GET("/auth/me", h.Me)
}

// Signup godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.SignupRequest  true  "Signup payload"
// @Success      201      {object}  response.Response{data=model.User}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(user))
}

// Login godoc
// @Summary      Log in
// @Description  Returns an access token and sets it as an HttpOnly cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.LoginResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetTokenCookie(c, res.Token, time.Until(res.ExpiresAt), h.production)
	c.JSON(http.StatusOK, response.Success(res))
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		respondError(c, err)
		return
	}
	middleware.ClearTokenCookie(c, h.production)
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Logged out"}))
}

// Me godoc
// @Summary      Current session
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.SessionResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	session, err := h.authService.Session(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(session))
}
