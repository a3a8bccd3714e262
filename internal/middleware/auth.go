package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propertyhub/internal/cache"
	"propertyhub/internal/token"
	"propertyhub/pkg/response"
)

const (
	AccessTokenCookie = "access_token"

	ctxUserID      = "userID"
	ctxAccountType = "accountType"
	ctxTokenID     = "tokenID"
)

// SetTokenCookie stores the access token as an HttpOnly cookie
func SetTokenCookie(c *gin.Context, accessToken string, ttl time.Duration, production bool) {
	// cross-origin in production needs SameSite=None + Secure
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(AccessTokenCookie, accessToken, int(ttl.Seconds()), "/", "", production, true)
}

// ClearTokenCookie removes the access token cookie
func ClearTokenCookie(c *gin.Context, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", production, true)
}

// TokenFromRequest reads the cookie first, then a Bearer Authorization header
func TokenFromRequest(c *gin.Context) string {
	if raw, err := c.Cookie(AccessTokenCookie); err == nil && raw != "" {
		return raw
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireAuth validates the access token and rejects revoked ones
func RequireAuth(tokens *token.Manager, blocklist cache.TokenBlocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		revoked, err := blocklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("Internal server error"))
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		userID, _ := claims.UserID()
		c.Set(ctxUserID, userID)
		c.Set(ctxAccountType, claims.AccountType)
		c.Set(ctxTokenID, claims.ID)
		c.Next()
	}
}

// UserID returns the authenticated caller set by RequireAuth
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AccountType returns the account type carried by the caller's token
func AccountType(c *gin.Context) string {
	return c.GetString(ctxAccountType)
}
