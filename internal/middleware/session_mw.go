package middleware

import (
	"net/http"

	"courier_market/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"

	// SessionCookie is the cookie carrying the signed session token
	SessionCookie = "session"
)

// SessionAuthMiddleware authenticates page routes from the session cookie.
// Unauthenticated access redirects to the login page.
func SessionAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, jwtUtil)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}

// SessionAuthJSONMiddleware authenticates API routes from the same cookie,
// responding 401 JSON instead of redirecting.
func SessionAuthJSONMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, jwtUtil)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}

func sessionClaims(c *gin.Context, jwtUtil *utils.JWTUtil) (*utils.SessionClaims, bool) {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		return nil, false
	}
	claims, err := jwtUtil.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}
