package middleware

import (
	"net/http"
	"strings"

	"account_service/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthUserKey     = "authUser"
	AuthTokenHeader = "auth-token"
)

const authErrorMessage = "Please authenticate using a valid token"

// JWTAuthMiddleware verifies the session token and stores the user id it
// carries in the gin context under AuthUserKey. The token is read from the
// auth-token header, falling back to an Authorization bearer token.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": authErrorMessage})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": authErrorMessage})
			return
		}
		if _, err := uuid.Parse(claims.User.ID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": authErrorMessage})
			return
		}

		c.Set(AuthUserKey, claims.User.ID)

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if token := strings.TrimSpace(c.GetHeader(AuthTokenHeader)); token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
