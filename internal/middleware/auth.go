package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mpass/internal/service"
)

const (
	ContextKeyCaller = "caller"
	ContextKeyClaims = "claims"
)

// AuthMiddleware returns Gin middleware that validates caller access tokens
// and injects the caller into the context and the request logger.
func AuthMiddleware(tokens service.AccessTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			GetLogger(c).Info("rejected access token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyCaller, claims.Subject)
		c.Set(ContextKeyClaims, claims)
		c.Set(loggerKey, GetLogger(c).With(zap.String("caller", claims.Subject)))
		c.Next()
	}
}

// GetCaller returns the authenticated caller name, or "".
func GetCaller(c *gin.Context) string {
	return c.GetString(ContextKeyCaller)
}
