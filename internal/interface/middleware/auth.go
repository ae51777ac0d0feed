package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igorsily/users-api/pkg/apperrors"
	"github.com/igorsily/users-api/pkg/helpers"
)

const CtxUserIDKey = "userID"

// Auth verifies the Authorization bearer token and injects the caller's user
// ID into the context. Verification failure is reported through the error
// boundary as 401.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			_ = c.Error(apperrors.NewUnauthorized("Invalid or missing token"))
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			_ = c.Error(apperrors.NewUnauthorized("Invalid or missing token"))
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
