package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/igorsily/users-api/pkg/apperrors"
	"github.com/igorsily/users-api/pkg/response"
)

// ErrorHandler is the single boundary that turns errors raised anywhere in
// the chain into the uniform JSON error body. Domain errors map by kind;
// anything unrecognized is logged and rendered as a generic 500 with no
// internal detail.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			c.JSON(appErr.Status, response.FromAppError(appErr))
			return
		}

		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": c.GetString("request_id"),
			}).Error("unhandled error")
		}
		c.JSON(http.StatusInternalServerError, response.Internal())
	}
}
