package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into the JSON error shape
// used by handlers. Non-AppErrors become a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperrors.ErrInternalServer

		var target *apperrors.AppError
		if errors.As(err, &target) {
			appErr = target
		}

		if appErr.Internal != nil || appErr == apperrors.ErrInternalServer {
			logger.Get().Errorw("request failed",
				"code", appErr.Code,
				"error", err.Error(),
				"request_id", c.GetString(RequestIDKey),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
