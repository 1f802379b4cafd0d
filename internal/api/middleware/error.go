package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retaildash/sales-backend-go/pkg/errors"
	"github.com/retaildash/sales-backend-go/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrorHandlingMiddleware recovers panics and converts collected
// handler errors into the standard error envelope.
func ErrorHandlingMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"ip":          c.ClientIP(),
			"request_id":  c.GetString("request_id"),
			"panic":       fmt.Sprintf("%v", recovered),
			"stack_trace": string(debug.Stack()),
		}).Error("Panic recovered in API middleware")

		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}

// ErrorResponseMiddleware sends AppError-aware responses for errors
// attached to the context by handlers.
func ErrorResponseMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := errors.GetStatusCode(err)

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Error("API request error")

		utils.SendError(c, status, err.Error())
	}
}

// RequestIDMiddleware tags each request with a unique id for log
// correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
