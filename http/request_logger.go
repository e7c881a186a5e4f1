package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edu-loan/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an ID, puts a request-scoped logger
// into the context and logs the outcome.
func RequestLogger(base *logger.Logger) gin.HandlerFunc {
	if base == nil {
		base = logger.New(logger.DefaultConfig())
	}
	httpLog := base.WithComponent(logger.ComponentHTTP)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		reqLog := httpLog.With(logger.FieldRequestID, requestID)
		c.Request = c.Request.WithContext(logger.IntoContext(c.Request.Context(), reqLog))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		reqLog.Log(c.Request.Context(), level, "HTTP request completed",
			logger.FieldMethod, c.Request.Method,
			logger.FieldPath, c.Request.URL.Path,
			logger.FieldStatusCode, status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
			logger.FieldClientIP, c.ClientIP(),
		)
	}
}
