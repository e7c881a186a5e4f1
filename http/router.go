package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-loan/logger"
)

func SetupRouter(handler *ScheduleHandler, limiter *RateLimiter, log *logger.Logger) *gin.Engine {
	r := gin.New()
	// Rate limiting keys on the client IP, so forwarded headers are ignored.
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loan := r.Group("/loan")
	if limiter != nil {
		loan.Use(RateLimitMiddleware(limiter))
	}
	loan.GET("/defaults", handler.Defaults)
	loan.POST("/schedule", handler.Calculate)
	loan.POST("/schedule/csv", handler.ExportCSV)

	return r
}
