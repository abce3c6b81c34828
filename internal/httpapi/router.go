// Package httpapi exposes the word store as a JSON API.
package httpapi

import (
	"net/http"

	"lexmora/internal/middleware"
	"lexmora/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every API route registered
func NewRouter(words *service.WordService, stats *service.StatsService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/words", CaptureWord(words, logger))
		api.GET("/words/:word", GetWord(words, logger))
		api.DELETE("/words/:word", ForgetWord(words, logger))
		api.DELETE("/words", ClearWords(words, logger))
		api.POST("/words/:word/review", ReviewWord(words, logger))

		api.GET("/review/due", DueQueue(words, logger))
		api.GET("/metrics", GetMetrics(stats, logger))
		api.GET("/activity", GetActivity(stats, logger))
	}

	return r
}
