package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Retry queue, pending entries or dead letters with ?dead=true
		v1.GET("/queue", handler.ListQueue)

		// Manual indexing of a single token
		v1.POST("/tokens/:id/index", handler.TriggerTokenIndexing)

		// Re-run burn handling for a stale token
		v1.POST("/tokens/:id/burn", handler.TriggerBurn)
	}
}
