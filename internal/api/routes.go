package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate", h.Generate)
	}

	// Basic health endpoint to check if the service is running.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
