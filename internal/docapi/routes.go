package docapi

import (
	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/handlers"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/version"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	settings := s.config.Settings

	router.GET("/", handlers.HandleInfo(settings, version.DocapiVersion))
	router.GET("/health", handlers.HandleHealth())
	router.POST("/process", handlers.HandleProcess(settings, s.store))
	router.GET("/documents", handlers.HandleListDocuments(s.store))
	router.GET("/documents/:id", handlers.HandleGetDocument(s.store))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HandleHealthDetail(version.DocapiVersion, s.startTime))
	}
}
