package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// ServiceName is reported by the info endpoint.
const ServiceName = "AI Document Processing API"

// InfoResponse is served at GET /.
type InfoResponse struct {
	Service     string      `json:"service"`
	Status      string      `json:"status"`
	Version     string      `json:"version"`
	Environment string      `json:"environment"`
	Model       ModelInfo   `json:"model"`
	Secrets     SecretsInfo `json:"secrets"`
	Config      InfoConfig  `json:"config"`
}

// InfoConfig echoes the effective limits and paths.
type InfoConfig struct {
	MaxDocumentSizeMB        int    `json:"max_document_size_mb"`
	ProcessingTimeoutSeconds int    `json:"processing_timeout_seconds"`
	LogLevel                 string `json:"log_level"`
	StoragePath              string `json:"storage_path"`
}

// HandleInfo returns service information for quick verification after a
// deployment.
func HandleInfo(settings Settings, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Info("Service info requested")

		c.JSON(http.StatusOK, InfoResponse{
			Service:     ServiceName,
			Status:      "running",
			Version:     version,
			Environment: settings.Environment,
			Model:       settings.model(),
			Secrets:     settings.secrets(),
			Config: InfoConfig{
				MaxDocumentSizeMB:        settings.MaxDocumentSizeMB,
				ProcessingTimeoutSeconds: settings.ProcessingTimeoutSeconds,
				LogLevel:                 settings.LogLevel,
				StoragePath:              settings.StoragePath,
			},
		})
	}
}
