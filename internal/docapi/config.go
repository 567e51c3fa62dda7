package docapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/config"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/handlers"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/validate"
)

// Config holds the docapi server settings.
//
// Inside Container Apps and container instances every setting arrives as an
// environment variable set by `acactl deploy`:
//
//	ENVIRONMENT                 deployment label (default "development")
//	LOG_LEVEL                   DEBUG, INFO, WARN/WARNING, ERROR
//	MODEL_NAME                  model reported by the API (default "not-configured")
//	EMBEDDINGS_API_KEY          secret; only its presence is reported
//	MAX_DOCUMENT_SIZE_MB        POST /process size limit (default 10)
//	PROCESSING_TIMEOUT_SECONDS  per-request time budget (default 15)
//	STORAGE_PATH                result directory (default /tmp/processed)
//	PORT                        listen port (default 8000)
type Config struct {
	BindAddr string
	BindPort int
	Settings handlers.Settings
}

// DefaultConfig returns the settings used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		BindAddr: config.DefaultBindAddr,
		BindPort: config.DefaultTargetPort,
		Settings: handlers.Settings{
			Environment:              "development",
			LogLevel:                 config.DefaultLogLevel,
			ModelName:                "not-configured",
			MaxDocumentSizeMB:        config.DefaultMaxDocumentSizeMB,
			ProcessingTimeoutSeconds: config.DefaultProcessingTimeoutSeconds,
			StoragePath:              config.DefaultStoragePath,
		},
	}
}

// LoadConfig reads settings from the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("environment", defaults.Settings.Environment)
	v.SetDefault("log_level", defaults.Settings.LogLevel)
	v.SetDefault("model_name", defaults.Settings.ModelName)
	v.SetDefault("embeddings_api_key", "")
	v.SetDefault("max_document_size_mb", defaults.Settings.MaxDocumentSizeMB)
	v.SetDefault("processing_timeout_seconds", defaults.Settings.ProcessingTimeoutSeconds)
	v.SetDefault("storage_path", defaults.Settings.StoragePath)
	v.SetDefault("port", defaults.BindPort)
	v.AutomaticEnv()

	cfg := &Config{
		BindAddr: defaults.BindAddr,
		Settings: handlers.Settings{
			Environment:      v.GetString("environment"),
			LogLevel:         logging.NormalizeLogLevel(v.GetString("log_level")),
			ModelName:        v.GetString("model_name"),
			EmbeddingsAPIKey: v.GetString("embeddings_api_key"),
			StoragePath:      v.GetString("storage_path"),
		},
	}

	var err error
	if cfg.BindPort, err = intSetting(v, "port"); err != nil {
		return nil, err
	}
	if cfg.Settings.MaxDocumentSizeMB, err = intSetting(v, "max_document_size_mb"); err != nil {
		return nil, err
	}
	if cfg.Settings.ProcessingTimeoutSeconds, err = intSetting(v, "processing_timeout_seconds"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// intSetting reads an integer, rejecting values viper would silently turn
// into zero.
func intSetting(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got '%s'", strings.ToUpper(key), raw)
	}
	return n, nil
}

// Validate checks the configuration before the server starts.
func (c *Config) Validate() error {
	if _, err := validate.ParseBindAddress(fmt.Sprintf("%s:%d", c.BindAddr, c.BindPort)); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	if err := logging.ValidateLogLevel(c.Settings.LogLevel); err != nil {
		return err
	}
	if err := validate.ValidateIntRange(c.Settings.MaxDocumentSizeMB, 1, 1024, "MAX_DOCUMENT_SIZE_MB"); err != nil {
		return err
	}
	if err := validate.ValidateIntRange(c.Settings.ProcessingTimeoutSeconds, 1, 3600, "PROCESSING_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	if err := validate.ValidateRequiredString(c.Settings.StoragePath, "STORAGE_PATH"); err != nil {
		return err
	}
	return nil
}
