// Package config holds the docapi command line configuration.
//
// The service is configured through environment variables (see
// docapi.LoadConfig). Flags exist for running it outside a container and
// take precedence over the environment when explicitly set.
package config

import (
	"fmt"
	"strings"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/validate"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	APIAddrField ConfigField = iota
	LogLevelField
	LogFileField
	StoragePathField
)

// Config holds the values parsed from flags.
type Config struct {
	APIAddr     string // Listen address, "host:port" or ":port"
	LogLevel    string // DEBUG, INFO, WARN, ERROR
	LogFile     string // Optional log file; logs go to stderr otherwise
	StoragePath string // Result directory override

	// Server is the resolved server configuration, filled by ValidateConfig.
	Server *docapi.Config

	explicit map[ConfigField]bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	if c.explicit == nil {
		c.explicit = make(map[ConfigField]bool)
	}
	c.explicit[field] = value
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	return c.explicit[field]
}

// ValidateConfig loads the environment configuration, applies explicit flag
// overrides and validates the result into c.Server.
func (c *Config) ValidateConfig() error {
	server, err := docapi.LoadConfig()
	if err != nil {
		return err
	}

	if c.IsExplicitlySet(APIAddrField) {
		addr, err := validate.ParseBindAddress(c.APIAddr)
		if err != nil {
			return fmt.Errorf("invalid api address: %w", err)
		}
		server.BindAddr = addr.Host
		server.BindPort = addr.Port
	}
	if c.IsExplicitlySet(LogLevelField) {
		server.Settings.LogLevel = logging.NormalizeLogLevel(c.LogLevel)
	}
	if c.IsExplicitlySet(StoragePathField) {
		server.Settings.StoragePath = strings.TrimSpace(c.StoragePath)
	}

	if err := server.Validate(); err != nil {
		return err
	}

	c.LogLevel = server.Settings.LogLevel
	c.Server = server
	return nil
}
