// Package config provides default values shared by acactl and docapi, so
// the CLI and the service it deploys agree on ports, paths and prefixes.
package config

const (
	// DefaultLocation is the Azure region used when the profile sets none.
	DefaultLocation = "westeurope"

	// DefaultLogLevel is the default log level for all components.
	DefaultLogLevel = "INFO"

	// DefaultEnvFile is where derived names are persisted between runs.
	DefaultEnvFile = ".env"

	// DefaultProfileFile is the deployment profile read by acactl.
	DefaultProfileFile = "acadeploy.yaml"

	// EnvPrefix is the environment variable prefix for profile overrides.
	EnvPrefix = "ACA"

	// DefaultImageRepository and DefaultImageTag name the docapi image.
	DefaultImageRepository = "docapi"
	DefaultImageTag        = "latest"

	// DefaultTargetPort is the port docapi listens on inside the container.
	DefaultTargetPort = 8000

	// DefaultBindAddr is the docapi listen address (all interfaces).
	DefaultBindAddr = "0.0.0.0"

	// DefaultStoragePath is the docapi result directory. Container Apps
	// filesystems are ephemeral, so results live under /tmp.
	DefaultStoragePath = "/tmp/processed"

	// DefaultMaxDocumentSizeMB limits POST /process bodies.
	DefaultMaxDocumentSizeMB = 10

	// DefaultProcessingTimeoutSeconds bounds a single /process request.
	DefaultProcessingTimeoutSeconds = 15
)
