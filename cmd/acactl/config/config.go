// Package config provides configuration management for the acactl CLI.
package config

import (
	configDefaults "github.com/dashanan13/AzureContainerOptionDemo/internal/config"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/version"
)

const (
	DefaultEnvFile  = configDefaults.DefaultEnvFile     // Persisted names
	DefaultProfile  = configDefaults.DefaultProfileFile // Deployment profile
	DefaultLogLevel = "ERROR"                           // Quiet unless asked
	DefaultTimeout  = 30                                // Seconds, for HTTP probes
)

// Version returns the current acactl CLI version from the centralized version package
var Version = version.AcactlVersion

// Global holds the global CLI configuration
var Global struct {
	ConfigFile string // Deployment profile path
	EnvFile    string // Env file the derived names are persisted to
	Identity   string // Identity token override; queried from az when empty
	LogLevel   string // Log level for CLI operations
	Timeout    int    // HTTP timeout in seconds for app probes
	Verbose    bool   // Show verbose output
	Output     string // Output format: table, json, yaml
}

// Names holds the names command configuration
var Names struct {
	Save bool // Persist the derived names to the env file
}

// Deploy holds the deploy command configuration
var Deploy struct {
	NoSave bool // Skip writing the env file after a deployment
}

// Status holds the status command configuration
var Status struct {
	Watch bool // Refresh the report until interrupted
}

// Teardown holds the teardown command configuration
var Teardown struct {
	Yes  bool // Confirm deletion of the resource group
	Wait bool // Block until Azure finishes deleting
}

// App holds the app command configuration
var App struct {
	URL      string // Base URL of the document API; resolved from Azure when empty
	Target   string // Which deployment to probe: app or aci
	File     string // Document to upload with app process
	Content  string // Inline document content for app process
	Filename string // Filename reported with inline content
}
