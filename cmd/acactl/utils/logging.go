// Package utils provides utility functions for the acactl CLI.
// This file contains logging setup and Resty logger integration utilities.
package utils

import (
	"os"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// RestryLogger implements resty.Logger interface and routes logs through structured logging
type RestryLogger struct{}

// Errorf routes error messages through structured logging.
func (s RestryLogger) Errorf(format string, v ...interface{}) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (s RestryLogger) Warnf(format string, v ...interface{}) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (s RestryLogger) Debugf(format string, v ...interface{}) {
	logging.Debug(format, v...)
}

// SetupLogging configures CLI logging from --log-level and --verbose.
// DEBUG=true in the environment forces debug output. At the default ERROR
// level progress lines are suppressed so table output stays clean.
func SetupLogging() {
	switch {
	case os.Getenv("DEBUG") == "true":
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
	case config.Global.Verbose:
		logging.RestoreOutput()
		if config.Global.LogLevel == config.DefaultLogLevel {
			logging.SetLevel("INFO")
		} else {
			logging.SetLevel(config.Global.LogLevel)
		}
	default:
		logging.SetLevel(config.Global.LogLevel)
		if config.Global.LogLevel == config.DefaultLogLevel {
			logging.SuppressOutput()
		}
	}
}
