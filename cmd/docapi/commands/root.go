// Package commands provides the CLI for docapi, the document processing API.
//
// docapi has a single root command. Inside a container it takes everything
// from environment variables; the flags exist for local runs.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/docapi/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/docapi/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/version"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGTERM.
// Container Apps waits 30 seconds before killing a replica.
const shutdownTimeout = 25 * time.Second

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Log to stderr since we're cleaning up the log file
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the document API
var RootCmd = &cobra.Command{
	Use:   "docapi",
	Short: "AI document processing API for the Azure container demo",
	Long: `docapi accepts documents over HTTP, returns mock analysis with real
text statistics and keeps results on local disk.

Settings come from ENVIRONMENT, LOG_LEVEL, MODEL_NAME, EMBEDDINGS_API_KEY,
MAX_DOCUMENT_SIZE_MB, PROCESSING_TIMEOUT_SECONDS, STORAGE_PATH and PORT.
Flags override the environment when given.`,
	Version:      version.DocapiVersion,
	SilenceUsage: true,
	Example: `  # Run with the container defaults (0.0.0.0:8000)
  docapi

  # Local run on another port with results in ./processed
  docapi --api=127.0.0.1:9000 --storage-path=./processed --log-level=DEBUG`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.DisplayLogo(version.DocapiVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}
			logging.SetOutput(logFileHandle)
		}

		if err := config.Global.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		// LOG_LEVEL from the environment applies unless --log-level was given
		logging.SetLevel(config.Global.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return run(config.Global.Server)
	},
}

// run starts the server and blocks until SIGINT or SIGTERM.
func run(cfg *docapi.Config) error {
	// net/http reports TLS and handshake problems through the standard logger
	logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "http"))

	server := docapi.NewServer(cfg)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start document API: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Success("Document API stopped")
	return nil
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
