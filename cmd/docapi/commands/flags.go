package commands

import (
	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/docapi/config"
	configDefaults "github.com/dashanan13/AzureContainerOptionDemo/internal/config"
)

// SetupFlags configures all command line flags for docapi
func SetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", "",
		"Listen address (e.g., 127.0.0.1:9000 or :9000); overrides PORT")
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", configDefaults.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR; overrides LOG_LEVEL")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Append logs to this file instead of stderr")
	cmd.Flags().StringVar(&config.Global.StoragePath, "storage-path", "",
		"Directory for processed results; overrides STORAGE_PATH")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.LogLevelField, cmd.Flags().Changed("log-level"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
	config.Global.SetExplicitlySet(config.StoragePathField, cmd.Flags().Changed("storage-path"))
}
