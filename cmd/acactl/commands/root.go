// Package commands provides the command tree for acactl.
//
// acactl provisions the document API on Azure Container Apps (or Container
// Instances) under names derived from the operator's identity, and probes
// the deployed service.
//
// COMMAND STRUCTURE:
//   - names: derive (and optionally persist) the resource names
//   - deploy: run deployment steps
//   - status: report which resources exist
//   - teardown: delete the resource group
//   - app: probe the deployed API (health, info, process, docs)
//   - env: inspect the persisted env file
//
// Commands are defined here; their RunE handlers are assigned by the main
// package.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "acactl",
	Short: "Deploy the document API to Azure Container Apps and Container Instances",
	Long: `acactl deploys the document processing API to Azure.

Resource names are derived from your Azure identity: the first 8 hex
characters of a SHA-256 digest are appended to a fixed prefix per resource,
so every operator gets their own resource group, registry, environment and
app without choosing names. Re-running any command is safe; existing
resources are reused.`,
	SilenceUsage: true,
	Example: `  # Show the names your identity maps to
  acactl names

  # Deploy everything to Container Apps
  acactl deploy

  # Also deploy a Container Instance
  acactl deploy all aci

  # Check the deployed API
  acactl app health
  acactl app process --content "Quarterly report"

  # Remove everything
  acactl teardown --yes`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(namesCmd)
	RootCmd.AddCommand(deployCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(teardownCmd)
	RootCmd.AddCommand(appCmd)
	RootCmd.AddCommand(envCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, configPtr, envFilePtr, identityPtr, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultConfig, defaultEnvFile, defaultLogLevel string, defaultTimeout int) {
	rootCmd.PersistentFlags().StringVarP(configPtr, "config", "c", defaultConfig,
		"Deployment profile (YAML); optional unless given explicitly")
	rootCmd.PersistentFlags().StringVar(envFilePtr, "env-file", defaultEnvFile,
		"Env file the derived names are saved to")
	rootCmd.PersistentFlags().StringVar(identityPtr, "identity", "",
		"Identity token to derive names from (default: signed-in Azure user id)")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", defaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", defaultTimeout,
		"HTTP timeout in seconds for app commands")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json, yaml")
}
