// Package main provides the entry point for acactl, the deployment CLI for
// the Azure container demo.
package main

import (
	"os"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/commands"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()
	commands.SetupNamesCommands()
	commands.SetupAppCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.ConfigFile, &config.Global.EnvFile,
		&config.Global.Identity, &config.Global.LogLevel, &config.Global.Timeout,
		&config.Global.Verbose, &config.Global.Output,
		config.DefaultProfile, config.DefaultEnvFile, config.DefaultLogLevel, config.DefaultTimeout)

	namesCmd, _ := commands.GetNamesCommands()
	commands.SetupNamesFlags(namesCmd, &config.Names.Save)

	deployCmd, statusCmd, teardownCmd := commands.GetDeployCommands()
	commands.SetupDeployFlags(deployCmd, statusCmd, teardownCmd,
		&config.Deploy.NoSave, &config.Status.Watch, &config.Teardown.Yes, &config.Teardown.Wait)

	commands.SetupAppFlags(&config.App.URL, &config.App.Target,
		&config.App.File, &config.App.Content, &config.App.Filename)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	namesCmd, envShowCmd := commands.GetNamesCommands()
	deployCmd, statusCmd, teardownCmd := commands.GetDeployCommands()
	appHealthCmd, appInfoCmd, appProcessCmd, appDocsCmd := commands.GetAppCommands()

	namesCmd.RunE = handlers.HandleNames
	envShowCmd.RunE = handlers.HandleEnvShow
	deployCmd.RunE = handlers.HandleDeploy
	statusCmd.RunE = handlers.HandleStatus
	teardownCmd.RunE = handlers.HandleTeardown
	appHealthCmd.RunE = handlers.HandleAppHealth
	appInfoCmd.RunE = handlers.HandleAppInfo
	appProcessCmd.RunE = handlers.HandleAppProcess
	appDocsCmd.RunE = handlers.HandleAppDocs
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
