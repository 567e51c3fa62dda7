package commands

import (
	"github.com/spf13/cobra"
)

// Names command
var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Show the resource names derived from your identity",
	Long: `Derive the name suffix from your identity and show the name of every
resource acactl manages. With --save the names are written to the env file
for scripts and later commands.`,
	Example: `  # Names for the signed-in Azure user
  acactl names

  # Names for another identity, saved to .env
  acactl names --identity=00000000-0000-0000-0000-000000000000 --save

  # As YAML
  acactl names -o yaml`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Env command group
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the env file",
}

// Env show command
var envShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the values in the env file",
	Args:  cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// SetupNamesCommands initializes the names and env commands
func SetupNamesCommands() {
	envCmd.AddCommand(envShowCmd)
}

// SetupNamesFlags configures flags for the names command
func SetupNamesFlags(namesCmd *cobra.Command, savePtr *bool) {
	namesCmd.Flags().BoolVar(savePtr, "save", false, "Write the names to the env file")
}

// GetNamesCommands returns the command structures for handler assignment
func GetNamesCommands() (*cobra.Command, *cobra.Command) {
	return namesCmd, envShowCmd
}
