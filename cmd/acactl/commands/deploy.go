package commands

import (
	"github.com/spf13/cobra"
)

// Deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy [all|group|registry|image|environment|app|aci]...",
	Short: "Provision resources and deploy the document API",
	Long: `Run deployment steps in dependency order. Without arguments (or with
"all") acactl creates the resource group, container registry, image,
Container Apps environment and container app. "aci" deploys the same image
to a Container Instance and is never part of "all".

Every step reuses a resource that already exists. Deploying to an existing
container app rolls out a new revision. The run stops at the first failed
step.`,
	Example: `  # Full Container Apps deployment
  acactl deploy

  # Rebuild the image and roll a new revision
  acactl deploy image app

  # Container Instance only (requires group, registry and image)
  acactl deploy aci`,
	ValidArgs: []string{"all", "group", "registry", "image", "environment", "app", "aci"},
	Args:      cobra.OnlyValidArgs,
	// RunE will be set by the main package that imports this
}

// Status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which resources exist",
	Args:  cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Teardown command
var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Delete the resource group and everything in it",
	Long: `Delete the resource group derived from your identity. Every resource
acactl created lives in that group, so this removes the whole deployment.
Requires --yes.`,
	Example: `  acactl teardown --yes

  # Wait for Azure to finish deleting
  acactl teardown --yes --wait`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// SetupDeployFlags configures flags for the deploy, status and teardown commands
func SetupDeployFlags(deployCmd, statusCmd, teardownCmd *cobra.Command,
	noSavePtr, watchPtr, yesPtr, waitPtr *bool) {
	deployCmd.Flags().BoolVar(noSavePtr, "no-save", false, "Do not update the env file")
	statusCmd.Flags().BoolVarP(watchPtr, "watch", "w", false, "Refresh until interrupted")
	teardownCmd.Flags().BoolVarP(yesPtr, "yes", "y", false, "Confirm deletion")
	teardownCmd.Flags().BoolVar(waitPtr, "wait", false, "Wait for the deletion to finish")
}

// GetDeployCommands returns the command structures for handler assignment
func GetDeployCommands() (*cobra.Command, *cobra.Command, *cobra.Command) {
	return deployCmd, statusCmd, teardownCmd
}
