package commands

import (
	"github.com/spf13/cobra"
)

// App command group
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Probe the deployed document API",
	Long: `Call the deployed document API. The URL is read from --url or looked up
in Azure from the names in the env file (or derived from your identity).
--target=aci probes the Container Instance instead of the container app.`,
}

var appHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health endpoints",
	Args:  cobra.NoArgs,
}

var appInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show service information",
	Args:  cobra.NoArgs,
}

var appProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Submit a document for processing",
	Example: `  acactl app process --file=report.txt
  acactl app process --content="Azure makes containers easy" --filename=note.txt`,
	Args: cobra.NoArgs,
}

var appDocsCmd = &cobra.Command{
	Use:   "docs [document-id]",
	Short: "List stored results, or show one",
	Long: `List results stored by the replica that answers, or show one result by
id. Storage is local to each replica and lost on restart.`,
	Args: cobra.MaximumNArgs(1),
}

// SetupAppCommands initializes app commands
func SetupAppCommands() {
	appCmd.AddCommand(appHealthCmd)
	appCmd.AddCommand(appInfoCmd)
	appCmd.AddCommand(appProcessCmd)
	appCmd.AddCommand(appDocsCmd)
}

// SetupAppFlags configures flags for the app commands
func SetupAppFlags(urlPtr, targetPtr, filePtr, contentPtr, filenamePtr *string) {
	appCmd.PersistentFlags().StringVar(urlPtr, "url", "",
		"Base URL of the document API (default: looked up in Azure)")
	appCmd.PersistentFlags().StringVar(targetPtr, "target", "app",
		"Deployment to probe when --url is not given: app, aci")

	appProcessCmd.Flags().StringVarP(filePtr, "file", "f", "", "Document to upload")
	appProcessCmd.Flags().StringVar(contentPtr, "content", "", "Inline document content")
	appProcessCmd.Flags().StringVar(filenamePtr, "filename", "", "Filename reported with --content")
}

// GetAppCommands returns the app command structures for handler assignment
func GetAppCommands() (*cobra.Command, *cobra.Command, *cobra.Command, *cobra.Command) {
	return appHealthCmd, appInfoCmd, appProcessCmd, appDocsCmd
}
