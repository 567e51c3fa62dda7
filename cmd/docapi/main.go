// docapi serves the document processing API that acactl deploys.
package main

import (
	"os"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/docapi/commands"
)

func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
