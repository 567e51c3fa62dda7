package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/validate"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	Global.LogLevel = logging.NormalizeLogLevel(Global.LogLevel)
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := validate.ValidateIntRange(Global.Timeout, 1, 600, "timeout"); err != nil {
		logging.Error("Invalid timeout %d: %v", Global.Timeout, err)
		return err
	}

	if err := validate.ValidateRequiredString(Global.EnvFile, "env-file"); err != nil {
		return err
	}

	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
		"yaml":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json, yaml", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json, yaml")
	}
	return nil
}

// ValidateAppTarget validates the --target flag of the app commands
func ValidateAppTarget() error {
	if App.Target != "app" && App.Target != "aci" {
		return fmt.Errorf("invalid target '%s' - valid: app, aci", App.Target)
	}
	if App.URL != "" {
		if _, err := validate.ServiceURL(App.URL); err != nil {
			return fmt.Errorf("invalid --url: %w", err)
		}
	}
	return nil
}
