package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/display"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/envfile"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// HandleNames derives the name set and optionally persists it to the env file.
func HandleNames(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx, cancel := commandContext()
	defer cancel()

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	image := s.names.Image(s.profile.Image.Repository, s.profile.Image.Tag)

	if config.Names.Save {
		if err := saveNames(s, image); err != nil {
			return err
		}
	}

	display.DisplayNames(s.names, image, config.Global.EnvFile, config.Names.Save)
	return nil
}

// saveNames merges the session's names into the env file, keeping any other
// keys already in it.
func saveNames(s *session, image string) error {
	values, err := envfile.Load(config.Global.EnvFile)
	if err != nil {
		return err
	}
	values = envfile.ApplyNames(values, s.names, image, s.profile.Location)
	if err := envfile.Save(config.Global.EnvFile, values); err != nil {
		return err
	}
	logging.Success("Saved %d values to %s", len(values), config.Global.EnvFile)
	return nil
}

// HandleEnvShow prints the env file.
func HandleEnvShow(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	values, err := envfile.Load(config.Global.EnvFile)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}
	display.DisplayEnv(config.Global.EnvFile, values)
	return nil
}
