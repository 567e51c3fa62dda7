package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/display"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/deploy"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// HandleDeploy runs the selected deployment steps. The names are saved to the
// env file before the first step so that a partial deployment can still be
// found and torn down.
func HandleDeploy(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	steps, err := deploy.ParseSteps(args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	d := s.deployer()

	if account, err := s.az.Account(ctx); err == nil {
		logging.Info("Subscription: %s (%s)", account.Name, account.ID)
	} else {
		logging.Debug("Could not read active account: %v", err)
	}

	if !config.Deploy.NoSave {
		if err := saveNames(s, d.Image()); err != nil {
			return err
		}
	}

	logging.Info("Deploying %d steps to %s", len(steps), s.profile.Location)
	results, runErr := d.Run(ctx, steps)
	display.DisplayResults(results)
	if runErr != nil {
		return runErr
	}

	logging.Success("Deployment complete")
	return nil
}

// HandleStatus reports which resources of the name set exist.
func HandleStatus(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx, cancel := commandContext()
	defer cancel()

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	d := s.deployer()

	return utils.RunWithWatch(ctx, func(ctx context.Context) error {
		statuses, err := d.Status(ctx)
		if err != nil {
			return err
		}
		display.DisplayStatus(statuses)
		return nil
	}, config.Status.Watch)
}

// HandleTeardown deletes the resource group. It refuses to run without --yes.
func HandleTeardown(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if !config.Teardown.Yes {
		return fmt.Errorf("teardown deletes the whole resource group; re-run with --yes to confirm")
	}

	ctx, cancel := commandContext()
	defer cancel()

	s, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}

	logging.Warn("Deleting resource group %s", s.names.ResourceGroup)
	result, err := s.deployer().Teardown(ctx, config.Teardown.Wait)
	if err != nil {
		return fmt.Errorf("teardown failed: %w", err)
	}

	display.DisplayResults([]deploy.Result{result})
	return nil
}
