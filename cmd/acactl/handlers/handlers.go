// Package handlers provides command handler functions for acactl.
//
// The package is organized as follows:
// - names.go: name derivation and the env file (names, env show)
// - deploy.go: Azure provisioning (deploy, status, teardown)
// - app.go: probes against a deployed document API (app health/info/process/docs)
//
// Handlers share one pipeline: load the deployment profile, resolve the
// identity token, derive the name set, then call into internal/deploy or the
// document API client. Output always goes through the display package.
package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/azcli"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/deploy"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

// newRunner creates the az runner. Tests replace it with a fake.
var newRunner = func() azcli.Runner {
	return azcli.NewExecRunner()
}

// commandContext is cancelled on SIGINT or SIGTERM so az calls in flight are
// killed when the operator interrupts a command.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadProfile reads the deployment profile. The file must exist only when
// --config was given explicitly.
func loadProfile(cmd *cobra.Command) (*deploy.Profile, error) {
	required := false
	if f := cmd.Flag("config"); f != nil {
		required = f.Changed
	}

	profile, err := deploy.LoadProfile(config.Global.ConfigFile, required)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, nil
}

// resolveIdentity picks the identity token: --identity, then the profile
// (ACA_IDENTITY), then the signed-in Azure user's object id.
func resolveIdentity(ctx context.Context, az *azcli.Client, profile *deploy.Profile) (string, error) {
	if id := strings.TrimSpace(config.Global.Identity); id != "" {
		logging.Debug("Using identity from --identity")
		return id, nil
	}
	if id := strings.TrimSpace(profile.Identity); id != "" {
		logging.Debug("Using identity from profile")
		return id, nil
	}

	logging.Info("Querying signed-in Azure user")
	id, err := az.SignedInUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("could not determine identity (use --identity or 'az login'): %w", err)
	}
	return id, nil
}

// session is the state every Azure-facing command starts from.
type session struct {
	profile *deploy.Profile
	az      *azcli.Client
	names   names.NameSet
}

func newSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	profile, err := loadProfile(cmd)
	if err != nil {
		return nil, err
	}

	az := azcli.NewClient(newRunner())
	identity, err := resolveIdentity(ctx, az, profile)
	if err != nil {
		return nil, err
	}

	set, err := names.Derive(identity, profile.Prefixes)
	if err != nil {
		return nil, fmt.Errorf("failed to derive resource names: %w", err)
	}
	logging.Info("Name suffix: %s", set.Suffix)

	return &session{profile: profile, az: az, names: set}, nil
}

func (s *session) deployer() *deploy.Deployer {
	return deploy.New(s.az, s.profile, s.names)
}
