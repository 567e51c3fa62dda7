package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/client"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/display"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/azcli"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/envfile"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

// resolveAppURL returns the document API base URL: --url when given,
// otherwise the public endpoint of the deployed app or container instance.
// Names come from the env file when it is complete, so probing a deployment
// does not need the identity again.
func resolveAppURL(ctx context.Context, cmd *cobra.Command) (string, error) {
	if err := config.ValidateAppTarget(); err != nil {
		return "", err
	}
	if config.App.URL != "" {
		return config.App.URL, nil
	}

	profile, err := loadProfile(cmd)
	if err != nil {
		return "", err
	}

	values, err := envfile.Load(config.Global.EnvFile)
	if err != nil {
		return "", err
	}

	var set names.NameSet
	var az *azcli.Client
	if saved, ok := envfile.ToNames(values); ok {
		logging.Debug("Using names from %s", config.Global.EnvFile)
		set = saved
		az = azcli.NewClient(newRunner())
	} else {
		s, err := newSession(ctx, cmd)
		if err != nil {
			return "", err
		}
		set, az = s.names, s.az
	}

	if config.App.Target == "aci" {
		fqdn, err := az.ContainerInstanceFQDN(ctx, set.ResourceGroup, set.ContainerInstance)
		if err != nil {
			return "", notDeployed(err, set.ContainerInstance)
		}
		return fmt.Sprintf("http://%s:%d", fqdn, profile.App.TargetPort), nil
	}

	fqdn, err := az.ContainerAppFQDN(ctx, set.ResourceGroup, set.ContainerApp)
	if err != nil {
		return "", notDeployed(err, set.ContainerApp)
	}
	return "https://" + fqdn, nil
}

func notDeployed(err error, name string) error {
	if errors.Is(err, azcli.ErrNotFound) {
		return fmt.Errorf("%s is not deployed (run 'acactl deploy')", name)
	}
	return err
}

// appClient resolves the URL and creates the document API client.
func appClient(ctx context.Context, cmd *cobra.Command) (*client.DocAPIClient, error) {
	baseURL, err := resolveAppURL(ctx, cmd)
	if err != nil {
		return nil, err
	}
	logging.Info("Document API: %s", baseURL)
	return client.NewDocAPIClient(baseURL, time.Duration(config.Global.Timeout)*time.Second)
}

// HandleAppHealth probes /health and /api/v1/health.
func HandleAppHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx, cancel := commandContext()
	defer cancel()

	api, err := appClient(ctx, cmd)
	if err != nil {
		return err
	}

	status, err := api.Health(ctx)
	if err != nil {
		return err
	}

	detail, err := api.HealthDetail(ctx)
	if err != nil {
		// Older images only serve /health
		logging.Warn("Detailed health unavailable: %v", err)
	}

	display.DisplayHealth(api.BaseURL(), status, detail)
	return nil
}

// HandleAppInfo shows the service information endpoint.
func HandleAppInfo(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx, cancel := commandContext()
	defer cancel()

	api, err := appClient(ctx, cmd)
	if err != nil {
		return err
	}

	info, err := api.Info(ctx)
	if err != nil {
		return err
	}
	display.DisplayInfo(info)
	return nil
}

// HandleAppProcess submits a document from --file or --content.
func HandleAppProcess(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if (config.App.File == "") == (config.App.Content == "") {
		return fmt.Errorf("exactly one of --file or --content is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	api, err := appClient(ctx, cmd)
	if err != nil {
		return err
	}

	var result *client.ProcessResult
	if config.App.File != "" {
		result, err = api.ProcessFile(ctx, config.App.File)
	} else {
		result, err = api.ProcessText(ctx, config.App.Content, config.App.Filename)
	}
	if err != nil {
		return err
	}

	display.DisplayProcessResult(result)
	logging.Success("Processed document %s", result.DocumentID)
	return nil
}

// HandleAppDocs lists stored documents, or shows one when an id is given.
func HandleAppDocs(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx, cancel := commandContext()
	defer cancel()

	api, err := appClient(ctx, cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		result, err := api.GetDocument(ctx, args[0])
		if err != nil {
			return err
		}
		display.DisplayProcessResult(result)
		return nil
	}

	list, err := api.ListDocuments(ctx)
	if err != nil {
		return err
	}
	display.DisplayDocuments(list)
	return nil
}
