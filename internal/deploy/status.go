package deploy

import (
	"context"
	"errors"
	"strconv"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/azcli"
)

// ResourceStatus reports whether one resource of the name set exists.
type ResourceStatus struct {
	Kind     string `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
	Exists   bool   `json:"exists" yaml:"exists"`
	State    string `json:"state,omitempty" yaml:"state,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// Status checks every resource of the name set. Resources inside a missing
// resource group are reported missing without querying Azure.
func (d *Deployer) Status(ctx context.Context) ([]ResourceStatus, error) {
	set := d.names
	statuses := []ResourceStatus{
		{Kind: "Resource group", Name: set.ResourceGroup},
		{Kind: "Container registry", Name: set.Registry},
		{Kind: "Container Apps environment", Name: set.Environment},
		{Kind: "Container app", Name: set.ContainerApp},
		{Kind: "Container instance", Name: set.ContainerInstance},
	}

	groupExists, err := d.client.GroupExists(ctx, set.ResourceGroup)
	if err != nil {
		return nil, err
	}
	statuses[0].Exists = groupExists
	if !groupExists {
		return statuses, nil
	}

	if statuses[1].Exists, err = d.client.RegistryExists(ctx, set.ResourceGroup, set.Registry); err != nil {
		return nil, err
	}
	if statuses[1].Exists {
		statuses[1].Endpoint = set.Registry + ".azurecr.io"
	}

	// The remaining queries are containerapp commands; without the extension
	// az would prompt to install it.
	if err := d.ensureExtension(ctx); err != nil {
		return nil, err
	}

	if statuses[2].Exists, err = d.client.EnvironmentExists(ctx, set.ResourceGroup, set.Environment); err != nil {
		return nil, err
	}

	app, err := d.client.ShowContainerApp(ctx, set.ResourceGroup, set.ContainerApp)
	switch {
	case err == nil:
		statuses[3].Exists = true
		statuses[3].State = app.ProvisioningState
		if app.FQDN != "" {
			statuses[3].Endpoint = "https://" + app.FQDN
		}
	case !errors.Is(err, azcli.ErrNotFound):
		return nil, err
	}

	ci, err := d.client.ShowContainerInstance(ctx, set.ResourceGroup, set.ContainerInstance)
	switch {
	case err == nil:
		statuses[4].Exists = true
		statuses[4].State = ci.State
		if ci.FQDN != "" {
			statuses[4].Endpoint = "http://" + ci.FQDN + ":" + strconv.Itoa(d.profile.App.TargetPort)
		}
	case !errors.Is(err, azcli.ErrNotFound):
		return nil, err
	}

	return statuses, nil
}
