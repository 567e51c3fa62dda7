// Package deploy implements the acactl deployment workflow: a fixed sequence
// of idempotent steps that provision the document API on Azure Container Apps
// or Azure Container Instances.
//
// STEPS:
//
//	group        resource group
//	registry     container registry (Basic SKU, admin user enabled)
//	image        build and push the image from source with ACR Tasks
//	environment  Container Apps managed environment
//	app          container app; an existing app gets a new revision
//	aci          container instance (alternative to app)
//
// Every step checks for the resource and creates it only when it is missing.
// The check and the create are two separate az calls, so two operators
// deploying the same identity at the same moment can both see "missing" and
// one create fails with a conflict. acactl is a single-operator tool and
// re-running the step resolves it.
//
// Run stops at the first failed step. Resources created by earlier steps are
// left in place; `acactl teardown` removes the whole resource group.
package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/azcli"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

// Step identifies one unit of the deployment workflow.
type Step string

const (
	StepGroup       Step = "group"
	StepRegistry    Step = "registry"
	StepImage       Step = "image"
	StepEnvironment Step = "environment"
	StepApp         Step = "app"
	StepInstance    Step = "aci"
)

// DefaultSteps is the Container Apps deployment in dependency order. The
// container instance is opt-in.
var DefaultSteps = []Step{StepGroup, StepRegistry, StepImage, StepEnvironment, StepApp}

// ParseStep converts a command-line argument into a Step.
func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case StepGroup, StepRegistry, StepImage, StepEnvironment, StepApp, StepInstance:
		return Step(s), nil
	}
	return "", fmt.Errorf("unknown step '%s' (valid: group, registry, image, environment, app, aci, all)", s)
}

// allSteps is every step in dependency order.
var allSteps = []Step{StepGroup, StepRegistry, StepImage, StepEnvironment, StepApp, StepInstance}

// ParseSteps converts command-line arguments into steps. No arguments or
// "all" selects DefaultSteps; "all" may be combined with "aci". Steps are
// returned once each, in dependency order, whatever order they were given in.
func ParseSteps(args []string) ([]Step, error) {
	selected := make(map[Step]bool)
	if len(args) == 0 {
		args = []string{"all"}
	}

	for _, arg := range args {
		if arg == "all" {
			for _, step := range DefaultSteps {
				selected[step] = true
			}
			continue
		}
		step, err := ParseStep(arg)
		if err != nil {
			return nil, err
		}
		selected[step] = true
	}

	steps := make([]Step, 0, len(selected))
	for _, step := range allSteps {
		if selected[step] {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// Outcome is what a step did.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeExists  Outcome = "exists"
	OutcomeUpdated Outcome = "updated"
	OutcomeDeleted Outcome = "deleted"
	OutcomeSkipped Outcome = "skipped"
)

// Result reports one executed step.
type Result struct {
	Step     Step          `json:"step" yaml:"step"`
	Resource string        `json:"resource" yaml:"resource"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Deployer runs deployment steps for one name set and profile.
type Deployer struct {
	client   *azcli.Client
	profile  *Profile
	names    names.NameSet
	revision func() string

	extensionReady bool
}

// New creates a deployer. The name set must have been derived from the same
// profile's prefixes.
func New(client *azcli.Client, profile *Profile, set names.NameSet) *Deployer {
	return &Deployer{
		client:   client,
		profile:  profile,
		names:    set,
		revision: names.Generate,
	}
}

// Names returns the name set the deployer provisions.
func (d *Deployer) Names() names.NameSet {
	return d.names
}

// Image returns the fully-qualified image reference.
func (d *Deployer) Image() string {
	return d.names.Image(d.profile.Image.Repository, d.profile.Image.Tag)
}

// Run executes steps in order and returns the results of the steps that ran.
// It stops at the first error or when ctx is canceled between steps.
func (d *Deployer) Run(ctx context.Context, steps []Step) ([]Result, error) {
	results := make([]Result, 0, len(steps))

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("deployment interrupted before step %s: %w", step, err)
		}

		logging.Info("Step %s: starting", step)
		start := time.Now()

		result, err := d.runStep(ctx, step)
		result.Step = step
		result.Duration = time.Since(start)
		if err != nil {
			logging.Error("Step %s failed: %v", step, err)
			return results, fmt.Errorf("step %s: %w", step, err)
		}

		logging.Success("Step %s: %s %s", step, result.Resource, result.Outcome)
		results = append(results, result)
	}

	return results, nil
}

func (d *Deployer) runStep(ctx context.Context, step Step) (Result, error) {
	switch step {
	case StepGroup:
		return d.EnsureResourceGroup(ctx)
	case StepRegistry:
		return d.EnsureRegistry(ctx)
	case StepImage:
		return d.BuildImage(ctx)
	case StepEnvironment:
		return d.EnsureEnvironment(ctx)
	case StepApp:
		return d.DeployContainerApp(ctx)
	case StepInstance:
		return d.DeployContainerInstance(ctx)
	default:
		return Result{}, fmt.Errorf("unknown step '%s'", step)
	}
}

// EnsureResourceGroup creates the resource group if it is missing.
func (d *Deployer) EnsureResourceGroup(ctx context.Context) (Result, error) {
	result := Result{Step: StepGroup, Resource: d.names.ResourceGroup}

	exists, err := d.client.GroupExists(ctx, d.names.ResourceGroup)
	if err != nil {
		return result, err
	}
	if exists {
		result.Outcome = OutcomeExists
		return result, nil
	}

	if err := d.client.CreateGroup(ctx, d.names.ResourceGroup, d.profile.Location); err != nil {
		return result, err
	}
	result.Outcome = OutcomeCreated
	result.Detail = d.profile.Location
	return result, nil
}

// EnsureRegistry creates the container registry if it is missing.
func (d *Deployer) EnsureRegistry(ctx context.Context) (Result, error) {
	result := Result{Step: StepRegistry, Resource: d.names.Registry}

	exists, err := d.client.RegistryExists(ctx, d.names.ResourceGroup, d.names.Registry)
	if err != nil {
		return result, err
	}
	if exists {
		result.Outcome = OutcomeExists
		return result, nil
	}

	err = d.client.CreateRegistry(ctx, d.names.ResourceGroup, d.names.Registry, d.profile.Location, d.profile.RegistrySKU)
	if err != nil {
		return result, err
	}
	result.Outcome = OutcomeCreated
	result.Detail = d.profile.RegistrySKU
	return result, nil
}

// BuildImage builds the image in the registry. It always runs: the tag may
// already exist with different content.
func (d *Deployer) BuildImage(ctx context.Context) (Result, error) {
	result := Result{Step: StepImage, Resource: d.Image()}

	err := d.client.BuildImage(ctx, d.names.Registry, d.profile.ImageRef(), d.profile.Image.Source, d.profile.Image.Dockerfile)
	if err != nil {
		return result, err
	}
	result.Outcome = OutcomeUpdated
	return result, nil
}

func (d *Deployer) ensureExtension(ctx context.Context) error {
	if d.extensionReady {
		return nil
	}
	if err := d.client.EnsureExtension(ctx, "containerapp"); err != nil {
		return err
	}
	d.extensionReady = true
	return nil
}

// EnsureEnvironment creates the Container Apps environment if it is missing.
func (d *Deployer) EnsureEnvironment(ctx context.Context) (Result, error) {
	result := Result{Step: StepEnvironment, Resource: d.names.Environment}

	if err := d.ensureExtension(ctx); err != nil {
		return result, err
	}

	exists, err := d.client.EnvironmentExists(ctx, d.names.ResourceGroup, d.names.Environment)
	if err != nil {
		return result, err
	}
	if exists {
		result.Outcome = OutcomeExists
		return result, nil
	}

	for _, ns := range []string{"Microsoft.App", "Microsoft.OperationalInsights"} {
		if err := d.client.RegisterProvider(ctx, ns); err != nil {
			return result, err
		}
	}
	if err := d.client.CreateEnvironment(ctx, d.names.ResourceGroup, d.names.Environment, d.profile.Location); err != nil {
		return result, err
	}
	result.Outcome = OutcomeCreated
	return result, nil
}

func (d *Deployer) appSpec(ctx context.Context, name, cpu, memory string) (azcli.AppSpec, error) {
	creds, err := d.client.RegistryCredentials(ctx, d.names.Registry)
	if err != nil {
		return azcli.AppSpec{}, err
	}

	return azcli.AppSpec{
		Name:        name,
		Group:       d.names.ResourceGroup,
		Environment: d.names.Environment,
		Image:       d.Image(),
		TargetPort:  d.profile.App.TargetPort,
		CPU:         cpu,
		Memory:      memory,
		MinReplicas: d.profile.App.MinReplicas,
		MaxReplicas: d.profile.App.MaxReplicas,
		Registry:    creds,
		Env:         d.profile.Env,
		Secrets:     d.profile.Secrets,
		SecretEnv:   d.profile.SecretEnv,
	}, nil
}

// DeployContainerApp creates the container app, or rolls a new revision of
// an existing one with a generated revision suffix.
func (d *Deployer) DeployContainerApp(ctx context.Context) (Result, error) {
	result := Result{Step: StepApp, Resource: d.names.ContainerApp}

	if err := d.ensureExtension(ctx); err != nil {
		return result, err
	}

	exists, err := d.client.ContainerAppExists(ctx, d.names.ResourceGroup, d.names.ContainerApp)
	if err != nil {
		return result, err
	}

	spec, err := d.appSpec(ctx, d.names.ContainerApp, d.profile.App.CPU, d.profile.App.Memory)
	if err != nil {
		return result, err
	}

	if !exists {
		if err := d.client.CreateContainerApp(ctx, spec); err != nil {
			return result, err
		}
		result.Outcome = OutcomeCreated
	} else {
		spec.Revision = d.revision()
		if err := d.client.UpdateContainerApp(ctx, spec); err != nil {
			return result, err
		}
		result.Outcome = OutcomeUpdated
		result.Detail = "revision " + d.names.RevisionName(spec.Revision)
	}

	if fqdn, err := d.client.ContainerAppFQDN(ctx, d.names.ResourceGroup, d.names.ContainerApp); err == nil {
		if result.Detail != "" {
			result.Detail += ", "
		}
		result.Detail += "https://" + fqdn
	} else {
		logging.Warn("Could not read ingress FQDN of %s: %v", d.names.ContainerApp, err)
	}

	return result, nil
}

// DeployContainerInstance creates the container instance if it is missing.
// Container instances cannot roll revisions, so an existing one is left as is.
func (d *Deployer) DeployContainerInstance(ctx context.Context) (Result, error) {
	result := Result{Step: StepInstance, Resource: d.names.ContainerInstance}

	exists, err := d.client.ContainerInstanceExists(ctx, d.names.ResourceGroup, d.names.ContainerInstance)
	if err != nil {
		return result, err
	}
	if exists {
		result.Outcome = OutcomeExists
		result.Detail = "delete the instance to redeploy a new image"
		return result, nil
	}

	spec, err := d.appSpec(ctx, d.names.ContainerInstance, d.profile.Instance.CPU, d.profile.Instance.Memory)
	if err != nil {
		return result, err
	}
	if err := d.client.CreateContainerInstance(ctx, spec); err != nil {
		return result, err
	}
	result.Outcome = OutcomeCreated

	if fqdn, err := d.client.ContainerInstanceFQDN(ctx, d.names.ResourceGroup, d.names.ContainerInstance); err == nil {
		result.Detail = fmt.Sprintf("http://%s:%d", fqdn, d.profile.App.TargetPort)
	}
	return result, nil
}

// Teardown deletes the resource group and every resource in it. A missing
// group is reported as skipped.
func (d *Deployer) Teardown(ctx context.Context, wait bool) (Result, error) {
	result := Result{Step: StepGroup, Resource: d.names.ResourceGroup}

	exists, err := d.client.GroupExists(ctx, d.names.ResourceGroup)
	if err != nil {
		return result, err
	}
	if !exists {
		result.Outcome = OutcomeSkipped
		result.Detail = "resource group does not exist"
		return result, nil
	}

	if err := d.client.DeleteGroup(ctx, d.names.ResourceGroup, wait); err != nil {
		return result, err
	}
	result.Outcome = OutcomeDeleted
	if !wait {
		result.Detail = "deletion accepted, completes in the background"
	}
	return result, nil
}
