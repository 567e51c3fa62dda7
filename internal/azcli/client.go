package azcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Client provides typed az operations on top of a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a client using runner for every invocation.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Account is the subset of `az account show` used by acactl.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
	User     struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"user"`
}

// RegistryCredentials are the admin credentials of a container registry.
type RegistryCredentials struct {
	Server   string
	Username string
	Password string
}

// ContainerApp is the subset of `az containerapp show` used for status.
type ContainerApp struct {
	Name               string
	FQDN               string
	LatestRevisionName string
	ProvisioningState  string
	Image              string
}

// ContainerInstance is the subset of `az container show` used for status.
type ContainerInstance struct {
	Name              string
	FQDN              string
	IP                string
	State             string
	ProvisioningState string
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	return c.runner.Run(ctx, args...)
}

func (c *Client) runJSON(ctx context.Context, v any, args ...string) error {
	out, err := c.run(ctx, append(args, "--output", "json")...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("failed to parse az %s output: %w", args[0], err)
	}
	return nil
}

// exists turns a "show" call into a boolean, treating ErrNotFound as false.
func (c *Client) exists(ctx context.Context, args ...string) (bool, error) {
	_, err := c.run(ctx, append(args, "--output", "none")...)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// SignedInUserID returns the object ID of the signed-in principal. This is
// the identity token resource names are derived from.
func (c *Client) SignedInUserID(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "ad", "signed-in-user", "show", "--query", "id", "--output", "tsv")
	if err != nil {
		return "", fmt.Errorf("failed to query signed-in user: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", ErrNotLoggedIn
	}
	return id, nil
}

// Account returns the active subscription and user.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.runJSON(ctx, &account, "account", "show"); err != nil {
		return nil, fmt.Errorf("failed to query active account: %w", err)
	}
	return &account, nil
}

// EnsureExtension installs or upgrades an az extension such as "containerapp".
func (c *Client) EnsureExtension(ctx context.Context, name string) error {
	_, err := c.run(ctx, "extension", "add", "--name", name, "--upgrade", "--output", "none")
	if err != nil {
		return fmt.Errorf("failed to install az extension %s: %w", name, err)
	}
	return nil
}

// RegisterProvider registers a resource provider namespace such as Microsoft.App.
func (c *Client) RegisterProvider(ctx context.Context, namespace string) error {
	_, err := c.run(ctx, "provider", "register", "--namespace", namespace, "--output", "none")
	if err != nil {
		return fmt.Errorf("failed to register provider %s: %w", namespace, err)
	}
	return nil
}

// GroupExists reports whether the resource group exists.
func (c *Client) GroupExists(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "group", "exists", "--name", name, "--output", "tsv")
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// CreateGroup creates a resource group in location.
func (c *Client) CreateGroup(ctx context.Context, name, location string) error {
	_, err := c.run(ctx, "group", "create", "--name", name, "--location", location, "--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}
	return nil
}

// DeleteGroup deletes a resource group and everything in it. With wait false
// the call returns once Azure has accepted the deletion.
func (c *Client) DeleteGroup(ctx context.Context, name string, wait bool) error {
	args := []string{"group", "delete", "--name", name, "--yes"}
	if !wait {
		args = append(args, "--no-wait")
	}
	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to delete resource group %s: %w", name, err)
	}
	return nil
}

// RegistryExists reports whether the container registry exists.
func (c *Client) RegistryExists(ctx context.Context, group, name string) (bool, error) {
	ok, err := c.exists(ctx, "acr", "show", "--name", name, "--resource-group", group)
	if err != nil {
		return false, fmt.Errorf("failed to check registry %s: %w", name, err)
	}
	return ok, nil
}

// CreateRegistry creates a Basic SKU registry with the admin user enabled,
// which container instances need for image pulls.
func (c *Client) CreateRegistry(ctx context.Context, group, name, location, sku string) error {
	if sku == "" {
		sku = "Basic"
	}
	_, err := c.run(ctx, "acr", "create",
		"--name", name,
		"--resource-group", group,
		"--location", location,
		"--sku", sku,
		"--admin-enabled", "true",
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create registry %s: %w", name, err)
	}
	return nil
}

// RegistryCredentials returns the registry login server and admin credentials.
func (c *Client) RegistryCredentials(ctx context.Context, name string) (*RegistryCredentials, error) {
	var out struct {
		Username  string `json:"username"`
		Passwords []struct {
			Value string `json:"value"`
		} `json:"passwords"`
	}
	if err := c.runJSON(ctx, &out, "acr", "credential", "show", "--name", name); err != nil {
		return nil, fmt.Errorf("failed to read credentials for registry %s: %w", name, err)
	}
	if out.Username == "" || len(out.Passwords) == 0 {
		return nil, fmt.Errorf("registry %s has no admin credentials (is the admin user enabled?)", name)
	}
	return &RegistryCredentials{
		Server:   name + ".azurecr.io",
		Username: out.Username,
		Password: out.Passwords[0].Value,
	}, nil
}

// BuildImage builds sourceDir in the registry with ACR Tasks and pushes image
// (repository:tag). No local container engine is needed.
func (c *Client) BuildImage(ctx context.Context, registry, image, sourceDir, dockerfile string) error {
	args := []string{"acr", "build", "--registry", registry, "--image", image}
	if dockerfile != "" {
		args = append(args, "--file", dockerfile)
	}
	args = append(args, sourceDir)

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to build image %s in registry %s: %w", image, registry, err)
	}
	return nil
}

// EnvironmentExists reports whether the Container Apps environment exists.
func (c *Client) EnvironmentExists(ctx context.Context, group, name string) (bool, error) {
	ok, err := c.exists(ctx, "containerapp", "env", "show", "--name", name, "--resource-group", group)
	if err != nil {
		return false, fmt.Errorf("failed to check environment %s: %w", name, err)
	}
	return ok, nil
}

// CreateEnvironment creates a Container Apps managed environment.
func (c *Client) CreateEnvironment(ctx context.Context, group, name, location string) error {
	_, err := c.run(ctx, "containerapp", "env", "create",
		"--name", name,
		"--resource-group", group,
		"--location", location,
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create environment %s: %w", name, err)
	}
	return nil
}

// AppSpec describes a container app or container instance deployment.
type AppSpec struct {
	Name        string
	Group       string
	Environment string // Container Apps only
	Image       string
	TargetPort  int
	CPU         string
	Memory      string
	MinReplicas int // Container Apps only
	MaxReplicas int // Container Apps only
	Registry    *RegistryCredentials
	Env         map[string]string
	Secrets     map[string]string // secret name -> value
	SecretEnv   map[string]string // env var -> secret name
	Revision    string            // revision suffix, Container Apps only
}

// ContainerAppExists reports whether the container app exists.
func (c *Client) ContainerAppExists(ctx context.Context, group, name string) (bool, error) {
	ok, err := c.exists(ctx, "containerapp", "show", "--name", name, "--resource-group", group)
	if err != nil {
		return false, fmt.Errorf("failed to check container app %s: %w", name, err)
	}
	return ok, nil
}

// CreateContainerApp creates a container app with external ingress.
func (c *Client) CreateContainerApp(ctx context.Context, spec AppSpec) error {
	args := []string{"containerapp", "create",
		"--name", spec.Name,
		"--resource-group", spec.Group,
		"--environment", spec.Environment,
		"--image", spec.Image,
		"--target-port", fmt.Sprint(spec.TargetPort),
		"--ingress", "external",
	}
	args = append(args, appResourceArgs(spec)...)
	if spec.Registry != nil {
		args = append(args,
			"--registry-server", spec.Registry.Server,
			"--registry-username", spec.Registry.Username,
			"--registry-password", spec.Registry.Password)
	}
	if secrets := secretArgs(spec.Secrets); len(secrets) > 0 {
		args = append(append(args, "--secrets"), secrets...)
	}
	if env := envArgs(spec.Env, spec.SecretEnv); len(env) > 0 {
		args = append(append(args, "--env-vars"), env...)
	}
	if spec.Revision != "" {
		args = append(args, "--revision-suffix", spec.Revision)
	}
	args = append(args, "--output", "none")

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create container app %s: %w", spec.Name, err)
	}
	return nil
}

// UpdateContainerApp rolls a new revision with the spec's image and settings.
// Secrets are set first because env vars may reference them.
func (c *Client) UpdateContainerApp(ctx context.Context, spec AppSpec) error {
	if secrets := secretArgs(spec.Secrets); len(secrets) > 0 {
		args := []string{"containerapp", "secret", "set",
			"--name", spec.Name, "--resource-group", spec.Group, "--secrets"}
		args = append(append(args, secrets...), "--output", "none")
		if _, err := c.run(ctx, args...); err != nil {
			return fmt.Errorf("failed to set secrets on container app %s: %w", spec.Name, err)
		}
	}

	args := []string{"containerapp", "update",
		"--name", spec.Name,
		"--resource-group", spec.Group,
		"--image", spec.Image,
	}
	args = append(args, appResourceArgs(spec)...)
	if env := envArgs(spec.Env, spec.SecretEnv); len(env) > 0 {
		args = append(append(args, "--set-env-vars"), env...)
	}
	if spec.Revision != "" {
		args = append(args, "--revision-suffix", spec.Revision)
	}
	args = append(args, "--output", "none")

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to update container app %s: %w", spec.Name, err)
	}
	return nil
}

// ShowContainerApp returns ingress and revision details of a container app.
func (c *Client) ShowContainerApp(ctx context.Context, group, name string) (*ContainerApp, error) {
	var out struct {
		Name       string `json:"name"`
		Properties struct {
			ProvisioningState  string `json:"provisioningState"`
			LatestRevisionName string `json:"latestRevisionName"`
			Configuration      struct {
				Ingress *struct {
					FQDN string `json:"fqdn"`
				} `json:"ingress"`
			} `json:"configuration"`
			Template struct {
				Containers []struct {
					Image string `json:"image"`
				} `json:"containers"`
			} `json:"template"`
		} `json:"properties"`
	}
	if err := c.runJSON(ctx, &out, "containerapp", "show", "--name", name, "--resource-group", group); err != nil {
		return nil, fmt.Errorf("failed to show container app %s: %w", name, err)
	}

	app := &ContainerApp{
		Name:               out.Name,
		LatestRevisionName: out.Properties.LatestRevisionName,
		ProvisioningState:  out.Properties.ProvisioningState,
	}
	if out.Properties.Configuration.Ingress != nil {
		app.FQDN = out.Properties.Configuration.Ingress.FQDN
	}
	if len(out.Properties.Template.Containers) > 0 {
		app.Image = out.Properties.Template.Containers[0].Image
	}
	return app, nil
}

// ContainerAppFQDN returns the ingress FQDN of a container app.
func (c *Client) ContainerAppFQDN(ctx context.Context, group, name string) (string, error) {
	app, err := c.ShowContainerApp(ctx, group, name)
	if err != nil {
		return "", err
	}
	if app.FQDN == "" {
		return "", fmt.Errorf("container app %s has no external ingress", name)
	}
	return app.FQDN, nil
}

// ContainerInstanceExists reports whether the container group exists.
func (c *Client) ContainerInstanceExists(ctx context.Context, group, name string) (bool, error) {
	ok, err := c.exists(ctx, "container", "show", "--name", name, "--resource-group", group)
	if err != nil {
		return false, fmt.Errorf("failed to check container instance %s: %w", name, err)
	}
	return ok, nil
}

// CreateContainerInstance creates a public Linux container group whose DNS
// label is the instance name.
func (c *Client) CreateContainerInstance(ctx context.Context, spec AppSpec) error {
	args := []string{"container", "create",
		"--name", spec.Name,
		"--resource-group", spec.Group,
		"--image", spec.Image,
		"--os-type", "Linux",
		"--ports", fmt.Sprint(spec.TargetPort),
		"--ip-address", "Public",
		"--dns-name-label", spec.Name,
	}
	if spec.CPU != "" {
		args = append(args, "--cpu", spec.CPU)
	}
	if spec.Memory != "" {
		args = append(args, "--memory", strings.TrimSuffix(spec.Memory, "Gi"))
	}
	if spec.Registry != nil {
		args = append(args,
			"--registry-login-server", spec.Registry.Server,
			"--registry-username", spec.Registry.Username,
			"--registry-password", spec.Registry.Password)
	}
	if env := envArgs(spec.Env, nil); len(env) > 0 {
		args = append(append(args, "--environment-variables"), env...)
	}
	if secure := secureEnvArgs(spec.Secrets, spec.SecretEnv); len(secure) > 0 {
		args = append(append(args, "--secure-environment-variables"), secure...)
	}
	args = append(args, "--output", "none")

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create container instance %s: %w", spec.Name, err)
	}
	return nil
}

// ShowContainerInstance returns address and state of a container group.
func (c *Client) ShowContainerInstance(ctx context.Context, group, name string) (*ContainerInstance, error) {
	var out struct {
		Name              string `json:"name"`
		ProvisioningState string `json:"provisioningState"`
		IPAddress         *struct {
			FQDN string `json:"fqdn"`
			IP   string `json:"ip"`
		} `json:"ipAddress"`
		InstanceView *struct {
			State string `json:"state"`
		} `json:"instanceView"`
	}
	if err := c.runJSON(ctx, &out, "container", "show", "--name", name, "--resource-group", group); err != nil {
		return nil, fmt.Errorf("failed to show container instance %s: %w", name, err)
	}

	ci := &ContainerInstance{Name: out.Name, ProvisioningState: out.ProvisioningState}
	if out.IPAddress != nil {
		ci.FQDN = out.IPAddress.FQDN
		ci.IP = out.IPAddress.IP
	}
	if out.InstanceView != nil {
		ci.State = out.InstanceView.State
	}
	return ci, nil
}

// ContainerInstanceFQDN returns the public DNS name of a container group.
func (c *Client) ContainerInstanceFQDN(ctx context.Context, group, name string) (string, error) {
	ci, err := c.ShowContainerInstance(ctx, group, name)
	if err != nil {
		return "", err
	}
	if ci.FQDN == "" {
		return "", fmt.Errorf("container instance %s has no public DNS name", name)
	}
	return ci.FQDN, nil
}

func appResourceArgs(spec AppSpec) []string {
	var args []string
	if spec.CPU != "" {
		args = append(args, "--cpu", spec.CPU)
	}
	if spec.Memory != "" {
		args = append(args, "--memory", spec.Memory)
	}
	if spec.MinReplicas > 0 || spec.MaxReplicas > 0 {
		args = append(args,
			"--min-replicas", fmt.Sprint(spec.MinReplicas),
			"--max-replicas", fmt.Sprint(spec.MaxReplicas))
	}
	return args
}

// envArgs renders KEY=value pairs plus KEY=secretref:name references, sorted
// so that invocations are reproducible.
func envArgs(env, secretEnv map[string]string) []string {
	args := make([]string, 0, len(env)+len(secretEnv))
	for _, k := range sortedKeys(env) {
		args = append(args, k+"="+env[k])
	}
	for _, k := range sortedKeys(secretEnv) {
		args = append(args, k+"=secretref:"+secretEnv[k])
	}
	return args
}

func secretArgs(secrets map[string]string) []string {
	args := make([]string, 0, len(secrets))
	for _, k := range sortedKeys(secrets) {
		args = append(args, k+"="+secrets[k])
	}
	return args
}

// secureEnvArgs resolves env var -> secret name references to values for
// container instances, which have no secret store of their own.
func secureEnvArgs(secrets, secretEnv map[string]string) []string {
	args := make([]string, 0, len(secretEnv))
	for _, k := range sortedKeys(secretEnv) {
		if v, ok := secrets[secretEnv[k]]; ok {
			args = append(args, k+"="+v)
		}
	}
	return args
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
