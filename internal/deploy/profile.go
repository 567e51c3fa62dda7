package deploy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/config"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/validate"
)

// ImageConfig describes the image built from source with ACR Tasks. Source
// is the build context directory; Dockerfile is relative to it and may be
// empty.
type ImageConfig struct {
	Repository string `mapstructure:"repository" yaml:"repository" json:"repository"`
	Tag        string `mapstructure:"tag" yaml:"tag" json:"tag"`
	Source     string `mapstructure:"source" yaml:"source" json:"source"`
	Dockerfile string `mapstructure:"dockerfile" yaml:"dockerfile" json:"dockerfile"`
}

// AppConfig sizes the container app.
type AppConfig struct {
	TargetPort  int    `mapstructure:"target_port" yaml:"target_port" json:"target_port"`
	CPU         string `mapstructure:"cpu" yaml:"cpu" json:"cpu"`
	Memory      string `mapstructure:"memory" yaml:"memory" json:"memory"`
	MinReplicas int    `mapstructure:"min_replicas" yaml:"min_replicas" json:"min_replicas"`
	MaxReplicas int    `mapstructure:"max_replicas" yaml:"max_replicas" json:"max_replicas"`
}

// InstanceConfig sizes the container instance.
type InstanceConfig struct {
	CPU    string `mapstructure:"cpu" yaml:"cpu" json:"cpu"`
	Memory string `mapstructure:"memory" yaml:"memory" json:"memory"`
}

// Profile is the deployment configuration. It is loaded once per run and
// treated as read-only afterwards.
//
// Identity, when set, replaces the signed-in user id as the naming identity.
// Secrets maps secret names to values and SecretEnv maps env vars to secret
// names; secret values are never printed. Env and SecretEnv keys are
// uppercased after loading because viper folds map keys to lowercase.
type Profile struct {
	Location    string            `mapstructure:"location" yaml:"location" json:"location"`
	Identity    string            `mapstructure:"identity" yaml:"identity,omitempty" json:"identity,omitempty"`
	RegistrySKU string            `mapstructure:"registry_sku" yaml:"registry_sku" json:"registry_sku"`
	Prefixes    names.Prefixes    `mapstructure:"prefixes" yaml:"prefixes" json:"prefixes"`
	Image       ImageConfig       `mapstructure:"image" yaml:"image" json:"image"`
	App         AppConfig         `mapstructure:"app" yaml:"app" json:"app"`
	Instance    InstanceConfig    `mapstructure:"instance" yaml:"instance" json:"instance"`
	Env         map[string]string `mapstructure:"env" yaml:"env,omitempty" json:"env,omitempty"`
	Secrets     map[string]string `mapstructure:"secrets" yaml:"-" json:"-"`
	SecretEnv   map[string]string `mapstructure:"secret_env" yaml:"secret_env,omitempty" json:"secret_env,omitempty"`
}

// DefaultProfile returns the profile used when no file is present.
func DefaultProfile() *Profile {
	prefixes := names.DefaultPrefixes()
	return &Profile{
		Location:    config.DefaultLocation,
		RegistrySKU: "Basic",
		Prefixes:    prefixes,
		Image: ImageConfig{
			Repository: config.DefaultImageRepository,
			Tag:        config.DefaultImageTag,
			Source:     ".",
		},
		App: AppConfig{
			TargetPort:  config.DefaultTargetPort,
			CPU:         "0.5",
			Memory:      "1.0Gi",
			MinReplicas: 0,
			MaxReplicas: 3,
		},
		Instance: InstanceConfig{
			CPU:    "0.5",
			Memory: "1.0Gi",
		},
		Env: map[string]string{
			"ENVIRONMENT": "azure-container-apps",
			"LOG_LEVEL":   config.DefaultLogLevel,
		},
	}
}

// LoadProfile reads a YAML profile from path and applies ACA_* environment
// overrides (ACA_LOCATION, ACA_IMAGE_TAG, ACA_APP_MAX_REPLICAS, ...). A
// missing file is an error only when required is set.
func LoadProfile(path string, required bool) (*Profile, error) {
	v := viper.New()

	defaults := DefaultProfile()
	v.SetDefault("location", defaults.Location)
	v.SetDefault("identity", defaults.Identity)
	v.SetDefault("registry_sku", defaults.RegistrySKU)
	v.SetDefault("prefixes.resource_group", defaults.Prefixes.ResourceGroup)
	v.SetDefault("prefixes.registry", defaults.Prefixes.Registry)
	v.SetDefault("prefixes.environment", defaults.Prefixes.Environment)
	v.SetDefault("prefixes.container_app", defaults.Prefixes.ContainerApp)
	v.SetDefault("prefixes.container_instance", defaults.Prefixes.ContainerInstance)
	v.SetDefault("image.repository", defaults.Image.Repository)
	v.SetDefault("image.tag", defaults.Image.Tag)
	v.SetDefault("image.source", defaults.Image.Source)
	v.SetDefault("image.dockerfile", defaults.Image.Dockerfile)
	v.SetDefault("app.target_port", defaults.App.TargetPort)
	v.SetDefault("app.cpu", defaults.App.CPU)
	v.SetDefault("app.memory", defaults.App.Memory)
	v.SetDefault("app.min_replicas", defaults.App.MinReplicas)
	v.SetDefault("app.max_replicas", defaults.App.MaxReplicas)
	v.SetDefault("instance.cpu", defaults.Instance.CPU)
	v.SetDefault("instance.memory", defaults.Instance.Memory)
	v.SetDefault("env", defaults.Env)

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
			// Defaults and environment only
		default:
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile.Env = upperKeys(profile.Env)
	profile.SecretEnv = upperKeys(profile.SecretEnv)

	return &profile, nil
}

func upperKeys(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = v
	}
	return out
}

// Validate checks every field that would otherwise only fail inside az.
func (p *Profile) Validate() error {
	if err := validate.LocationFormat(p.Location); err != nil {
		return err
	}
	if err := validate.ImageRepositoryFormat(p.Image.Repository); err != nil {
		return err
	}
	if err := validate.ImageTagFormat(p.Image.Tag); err != nil {
		return err
	}
	if err := validate.ValidateRequiredString(p.Image.Source, "image.source"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(p.App.TargetPort); err != nil {
		return fmt.Errorf("invalid app.target_port %d: must be between 1 and 65535", p.App.TargetPort)
	}
	if err := validate.ValidateIntRange(p.App.MinReplicas, 0, 30, "app.min_replicas"); err != nil {
		return err
	}
	if err := validate.ValidateIntRange(p.App.MaxReplicas, 1, 30, "app.max_replicas"); err != nil {
		return err
	}
	if p.App.MinReplicas > p.App.MaxReplicas {
		return fmt.Errorf("app.min_replicas (%d) cannot exceed app.max_replicas (%d)", p.App.MinReplicas, p.App.MaxReplicas)
	}

	for key := range p.Env {
		if err := validate.EnvVarName(key); err != nil {
			return err
		}
	}
	for name := range p.Secrets {
		if err := validate.SecretNameFormat(name); err != nil {
			return err
		}
	}
	for key, secret := range p.SecretEnv {
		if err := validate.EnvVarName(key); err != nil {
			return err
		}
		if _, ok := p.Secrets[secret]; !ok {
			return fmt.Errorf("secret_env %s references unknown secret '%s'", key, secret)
		}
	}

	// Compose with a placeholder suffix so that bad prefixes fail before any
	// call to Azure is made.
	if _, err := names.FromSuffix("00000000", p.Prefixes); err != nil {
		return fmt.Errorf("invalid prefixes: %w", err)
	}

	return nil
}

// ImageRef returns repository:tag.
func (p *Profile) ImageRef() string {
	return p.Image.Repository + ":" + p.Image.Tag
}
