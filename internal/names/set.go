package names

import (
	"fmt"
)

// Prefixes holds the literal prefix chosen for each resource category.
// The zero value is not usable; start from DefaultPrefixes.
type Prefixes struct {
	ResourceGroup     string `mapstructure:"resource_group" yaml:"resource_group" json:"resource_group"`
	Registry          string `mapstructure:"registry" yaml:"registry" json:"registry"`
	Environment       string `mapstructure:"environment" yaml:"environment" json:"environment"`
	ContainerApp      string `mapstructure:"container_app" yaml:"container_app" json:"container_app"`
	ContainerInstance string `mapstructure:"container_instance" yaml:"container_instance" json:"container_instance"`
}

// DefaultPrefixes returns the standard demo prefixes (rg-aca-demo, acr, ...).
func DefaultPrefixes() Prefixes {
	return Prefixes{
		ResourceGroup:     "rg-aca-demo-",
		Registry:          "acr",
		Environment:       "aca-env-",
		ContainerApp:      "docapi-",
		ContainerInstance: "aci-docapi-",
	}
}

// NameSet is the full set of names for one identity. It is derived once per
// run and passed by value; nothing in it changes after Derive returns.
type NameSet struct {
	Suffix            string `json:"suffix" yaml:"suffix"`
	ResourceGroup     string `json:"resource_group" yaml:"resource_group"`
	Registry          string `json:"registry" yaml:"registry"`
	Environment       string `json:"environment" yaml:"environment"`
	ContainerApp      string `json:"container_app" yaml:"container_app"`
	ContainerInstance string `json:"container_instance" yaml:"container_instance"`
}

// Derive computes the suffix for identity and composes every resource name
// from it. Any single invalid or over-long name fails the whole set so that
// callers never provision with a partial name set.
func Derive(identity string, prefixes Prefixes) (NameSet, error) {
	suffix, err := DeriveSuffix(identity)
	if err != nil {
		return NameSet{}, err
	}
	return FromSuffix(suffix, prefixes)
}

// FromSuffix composes a NameSet from an already-derived suffix, e.g. one read
// back from a persisted env file.
func FromSuffix(suffix string, prefixes Prefixes) (NameSet, error) {
	set := NameSet{Suffix: suffix}

	fields := []struct {
		rules  Rules
		prefix string
		dst    *string
	}{
		{ResourceGroupRules, prefixes.ResourceGroup, &set.ResourceGroup},
		{RegistryRules, prefixes.Registry, &set.Registry},
		{EnvironmentRules, prefixes.Environment, &set.Environment},
		{ContainerAppRules, prefixes.ContainerApp, &set.ContainerApp},
		{ContainerInstanceRules, prefixes.ContainerInstance, &set.ContainerInstance},
	}

	for _, f := range fields {
		name, err := ComposeFor(f.rules, f.prefix, suffix)
		if err != nil {
			return NameSet{}, err
		}
		*f.dst = name
	}

	return set, nil
}

// Image returns the fully-qualified image reference inside this set's registry.
func (s NameSet) Image(repository, tag string) string {
	if tag == "" {
		tag = "latest"
	}
	return fmt.Sprintf("%s.azurecr.io/%s:%s", s.Registry, repository, tag)
}

// RevisionName returns the Container Apps revision name for a revision suffix.
func (s NameSet) RevisionName(revisionSuffix string) string {
	return s.ContainerApp + "--" + revisionSuffix
}
