package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	locationRegex   = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	repositoryRegex = regexp.MustCompile(`^[a-z0-9]+(?:[._-][a-z0-9]+)*(?:/[a-z0-9]+(?:[._-][a-z0-9]+)*)*$`)
	tagRegex        = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,127}$`)
	envKeyRegex     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	secretNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// LocationFormat validates an Azure region short name such as "westeurope".
// Display names ("West Europe") are rejected; az expects the short form.
func LocationFormat(location string) error {
	if location == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if !locationRegex.MatchString(location) {
		return fmt.Errorf("location '%s' must be an Azure region short name like 'westeurope' (lowercase letters and digits)", location)
	}
	return nil
}

// ImageRepositoryFormat validates an image repository path inside a registry.
func ImageRepositoryFormat(repo string) error {
	if repo == "" {
		return fmt.Errorf("image repository cannot be empty")
	}
	if !repositoryRegex.MatchString(repo) {
		return fmt.Errorf("image repository '%s' must be lowercase path components separated by '/'", repo)
	}
	return nil
}

// ImageTagFormat validates an image tag as accepted by OCI registries.
func ImageTagFormat(tag string) error {
	if !tagRegex.MatchString(tag) {
		return fmt.Errorf("image tag '%s' must be 1-128 characters of [A-Za-z0-9_.-] and not start with '.' or '-'", tag)
	}
	return nil
}

// EnvVarName validates an environment variable key for container apps and
// the persisted env file.
func EnvVarName(key string) error {
	if !envKeyRegex.MatchString(key) {
		return fmt.Errorf("environment variable name '%s' must match [A-Za-z_][A-Za-z0-9_]*", key)
	}
	return nil
}

// SecretNameFormat validates a Container Apps secret name: lowercase
// alphanumerics and hyphens, not starting or ending with a hyphen.
func SecretNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	if !secretNameRegex.MatchString(name) {
		if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
			return fmt.Errorf("secret name '%s' cannot start or end with hyphen (-)", name)
		}
		return fmt.Errorf("secret name '%s' must contain only lowercase letters [a-z], numbers [0-9] and hyphens (-)", name)
	}
	return nil
}
