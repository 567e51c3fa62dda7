package names

import (
	"fmt"
	"strings"
)

// Rules describes the naming constraints an Azure resource provider enforces
// for one resource category.
type Rules struct {
	Kind           string // Human-readable category used in error messages
	MinLength      int    // Minimum accepted length (0 = no minimum)
	MaxLength      int    // Maximum accepted length
	AllowHyphens   bool   // Whether '-' is part of the alphabet
	Extra          string // Additional allowed characters beyond [a-z0-9] and '-'
	LetterFirst    bool   // Name must start with a letter
	NoTrailingDash bool   // Name must not end with '-'
}

// DefaultRules is the stricter of the registry and environment constraints
// that still admits hyphenated prefixes.
var DefaultRules = Rules{
	Kind:         "resource",
	MaxLength:    50,
	AllowHyphens: true,
}

// RegistryRules matches Azure Container Registry: alphanumeric only, 5-50 characters.
var RegistryRules = Rules{
	Kind:      "container registry",
	MinLength: 5,
	MaxLength: 50,
}

// EnvironmentRules matches Container Apps managed environments.
var EnvironmentRules = Rules{
	Kind:           "container apps environment",
	MinLength:      2,
	MaxLength:      32,
	AllowHyphens:   true,
	LetterFirst:    true,
	NoTrailingDash: true,
}

// ContainerAppRules matches container apps, which share the environment limits.
var ContainerAppRules = Rules{
	Kind:           "container app",
	MinLength:      2,
	MaxLength:      32,
	AllowHyphens:   true,
	LetterFirst:    true,
	NoTrailingDash: true,
}

// ContainerInstanceRules matches container groups (Azure Container Instances).
var ContainerInstanceRules = Rules{
	Kind:           "container instance",
	MaxLength:      63,
	AllowHyphens:   true,
	NoTrailingDash: true,
}

// ResourceGroupRules matches resource groups. Periods, underscores and
// parentheses are allowed in addition to hyphens.
var ResourceGroupRules = Rules{
	Kind:         "resource group",
	MaxLength:    90,
	AllowHyphens: true,
	Extra:        "._()",
}

// ComposeResourceName concatenates prefix and suffix under DefaultRules.
//
//	ComposeResourceName("acr", "a1b2c3d4")      -> "acra1b2c3d4"
//	ComposeResourceName("aca-env-", "a1b2c3d4") -> "aca-env-a1b2c3d4"
func ComposeResourceName(prefix, suffix string) (string, error) {
	return ComposeFor(DefaultRules, prefix, suffix)
}

// ComposeFor lowercases prefix+suffix and checks the result against rules.
// Characters outside the alphabet are rejected rather than stripped, since
// stripping could make two distinct prefixes produce the same name.
func ComposeFor(rules Rules, prefix, suffix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: %s name prefix cannot be empty", ErrInvalidInput, rules.Kind)
	}
	if !IsSuffix(suffix) {
		return "", fmt.Errorf("%w: suffix %q must be %d lowercase hex characters", ErrInvalidInput, suffix, SuffixLength)
	}

	name := asciiLower(prefix + suffix)

	if rules.MaxLength > 0 && len(name) > rules.MaxLength {
		return "", fmt.Errorf("%w: %s name %q is %d characters, maximum is %d",
			ErrNameTooLong, rules.Kind, name, len(name), rules.MaxLength)
	}
	if err := rules.Check(name); err != nil {
		return "", err
	}
	return name, nil
}

// asciiLower lowercases A-Z only. Unicode case folding would map characters
// such as the Kelvin sign onto ASCII letters and let them pass the alphabet
// check.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Check validates an already-composed name against the rules. Used for names
// read back from an env file or passed explicitly on the command line.
func (r Rules) Check(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name cannot be empty", ErrInvalidInput, r.Kind)
	}
	if r.MaxLength > 0 && len(name) > r.MaxLength {
		return fmt.Errorf("%w: %s name %q is %d characters, maximum is %d",
			ErrNameTooLong, r.Kind, name, len(name), r.MaxLength)
	}
	if len(name) < r.MinLength {
		return fmt.Errorf("%w: %s name %q is shorter than %d characters",
			ErrInvalidInput, r.Kind, name, r.MinLength)
	}

	for _, c := range name {
		if !r.allows(c) {
			return fmt.Errorf("%w: %s name %q contains disallowed character %q",
				ErrInvalidInput, r.Kind, name, c)
		}
	}

	if r.LetterFirst && (name[0] < 'a' || name[0] > 'z') {
		return fmt.Errorf("%w: %s name %q must start with a letter", ErrInvalidInput, r.Kind, name)
	}
	if r.NoTrailingDash && strings.HasSuffix(name, "-") {
		return fmt.Errorf("%w: %s name %q cannot end with a hyphen", ErrInvalidInput, r.Kind, name)
	}
	return nil
}

func (r Rules) allows(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-':
		return r.AllowHyphens
	default:
		return strings.ContainsRune(r.Extra, c)
	}
}
