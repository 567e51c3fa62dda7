package names

import (
	"errors"
	"strings"
	"testing"
)

// TestComposeResourceName tests composition under the default rules
func TestComposeResourceName(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		suffix  string
		want    string
		wantErr error
	}{
		{
			name:   "registry prefix",
			prefix: "acr",
			suffix: "a1b2c3d4",
			want:   "acra1b2c3d4",
		},
		{
			name:   "environment prefix with hyphens",
			prefix: "aca-env-",
			suffix: "a1b2c3d4",
			want:   "aca-env-a1b2c3d4",
		},
		{
			name:   "uppercase prefix is lowercased",
			prefix: "ACA-Env-",
			suffix: "a1b2c3d4",
			want:   "aca-env-a1b2c3d4",
		},
		{
			name:   "exactly at the limit",
			prefix: strings.Repeat("p", 42),
			suffix: "a1b2c3d4",
			want:   strings.Repeat("p", 42) + "a1b2c3d4",
		},
		{
			name:    "one over the limit",
			prefix:  strings.Repeat("p", 43),
			suffix:  "a1b2c3d4",
			wantErr: ErrNameTooLong,
		},
		{
			name:    "empty prefix",
			prefix:  "",
			suffix:  "a1b2c3d4",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed suffix",
			prefix:  "acr",
			suffix:  "xyz",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "disallowed character rejected, not stripped",
			prefix:  "acr_",
			suffix:  "a1b2c3d4",
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeResourceName(tt.prefix, tt.suffix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComposeResourceName(%q, %q) error = %v, want %v", tt.prefix, tt.suffix, err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("ComposeResourceName() returned partial result %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComposeResourceName(%q, %q) unexpected error = %v", tt.prefix, tt.suffix, err)
			}
			if got != tt.want {
				t.Errorf("ComposeResourceName(%q, %q) = %q, want %q", tt.prefix, tt.suffix, got, tt.want)
			}
		})
	}
}

// TestComposeForCategories tests the per-category rule sets
func TestComposeForCategories(t *testing.T) {
	const suffix = "a1b2c3d4"

	tests := []struct {
		name    string
		rules   Rules
		prefix  string
		want    string
		wantErr error
	}{
		{"registry alphanumeric", RegistryRules, "acr", "acra1b2c3d4", nil},
		{"registry forbids hyphens", RegistryRules, "acr-", "", ErrInvalidInput},
		{"registry caps at 50", RegistryRules, strings.Repeat("r", 43), "", ErrNameTooLong},
		{"environment allows hyphens", EnvironmentRules, "aca-env-", "aca-env-a1b2c3d4", nil},
		{"environment caps at 32", EnvironmentRules, strings.Repeat("e", 25), "", ErrNameTooLong},
		{"environment must start with a letter", EnvironmentRules, "1env-", "", ErrInvalidInput},
		{"container app", ContainerAppRules, "docapi-", "docapi-a1b2c3d4", nil},
		{"container instance", ContainerInstanceRules, "aci-docapi-", "aci-docapi-a1b2c3d4", nil},
		{"resource group allows periods", ResourceGroupRules, "rg.aca_demo-", "rg.aca_demo-a1b2c3d4", nil},
		{"ascii uppercase is lowered", RegistryRules, "ACR", "acra1b2c3d4", nil},
		{"kelvin sign is not folded to k", RegistryRules, "\u212acr", "", ErrInvalidInput},
		{"dotted capital i is not folded to i", ContainerAppRules, "\u0130nfo-", "", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeFor(tt.rules, tt.prefix, suffix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComposeFor(%s, %q) error = %v, want %v", tt.rules.Kind, tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComposeFor(%s, %q) unexpected error = %v", tt.rules.Kind, tt.prefix, err)
			}
			if got != tt.want {
				t.Errorf("ComposeFor(%s, %q) = %q, want %q", tt.rules.Kind, tt.prefix, got, tt.want)
			}
		})
	}
}

// TestRulesCheck tests validation of names that were not composed here
func TestRulesCheck(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		input   string
		wantErr error
	}{
		{"valid registry", RegistryRules, "acra1b2c3d4", nil},
		{"registry too short", RegistryRules, "acr", ErrInvalidInput},
		{"empty name", RegistryRules, "", ErrInvalidInput},
		{"trailing hyphen", ContainerInstanceRules, "aci-", ErrInvalidInput},
		{"uppercase rejected", EnvironmentRules, "Aca-env", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Check(tt.input)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Check(%q) unexpected error = %v", tt.input, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
