package names

import (
	"errors"
	"strings"
	"testing"
)

// TestDerive tests that a full name set shares one suffix
func TestDerive(t *testing.T) {
	set, err := Derive("abc123def456", DefaultPrefixes())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	want := NameSet{
		Suffix:            "e861b2ea",
		ResourceGroup:     "rg-aca-demo-e861b2ea",
		Registry:          "acre861b2ea",
		Environment:       "aca-env-e861b2ea",
		ContainerApp:      "docapi-e861b2ea",
		ContainerInstance: "aci-docapi-e861b2ea",
	}
	if set != want {
		t.Errorf("Derive() = %+v, want %+v", set, want)
	}
}

// TestDeriveFailsWholeSet tests that one bad prefix yields no names at all
func TestDeriveFailsWholeSet(t *testing.T) {
	prefixes := DefaultPrefixes()
	prefixes.Environment = strings.Repeat("e", 30)

	set, err := Derive("abc123def456", prefixes)
	if !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("Derive() error = %v, want ErrNameTooLong", err)
	}
	if set != (NameSet{}) {
		t.Errorf("Derive() returned partial set %+v", set)
	}

	if _, err := Derive("", DefaultPrefixes()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Derive(\"\") error = %v, want ErrInvalidInput", err)
	}
}

// TestNameSetHelpers tests image and revision helpers
func TestNameSetHelpers(t *testing.T) {
	set, err := FromSuffix("a1b2c3d4", DefaultPrefixes())
	if err != nil {
		t.Fatalf("FromSuffix() error = %v", err)
	}

	if got := set.Image("docapi", "v2"); got != "acra1b2c3d4.azurecr.io/docapi:v2" {
		t.Errorf("Image() = %q", got)
	}
	if got := set.Image("docapi", ""); got != "acra1b2c3d4.azurecr.io/docapi:latest" {
		t.Errorf("Image() with empty tag = %q", got)
	}
	if got := set.RevisionName("swift-otter"); got != "docapi-a1b2c3d4--swift-otter" {
		t.Errorf("RevisionName() = %q", got)
	}
}
