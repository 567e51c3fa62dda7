package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

func mustDerive(t *testing.T) names.NameSet {
	t.Helper()
	set, err := names.Derive("abc123def456", names.DefaultPrefixes())
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	return set
}

// TestLoad_Missing tests that a missing file is an empty map, not an error
func TestLoad_Missing(t *testing.T) {
	values, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Load() = %v, want empty", values)
	}
}

// TestSaveLoad tests that Save output parses back to the same values
func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	want := map[string]string{
		"NAME_SUFFIX": "00412345",
		"NOTE":        "value with spaces",
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

// TestSave_SortedKeys tests deterministic output ordering
func TestSave_SortedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := Save(path, map[string]string{"B": "2", "A": "1", "C": "3"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "A=\"1\"\nB=\"2\"\nC=\"3\"\n" {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

// TestSave_NoTempLeftBehind tests the atomic rename cleans up
func TestSave_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := Save(path, map[string]string{"A": "1"}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != ".env" {
		var found []string
		for _, e := range entries {
			found = append(found, e.Name())
		}
		t.Errorf("directory contains %v, want only .env", found)
	}
}

// TestFromNames tests the key mapping for a derived set
func TestFromNames(t *testing.T) {
	set := mustDerive(t)
	values := FromNames(set, set.Image("docapi", "latest"), "westeurope")

	expected := map[string]string{
		KeyResourceGroup:     "rg-aca-demo-e861b2ea",
		KeyRegistry:          "acre861b2ea",
		KeyEnvironment:       "aca-env-e861b2ea",
		KeyContainerApp:      "docapi-e861b2ea",
		KeyContainerInstance: "aci-docapi-e861b2ea",
		KeySuffix:            "e861b2ea",
		KeyImage:             "acre861b2ea.azurecr.io/docapi:latest",
		KeyLocation:          "westeurope",
	}
	for k, v := range expected {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

// TestApplyNames_KeepsOtherKeys tests that hand-added entries survive
func TestApplyNames_KeepsOtherKeys(t *testing.T) {
	set := mustDerive(t)
	values := map[string]string{"EMBEDDINGS_API_KEY": "keep-me", KeyResourceGroup: "stale"}

	values = ApplyNames(values, set, "", "")
	if values["EMBEDDINGS_API_KEY"] != "keep-me" {
		t.Error("ApplyNames dropped an unrelated key")
	}
	if values[KeyResourceGroup] != "rg-aca-demo-e861b2ea" {
		t.Errorf("RESOURCE_GROUP = %q, want overwritten", values[KeyResourceGroup])
	}
	if _, ok := values[KeyLocation]; ok {
		t.Error("empty location should not be written")
	}
}

// TestToNames tests reading a set back and rejecting incomplete files
func TestToNames(t *testing.T) {
	set := mustDerive(t)

	got, ok := ToNames(FromNames(set, "", ""))
	if !ok {
		t.Fatal("ToNames() reported incomplete set")
	}
	if got != set {
		t.Errorf("ToNames() = %+v, want %+v", got, set)
	}

	partial := FromNames(set, "", "")
	delete(partial, KeyRegistry)
	if _, ok := ToNames(partial); ok {
		t.Error("ToNames() accepted a set without ACR_NAME")
	}
}

// TestSaveLoad_RoundTripFile tests persisting names to disk and reading them back
func TestSaveLoad_RoundTripFile(t *testing.T) {
	set := mustDerive(t)
	path := filepath.Join(t.TempDir(), ".env")

	if err := Save(path, FromNames(set, "", "westeurope")); err != nil {
		t.Fatal(err)
	}
	values, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := ToNames(values)
	if !ok || got != set {
		t.Errorf("round trip = %+v (ok=%v), want %+v", got, ok, set)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `LOCATION="westeurope"`) {
		t.Errorf("file missing LOCATION line:\n%s", data)
	}

	// Hand-added entries survive a rewrite unchanged.
	extra := map[string]string{
		"TAB":       "a\tb",
		"BELL":      "\u00e9\a",
		"MULTILINE": "line1\nline2\r\nline3",
		"QUOTES":    `say "hi" it's`,
		"BACKSLASH": `C:\new\table`,
		"DOLLAR":    "$HOME and ${PATH}",
		"HASH":      "a # not a comment",
		"EMPTY":     "",
	}
	for k, v := range extra {
		values[k] = v
	}
	if err := Save(path, values); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for k, want := range extra {
		if got := reloaded[k]; got != want {
			t.Errorf("%s: saved %q, loaded %q", k, want, got)
		}
	}
}

// TestSave_UnrepresentableValue tests that a value gotenv cannot read back
// fails instead of being stored changed
func TestSave_UnrepresentableValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	err := Save(path, map[string]string{"BAD": `it's C:\new`})
	if err == nil {
		t.Fatal("expected error for a value with both a single quote and a backslash escape")
	}
	if !strings.Contains(err.Error(), "BAD") {
		t.Errorf("error should name the key, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written when a value is rejected")
	}
}
