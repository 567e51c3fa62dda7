// Package envfile persists derived resource names to a dotenv file so that
// later runs, shell scripts and `docker compose` can reuse them.
//
// Parsing is done by gotenv. Writing quotes every value: gotenv.Marshal
// writes all-digit values as integers, which would drop the leading zeros of
// a suffix such as "00412345". Each quoted value is parsed back with gotenv
// before the file is written, so Save fails instead of storing a value that
// Load would return changed.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/names"
)

// Keys written by FromNames.
const (
	KeyResourceGroup     = "RESOURCE_GROUP"
	KeyRegistry          = "ACR_NAME"
	KeyEnvironment       = "ACA_ENV_NAME"
	KeyContainerApp      = "ACA_APP_NAME"
	KeyContainerInstance = "ACI_NAME"
	KeyImage             = "IMAGE_NAME"
	KeySuffix            = "NAME_SUFFIX"
	KeyLocation          = "LOCATION"
)

// Load reads a dotenv file. A missing file yields an empty map.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open env file %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return env, nil
}

// Save writes values to path with keys sorted. The file is written to a
// temporary sibling and renamed into place so readers never see a partial file.
func Save(path string, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		quoted, err := quoteValue(k, values[k])
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s=%s\n", k, quoted)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp env file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write env file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close env file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set env file permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace env file %s: %w", path, err)
	}
	return nil
}

// doubleQuoteEscaper escapes what gotenv unescapes inside double quotes. "$"
// is escaped so that values are never expanded as variables.
var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`, "\r", `\r`)

// quoteValue returns the double-quoted form of value, or the single-quoted
// literal form when gotenv would read the double-quoted one back differently
// (a backslash followed by "n", for example).
func quoteValue(key, value string) (string, error) {
	candidates := []string{`"` + doubleQuoteEscaper.Replace(value) + `"`}
	if !strings.Contains(value, "'") {
		candidates = append(candidates, "'"+value+"'")
	}
	for _, quoted := range candidates {
		env, err := gotenv.StrictParse(strings.NewReader(key + "=" + quoted + "\n"))
		if err == nil && env[key] == value {
			return quoted, nil
		}
	}
	return "", fmt.Errorf("value of %s cannot be stored in an env file", key)
}

// FromNames returns the env entries for a name set, its image reference and
// location.
func FromNames(set names.NameSet, image, location string) map[string]string {
	values := map[string]string{
		KeyResourceGroup:     set.ResourceGroup,
		KeyRegistry:          set.Registry,
		KeyEnvironment:       set.Environment,
		KeyContainerApp:      set.ContainerApp,
		KeyContainerInstance: set.ContainerInstance,
		KeySuffix:            set.Suffix,
	}
	if image != "" {
		values[KeyImage] = image
	}
	if location != "" {
		values[KeyLocation] = location
	}
	return values
}

// ApplyNames merges the name entries into values, keeping unrelated keys such
// as secrets the operator added by hand. values is modified in place.
func ApplyNames(values map[string]string, set names.NameSet, image, location string) map[string]string {
	if values == nil {
		values = map[string]string{}
	}
	for k, v := range FromNames(set, image, location) {
		values[k] = v
	}
	return values
}

// ToNames reads a name set back from values. It reports false when any name
// key is missing.
func ToNames(values map[string]string) (names.NameSet, bool) {
	set := names.NameSet{
		Suffix:            values[KeySuffix],
		ResourceGroup:     values[KeyResourceGroup],
		Registry:          values[KeyRegistry],
		Environment:       values[KeyEnvironment],
		ContainerApp:      values[KeyContainerApp],
		ContainerInstance: values[KeyContainerInstance],
	}
	for _, v := range []string{set.Suffix, set.ResourceGroup, set.Registry,
		set.Environment, set.ContainerApp, set.ContainerInstance} {
		if v == "" {
			return names.NameSet{}, false
		}
	}
	return set, true
}
