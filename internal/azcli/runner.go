// Package azcli drives the Azure control plane through the az command-line
// tool. It is the only place in acadeploy that talks to Azure.
//
// The package is split into two layers:
//   - Runner: executes one az invocation and classifies its failure
//   - Client: typed operations (resource groups, registries, Container Apps
//     environments and apps, container instances, signed-in identity) built
//     on a Runner
//
// Shelling out keeps the tool's authentication identical to what the operator
// already uses interactively (`az login`, device code, managed identity in CI)
// without handling tokens here.
//
// ERROR CLASSIFICATION:
//   - ErrNotFound: the resource does not exist (az "show" on a missing resource)
//   - ErrNotLoggedIn: no account is signed in or the token has expired
//   - *CommandError: any other non-zero exit, carrying args and stderr
package azcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

var (
	// ErrNotFound reports a resource that does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNotLoggedIn reports a missing or expired az login session.
	ErrNotLoggedIn = errors.New("not logged in to Azure CLI (run 'az login')")
)

// Runner executes a single az invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// CommandError is returned for a failed az invocation. Err is ErrNotFound or
// ErrNotLoggedIn when the failure could be classified, so errors.Is works on
// the CommandError directly.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("az %s failed (exit %d): %s", strings.Join(RedactArgs(e.Args), " "), e.ExitCode, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs the real az binary.
type ExecRunner struct {
	Binary string    // Path or name of the az executable (default "az")
	Stderr io.Writer // Receives a copy of az stderr; defaults to the DEBUG log
}

// NewExecRunner creates a runner for the az binary on PATH.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Binary: "az",
		Stderr: logging.NewLevelWriter("DEBUG", "az"),
	}
}

// Run executes az with args. Output is always requested without color or
// progress spinners so that stdout can be parsed.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "az"
	}

	full := append(append([]string{}, args...), "--only-show-errors")
	logging.Debug("Running: %s %s", binary, strings.Join(RedactArgs(full), " "))

	var stdout, stderr bytes.Buffer
	// #nosec G204 - arguments are built from validated names, never a shell string
	cmd := exec.CommandContext(ctx, binary, full...)
	cmd.Stdout = &stdout
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("az %s: %w", strings.Join(RedactArgs(args), " "), ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("az CLI not found on PATH (install from https://aka.ms/azure-cli): %w", err)
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, classify(args, stderr.String(), exitCode, err)
	}

	return stdout.Bytes(), nil
}

// secretFlags take a secret value. Flags marked true take a list of
// name=value pairs, where only the value is masked.
var secretFlags = map[string]bool{
	"--password":                     false,
	"--registry-password":            false,
	"--secrets":                      true,
	"--secure-environment-variables": true,
}

const redacted = "***"

// RedactArgs returns a copy of args with secret flag values masked, for
// logging and error messages.
func RedactArgs(args []string) []string {
	out := make([]string, len(args))
	pairs, masking := false, false
	for i, arg := range args {
		if strings.HasPrefix(arg, "--") {
			pairs, masking = secretFlags[arg]
			out[i] = arg
			continue
		}
		switch {
		case !masking:
			out[i] = arg
		case pairs:
			if name, _, ok := strings.Cut(arg, "="); ok {
				out[i] = name + "=" + redacted
			} else {
				out[i] = redacted
			}
		default:
			out[i] = redacted
			masking = false
		}
	}
	return out
}

// classify maps az stderr text onto the package sentinel errors.
func classify(args []string, stderr string, exitCode int, cause error) *CommandError {
	lower := strings.ToLower(stderr)

	var err error
	switch {
	case strings.Contains(lower, "resourcenotfound"),
		strings.Contains(lower, "resourcegroupnotfound"),
		strings.Contains(lower, "could not be found"),
		strings.Contains(lower, "was not found"),
		strings.Contains(lower, "does not exist"):
		err = ErrNotFound
	case strings.Contains(lower, "az login"),
		strings.Contains(lower, "please run 'az login'"),
		strings.Contains(lower, "aadsts700082"),
		strings.Contains(lower, "no subscription found"):
		err = ErrNotLoggedIn
	default:
		err = cause
	}

	return &CommandError{
		Args:     args,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}
