// Package azclitest provides a scripted az runner for tests.
package azclitest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/azcli"
)

// Response is a canned result for invocations matching a prefix.
type Response struct {
	Prefix string
	Output string
	Err    error
}

// Runner records every invocation and answers from a list of responses. The
// longest matching prefix wins; unmatched invocations succeed with no output.
type Runner struct {
	mu        sync.Mutex
	responses []Response
	calls     [][]string
}

// NewRunner creates an empty fake runner.
func NewRunner() *Runner {
	return &Runner{}
}

// On registers output for invocations whose joined args start with prefix.
func (r *Runner) On(prefix, output string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, Response{Prefix: prefix, Output: output})
	return r
}

// Fail registers an error for invocations whose joined args start with prefix.
func (r *Runner) Fail(prefix string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, Response{Prefix: prefix, Err: err})
	return r
}

// Run implements azcli.Runner.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, append([]string{}, args...))
	joined := strings.Join(args, " ")

	var best *Response
	for i := range r.responses {
		resp := &r.responses[i]
		if strings.HasPrefix(joined, resp.Prefix) && (best == nil || len(resp.Prefix) > len(best.Prefix)) {
			best = resp
		}
	}
	if best == nil {
		return nil, nil
	}
	if best.Err != nil {
		return nil, fmt.Errorf("az %s: %w", strings.Join(azcli.RedactArgs(args), " "), best.Err)
	}
	return []byte(best.Output), nil
}

// Calls returns every recorded invocation as a space-joined string.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = strings.Join(c, " ")
	}
	return out
}

// Called reports whether any invocation started with prefix.
func (r *Runner) Called(prefix string) bool {
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Count returns how many invocations started with prefix.
func (r *Runner) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
