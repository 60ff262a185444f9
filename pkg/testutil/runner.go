package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/joeldee/rigup/pkg/execute"
)

// MockRunner is a mock implementation of the execute.Runner interface for
// testing. Results are scripted per command name and every invocation is
// recorded so tests can assert on what would have run.
type MockRunner struct {
	mu sync.Mutex

	// LookPathFunc overrides binary resolution. When nil, names listed in
	// Binaries resolve and everything else reports not found.
	LookPathFunc func(name string) (string, error)

	// RunFunc overrides command execution entirely. When nil, results come
	// from the Results map keyed by command name.
	RunFunc func(ctx context.Context, spec execute.Spec) execute.Result

	// Binaries maps command names to the paths LookPath resolves them to.
	Binaries map[string]string

	// Results maps command names to the result Run returns for them.
	// Commands with no entry succeed with empty output.
	Results map[string]execute.Result

	// Calls records every Run invocation in order.
	Calls []execute.Spec
}

// NewMockRunner creates a mock runner where every command succeeds and every
// binary resolves.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Binaries: make(map[string]string),
		Results:  make(map[string]execute.Result),
	}
}

// LookPath resolves a binary against the scripted Binaries map.
func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LookPathFunc != nil {
		return m.LookPathFunc(name)
	}

	if path, ok := m.Binaries[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Run records the invocation and returns the scripted result.
func (m *MockRunner) Run(ctx context.Context, spec execute.Spec) execute.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, spec)

	if m.RunFunc != nil {
		return m.RunFunc(ctx, spec)
	}

	if result, ok := m.Results[spec.Name]; ok {
		return result
	}
	return execute.Result{Success: true}
}

// WithBinary registers a resolvable binary and returns the runner for chaining.
func (m *MockRunner) WithBinary(name, path string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Binaries[name] = path
	return m
}

// WithResult scripts the result for a command name and returns the runner for
// chaining.
func (m *MockRunner) WithResult(name string, result execute.Result) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Results[name] = result
	return m
}

// CallCount returns how many times a command name was run.
func (m *MockRunner) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call.Name == name {
			count++
		}
	}
	return count
}

// LastCall returns the most recent invocation of a command name, or nil if it
// never ran.
func (m *MockRunner) LastCall(name string) *execute.Spec {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Name == name {
			spec := m.Calls[i]
			return &spec
		}
	}
	return nil
}
