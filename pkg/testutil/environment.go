// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/joeldee/rigup/pkg/filesystem"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	HomeDir   string
	WorkDir   string
	ConfigDir string
	StateDir  string

	// Core dependencies
	FS    types.FS
	Paths paths.Paths

	// Environment type
	Type EnvType

	// Test context
	t       *testing.T
	tempDir string // Only used for EnvIsolated
	cleanup []func()
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	}

	// Set environment variables so path resolution lands inside the sandbox
	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvWorkDir, env.WorkDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvDataDir, filepath.Join(env.HomeDir, ".local", "share", paths.RigupDirName))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv(paths.EnvVaultPassFile, filepath.Join(env.HomeDir, ".vault_pass.txt"))
	t.Setenv(paths.EnvPipxBinDir, filepath.Join(env.HomeDir, ".local", "bin"))

	// Create core dependencies
	if env.Paths == nil {
		pathsInstance, err := paths.New("", "")
		if err != nil {
			t.Fatalf("Failed to create paths: %v", err)
		}
		env.Paths = pathsInstance
	}

	// Ensure cleanup
	t.Cleanup(func() {
		env.Cleanup()
	})

	return env
}

// setupMemoryEnvironment configures a pure in-memory environment
func (env *TestEnvironment) setupMemoryEnvironment() {
	env.HomeDir = "/virtual/home"
	env.WorkDir = "/virtual/home/repo"
	env.ConfigDir = "/virtual/home/.config/rigup"
	env.StateDir = "/virtual/home/.local/state/rigup"

	// Create memory filesystem
	env.FS = filesystem.NewMemory()

	// Create base directories
	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.WorkDir, 0755)
	_ = env.FS.MkdirAll(env.ConfigDir, 0755)
	_ = env.FS.MkdirAll(env.StateDir, 0755)
}

// setupIsolatedEnvironment configures a real filesystem in temp directory
func (env *TestEnvironment) setupIsolatedEnvironment() {
	// Create temp directory
	tempDir := env.t.TempDir()
	env.tempDir = tempDir

	// Set up paths
	env.HomeDir = filepath.Join(tempDir, "home")
	env.WorkDir = filepath.Join(tempDir, "home", "repo")
	env.ConfigDir = filepath.Join(tempDir, "home", ".config", "rigup")
	env.StateDir = filepath.Join(tempDir, "home", ".local", "state", "rigup")

	// Create real filesystem
	env.FS = filesystem.NewOS()

	// Create base directories
	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.WorkDir, 0755)
	_ = env.FS.MkdirAll(env.ConfigDir, 0755)
	_ = env.FS.MkdirAll(env.StateDir, 0755)
}

// Cleanup performs environment cleanup
func (env *TestEnvironment) Cleanup() {
	// Run any registered cleanup functions
	for _, fn := range env.cleanup {
		fn()
	}
}

// VaultPassFile returns where the vault passphrase file lands in this environment
func (env *TestEnvironment) VaultPassFile() string {
	return env.Paths.VaultPassFile()
}

// WithConfig writes a user configuration file into the environment
func (env *TestEnvironment) WithConfig(content string) string {
	env.t.Helper()

	path := filepath.Join(env.ConfigDir, paths.ConfigFileName)
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// WithFileTree creates a complete file tree structure under the home directory
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.HomeDir, tree)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file
			if dir := filepath.Dir(fullPath); dir != "." {
				if err := fs.MkdirAll(dir, 0755); err != nil {
					t.Fatalf("Failed to create directory %s: %v", dir, err)
				}
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			// It's a directory
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
