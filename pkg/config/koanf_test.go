// pkg/config/koanf_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test configuration layering: defaults, user file, environment

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "github.com", cfg.Repo.Host)
	assert.Equal(t, "joeldee", cfg.Repo.Owner)
	assert.Equal(t, "joel-snips", cfg.Repo.Name)
	assert.Equal(t, "~/repo", cfg.Repo.WorkDir)
	assert.True(t, cfg.Preflight.RequireDarwin)
	assert.Equal(t, "brew", cfg.Preflight.PackageManager)
	assert.Equal(t, "~/.vault_pass.txt", cfg.Credentials.VaultPassFile)
	assert.Equal(t, "ansible", cfg.Provision.Package)
	assert.Equal(t, "ansible-playbook", cfg.Provision.Binary)
	assert.Equal(t, []string{"community.general"}, cfg.Provision.Collections)
	assert.Equal(t, "ansible/bootstrap.sh", cfg.Delegate.EntryPoint)
	assert.Equal(t, "bootstrap.sh", cfg.Delegate.LegacyEntryPoint)
	assert.True(t, cfg.Delegate.StreamOutput)
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "rigup.toml")
	content := `
[repo]
name = "other-snips"

[provision]
collections = ["community.general", "community.crypto"]
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "other-snips", cfg.Repo.Name)
	assert.Equal(t, "joeldee", cfg.Repo.Owner, "unset keys keep their defaults")
	assert.Equal(t, []string{"community.general", "community.crypto"}, cfg.Provision.Collections)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "joel-snips", cfg.Repo.Name)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("RIGUP_REPO__NAME", "env-snips")
	t.Setenv("RIGUP_DELEGATE__ENTRY_POINT", "setup/run.sh")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-snips", cfg.Repo.Name)
	assert.Equal(t, "setup/run.sh", cfg.Delegate.EntryPoint)
}

func TestCloneURL(t *testing.T) {
	tests := []struct {
		name     string
		repo     RepoConfig
		expected string
	}{
		{
			name:     "derived from parts",
			repo:     RepoConfig{Host: "github.com", Owner: "joeldee", Name: "joel-snips"},
			expected: "https://github.com/joeldee/joel-snips.git",
		},
		{
			name:     "explicit url wins",
			repo:     RepoConfig{Host: "github.com", Owner: "x", Name: "y", URL: "https://git.example.com/snips.git"},
			expected: "https://git.example.com/snips.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.repo.CloneURL())
		})
	}
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	// Section headers remain intact
	assert.Contains(t, content, "[repo]")
	assert.Contains(t, content, "[delegate]")

	// Values are commented out
	assert.Contains(t, content, `# name = "joel-snips"`)
	assert.NotContains(t, content, "\nname = ")

	// Generated content is itself valid input: loading it yields defaults
	dir := t.TempDir()
	configFile := filepath.Join(dir, "rigup.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "joel-snips", cfg.Repo.Name)
}
