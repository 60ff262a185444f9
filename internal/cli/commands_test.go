package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/joeldee/rigup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects stdout while fn runs and returns what was written
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestVersionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"version"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "rigup version")
}

func TestGenConfigCmd_PrintsDefaults(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"gen-config"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "[repo]")
	assert.Contains(t, output, "[provision]")
	assert.Contains(t, output, "joel-snips")
}

func TestGenConfigCmd_WriteCreatesFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	target := env.Paths.ConfigFilePath()

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"gen-config", "--write"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, target)
	content := testutil.ReadFile(t, target)
	assert.Contains(t, content, "[repo]")
}

func TestGenConfigCmd_WriteRefusesOverwrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	target := env.Paths.ConfigFilePath()

	first := NewRootCmd()
	first.SetArgs([]string{"gen-config", "--write"})
	captureOutput(t, func() {
		require.NoError(t, first.Execute())
	})
	before := testutil.ReadFile(t, target)

	second := NewRootCmd()
	second.SetArgs([]string{"gen-config", "--write"})
	err := second.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	testutil.AssertFileContent(t, target, before)
}

func TestConfigCmd_ShowsEffectiveConfig(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("RIGUP_REPO__NAME", "notes")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"config"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	// The environment override beat the embedded default
	assert.Contains(t, output, "notes")
	assert.NotContains(t, output, "joel-snips")
}

func TestConfigCmd_ReadsConfigFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	configPath := testutil.CreateFile(t, env.HomeDir, "custom.toml", "[repo]\nname = \"dots\"\n")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"--config", configPath, "config"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "dots")
}

func TestCompletionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"completion", "zsh"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "compdef")
}

func TestCompletionCmd_RejectsUnknownShell(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"completion", "tcsh"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	assert.Error(t, rootCmd.Execute())
}

func TestHelpTopic(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"help", "stages"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "preflight")
	assert.Contains(t, output, "delegate")
}

func TestTopicsCmd_ListsEmbeddedTopics(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"topics"})

	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "stages")
	assert.Contains(t, output, "credentials")
	assert.Contains(t, output, "--dry-run")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"bogus"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	assert.Error(t, rootCmd.Execute())
}
