// pkg/profile/profile_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test idempotent application of profile line mutations

package profile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeldee/rigup/pkg/testutil"
	"github.com/joeldee/rigup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathMutation(env *testutil.TestEnvironment) types.ProfileMutation {
	return types.ProfileMutation{
		File:   filepath.Join(env.HomeDir, ".zprofile"),
		Line:   `export PATH="$HOME/.local/bin:$PATH"`,
		Reason: "pipx installs user-local binaries here",
	}
}

func readProfile(t *testing.T, env *testutil.TestEnvironment, file string) string {
	t.Helper()
	data, err := env.FS.ReadFile(file)
	require.NoError(t, err)
	return string(data)
}

func TestApply_CreatesFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)

	applied, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, mutation.Key(), applied[0].Key())

	content := readProfile(t, env, mutation.File)
	assert.Equal(t,
		"# pipx installs user-local binaries here\n"+
			`export PATH="$HOME/.local/bin:$PATH"`+"\n",
		content)
}

func TestApply_AppendsToExisting(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)
	require.NoError(t, env.FS.WriteFile(mutation.File, []byte("export EDITOR=vim\n"), 0o644))

	applied, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	require.Len(t, applied, 1)

	content := readProfile(t, env, mutation.File)
	assert.Equal(t,
		"export EDITOR=vim\n"+
			"\n"+
			"# pipx installs user-local binaries here\n"+
			`export PATH="$HOME/.local/bin:$PATH"`+"\n",
		content)
}

func TestApply_MissingTrailingNewline(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)
	require.NoError(t, env.FS.WriteFile(mutation.File, []byte("export EDITOR=vim"), 0o644))

	_, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)

	content := readProfile(t, env, mutation.File)
	assert.Contains(t, content, "export EDITOR=vim\n\n# pipx")
}

func TestApply_SkipsPresentLine(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)
	existing := "# hand-written years ago\n" + mutation.Line + "\n"
	require.NoError(t, env.FS.WriteFile(mutation.File, []byte(existing), 0o644))

	applied, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, existing, readProfile(t, env, mutation.File))
}

func TestApply_PresenceIgnoresSurroundingWhitespace(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)
	existing := "  " + mutation.Line + "  \n"
	require.NoError(t, env.FS.WriteFile(mutation.File, []byte(existing), 0o644))

	applied, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestApply_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)

	first, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	require.Len(t, first, 1)
	afterFirst := readProfile(t, env, mutation.File)

	second, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, afterFirst, readProfile(t, env, mutation.File))
}

func TestApply_DeduplicatesInput(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := pathMutation(env)

	applied, err := Apply(env.FS, []types.ProfileMutation{mutation, mutation})
	require.NoError(t, err)
	assert.Len(t, applied, 1)

	content := readProfile(t, env, mutation.File)
	assert.Equal(t, 1, strings.Count(content, mutation.Line))
}

func TestApply_MultipleFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	zprofile := pathMutation(env)
	bashrc := types.ProfileMutation{
		File:   filepath.Join(env.HomeDir, ".bashrc"),
		Line:   `export PATH="$HOME/.local/bin:$PATH"`,
		Reason: "pipx installs user-local binaries here",
	}

	applied, err := Apply(env.FS, []types.ProfileMutation{zprofile, bashrc})
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	assert.Contains(t, readProfile(t, env, zprofile.File), zprofile.Line)
	assert.Contains(t, readProfile(t, env, bashrc.File), bashrc.Line)
}

func TestApply_NoReasonOmitsComment(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mutation := types.ProfileMutation{
		File: filepath.Join(env.HomeDir, ".zprofile"),
		Line: "eval \"$(direnv hook zsh)\"",
	}

	_, err := Apply(env.FS, []types.ProfileMutation{mutation})
	require.NoError(t, err)

	content := readProfile(t, env, mutation.File)
	assert.Equal(t, mutation.Line+"\n", content)
}
