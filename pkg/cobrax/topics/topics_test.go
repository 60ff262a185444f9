package topics

import (
	"bytes"
	"io"
	"os"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"stages.md":           &fstest.MapFile{Data: []byte("# Stages\n\nThe run walks five stages in order.\n")},
		"credentials.md":      &fstest.MapFile{Data: []byte("# Credentials\n\nTokens stay in memory.\n")},
		"option-dry-run.md":   &fstest.MapFile{Data: []byte("# Dry Run\n\nNothing is changed.\n")},
		"guides/recovery.txt": &fstest.MapFile{Data: []byte("Re-run after fixing the failure.\n")},
		"assets/logo.json":    &fstest.MapFile{Data: []byte(`{"skip": true}`)},
	}
}

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

func TestScanTopics(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	names := tm.ListTopics()
	assert.ElementsMatch(t, []string{"stages", "credentials", "option-dry-run", "recovery"}, names,
		"markdown and text files become topics, other extensions do not")
}

func TestScanTopics_NilFS(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func TestScanTopics_CustomExtensions(t *testing.T) {
	tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txt"}})
	require.NoError(t, tm.scanTopics())

	names := tm.ListTopics()
	assert.ElementsMatch(t, []string{"recovery"}, names)
}

func TestGetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	topic, ok := tm.GetTopic("stages")
	require.True(t, ok)
	assert.Equal(t, "stages", topic.Name)
	assert.Contains(t, topic.Content, "five stages")

	_, ok = tm.GetTopic("nope")
	assert.False(t, ok)
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	// --dry-run and dry-run both resolve to the option-dry-run topic
	topic, ok := tm.GetTopic("--dry-run")
	require.True(t, ok)
	assert.Equal(t, "option-dry-run", topic.Name)

	topic, ok = tm.GetTopic("dry-run")
	require.True(t, ok)
	assert.Equal(t, "option-dry-run", topic.Name)
}

func TestInitialize_TopicHelp(t *testing.T) {
	rootCmd := &cobra.Command{Use: "rigup"}
	require.NoError(t, Initialize(rootCmd, topicFS()))

	rootCmd.SetArgs([]string{"help", "credentials"})
	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "Tokens stay in memory.")
}

func TestInitialize_TopicsList(t *testing.T) {
	rootCmd := &cobra.Command{Use: "rigup"}
	require.NoError(t, Initialize(rootCmd, topicFS()))

	rootCmd.SetArgs([]string{"help", "topics"})
	output := captureOutput(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, output, "General topics:")
	assert.Contains(t, output, "stages")
	assert.Contains(t, output, "Option topics:")
	assert.Contains(t, output, "--dry-run")
	assert.Contains(t, output, "rigup help <topic>")
}

func TestInitialize_CommandHelpStillWorks(t *testing.T) {
	rootCmd := &cobra.Command{Use: "rigup"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	require.NoError(t, Initialize(rootCmd, topicFS()))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"help", "version"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Show version information")
}

func TestInitialize_ReplacesHelpCommand(t *testing.T) {
	rootCmd := &cobra.Command{Use: "rigup"}
	require.NoError(t, Initialize(rootCmd, topicFS()))

	var helpCmds int
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			helpCmds++
		}
	}
	assert.Equal(t, 1, helpCmds)
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Heading\n", r.Render("# Heading\n", ".md"))
}

func TestGlamourRenderer_NonMarkdownPassthrough(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text\n", r.Render("plain text\n", ".txt"))
}
