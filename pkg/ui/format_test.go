package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeldee/rigup/pkg/style"
	"github.com/joeldee/rigup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "unknown", ui.Format(999).String())
}

func TestParseFormat(t *testing.T) {
	valid := map[string]ui.Format{
		"":         ui.FormatAuto,
		"auto":     ui.FormatAuto,
		"term":     ui.FormatTerminal,
		"terminal": ui.FormatTerminal,
		"TERM":     ui.FormatTerminal,
		"text":     ui.FormatText,
		"plain":    ui.FormatText,
		" text ":   ui.FormatText,
	}
	for input, want := range valid {
		got, err := ui.ParseFormat(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ui.ParseFormat("sparkly")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("non-terminal output is plain text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")

		f, err := os.Create(filepath.Join(t.TempDir(), "out"))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}

func TestNewRenderer(t *testing.T) {
	t.Run("terminal format", func(t *testing.T) {
		renderer := ui.NewRenderer(ui.FormatTerminal)
		assert.IsType(t, &style.TerminalRenderer{}, renderer)
	})

	t.Run("text format", func(t *testing.T) {
		renderer := ui.NewRenderer(ui.FormatText)
		assert.IsType(t, &style.PlainRenderer{}, renderer)
	})

	t.Run("auto picks a renderer", func(t *testing.T) {
		assert.NotNil(t, ui.NewRenderer(ui.FormatAuto))
	})
}
