// Package ui owns everything that talks to the user's terminal: output
// format detection, renderer selection, confirmation dialogs and no-echo
// secret prompts.
package ui

import (
	"os"

	"github.com/joeldee/rigup/pkg/style"
)

// NewRenderer creates a renderer for the given format. FormatAuto picks
// based on what stdout is connected to.
func NewRenderer(format Format) style.Renderer {
	if format == FormatAuto {
		format = DetectFormat(os.Stdout)
	}

	switch format {
	case FormatTerminal:
		return style.NewTerminalRenderer()
	default:
		return style.NewPlainRenderer()
	}
}
