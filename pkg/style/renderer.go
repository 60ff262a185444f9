package style

import (
	"errors"
	"fmt"
	"strings"

	rigerrors "github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering bootstrap output
type Renderer interface {
	RenderSummary(results []types.StageResult) string
	RenderError(err error) string
	RenderProgress(current, total int, message string) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width: 80, // Default width, can be updated
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// RenderSummary renders the outcome of a bootstrap run
func (r *TerminalRenderer) RenderSummary(results []types.StageResult) string {
	return RenderRunSummary(results)
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	// Coded errors get their code shown so the log can be searched for it
	var rigupErr *rigerrors.RigupError
	if errors.As(err, &rigupErr) {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(rigupErr.Code)),
			err.Error())
	}

	// Generic error
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// RenderProgress renders a stage progress header
func (r *TerminalRenderer) RenderProgress(current, total int, message string) string {
	return fmt.Sprintf("%s %s %s",
		ProgressIndicator,
		SubtitleStyle.Render(fmt.Sprintf("[%d/%d]", current, total)),
		message)
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderSummary renders a plain bootstrap summary
func (r *PlainRenderer) RenderSummary(results []types.StageResult) string {
	if len(results) == 0 {
		return "No stages ran"
	}

	var result strings.Builder
	result.WriteString("Bootstrap summary:\n")

	for _, res := range results {
		result.WriteString(fmt.Sprintf("  %s: %s - %s\n", res.Stage, res.Status, res.Message))
		for _, notice := range res.Notices {
			result.WriteString(fmt.Sprintf("    note: %s\n", notice))
		}
	}

	result.WriteString(fmt.Sprintf("overall: %s", AggregateRunStatus(results)))

	return result.String()
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// RenderProgress renders plain progress
func (r *PlainRenderer) RenderProgress(current, total int, message string) string {
	return fmt.Sprintf("[%d/%d] %s", current, total, message)
}
