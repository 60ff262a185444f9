package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Text styles
var (
	TitleStyle    = lipgloss.NewStyle().Foreground(HeadingColor).Bold(true).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(HeadingColor).Bold(true)
	NormalStyle   = lipgloss.NewStyle().Foreground(TextColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
)

// Stage accent styles
var (
	PreflightStyle  = lipgloss.NewStyle().Foreground(PreflightColor).Bold(true)
	CredentialStyle = lipgloss.NewStyle().Foreground(CredentialColor).Bold(true)
	ProvisionStyle  = lipgloss.NewStyle().Foreground(ProvisionColor).Bold(true)
	RepositoryStyle = lipgloss.NewStyle().Foreground(RepositoryColor).Bold(true)
	DelegateStyle   = lipgloss.NewStyle().Foreground(DelegateColor).Bold(true)
)

// Markers used in stage lines.
var (
	SuccessIndicator  = SuccessStyle.Render("✓")
	WarningIndicator  = WarningStyle.Render("!")
	ErrorIndicator    = ErrorStyle.Render("✗")
	InfoIndicator     = InfoStyle.Render("•")
	PendingIndicator  = MutedStyle.Render("○")
	ProgressIndicator = InfoStyle.Render("⟳")
)

// Indent pads s with two spaces per level.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
