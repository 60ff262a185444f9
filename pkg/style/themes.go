package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background so output stays readable on
// both light and dark setups.
var (
	// Status colors
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#FFD54F"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}

	// Text colors
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	TextColor    = lipgloss.AdaptiveColor{Light: "#495057", Dark: "#E9ECEF"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
)

// Stage accent colors, one per bootstrap stage.
var (
	PreflightColor  = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}
	CredentialColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
	ProvisionColor  = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	RepositoryColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	DelegateColor   = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)
