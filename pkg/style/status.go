package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joeldee/rigup/pkg/types"
	"github.com/pterm/pterm"
)

// StageVerbs defines in-progress and completed phrasing for each stage
var StageVerbs = map[types.StageName]struct {
	Running string
	Done    string
}{
	types.StagePreflight:   {Running: "Checking the environment", Done: "environment checks passed"},
	types.StageCredentials: {Running: "Collecting credentials", Done: "credentials collected"},
	types.StageProvision:   {Running: "Provisioning Ansible", Done: "Ansible ready"},
	types.StageMaterialize: {Running: "Fetching the repository", Done: "repository in place"},
	types.StageDelegate:    {Running: "Handing off to the playbook", Done: "playbook finished"},
}

// StatusStyle returns the appropriate pterm style for a stage status
func StatusStyle(status types.StageStatus) *pterm.Style {
	switch status {
	case types.StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusWarn:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case types.StatusFatal:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusIndicator returns the one-character marker for a stage status
func StatusIndicator(status types.StageStatus) string {
	switch status {
	case types.StatusOK:
		return SuccessIndicator
	case types.StatusWarn:
		return WarningIndicator
	case types.StatusFatal:
		return ErrorIndicator
	default:
		return PendingIndicator
	}
}

// StageStyle returns the accent style for a stage name
func StageStyle(stage types.StageName) lipgloss.Style {
	switch stage {
	case types.StagePreflight:
		return PreflightStyle
	case types.StageCredentials:
		return CredentialStyle
	case types.StageProvision:
		return ProvisionStyle
	case types.StageMaterialize:
		return RepositoryStyle
	case types.StageDelegate:
		return DelegateStyle
	default:
		return NormalStyle
	}
}

// RenderStageLine renders a single stage outcome line
func RenderStageLine(res types.StageResult) string {
	// Fixed-width stage column so messages align across the summary
	stageName := fmt.Sprintf("%-12s", string(res.Stage))
	styledStage := StageStyle(res.Stage).Render(stageName)

	message := res.Message
	if message == "" {
		if verbs, ok := StageVerbs[res.Stage]; ok {
			message = verbs.Done
		}
	}

	line := fmt.Sprintf("  %s %s : %s", StatusIndicator(res.Status), styledStage, message)

	// Notices go underneath their stage, indented one level further
	for _, notice := range res.Notices {
		line += "\n" + Indent(fmt.Sprintf("%s %s", InfoIndicator, MutedStyle.Render(notice)), 3)
	}

	return line
}

// RenderRunSummary renders the outcome of a full bootstrap run: one line
// per stage, then the overall verdict.
func RenderRunSummary(results []types.StageResult) string {
	if len(results) == 0 {
		return MutedStyle.Render("No stages ran")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Bootstrap summary") + "\n")

	for _, res := range results {
		result.WriteString(RenderStageLine(res) + "\n")
	}

	result.WriteString("\n")
	result.WriteString(renderVerdict(results))

	return result.String()
}

// renderVerdict produces the closing line of the summary. A delegation
// warning does not fail the run, so the verdict tells warnings apart
// from a completed bootstrap.
func renderVerdict(results []types.StageResult) string {
	switch AggregateRunStatus(results) {
	case types.StatusFatal:
		return fmt.Sprintf("%s %s", ErrorIndicator, StatusStyle(types.StatusFatal).Sprint("bootstrap failed"))
	case types.StatusWarn:
		return fmt.Sprintf("%s %s", WarningIndicator, StatusStyle(types.StatusWarn).Sprint("bootstrap finished with warnings"))
	default:
		return fmt.Sprintf("%s %s", SuccessIndicator, StatusStyle(types.StatusOK).Sprint("bootstrap complete"))
	}
}

// AggregateRunStatus determines the overall status of a run from its stages
func AggregateRunStatus(results []types.StageResult) types.StageStatus {
	overall := types.StatusOK
	for _, res := range results {
		switch res.Status {
		case types.StatusFatal:
			return types.StatusFatal
		case types.StatusWarn:
			overall = types.StatusWarn
		}
	}
	return overall
}
