package config

import (
	"strings"
)

// GenerateConfigContent returns the defaults rendered as a starter config
// file. Section headers and explanatory comments stay as they are; every
// assignment is commented out, so a freshly written file changes nothing
// until the user uncomments a value.
func GenerateConfigContent() string {
	lines := strings.Split(GetDefaultsContent(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, starterLine(line))
	}
	return strings.Join(out, "\n")
}

// starterLine comments out assignments and passes everything else through.
func starterLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		return line
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return line
	default:
		return "# " + line
	}
}
