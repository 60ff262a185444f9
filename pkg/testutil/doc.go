// Package testutil provides utilities for testing rigup components.
//
// Key components:
//   - TestEnvironment: Core test orchestrator with isolation and cleanup
//   - MockRunner: Scripted command execution without spawning processes
//   - MockPrompter / MockConfirmer: Scripted interactive input
//   - Assertion helpers for values, strings, errors and files
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly for speed and isolation; use EnvIsolated only
//     when the code under test needs a real filesystem
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
