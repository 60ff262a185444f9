// Package types defines the core types and interfaces used throughout rigup.
// This includes the FS and prompt interfaces, stage results consumed by the
// bootstrap driver, and data structures like ProfileMutation and
// ConfirmationRequest.
package types
