// Package config handles configuration management for rigup.
// Effective configuration is the merge of embedded defaults, the user's
// TOML file under the XDG config directory, and RIGUP_ environment
// overrides, in that order.
package config
