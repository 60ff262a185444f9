// Package paths provides centralized path handling for rigup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joeldee/rigup/pkg/errors"
)

// Environment variable names
const (
	// EnvWorkDir overrides the directory repositories are cloned under
	EnvWorkDir = "RIGUP_WORKDIR"

	// EnvVaultPassFile overrides the vault passphrase file location
	EnvVaultPassFile = "RIGUP_VAULT_PASS_FILE"

	// EnvDataDir overrides the XDG data directory for rigup
	EnvDataDir = "RIGUP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for rigup
	EnvConfigDir = "RIGUP_CONFIG_DIR"

	// EnvPipxBinDir is honored because pipx itself honors it
	EnvPipxBinDir = "PIPX_BIN_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// RigupDirName is the directory name for rigup-specific files
	RigupDirName = "rigup"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "rigup.toml"

	// LogFileName is the name of the log file
	LogFileName = "rigup.log"

	// DefaultWorkDir is where repositories are cloned when nothing else is
	// configured
	DefaultWorkDir = "~/repo"

	// DefaultVaultPassFile is the conventional Ansible vault passphrase file
	DefaultVaultPassFile = "~/.vault_pass.txt"
)

// Paths provides centralized path management for rigup
type Paths interface {
	HomeDir() string
	WorkDir() string
	TargetPath(repoName string) string
	VaultPassFile() string
	UserBinDir() string
	DataDir() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

// paths provides centralized path management for rigup
type paths struct {
	// homeDir is the current user's home directory
	homeDir string

	// workDir is the parent directory repositories are cloned under
	workDir string

	// vaultPassFile is where the vault passphrase is persisted for ansible
	vaultPassFile string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance. workDir and vaultPassFile usually come
// from configuration; when empty they fall back to environment overrides and
// then to the defaults.
func New(workDir, vaultPassFile string) (Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{homeDir: home}

	// Work directory priority: explicit > env > default
	if workDir == "" {
		workDir = os.Getenv(EnvWorkDir)
	}
	if workDir == "" {
		workDir = DefaultWorkDir
	}
	p.workDir, err = normalize(workDir)
	if err != nil {
		return nil, err
	}

	// Vault passphrase file priority: explicit > env > default
	if vaultPassFile == "" {
		vaultPassFile = os.Getenv(EnvVaultPassFile)
	}
	if vaultPassFile == "" {
		vaultPassFile = DefaultVaultPassFile
	}
	p.vaultPassFile, err = normalize(vaultPassFile)
	if err != nil {
		return nil, err
	}

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// Data directory
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, RigupDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, RigupDirName)
	}

	// State directory. The xdg library caches environment values at init,
	// so XDG_STATE_HOME is read directly to honor overrides set afterwards.
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, RigupDirName)
	} else {
		p.xdgState = filepath.Join(p.homeDir, ".local", "state", RigupDirName)
	}
}

// normalize expands ~, makes the path absolute and cleans it
func normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// HomeDir returns the current user's home directory
func (p *paths) HomeDir() string {
	return p.homeDir
}

// WorkDir returns the parent directory repositories are cloned under
func (p *paths) WorkDir() string {
	return p.workDir
}

// TargetPath returns the clone destination for a repository name
func (p *paths) TargetPath(repoName string) string {
	return filepath.Join(p.workDir, repoName)
}

// VaultPassFile returns the vault passphrase file location
func (p *paths) VaultPassFile() string {
	return p.vaultPassFile
}

// UserBinDir returns the directory pipx installs binaries into
func (p *paths) UserBinDir() string {
	if binDir := os.Getenv(EnvPipxBinDir); binDir != "" {
		return expandHome(binDir)
	}
	return filepath.Join(p.homeDir, ".local", "bin")
}

// DataDir returns the XDG data directory for rigup
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for rigup
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for rigup
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// LogFilePath returns the path to the rigup log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	return normalize(path)
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
