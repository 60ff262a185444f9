// Package provision installs the configuration tool. Ansible goes in
// user-locally through pipx so nothing touches the system Python, and a
// repeated run with a user-local install already in place is a no-op.
package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/execute"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/types"
)

// installTimeout bounds the install commands; pipx resolving an ansible
// dependency tree can take a while on a fresh machine
const installTimeout = 15 * time.Minute

// InstallState classifies where the tool binary was found during detection
type InstallState int

const (
	// Absent means the binary does not resolve at all
	Absent InstallState = iota

	// UserLocal means the binary resolves inside the pipx bin directory
	UserLocal

	// System means the binary resolves somewhere else (system Python, a
	// Homebrew formula); it gets replaced with a user-local install
	System
)

// String returns the display name for the install state
func (s InstallState) String() string {
	switch s {
	case Absent:
		return "absent"
	case UserLocal:
		return "user-local"
	case System:
		return "system"
	default:
		return "unknown"
	}
}

// Options defines the parameters for toolchain provisioning
type Options struct {
	// Config controls the package, detection binary and extension lists
	Config config.ProvisionConfig

	// PackageManager installs pipx when pipx itself is missing. Preflight
	// has already verified the manager exists.
	PackageManager string

	// Runner executes the install commands
	Runner execute.Runner

	// Paths resolves the pipx bin directory and the home directory
	Paths paths.Paths

	// Force reinstalls even when a user-local install is already in place
	Force bool

	// DryRun reports what would be installed without running any installs
	DryRun bool
}

// ProvisionResult carries what provisioning found and did
type ProvisionResult struct {
	// State is the classification before any install ran
	State InstallState

	// Installed is true when an install or replace actually ran
	Installed bool

	// Mutations are the shell profile lines the installation needs
	Mutations []types.ProfileMutation
}

// Ensure makes the configuration tool available user-locally. A user-local
// install is left alone, a system install is replaced, an absent one is
// installed. Extension failures never abort the run.
func Ensure(ctx context.Context, opts Options) (*ProvisionResult, types.StageResult) {
	log := logging.GetLogger("provision")

	pkg := opts.Config.Package
	if pkg == "" {
		pkg = "ansible"
	}
	binary := opts.Config.Binary
	if binary == "" {
		binary = "ansible-playbook"
	}

	state, resolved := detect(opts, binary)
	log.Debug().
		Str("binary", binary).
		Str("path", resolved).
		Stringer("state", state).
		Msg("Detected toolchain state")

	result := &ProvisionResult{
		State:     state,
		Mutations: []types.ProfileMutation{pathMutation(opts)},
	}

	if state == UserLocal && !opts.Force {
		stage := types.Ok(types.StageProvision,
			fmt.Sprintf("%s already installed at %s", pkg, resolved))
		if opts.DryRun {
			return result, stage
		}
		return result, finishWithExtensions(ctx, opts, pkg, result, stage)
	}

	if opts.DryRun {
		var message string
		switch state {
		case System:
			message = fmt.Sprintf("dry run: would replace the system %s with a user-local install", pkg)
		case UserLocal:
			message = fmt.Sprintf("dry run: would reinstall %s with pipx", pkg)
		default:
			message = fmt.Sprintf("dry run: would install %s with pipx", pkg)
		}
		return result, types.Ok(types.StageProvision, message)
	}

	if err := ensurePipx(ctx, opts); err != nil {
		return nil, types.Fatal(types.StageProvision,
			"could not install pipx", err)
	}

	args := []string{"install", "--include-deps", pkg}
	if state == System || opts.Force {
		// Replace whatever is shadowing the user-local path
		args = []string{"install", "--force", "--include-deps", pkg}
	}

	log.Info().Str("package", pkg).Strs("args", args).Msg("Installing toolchain")
	install := opts.Runner.Run(ctx, execute.Spec{
		Name:    "pipx",
		Args:    args,
		Timeout: installTimeout,
	})
	if !install.Success {
		return nil, types.Fatal(types.StageProvision,
			fmt.Sprintf("could not install %s with pipx", pkg),
			errors.Wrapf(install.Failure(), errors.ErrToolInstall,
				"pipx install %s failed", pkg))
	}

	result.Installed = true

	var message string
	if state == System {
		message = fmt.Sprintf("replaced the system %s with a user-local install", pkg)
	} else {
		message = fmt.Sprintf("installed %s with pipx", pkg)
	}

	stage := types.Ok(types.StageProvision, message)
	return result, finishWithExtensions(ctx, opts, pkg, result, stage)
}

// detect resolves the detection binary and classifies the install
func detect(opts Options, binary string) (InstallState, string) {
	resolved, err := opts.Runner.LookPath(binary)
	if err != nil {
		return Absent, ""
	}

	if filepath.Dir(filepath.Clean(resolved)) == filepath.Clean(opts.Paths.UserBinDir()) {
		return UserLocal, resolved
	}
	return System, resolved
}

// ensurePipx installs pipx with the host package manager when it is missing
func ensurePipx(ctx context.Context, opts Options) error {
	if _, err := opts.Runner.LookPath("pipx"); err == nil {
		return nil
	}

	manager := opts.PackageManager
	if manager == "" {
		manager = "brew"
	}

	log := logging.GetLogger("provision")
	log.Info().
		Str("manager", manager).
		Msg("pipx not found, installing it first")

	result := opts.Runner.Run(ctx, execute.Spec{
		Name:    manager,
		Args:    []string{"install", "pipx"},
		Timeout: installTimeout,
	})
	if !result.Success {
		return errors.Wrapf(result.Failure(), errors.ErrToolInstall,
			"%s install pipx failed", manager)
	}
	return nil
}

// finishWithExtensions installs the best-effort extensions and folds any
// failures into the stage result as a warning
func finishWithExtensions(ctx context.Context, opts Options, pkg string, result *ProvisionResult, stage types.StageResult) types.StageResult {
	failures := installExtensions(ctx, opts, pkg)
	if len(failures) == 0 {
		return stage
	}

	warn := types.Warn(types.StageProvision,
		fmt.Sprintf("%s; %d extension(s) failed to install", stage.Message, len(failures)),
		errors.New(errors.ErrToolExtension, "extension installation failed"))
	return warn.WithNotices(failures...)
}

// installExtensions installs the galaxy collections and pipx injections.
// Each failure is logged and reported, never fatal.
func installExtensions(ctx context.Context, opts Options, pkg string) []string {
	log := logging.GetLogger("provision")

	var failures []string

	for _, collection := range opts.Config.Collections {
		result := opts.Runner.Run(ctx, execute.Spec{
			Name:    toolPath(opts, "ansible-galaxy"),
			Args:    []string{"collection", "install", collection},
			Timeout: installTimeout,
		})
		if !result.Success {
			log.Warn().
				Str("collection", collection).
				Int("exitCode", result.ExitCode).
				Msg("Galaxy collection install failed")
			failures = append(failures,
				fmt.Sprintf("galaxy collection %s did not install; run 'ansible-galaxy collection install %s' later", collection, collection))
		}
	}

	for _, injection := range opts.Config.Injections {
		result := opts.Runner.Run(ctx, execute.Spec{
			Name:    "pipx",
			Args:    []string{"inject", pkg, injection},
			Timeout: installTimeout,
		})
		if !result.Success {
			log.Warn().
				Str("injection", injection).
				Int("exitCode", result.ExitCode).
				Msg("pipx inject failed")
			failures = append(failures,
				fmt.Sprintf("%s was not injected; run 'pipx inject %s %s' later", injection, pkg, injection))
		}
	}

	return failures
}

// toolPath resolves a freshly installed helper binary. The pipx bin
// directory may not be on this process's PATH yet, so fall back to it.
func toolPath(opts Options, name string) string {
	if resolved, err := opts.Runner.LookPath(name); err == nil {
		return resolved
	}
	return filepath.Join(opts.Paths.UserBinDir(), name)
}

// pathMutation is the profile line that keeps pipx-installed binaries on
// PATH in login shells
func pathMutation(opts Options) types.ProfileMutation {
	profile := opts.Config.ProfileFile
	if profile == "" {
		profile = "~/.zprofile"
	}

	binDir := opts.Paths.UserBinDir()
	display := binDir
	if home := opts.Paths.HomeDir(); strings.HasPrefix(binDir, home+string(filepath.Separator)) {
		display = "$HOME" + strings.TrimPrefix(binDir, home)
	}

	return types.ProfileMutation{
		File:   paths.ExpandHome(profile),
		Line:   fmt.Sprintf(`export PATH="%s:$PATH"`, display),
		Reason: "pipx installs user-local binaries here",
	}
}
