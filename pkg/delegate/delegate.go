// Package delegate hands control to the cloned repository's own bootstrap
// script. The script is an opaque collaborator: rigup points it at the vault
// passphrase file, streams its output and reports how it went. Its failure is
// a warning, never rigup's failure.
package delegate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/execute"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/types"
)

// ManifestFileName is the optional per-repository configuration file read
// from the clone root
const ManifestFileName = ".rigup.yml"

// VaultPassEnv is how ansible finds the passphrase file
const VaultPassEnv = "ANSIBLE_VAULT_PASSWORD_FILE"

// Manifest lets a repository adjust how its bootstrap is invoked
type Manifest struct {
	// EntryPoint overrides the configured entry point, relative to the
	// clone root
	EntryPoint string `yaml:"entry_point"`

	// Collections are extra galaxy collections installed before the run,
	// best effort
	Collections []string `yaml:"collections"`

	// Env adds environment variables to the entry point's invocation
	Env map[string]string `yaml:"env"`
}

// Options defines the parameters for the delegated run
type Options struct {
	// Config carries the entry point defaults
	Config config.DelegateConfig

	// CloneDir is the root of the fresh clone
	CloneDir string

	// VaultPassFile is exported to the script through VaultPassEnv
	VaultPassFile string

	// Runner executes the entry point and the galaxy installs
	Runner execute.Runner

	// FS is used for the entry point and manifest lookups
	FS types.FS

	// Paths resolves the pipx bin directory for the script's PATH
	Paths paths.Paths

	// DryRun reports what would run without running it
	DryRun bool
}

// Invoke runs the repository's bootstrap entry point. A missing entry point
// or a non-zero exit is reported as a warning with guidance; neither changes
// rigup's own exit code.
func Invoke(ctx context.Context, opts Options) types.StageResult {
	log := logging.GetLogger("delegate")

	entry := opts.Config.EntryPoint
	if entry == "" {
		entry = "ansible/bootstrap.sh"
	}

	if opts.DryRun {
		log.Info().Str("entry", entry).Msg("Dry run, skipping delegation")
		return types.Ok(types.StageDelegate,
			fmt.Sprintf("dry run: would run %s", entry))
	}

	manifest, manifestNotice := loadManifest(opts.FS, opts.CloneDir)
	if manifest != nil && manifest.EntryPoint != "" {
		entry = manifest.EntryPoint
	}

	entryPath := filepath.Join(opts.CloneDir, entry)
	if _, err := opts.FS.Stat(entryPath); err != nil {
		return missingEntryPoint(opts, entryPath)
	}
	entryDir := filepath.Dir(entryPath)

	var notices []string
	if manifestNotice != "" {
		notices = append(notices, manifestNotice)
	}
	notices = append(notices, installRequirements(ctx, opts, entryDir)...)
	notices = append(notices, installCollections(ctx, opts, manifest)...)

	env := map[string]string{
		VaultPassEnv: opts.VaultPassFile,
		// The script needs the freshly installed tools even when the
		// profile mutation has not been sourced yet
		"PATH": opts.Paths.UserBinDir() + string(os.PathListSeparator) + os.Getenv("PATH"),
	}
	if manifest != nil {
		for key, value := range manifest.Env {
			env[key] = value
		}
	}

	log.Info().Str("entry", entryPath).Str("dir", entryDir).Msg("Delegating to the repository")

	result := opts.Runner.Run(ctx, execute.Spec{
		Name:    entryPath,
		Dir:     entryDir,
		Env:     env,
		Stream:  opts.Config.StreamOutput,
		Timeout: -1, // a full configuration run takes as long as it takes
	})
	if !result.Success {
		log.Warn().Int("exitCode", result.ExitCode).Msg("Entry point failed")
		warn := types.Warn(types.StageDelegate,
			fmt.Sprintf("%s exited with status %d", entry, result.ExitCode),
			errors.Wrapf(result.Failure(), errors.ErrEntryPointFailed,
				"entry point %s failed", entry))
		return warn.WithNotices(append(notices,
			fmt.Sprintf("fix the failure, then re-run: cd %s && ./%s", entryDir, filepath.Base(entryPath)),
			"the vault passphrase file is removed when rigup exits, so provide the passphrase again",
		)...)
	}

	return types.Ok(types.StageDelegate, "configuration run completed").
		WithNotices(notices...)
}

// missingEntryPoint reports the absent script, pointing at the legacy
// location when one exists there. The legacy script is never run
// automatically.
func missingEntryPoint(opts Options, entryPath string) types.StageResult {
	warn := types.Warn(types.StageDelegate,
		fmt.Sprintf("no entry point at %s", entryPath),
		errors.Newf(errors.ErrEntryPointMissing, "missing entry point %s", entryPath))

	legacy := opts.Config.LegacyEntryPoint
	if legacy == "" {
		legacy = "bootstrap.sh"
	}
	legacyPath := filepath.Join(opts.CloneDir, legacy)
	if _, err := opts.FS.Stat(legacyPath); err == nil {
		return warn.WithNotices(
			fmt.Sprintf("found %s; inspect it and run it yourself if it is what you want", legacyPath))
	}

	return warn.WithNotices("the repository has no bootstrap script to run")
}

// loadManifest reads the optional manifest. A missing file is the normal
// case; an unparseable one is reported and otherwise ignored.
func loadManifest(fsys types.FS, cloneDir string) (*Manifest, string) {
	path := filepath.Join(cloneDir, ManifestFileName)

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, ""
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		log := logging.GetLogger("delegate")
		log.Warn().
			Err(errors.Wrapf(err, errors.ErrManifestInvalid, "parse %s", path)).
			Msg("Ignoring invalid manifest")
		return nil, fmt.Sprintf("ignoring %s: not valid YAML", path)
	}

	return &manifest, ""
}

// installRequirements installs the role and collection requirements file
// sitting next to the entry point, when there is one. Best effort.
func installRequirements(ctx context.Context, opts Options, entryDir string) []string {
	requirements := filepath.Join(entryDir, "requirements.yml")
	if _, err := opts.FS.Stat(requirements); err != nil {
		return nil
	}

	result := opts.Runner.Run(ctx, execute.Spec{
		Name: galaxyBin(opts),
		Args: []string{"install", "-r", "requirements.yml"},
		Dir:  entryDir,
	})
	if !result.Success {
		log := logging.GetLogger("delegate")
		log.Warn().
			Int("exitCode", result.ExitCode).
			Msg("Requirements install failed")
		return []string{fmt.Sprintf("requirements from %s did not install; the run may miss roles", requirements)}
	}
	return nil
}

// installCollections installs the manifest's extra galaxy collections.
// Best effort.
func installCollections(ctx context.Context, opts Options, manifest *Manifest) []string {
	if manifest == nil {
		return nil
	}

	var notices []string
	for _, collection := range manifest.Collections {
		result := opts.Runner.Run(ctx, execute.Spec{
			Name: galaxyBin(opts),
			Args: []string{"collection", "install", collection},
		})
		if !result.Success {
			log := logging.GetLogger("delegate")
			log.Warn().
				Str("collection", collection).
				Int("exitCode", result.ExitCode).
				Msg("Collection install failed")
			notices = append(notices,
				fmt.Sprintf("galaxy collection %s did not install", collection))
		}
	}
	return notices
}

// galaxyBin resolves ansible-galaxy, falling back to the pipx bin directory
// that may not be on this process's PATH
func galaxyBin(opts Options) string {
	if resolved, err := opts.Runner.LookPath("ansible-galaxy"); err == nil {
		return resolved
	}
	return filepath.Join(opts.Paths.UserBinDir(), "ansible-galaxy")
}
