// Package preflight verifies the host environment before anything is
// changed. All checks are diagnostics only; nothing here writes to disk.
package preflight

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/execute"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/types"
)

// Options defines the options for the preflight stage.
type Options struct {
	// Config holds the preflight section of the configuration.
	Config config.PreflightConfig

	// Runner resolves the package manager binary and runs the sudo probe.
	Runner execute.Runner

	// GOOS overrides the detected operating system. Empty means runtime.GOOS.
	GOOS string

	// EffectiveUID overrides the uid lookup. Nil means os.Geteuid.
	EffectiveUID func() int
}

// Check runs the environment checks. The first failed precondition is fatal;
// the sudo probe only produces a notice.
func Check(ctx context.Context, opts Options) types.StageResult {
	log := logging.GetLogger("preflight")
	log.Debug().Str("stage", "preflight").Msg("Executing stage")

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	euid := os.Geteuid
	if opts.EffectiveUID != nil {
		euid = opts.EffectiveUID
	}

	// OS family first: everything after assumes a Homebrew-style host
	if opts.Config.RequireDarwin && goos != "darwin" {
		log.Error().Str("goos", goos).Msg("Unsupported operating system")
		return types.Fatal(types.StagePreflight,
			fmt.Sprintf("this tool sets up macOS machines and cannot run on %s", goos),
			errors.Newf(errors.ErrUnsupportedOS, "unsupported operating system: %s", goos))
	}

	// Never as root: everything installed here must belong to the login user
	if uid := euid(); uid == 0 {
		log.Error().Int("euid", uid).Msg("Running as root")
		return types.Fatal(types.StagePreflight,
			"do not run as root; run as your normal login user",
			errors.New(errors.ErrRootUser, "refusing to run with effective uid 0"))
	}

	// Package manager must already be installed
	manager := opts.Config.PackageManager
	if manager == "" {
		manager = "brew"
	}

	managerPath, err := opts.Runner.LookPath(manager)
	if err != nil {
		log.Error().Str("manager", manager).Msg("Package manager not found")
		return types.Fatal(types.StagePreflight,
			fmt.Sprintf("%s was not found on PATH; install it from https://brew.sh and re-run", manager),
			errors.Wrapf(err, errors.ErrPkgManagerAbsent, "package manager %s not found", manager))
	}

	result := types.Ok(types.StagePreflight,
		fmt.Sprintf("%s found at %s", manager, managerPath))

	// Probe for cached sudo credentials. A failure just means a password
	// prompt may appear later in the run.
	probe := opts.Runner.Run(ctx, execute.Spec{Name: "sudo", Args: []string{"-n", "true"}})
	if !probe.Success {
		log.Debug().Msg("sudo probe failed, password prompts may appear later")
		result = result.WithNotices("sudo may ask for your password during setup")
	}

	return result
}
