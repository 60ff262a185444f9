// Package bootstrap sequences a machine bootstrap run: preflight checks,
// credential collection, toolchain provisioning, repository materialization
// and the delegated configuration run. The driver owns what the stages must
// not do themselves: ordering, exit codes, profile updates and the finalizer
// that removes the vault passphrase file no matter how the run ends.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/credentials"
	"github.com/joeldee/rigup/pkg/delegate"
	"github.com/joeldee/rigup/pkg/execute"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/materialize"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/preflight"
	"github.com/joeldee/rigup/pkg/profile"
	"github.com/joeldee/rigup/pkg/provision"
	"github.com/joeldee/rigup/pkg/secret"
	"github.com/joeldee/rigup/pkg/types"
)

// Options wires the dependencies of a bootstrap run
type Options struct {
	// Config is the merged configuration for every stage
	Config *config.Config

	// Runner executes external commands
	Runner execute.Runner

	// FS is the filesystem abstraction the stages write through
	FS types.FS

	// Paths resolves every location the run touches
	Paths paths.Paths

	// Prompter collects the access token and the vault passphrase
	Prompter types.Prompter

	// Confirmer asks before a pre-existing checkout is moved aside
	Confirmer types.Confirmer

	// Announce, when set, is told which stage is about to run
	Announce func(types.StageName)

	// Report, when set, receives each stage result as it lands
	Report func(types.StageResult)

	// DryRun walks the stages without prompting, installing or cloning
	DryRun bool

	// Force reinstalls the toolchain even when it is already user-local
	Force bool
}

// Result is the outcome of a full bootstrap run
type Result struct {
	// Stages holds the executed stages' results in order
	Stages []types.StageResult

	// Mutations are the profile changes the run produced
	Mutations []types.ProfileMutation

	// ExitCode is what the process should exit with
	ExitCode int
}

// Run executes the bootstrap sequence. A fatal stage stops the run with exit
// code 1. A failed delegation is the repository's problem to fix, not a
// failed bootstrap, so it warns and exits 0. The vault passphrase file is
// removed before Run returns, on every path including interrupts.
func Run(ctx context.Context, opts Options) Result {
	log := logging.GetLogger("bootstrap")
	done := logging.LogOperationStart(log, "bootstrap")
	defer done()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		res   Result
		token *secret.Buffer
		vault *credentials.Guard
	)

	// The passphrase file goes first; the token buffer is normally closed by
	// the clone already
	defer func() {
		if vault != nil {
			if err := vault.Remove(); err != nil {
				log.Error().Err(err).Str("file", vault.Path()).
					Msg("Could not remove the vault passphrase file")
			}
		}
		if token != nil && !token.Closed() {
			_ = token.Close()
		}
	}()

	record := func(stage types.StageResult) {
		res.Stages = append(res.Stages, stage)
		if opts.Report != nil {
			opts.Report(stage)
		}
	}

	announce := func(stage types.StageName) {
		if opts.Announce != nil {
			opts.Announce(stage)
		}
	}

	announce(types.StagePreflight)
	pre := preflight.Check(ctx, preflight.Options{
		Config: opts.Config.Preflight,
		Runner: opts.Runner,
	})
	record(pre)
	if pre.IsFatal() {
		res.ExitCode = 1
		return res
	}

	announce(types.StageCredentials)
	if opts.DryRun {
		record(types.Ok(types.StageCredentials, "dry run: credentials not collected"))
	} else {
		collected, cred := credentials.Collect(credentials.Options{
			Prompter: opts.Prompter,
			FS:       opts.FS,
			Paths:    opts.Paths,
		})
		record(cred)
		if cred.IsFatal() {
			res.ExitCode = 1
			return res
		}
		token = collected.Token
		vault = collected.Vault
	}

	announce(types.StageProvision)
	provisioned, prov := provision.Ensure(ctx, provision.Options{
		Config:         opts.Config.Provision,
		PackageManager: opts.Config.Preflight.PackageManager,
		Runner:         opts.Runner,
		Paths:          opts.Paths,
		Force:          opts.Force,
		DryRun:         opts.DryRun,
	})
	if provisioned != nil {
		res.Mutations = provisioned.Mutations
		prov = withProfileNotices(prov, opts, provisioned.Mutations)
	}
	record(prov)
	if prov.IsFatal() {
		res.ExitCode = 1
		return res
	}

	announce(types.StageMaterialize)
	mat := materialize.Clone(ctx, materialize.Options{
		Config:    opts.Config.Repo,
		Token:     token,
		FS:        opts.FS,
		Paths:     opts.Paths,
		Confirmer: opts.Confirmer,
		DryRun:    opts.DryRun,
	})
	token = nil // the stage closed it
	record(mat)
	if mat.IsFatal() {
		res.ExitCode = 1
		return res
	}

	announce(types.StageDelegate)
	del := delegate.Invoke(ctx, delegate.Options{
		Config:        opts.Config.Delegate,
		CloneDir:      materialize.TargetDir(opts.Config.Repo, opts.Paths),
		VaultPassFile: vaultPath(vault, opts.Paths),
		Runner:        opts.Runner,
		FS:            opts.FS,
		Paths:         opts.Paths,
		DryRun:        opts.DryRun,
	})
	record(del)

	return res
}

// withProfileNotices applies the stage's profile mutations and reports what
// happened as notices on the stage result. Apply failures degrade to
// do-it-yourself instructions instead of failing the stage.
func withProfileNotices(stage types.StageResult, opts Options, mutations []types.ProfileMutation) types.StageResult {
	if len(mutations) == 0 {
		return stage
	}

	if opts.DryRun {
		for _, mutation := range mutations {
			stage = stage.WithNotices(
				fmt.Sprintf("dry run: would ensure %q in %s", mutation.Line, mutation.File))
		}
		return stage
	}

	applied, err := profile.Apply(opts.FS, mutations)
	if err != nil {
		log := logging.GetLogger("bootstrap")
		log.Warn().Err(err).Msg("Profile update failed")
		for _, mutation := range mutations {
			stage = stage.WithNotices(
				fmt.Sprintf("could not update %s; add this line yourself: %s", mutation.File, mutation.Line))
		}
		return stage
	}
	for _, mutation := range applied {
		stage = stage.WithNotices(
			fmt.Sprintf("added to %s: %s (takes effect in new terminals)", mutation.File, mutation.Line))
	}
	return stage
}

// vaultPath resolves the passphrase file handed to the delegated run. The
// guard knows where the file was written; without one (dry run) the
// configured location stands in.
func vaultPath(vault *credentials.Guard, p paths.Paths) string {
	if vault != nil {
		return vault.Path()
	}
	return p.VaultPassFile()
}
