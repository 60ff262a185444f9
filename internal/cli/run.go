package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeldee/rigup/pkg/bootstrap"
	"github.com/joeldee/rigup/pkg/execute"
	"github.com/joeldee/rigup/pkg/filesystem"
	"github.com/joeldee/rigup/pkg/style"
	"github.com/joeldee/rigup/pkg/types"
	"github.com/joeldee/rigup/pkg/ui"
	"github.com/joeldee/rigup/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

// ErrBootstrapFailed marks a run that already rendered its own failure.
// main recognizes it and exits non-zero without printing anything more.
var ErrBootstrapFailed = errors.New("bootstrap failed")

// runOptions carries the root command's flag values into a run
type runOptions struct {
	ConfigFile string
	Format     string
	DryRun     bool
	Force      bool
}

// runBootstrap wires the real dependencies and executes a full run
func runBootstrap(cmd *cobra.Command, opts runOptions) error {
	format, err := ui.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	renderer := ui.NewRenderer(format)

	cfg, p, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	total := len(types.StageSequence)
	var current int

	result := bootstrap.Run(cmd.Context(), bootstrap.Options{
		Config:    cfg,
		Runner:    execute.NewOS(opts.DryRun),
		FS:        filesystem.NewOS(),
		Paths:     p,
		Prompter:  ui.NewTerminalPrompter(),
		Confirmer: confirmations.NewConsoleDialog(),
		Announce: func(stage types.StageName) {
			current++
			if verbs, ok := style.StageVerbs[stage]; ok {
				fmt.Println(renderer.RenderProgress(current, total, verbs.Running))
			}
		},
		DryRun: opts.DryRun,
		Force:  opts.Force,
	})

	fmt.Println()
	fmt.Println(renderer.RenderSummary(result.Stages))

	if result.ExitCode != 0 {
		if last := result.Stages[len(result.Stages)-1]; last.Err != nil {
			fmt.Fprintln(os.Stderr, renderer.RenderError(last.Err))
		}
		return ErrBootstrapFailed
	}
	return nil
}
