// Package execute runs external commands for the bootstrap stages. All
// subprocess invocations go through the Runner interface so tests can script
// outcomes without spawning processes.
package execute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds commands that have no explicit timeout. Long-running
// invocations (the delegated entry point, tool installs) set their own.
const DefaultTimeout = 5 * time.Minute

// Spec describes a single command invocation
type Spec struct {
	// Name is the binary to run, resolved against PATH
	Name string

	// Args are the command arguments
	Args []string

	// Dir is the working directory; empty means inherit
	Dir string

	// Env entries are appended to the inherited environment
	Env map[string]string

	// Stream mirrors the child's output to the user's terminal while still
	// capturing it
	Stream bool

	// Timeout overrides DefaultTimeout; zero means DefaultTimeout, negative
	// means no timeout
	Timeout time.Duration
}

// Result represents the result of a command execution
type Result struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Failure returns the error behind a failed result, synthesizing one from
// the exit code when no underlying error was captured. Returns nil for a
// successful result.
func (r Result) Failure() error {
	if r.Success {
		return nil
	}
	if r.Err != nil {
		return r.Err
	}
	return fmt.Errorf("exit code %d", r.ExitCode)
}

// Runner executes commands and resolves binaries
type Runner interface {
	// LookPath resolves a binary name against PATH
	LookPath(name string) (string, error)

	// Run executes the command described by spec
	Run(ctx context.Context, spec Spec) Result
}

// osRunner is the real Runner backed by os/exec
type osRunner struct {
	logger zerolog.Logger
	dryRun bool
}

// NewOS creates the real command runner. In dry-run mode commands are logged
// but not executed and report success.
func NewOS(dryRun bool) Runner {
	return &osRunner{
		logger: logging.GetLogger("execute"),
		dryRun: dryRun,
	}
}

func (r *osRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *osRunner) Run(ctx context.Context, spec Spec) Result {
	if spec.Name == "" {
		return Result{
			Err: errors.New(errors.ErrInvalidInput, "command name must not be empty"),
		}
	}

	logging.LogCommand(spec.Name, spec.Args)

	if r.dryRun {
		r.logger.Info().
			Str("command", spec.Name).
			Strs("args", spec.Args).
			Msg("Dry run mode - command would be executed")
		return Result{Success: true}
	}

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)

	// Set working directory if specified
	if spec.Dir != "" {
		if _, err := os.Stat(spec.Dir); os.IsNotExist(err) {
			return Result{
				Err: errors.Newf(errors.ErrFileAccess,
					"working directory does not exist: %s", spec.Dir),
			}
		}
		cmd.Dir = spec.Dir
	}

	// Set environment variables
	cmd.Env = os.Environ()
	for _, key := range sortedKeys(spec.Env) {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, spec.Env[key]))
	}

	// Capture output, mirroring it to the terminal when streaming
	var stdout, stderr bytes.Buffer
	if spec.Stream {
		cmd.Stdout = io.MultiWriter(os.Stdout, &stdout)
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	logging.LogDuration(start, spec.Name)

	result := Result{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		result.Err = errors.Wrapf(err, errors.ErrCommandFailed,
			"command failed: %s", spec.Name)

		r.logger.Error().
			Err(err).
			Str("command", spec.Name).
			Strs("args", spec.Args).
			Str("stderr", stderr.String()).
			Msg("Command execution failed")

		return result
	}

	r.logger.Debug().
		Str("command", spec.Name).
		Msg("Command executed successfully")

	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
