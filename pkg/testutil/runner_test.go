// pkg/testutil/runner_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test MockRunner scripting and call recording

package testutil

import (
	"context"
	"testing"

	"github.com/joeldee/rigup/pkg/execute"
)

func TestMockRunner_Defaults(t *testing.T) {
	runner := NewMockRunner()

	// Unknown commands succeed by default
	result := runner.Run(context.Background(), execute.Spec{Name: "pipx"})
	if !result.Success {
		t.Error("expected default success")
	}

	// Unknown binaries do not resolve by default
	if _, err := runner.LookPath("brew"); err == nil {
		t.Error("expected LookPath to fail for unregistered binary")
	}
}

func TestMockRunner_ScriptedResults(t *testing.T) {
	runner := NewMockRunner().
		WithBinary("brew", "/opt/homebrew/bin/brew").
		WithResult("ansible-playbook", execute.Result{
			Success:  false,
			ExitCode: 2,
			Stderr:   "playbook failed",
		})

	path, err := runner.LookPath("brew")
	if err != nil {
		t.Fatalf("LookPath failed: %v", err)
	}
	if path != "/opt/homebrew/bin/brew" {
		t.Errorf("wrong path: got %q", path)
	}

	result := runner.Run(context.Background(), execute.Spec{Name: "ansible-playbook"})
	if result.Success {
		t.Error("expected scripted failure")
	}
	if result.ExitCode != 2 {
		t.Errorf("wrong exit code: got %d", result.ExitCode)
	}
}

func TestMockRunner_RecordsCalls(t *testing.T) {
	runner := NewMockRunner()

	runner.Run(context.Background(), execute.Spec{Name: "pipx", Args: []string{"install", "ansible"}})
	runner.Run(context.Background(), execute.Spec{Name: "pipx", Args: []string{"inject", "ansible", "passlib"}})
	runner.Run(context.Background(), execute.Spec{Name: "git", Args: []string{"--version"}})

	if got := runner.CallCount("pipx"); got != 2 {
		t.Errorf("pipx call count: got %d, want 2", got)
	}
	if got := runner.CallCount("brew"); got != 0 {
		t.Errorf("brew call count: got %d, want 0", got)
	}

	last := runner.LastCall("pipx")
	if last == nil {
		t.Fatal("expected a recorded pipx call")
	}
	if len(last.Args) != 3 || last.Args[0] != "inject" {
		t.Errorf("wrong last call args: %v", last.Args)
	}

	if runner.LastCall("brew") != nil {
		t.Error("expected nil for never-run command")
	}
}

func TestMockRunner_RunFuncOverride(t *testing.T) {
	runner := NewMockRunner()
	runner.RunFunc = func(ctx context.Context, spec execute.Spec) execute.Result {
		return execute.Result{Success: true, Stdout: "ansible [core 2.17]"}
	}

	result := runner.Run(context.Background(), execute.Spec{Name: "ansible"})
	if result.Stdout != "ansible [core 2.17]" {
		t.Errorf("override not applied: got %q", result.Stdout)
	}

	// Overridden runs are still recorded
	if got := runner.CallCount("ansible"); got != 1 {
		t.Errorf("call count: got %d, want 1", got)
	}
}
