// pkg/testutil/prompt_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test MockPrompter and MockConfirmer scripting

package testutil

import (
	"testing"

	"github.com/joeldee/rigup/pkg/types"
)

func TestMockPrompter_ScriptedSecrets(t *testing.T) {
	prompter := NewMockPrompter("token-value", "vault-pass")

	first, err := prompter.PromptSecret("Access token: ")
	if err != nil {
		t.Fatalf("first prompt failed: %v", err)
	}
	if string(first) != "token-value" {
		t.Errorf("first secret wrong: got %q", first)
	}

	second, err := prompter.PromptSecret("Vault passphrase: ")
	if err != nil {
		t.Fatalf("second prompt failed: %v", err)
	}
	if string(second) != "vault-pass" {
		t.Errorf("second secret wrong: got %q", second)
	}

	// Running out of answers is an error
	if _, err := prompter.PromptSecret("Third: "); err == nil {
		t.Error("expected error when out of scripted answers")
	}

	// Labels were recorded in order
	if len(prompter.Labels) != 3 {
		t.Fatalf("expected 3 recorded labels, got %d", len(prompter.Labels))
	}
	if prompter.Labels[0] != "Access token: " {
		t.Errorf("wrong first label: %q", prompter.Labels[0])
	}
}

func TestMockPrompter_HandsOutCopies(t *testing.T) {
	prompter := NewMockPrompter("secret")

	got, err := prompter.PromptSecret("prompt: ")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}

	// Zeroing the returned buffer must not corrupt the script
	for i := range got {
		got[i] = 0
	}
	if string(prompter.Secrets[0]) != "secret" {
		t.Error("scripted secret was corrupted by caller zeroing")
	}
}

func TestMockConfirmer(t *testing.T) {
	confirmer := NewMockConfirmer(true)

	req := types.ConfirmationRequest{
		ID:    "backup-existing",
		Title: "Back up existing directory?",
	}

	approved, err := confirmer.Confirm(req)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !approved {
		t.Error("expected approval")
	}

	if len(confirmer.Requests) != 1 {
		t.Fatalf("expected 1 recorded request, got %d", len(confirmer.Requests))
	}
	if confirmer.Requests[0].ID != "backup-existing" {
		t.Errorf("wrong recorded request ID: %q", confirmer.Requests[0].ID)
	}
}

func TestMockConfirmer_Decline(t *testing.T) {
	confirmer := NewMockConfirmer(false)

	approved, err := confirmer.Confirm(types.ConfirmationRequest{ID: "any"})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if approved {
		t.Error("expected decline")
	}
}
