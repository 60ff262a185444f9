package testutil

import (
	"fmt"

	"github.com/joeldee/rigup/pkg/types"
)

// MockPrompter is a mock implementation of the types.Prompter interface for
// testing. Secrets are scripted in order and each prompt label is recorded.
type MockPrompter struct {
	// PromptSecretFunc overrides prompting entirely. When nil, answers are
	// consumed from Secrets in order.
	PromptSecretFunc func(label string) ([]byte, error)

	// Secrets are returned one per prompt, in order. Running out of answers
	// fails the prompt.
	Secrets [][]byte

	// Labels records each prompt label in order.
	Labels []string

	next int
}

// NewMockPrompter creates a prompter that answers each prompt with the next
// scripted secret.
func NewMockPrompter(secrets ...string) *MockPrompter {
	m := &MockPrompter{}
	for _, s := range secrets {
		m.Secrets = append(m.Secrets, []byte(s))
	}
	return m
}

// PromptSecret returns the next scripted secret.
func (m *MockPrompter) PromptSecret(label string) ([]byte, error) {
	m.Labels = append(m.Labels, label)

	if m.PromptSecretFunc != nil {
		return m.PromptSecretFunc(label)
	}

	if m.next >= len(m.Secrets) {
		return nil, fmt.Errorf("no scripted answer for prompt %q", label)
	}

	// Hand out a copy so callers zeroing their buffer cannot corrupt later
	// assertions against Secrets.
	secret := make([]byte, len(m.Secrets[m.next]))
	copy(secret, m.Secrets[m.next])
	m.next++

	return secret, nil
}

// MockConfirmer is a mock implementation of the types.Confirmer interface for
// testing.
type MockConfirmer struct {
	// ConfirmFunc overrides confirmation entirely. When nil, Approve is
	// returned for every request.
	ConfirmFunc func(req types.ConfirmationRequest) (bool, error)

	// Approve is the answer given to every request when ConfirmFunc is nil.
	Approve bool

	// Requests records every confirmation request in order.
	Requests []types.ConfirmationRequest
}

// NewMockConfirmer creates a confirmer that answers every request the same
// way.
func NewMockConfirmer(approve bool) *MockConfirmer {
	return &MockConfirmer{Approve: approve}
}

// Confirm records the request and returns the scripted answer.
func (m *MockConfirmer) Confirm(req types.ConfirmationRequest) (bool, error) {
	m.Requests = append(m.Requests, req)

	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(req)
	}

	return m.Approve, nil
}
