package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joeldee/rigup/pkg/errors"
	"golang.org/x/term"
)

// TerminalPrompter reads secrets from the controlling terminal with echo
// disabled. When stdin is not a terminal (piped input, CI) it falls back to
// reading a line so scripted runs still work.
type TerminalPrompter struct {
	in     *os.File
	reader *bufio.Reader
}

// NewTerminalPrompter creates a prompter reading from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: os.Stdin}
}

// PromptSecret displays the label on stderr and reads a secret without
// echoing it. The returned bytes are owned by the caller, which must zero
// them when done.
func (p *TerminalPrompter) PromptSecret(label string) ([]byte, error) {
	fd := int(p.in.Fd())

	if term.IsTerminal(fd) {
		// Prompt goes to stderr so stdout stays clean for redirection
		fmt.Fprint(os.Stderr, label)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrCredentialPrompt, "failed to read secret input")
		}
		return secret, nil
	}

	// Non-terminal input. One persistent reader across prompts so a buffered
	// second line is not lost between calls.
	fmt.Fprint(os.Stderr, label)
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	line, err := p.reader.ReadString('\n')
	fmt.Fprintln(os.Stderr)
	if err != nil && line == "" {
		return nil, errors.Wrapf(err, errors.ErrCredentialPrompt, "failed to read secret input")
	}

	line = strings.TrimRight(line, "\r\n")
	return []byte(line), nil
}
