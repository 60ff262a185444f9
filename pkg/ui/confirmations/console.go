// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"fmt"
	"strings"

	"github.com/joeldee/rigup/pkg/types"
)

// ConsoleDialog implements types.Confirmer for console interaction
type ConsoleDialog struct{}

// NewConsoleDialog creates a new console confirmation dialog
func NewConsoleDialog() *ConsoleDialog {
	return &ConsoleDialog{}
}

// Confirm shows a single yes/no question on the console and reads the answer
func (d *ConsoleDialog) Confirm(req types.ConfirmationRequest) (bool, error) {
	fmt.Println()
	if req.Title != "" {
		fmt.Println(req.Title)
	}
	if req.Description != "" {
		fmt.Printf("  %s\n", req.Description)
	}
	for _, item := range req.Items {
		fmt.Printf("  - %s\n", item)
	}

	defaultMarker := "[y/N]"
	if req.Default {
		defaultMarker = "[Y/n]"
	}
	fmt.Printf("Continue? %s: ", defaultMarker)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil && err.Error() != "unexpected newline" {
		return false, fmt.Errorf("failed to read user input for confirmation %s: %w", req.ID, err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		// Use default
		return req.Default, nil
	}

	return response == "y" || response == "yes", nil
}
