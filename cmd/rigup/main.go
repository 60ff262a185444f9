package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeldee/rigup/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// A failed bootstrap has already rendered its summary; everything
		// else (flag errors, config errors) still needs printing
		if !errors.Is(err, cli.ErrBootstrapFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
