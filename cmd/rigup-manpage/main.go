package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/joeldee/rigup/internal/cli"
	"github.com/joeldee/rigup/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RIGUP",
		Section: "1",
		Source:  "rigup " + version.Version,
		Manual:  "rigup manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
