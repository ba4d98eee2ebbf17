// Package main is the entrypoint for the git-hunk CLI.
// It delegates all command handling to the cmd package.
package main

import (
	"fmt"
	"os"

	"github.com/toyinlola/githunk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
