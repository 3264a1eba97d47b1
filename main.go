// ABOUTME: Entry point for the evmarket CLI
// ABOUTME: Command-line client for the second-hand EV marketplace

package main

import (
	"fmt"
	"os"

	"github.com/evmarket/evmarket-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
