// ABOUTME: Browse command for the evmarket CLI
// ABOUTME: Launches the interactive terminal marketplace browser

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/config"
	"github.com/evmarket/evmarket-cli/internal/logger"
	"github.com/evmarket/evmarket-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive marketplace browser",
	Long: `Open the interactive terminal browser. Any stored session is restored
on startup, and admins land in the moderation queue.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runBrowse())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse() int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Log lines on stderr would corrupt the alternate screen; send them to
	// the debug file when configured, otherwise drop them.
	if cfg, err := config.Load(); err == nil && cfg.DebugLogFile != "" {
		if f, err := os.OpenFile(cfg.DebugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			defer f.Close()
			logger.InitWriter(f)
		}
	} else {
		logger.InitWriter(io.Discard)
	}

	if err := tui.Run(client, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
