// ABOUTME: Whoami command for the evmarket CLI
// ABOUTME: Re-validates the stored session and prints the identity

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `Re-validate the stored session against the backend and print the identity.

Exit codes:
  0 - Signed in
  1 - Not signed in or session expired
  2 - Error (connectivity, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWhoami(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami restores the session, confirms the token against the backend,
// and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	snap := store.Restore(ctx)
	if !snap.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in")
		return 1
	}

	user, meEnv := client.Auth.Me(ctx)
	if !meEnv.Success {
		if meEnv.Kind() == api.KindSessionInvalid {
			store.Invalidate()
			fmt.Fprintln(w, "Session expired, sign in again")
			return 1
		}
		return reportFailure(w, store, meEnv)
	}
	snap.User = user

	if IsJSONOutput() {
		printJSON(w, snap.User)
		return 0
	}

	fmt.Fprintln(w, formatWhoami(snap))
	return 0
}
