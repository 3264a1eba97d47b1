// ABOUTME: Login command for the evmarket CLI
// ABOUTME: Authenticates against the backend and persists the session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the marketplace",
	Long: `Sign in with your marketplace account and store the session locally.

Exit codes:
  0 - Signed in
  1 - Backend rejected the credentials
  2 - Error (connectivity, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runLogin(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (required)")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

// runLogin executes the login and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.Login(ctx, loginEmail, loginPassword)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	snap := store.Snapshot()
	if IsJSONOutput() {
		printJSON(w, snap.User)
		return 0
	}

	fmt.Fprintln(w, formatWhoami(snap))
	return 0
}

// formatWhoami renders the signed-in identity for humans
func formatWhoami(snap session.Snapshot) string {
	if !snap.IsAuthenticated() || snap.User == nil {
		return "Not signed in"
	}
	role := "member"
	if snap.IsAdmin() {
		role = "admin"
	}
	return fmt.Sprintf("Signed in as %s (%s, %s)", snap.User.FullName, snap.User.Email, role)
}
