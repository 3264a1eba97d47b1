// ABOUTME: Admin back-office commands for the evmarket CLI
// ABOUTME: User management and the platform transaction ledger

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

var (
	adminUsersPage int
	adminTxUserID  int64
	adminTxType    string
	adminTxPage    int
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office operations (admin role required)",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAdminUsers(ctx, os.Stdout))
	},
}

var adminBanCmd = &cobra.Command{
	Use:   "ban <user-id>",
	Short: "Ban a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAdminSetStatus(ctx, os.Stdout, args[0], api.UserStatusBanned))
	},
}

var adminUnbanCmd = &cobra.Command{
	Use:   "unban <user-id>",
	Short: "Re-activate a banned user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAdminSetStatus(ctx, os.Stdout, args[0], api.UserStatusActive))
	},
}

var adminTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Query the platform transaction ledger",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAdminTransactions(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd, adminBanCmd, adminUnbanCmd, adminTransactionsCmd)

	adminUsersCmd.Flags().IntVar(&adminUsersPage, "page", 1, "Page number")

	adminTransactionsCmd.Flags().Int64Var(&adminTxUserID, "user", 0, "Filter by user ID")
	adminTransactionsCmd.Flags().StringVar(&adminTxType, "type", "", "Filter by transaction type")
	adminTransactionsCmd.Flags().IntVar(&adminTxPage, "page", 1, "Page number")
}

func runAdminUsers(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	users, env := client.Admin.Users(ctx, adminUsersPage)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, users)
		return 0
	}

	fmt.Fprintln(w, formatUsers(users))
	return 0
}

func runAdminSetStatus(ctx context.Context, w io.Writer, arg, status string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Admin.SetUserStatus(ctx, id, status)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "User #%d is now %s\n", id, status)
	return 0
}

func runAdminTransactions(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	txs, env := client.Admin.Transactions(ctx, api.TransactionFilter{
		UserID: adminTxUserID,
		Type:   adminTxType,
		Page:   adminTxPage,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, txs)
		return 0
	}

	fmt.Fprintln(w, formatTransactions(txs))
	return 0
}

func formatUsers(users []api.User) string {
	if len(users) == 0 {
		return "No users"
	}
	var out string
	for _, u := range users {
		out += fmt.Sprintf("#%-5d %-25s %-30s %-7s [%s]\n", u.ID, u.FullName, u.Email, u.Role, u.Status)
	}
	return out[:len(out)-1]
}
