// ABOUTME: Password commands for the evmarket CLI
// ABOUTME: Forgot-password reset requests and signed-in password changes

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
	forgotEmail string
	oldPassword string
	newPassword string
)

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runForgotPassword(ctx, os.Stdout))
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the signed-in account's password",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runChangePassword(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(forgotPasswordCmd)
	forgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email (required)")
	forgotPasswordCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(changePasswordCmd)
	changePasswordCmd.Flags().StringVar(&oldPassword, "old", "", "Current password (required)")
	changePasswordCmd.Flags().StringVar(&newPassword, "new", "", "New password (required)")
	changePasswordCmd.MarkFlagRequired("old")
	changePasswordCmd.MarkFlagRequired("new")
}

func runForgotPassword(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.ForgotPassword(ctx, forgotEmail)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "If %s has an account, a reset email is on its way\n", forgotEmail)
	return 0
}

func runChangePassword(ctx context.Context, w io.Writer) int {
	_, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := store.ChangePassword(ctx, api.PasswordChange{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintln(w, "Password updated")
	return 0
}
