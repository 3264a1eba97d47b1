// ABOUTME: Withdrawal review commands for the evmarket CLI
// ABOUTME: Member request listing plus admin approve and reject decisions

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
	withdrawalsAll           bool
	withdrawalsRejectReason  string
	withdrawalsCreateAmount  int64
	withdrawalsCreateBank    string
	withdrawalsCreateAccount string
)

var withdrawalsCmd = &cobra.Command{
	Use:   "withdrawals",
	Short: "Review wallet withdrawal requests",
}

var withdrawalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List withdrawal requests",
	Long:  `List your own withdrawal requests, or every request with --all (admin).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWithdrawalsList(ctx, os.Stdout))
	},
}

var withdrawalsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Raise a withdrawal request for admin review",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWithdrawalsCreate(ctx, os.Stdout))
	},
}

var withdrawalsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a withdrawal request (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWithdrawalsApprove(ctx, os.Stdout, args[0]))
	},
}

var withdrawalsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a withdrawal request (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWithdrawalsReject(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(withdrawalsCmd)
	withdrawalsCmd.AddCommand(withdrawalsListCmd, withdrawalsCreateCmd, withdrawalsApproveCmd, withdrawalsRejectCmd)

	withdrawalsListCmd.Flags().BoolVar(&withdrawalsAll, "all", false, "List every request, not just your own (admin)")
	withdrawalsRejectCmd.Flags().StringVar(&withdrawalsRejectReason, "reason", "", "Reason shown to the requester")

	withdrawalsCreateCmd.Flags().Int64Var(&withdrawalsCreateAmount, "amount", 0, "Amount in VND (required)")
	withdrawalsCreateCmd.Flags().StringVar(&withdrawalsCreateBank, "bank", "", "Bank name (required)")
	withdrawalsCreateCmd.Flags().StringVar(&withdrawalsCreateAccount, "account", "", "Bank account number (required)")
	withdrawalsCreateCmd.MarkFlagRequired("amount")
	withdrawalsCreateCmd.MarkFlagRequired("bank")
	withdrawalsCreateCmd.MarkFlagRequired("account")
}

func runWithdrawalsCreate(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req, env := client.Withdrawals.Create(ctx, api.WithdrawInput{
		Amount:      withdrawalsCreateAmount,
		BankName:    withdrawalsCreateBank,
		BankAccount: withdrawalsCreateAccount,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, req)
		return 0
	}

	fmt.Fprintf(w, "Withdrawal #%d requested, awaiting admin review\n", req.ID)
	return 0
}

func runWithdrawalsList(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var requests []api.WithdrawalRequest
	var env api.Envelope
	if withdrawalsAll {
		requests, env = client.Withdrawals.All(ctx)
	} else {
		requests, env = client.Withdrawals.Mine(ctx)
	}
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, requests)
		return 0
	}

	fmt.Fprintln(w, formatWithdrawals(requests))
	return 0
}

func runWithdrawalsApprove(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Withdrawals.Approve(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Withdrawal #%d approved\n", id)
	return 0
}

func runWithdrawalsReject(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Withdrawals.Reject(ctx, id, withdrawalsRejectReason)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Withdrawal #%d rejected\n", id)
	return 0
}

func formatWithdrawals(requests []api.WithdrawalRequest) string {
	if len(requests) == 0 {
		return "No withdrawal requests"
	}
	var out string
	for _, r := range requests {
		out += fmt.Sprintf("#%-5d %12d VND  %-12s %s %s  [%s]\n",
			r.ID, r.Amount, r.CreatedAt, r.BankName, r.BankAccount, r.Status)
	}
	return out[:len(out)-1]
}
