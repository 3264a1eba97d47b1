// ABOUTME: Wallet commands for the evmarket CLI
// ABOUTME: Balance, history, withdrawal, and the VNPay deposit flow

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
	"github.com/evmarket/evmarket-cli/internal/vnpay"
)

var (
	depositAmount       int64
	withdrawAmount      int64
	withdrawBankName    string
	withdrawBankAccount string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage your marketplace wallet",
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show wallet balance",
	Long: `Show the wallet balance.

Exit codes:
  0 - Wallet shown
  1 - No wallet yet (create one with: evmarket wallet create)
  2 - Error (connectivity, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletShow(ctx, os.Stdout))
	},
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print just the balance figure",
	Long: `Print the wallet balance as a bare number, for scripts.

Exit codes:
  0 - Balance printed
  1 - No wallet yet (create one with: evmarket wallet create)
  2 - Error (connectivity, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletBalance(ctx, os.Stdout))
	},
}

var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a wallet for the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletCreate(ctx, os.Stdout))
	},
}

var walletHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the wallet transaction ledger",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletHistory(ctx, os.Stdout))
	},
}

var walletDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Top up the wallet through VNPay",
	Long: `Top up the wallet through VNPay. The command prints a payment URL to
open in a browser; after paying, feed the return URL to
evmarket wallet deposit-result to read the outcome.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletDeposit(ctx, os.Stdout))
	},
}

var walletDepositResultCmd = &cobra.Command{
	Use:   "deposit-result <return-url>",
	Short: "Read the outcome of a VNPay deposit",
	Long: `Read the outcome of a VNPay deposit from the return URL the browser
landed on. The decision is made locally from the query parameters.

Exit codes:
  0 - Payment succeeded
  1 - Payment failed or was cancelled
  2 - The URL could not be parsed`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOn(runWalletDepositResult(os.Stdout, args[0]))
	},
}

var walletWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Request a withdrawal to a bank account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runWalletWithdraw(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletShowCmd, walletBalanceCmd, walletCreateCmd,
		walletHistoryCmd, walletDepositCmd, walletDepositResultCmd, walletWithdrawCmd)

	walletDepositCmd.Flags().Int64Var(&depositAmount, "amount", 0, "Amount in VND (required)")
	walletDepositCmd.MarkFlagRequired("amount")

	walletWithdrawCmd.Flags().Int64Var(&withdrawAmount, "amount", 0, "Amount in VND (required)")
	walletWithdrawCmd.Flags().StringVar(&withdrawBankName, "bank", "", "Bank name (required)")
	walletWithdrawCmd.Flags().StringVar(&withdrawBankAccount, "account", "", "Bank account number (required)")
	walletWithdrawCmd.MarkFlagRequired("amount")
	walletWithdrawCmd.MarkFlagRequired("bank")
	walletWithdrawCmd.MarkFlagRequired("account")
}

func runWalletShow(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	wallet, env := client.Wallet.Get(ctx)
	if !env.Success {
		if env.NotFound() {
			fmt.Fprintln(w, "No wallet yet. Create one with: evmarket wallet create")
			return 1
		}
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, wallet)
		return 0
	}

	fmt.Fprintf(w, "Balance: %d VND\n", wallet.Balance)
	return 0
}

func runWalletBalance(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	balance, env := client.Wallet.Balance(ctx)
	if !env.Success {
		if env.NotFound() {
			fmt.Fprintln(w, "No wallet yet. Create one with: evmarket wallet create")
			return 1
		}
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, map[string]int64{"balance": balance})
		return 0
	}

	fmt.Fprintln(w, balance)
	return 0
}

func runWalletCreate(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	wallet, env := client.Wallet.Create(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Wallet created, balance %d VND\n", wallet.Balance)
	return 0
}

func runWalletHistory(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	txs, env := client.Wallet.History(ctx)
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

func runWalletDeposit(ctx context.Context, w io.Writer) int {
	if depositAmount <= 0 {
		fmt.Fprintln(w, "Error: --amount must be positive")
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	payURL, env := client.Payment.CreateDeposit(ctx, depositAmount)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintln(w, "Open this URL in a browser to pay:")
	fmt.Fprintln(w, payURL)
	fmt.Fprintln(w, "\nAfterwards, read the outcome with:")
	fmt.Fprintln(w, "  evmarket wallet deposit-result '<return-url>'")
	return 0
}

func runWalletDepositResult(w io.Writer, rawURL string) int {
	result, err := vnpay.ParseReturn(rawURL)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, result)
		if result.Success {
			return 0
		}
		return 1
	}

	if result.Success {
		fmt.Fprintf(w, "Deposit succeeded: %d VND (ref %s)\n", result.Amount, result.TxnRef)
		return 0
	}

	fmt.Fprintf(w, "Deposit failed (VNPay code %s)\n", result.ResponseCode)
	return 1
}

func runWalletWithdraw(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Wallet.Withdraw(ctx, api.WithdrawInput{
		Amount:      withdrawAmount,
		BankName:    withdrawBankName,
		BankAccount: withdrawBankAccount,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintln(w, "Withdrawal requested, awaiting admin review")
	return 0
}

func formatTransactions(txs []api.Transaction) string {
	if len(txs) == 0 {
		return "No transactions yet"
	}
	var out string
	for _, tx := range txs {
		out += fmt.Sprintf("%-20s %12d VND  %-10s %s\n", tx.CreatedAt, tx.Amount, tx.Type, tx.Description)
	}
	return out[:len(out)-1]
}
