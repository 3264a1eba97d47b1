// ABOUTME: Auction commands for the evmarket CLI
// ABOUTME: List running auctions and place bids

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

var bidAmount int64

var auctionsCmd = &cobra.Command{
	Use:   "auctions",
	Short: "Browse auctions and place bids",
}

var auctionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List running auctions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAuctionsList(ctx, os.Stdout))
	},
}

var auctionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one auction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAuctionsShow(ctx, os.Stdout, args[0]))
	},
}

var auctionsBidCmd = &cobra.Command{
	Use:   "bid <id>",
	Short: "Place a bid on an auction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runAuctionsBid(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(auctionsCmd)
	auctionsCmd.AddCommand(auctionsListCmd, auctionsShowCmd, auctionsBidCmd)

	auctionsBidCmd.Flags().Int64Var(&bidAmount, "amount", 0, "Bid amount in VND (required)")
	auctionsBidCmd.MarkFlagRequired("amount")
}

func runAuctionsList(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	auctions, env := client.Auctions.List(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, auctions)
		return 0
	}

	fmt.Fprintln(w, formatAuctions(auctions))
	return 0
}

func runAuctionsShow(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	auction, env := client.Auctions.Get(ctx, id)
	if !env.Success {
		if env.NotFound() {
			fmt.Fprintf(w, "Auction %d not found\n", id)
			return 1
		}
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, auction)
		return 0
	}

	fmt.Fprintf(w, "Auction #%d for listing #%d\nStarting: %d VND\nCurrent:  %d VND\nEnds:     %s\nStatus:   %s\n",
		auction.ID, auction.PostID, auction.StartingPrice, auction.CurrentBid, auction.EndsAt, auction.Status)
	return 0
}

func runAuctionsBid(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Auctions.Bid(ctx, id, bidAmount)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Bid of %d VND placed on auction #%d\n", bidAmount, id)
	return 0
}

func formatAuctions(auctions []api.Auction) string {
	if len(auctions) == 0 {
		return "No running auctions"
	}
	var out string
	for _, a := range auctions {
		out += fmt.Sprintf("#%-5d listing #%-5d current %12d VND  ends %s  [%s]\n",
			a.ID, a.PostID, a.CurrentBid, a.EndsAt, a.Status)
	}
	return out[:len(out)-1]
}
