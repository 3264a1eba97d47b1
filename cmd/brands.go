// ABOUTME: Brand catalogue commands for the evmarket CLI
// ABOUTME: Vehicle and battery manufacturer listings

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

var brandsBatteries bool

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List vehicle and battery brands",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runBrands(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(brandsCmd)
	brandsCmd.Flags().BoolVar(&brandsBatteries, "batteries", false, "List battery brands instead of vehicle brands")
}

func runBrands(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var brands []api.Brand
	var env api.Envelope
	if brandsBatteries {
		brands, env = client.Brands.Batteries(ctx)
	} else {
		brands, env = client.Brands.Vehicles(ctx)
	}
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, brands)
		return 0
	}

	fmt.Fprintln(w, formatBrands(brands))
	return 0
}

func formatBrands(brands []api.Brand) string {
	if len(brands) == 0 {
		return "No brands"
	}
	var out string
	for _, b := range brands {
		if b.Country != "" {
			out += fmt.Sprintf("#%-5d %-25s (%s)\n", b.ID, b.Name, b.Country)
		} else {
			out += fmt.Sprintf("#%-5d %s\n", b.ID, b.Name)
		}
	}
	return out[:len(out)-1]
}
