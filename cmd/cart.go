// ABOUTME: Cart commands for the evmarket CLI
// ABOUTME: Show, add, update, remove, and clear shopping cart entries

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

var cartQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage your shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runCartShow(ctx, os.Stdout))
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Add a listing to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runCartAdd(ctx, os.Stdout, args[0]))
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <post-id>",
	Short: "Change the quantity of a cart entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runCartUpdate(ctx, os.Stdout, args[0]))
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <post-id>",
	Short: "Remove a listing from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runCartRemove(ctx, os.Stdout, args[0]))
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runCartClear(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)

	cartAddCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "New quantity")
	cartUpdateCmd.MarkFlagRequired("quantity")
}

func runCartShow(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	cart, env := client.Cart.Get(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, cart)
		return 0
	}

	fmt.Fprintln(w, formatCart(cart))
	return 0
}

func runCartAdd(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Cart.Add(ctx, id, cartQuantity)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d added to cart\n", id)
	return 0
}

func runCartUpdate(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Cart.Update(ctx, id, cartQuantity)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Cart entry #%d updated\n", id)
	return 0
}

func runCartRemove(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Cart.Remove(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d removed from cart\n", id)
	return 0
}

func runCartClear(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Cart.Clear(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintln(w, "Cart emptied")
	return 0
}

// formatCart renders the cart for humans
func formatCart(cart *api.Cart) string {
	if cart == nil || len(cart.Items) == 0 {
		return "Cart is empty"
	}
	var out string
	for _, item := range cart.Items {
		out += fmt.Sprintf("#%-5d %-40s x%d  %12d VND\n", item.PostID, item.Title, item.Quantity, item.Price)
	}
	out += fmt.Sprintf("Total: %d VND", cart.Total)
	return out
}
