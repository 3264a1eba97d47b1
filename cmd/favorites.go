// ABOUTME: Favorites commands for the evmarket CLI
// ABOUTME: Save, list, and remove favorite listings

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

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved listings",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved listings",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runFavoritesList(ctx, os.Stdout))
	},
}

var favoritesShowCmd = &cobra.Command{
	Use:   "show <favorite-id>",
	Short: "Show one saved listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runFavoritesShow(ctx, os.Stdout, args[0]))
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Save a listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runFavoritesAdd(ctx, os.Stdout, args[0]))
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <favorite-id>",
	Short: "Remove a saved listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runFavoritesRemove(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesShowCmd, favoritesAddCmd, favoritesRemoveCmd)
}

func runFavoritesShow(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	favorite, env := client.Favorites.Get(ctx, id)
	if !env.Success {
		if env.NotFound() {
			fmt.Fprintf(w, "Favorite %d not found\n", id)
			return 1
		}
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, favorite)
		return 0
	}

	fmt.Fprintln(w, formatFavorites([]api.Favorite{*favorite}))
	return 0
}

func runFavoritesList(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	favorites, env := client.Favorites.List(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, favorites)
		return 0
	}

	fmt.Fprintln(w, formatFavorites(favorites))
	return 0
}

func runFavoritesAdd(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Favorites.Add(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d saved\n", id)
	return 0
}

func runFavoritesRemove(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Favorites.Remove(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Favorite #%d removed\n", id)
	return 0
}

func formatFavorites(favorites []api.Favorite) string {
	if len(favorites) == 0 {
		return "No saved listings"
	}
	var out string
	for _, f := range favorites {
		if f.Post != nil {
			out += fmt.Sprintf("#%-5d %-40s %12d VND  (favorite %d)\n", f.Post.ID, f.Post.Title, f.Post.Price, f.ID)
		} else {
			out += fmt.Sprintf("favorite %d for listing #%d\n", f.ID, f.PostID)
		}
	}
	return out[:len(out)-1]
}
