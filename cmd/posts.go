// ABOUTME: Listing commands for the evmarket CLI
// ABOUTME: Browse, publish, edit, and moderate marketplace posts

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evmarket/evmarket-cli/internal/api"
)

var (
	postsKeyword  string
	postsBrandID  int64
	postsCategory string
	postsMinPrice int64
	postsMaxPrice int64
	postsPage     int

	createTitle       string
	createDescription string
	createPrice       int64
	createBrandID     int64
	createCategory    string
	createImages      []string

	updateTitle       string
	updateDescription string
	updatePrice       int64
	updateBrandID     int64

	rejectReason string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage marketplace listings",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List approved listings",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsList(ctx, os.Stdout))
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsShow(ctx, os.Stdout, args[0]))
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new listing",
	Long: `Publish a new listing. Images are uploaded with the listing, and the
listing stays PENDING until an admin approves it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsCreate(ctx, os.Stdout))
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a listing",
	Long:  `Edit a listing. Only the flags you pass are sent; other fields keep their values.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsUpdate(ctx, os.Stdout, cmd, args[0]))
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a listing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsDelete(ctx, os.Stdout, args[0]))
	},
}

var postsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own listings in every status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsMine(ctx, os.Stdout))
	},
}

var postsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List listings awaiting moderation (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsPending(ctx, os.Stdout))
	},
}

var postsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending listing (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsApprove(ctx, os.Stdout, args[0]))
	},
}

var postsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending listing (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitOn(runPostsReject(ctx, os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsCreateCmd, postsUpdateCmd,
		postsDeleteCmd, postsMineCmd, postsPendingCmd, postsApproveCmd, postsRejectCmd)

	postsListCmd.Flags().StringVar(&postsKeyword, "keyword", "", "Search keyword")
	postsListCmd.Flags().Int64Var(&postsBrandID, "brand", 0, "Filter by brand ID")
	postsListCmd.Flags().StringVar(&postsCategory, "category", "", "Filter by category (vehicle, battery)")
	postsListCmd.Flags().Int64Var(&postsMinPrice, "min-price", 0, "Minimum price in VND")
	postsListCmd.Flags().Int64Var(&postsMaxPrice, "max-price", 0, "Maximum price in VND")
	postsListCmd.Flags().IntVar(&postsPage, "page", 1, "Page number")

	postsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Listing title (required)")
	postsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Listing description")
	postsCreateCmd.Flags().Int64Var(&createPrice, "price", 0, "Price in VND (required)")
	postsCreateCmd.Flags().Int64Var(&createBrandID, "brand", 0, "Brand ID (required)")
	postsCreateCmd.Flags().StringVar(&createCategory, "category", "vehicle", "Category (vehicle, battery)")
	postsCreateCmd.Flags().StringSliceVar(&createImages, "image", nil, "Image file, repeatable")
	postsCreateCmd.MarkFlagRequired("title")
	postsCreateCmd.MarkFlagRequired("price")
	postsCreateCmd.MarkFlagRequired("brand")

	postsUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	postsUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	postsUpdateCmd.Flags().Int64Var(&updatePrice, "price", 0, "New price in VND")
	postsUpdateCmd.Flags().Int64Var(&updateBrandID, "brand", 0, "New brand ID")

	postsRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "Rejection reason shown to the seller")
}

func parseID(w io.Writer, arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(w, "Error: invalid id %q\n", arg)
		return 0, false
	}
	return id, true
}

func runPostsList(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, env := client.Posts.List(ctx, api.PostFilter{
		Keyword:  postsKeyword,
		BrandID:  postsBrandID,
		Category: postsCategory,
		MinPrice: postsMinPrice,
		MaxPrice: postsMaxPrice,
		Page:     postsPage,
	})
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	fmt.Fprintln(w, formatPostPage(page))
	return 0
}

func runPostsShow(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	post, env := client.Posts.Detail(ctx, id)
	if !env.Success {
		if env.NotFound() {
			fmt.Fprintf(w, "Listing %d not found\n", id)
			return 1
		}
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, post)
		return 0
	}

	fmt.Fprintln(w, formatPost(post))
	return 0
}

func runPostsCreate(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	form := api.NewForm()
	fields := [][2]string{
		{"title", createTitle},
		{"description", createDescription},
		{"price", strconv.FormatInt(createPrice, 10)},
		{"brandId", strconv.FormatInt(createBrandID, 10)},
		{"category", createCategory},
	}
	for _, f := range fields {
		if err := form.AddField(f[0], f[1]); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}
	for _, path := range createImages {
		if err := form.AddFilePath("images", path); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	post, env := client.Posts.Create(ctx, form)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, post)
		return 0
	}

	fmt.Fprintf(w, "Listing #%d created, awaiting moderation\n", post.ID)
	return 0
}

func runPostsUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Only flags the user actually set become part of the payload.
	var update api.PostUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		update.Description = &updateDescription
	}
	if cmd.Flags().Changed("price") {
		update.Price = &updatePrice
	}
	if cmd.Flags().Changed("brand") {
		update.BrandID = &updateBrandID
	}

	env := client.Posts.Update(ctx, id, update)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d updated\n", id)
	return 0
}

func runPostsDelete(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Posts.Delete(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d deleted\n", id)
	return 0
}

func runPostsMine(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	posts, env := client.Posts.Mine(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, posts)
		return 0
	}

	fmt.Fprintln(w, formatPosts(posts, true))
	return 0
}

func runPostsPending(ctx context.Context, w io.Writer) int {
	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	posts, env := client.Posts.Pending(ctx)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	if IsJSONOutput() {
		printJSON(w, posts)
		return 0
	}

	fmt.Fprintln(w, formatPosts(posts, true))
	return 0
}

func runPostsApprove(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Posts.Approve(ctx, id)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d approved\n", id)
	return 0
}

func runPostsReject(ctx context.Context, w io.Writer, arg string) int {
	id, ok := parseID(w, arg)
	if !ok {
		return 2
	}

	client, store, err := buildDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env := client.Posts.Reject(ctx, id, rejectReason)
	if !env.Success {
		return reportFailure(w, store, env)
	}

	fmt.Fprintf(w, "Listing #%d rejected\n", id)
	return 0
}

// formatPostPage renders a page of listings for humans
func formatPostPage(page *api.PostPage) string {
	if page == nil || len(page.Items) == 0 {
		return "No listings found"
	}
	out := formatPosts(page.Items, false)
	out += fmt.Sprintf("\nPage %d, %d listings total", page.Page, page.TotalItems)
	return out
}

func formatPosts(posts []api.Post, withStatus bool) string {
	if len(posts) == 0 {
		return "No listings"
	}
	var out string
	for _, p := range posts {
		line := fmt.Sprintf("#%-5d %-40s %12d VND  %s", p.ID, p.Title, p.Price, p.Brand)
		if withStatus {
			line += "  [" + p.Status + "]"
		}
		out += line + "\n"
	}
	return out[:len(out)-1]
}

func formatPost(p *api.Post) string {
	return fmt.Sprintf(`#%d %s
Price:    %d VND
Brand:    %s
Category: %s
Seller:   %s
Status:   %s

%s`, p.ID, p.Title, p.Price, p.Brand, p.Category, p.SellerName, p.Status, p.Description)
}
