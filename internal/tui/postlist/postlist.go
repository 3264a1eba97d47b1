// ABOUTME: Marketplace listing browser as a bubbletea model
// ABOUTME: Renders approved posts in a table with keyword search and paging

package postlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/tui/styles"
)

// LoadedMsg is sent when a page of listings arrives from the backend.
type LoadedMsg struct {
	Seq  int
	Page *api.PostPage
	Env  api.Envelope
}

// SelectedMsg is sent when the user picks a listing from the table.
type SelectedMsg struct {
	Post api.Post
}

// CancelledMsg is sent when the user backs out of the browser.
type CancelledMsg struct{}

type mode int

const (
	modeTable mode = iota
	modeSearch
)

// PostList browses approved marketplace listings.
type PostList struct {
	posts    *api.PostsClient
	tbl      table.Model
	search   textinput.Model
	mode     mode
	page     int
	keyword  string
	items    []api.Post
	total    int
	pageSize int
	loading  bool
	errMsg   string
	width    int

	// seq guards against out-of-order responses: only the reply to the
	// newest fetch is applied.
	seq int
}

// New creates the listing browser.
func New(posts *api.PostsClient) *PostList {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 32},
		{Title: "Brand", Width: 14},
		{Title: "Price (VND)", Width: 14},
		{Title: "Seller", Width: 16},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(true)
	tbl.SetStyles(ts)

	search := textinput.New()
	search.Placeholder = "Search listings..."
	search.CharLimit = 64
	search.Width = 40

	return &PostList{
		posts:  posts,
		tbl:    tbl,
		search: search,
		page:   1,
	}
}

// Init implements tea.Model
func (p *PostList) Init() tea.Cmd {
	return p.fetch()
}

// fetch starts a load of the current page and invalidates earlier loads.
func (p *PostList) fetch() tea.Cmd {
	p.seq++
	p.loading = true
	p.errMsg = ""
	seq := p.seq
	filter := api.PostFilter{
		Page:    p.page,
		Keyword: p.keyword,
	}
	return func() tea.Msg {
		page, env := p.posts.List(context.Background(), filter)
		return LoadedMsg{Seq: seq, Page: page, Env: env}
	}
}

// Update implements tea.Model
func (p *PostList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case LoadedMsg:
		if msg.Seq != p.seq {
			// A newer fetch is already in flight; this reply is stale.
			return p, nil
		}
		p.loading = false
		if !msg.Env.Success {
			p.errMsg = msg.Env.Message
			return p, nil
		}
		p.applyPage(msg.Page)
		return p, nil

	case tea.KeyMsg:
		if p.mode == modeSearch {
			return p.updateSearch(msg)
		}
		return p.updateTable(msg)
	}

	return p, nil
}

func (p *PostList) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		p.keyword = strings.TrimSpace(p.search.Value())
		p.page = 1
		p.mode = modeTable
		p.search.Blur()
		return p, p.fetch()
	case "esc":
		p.mode = modeTable
		p.search.Blur()
		return p, nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return p, cmd
}

func (p *PostList) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return p, func() tea.Msg { return CancelledMsg{} }
	case "/":
		p.mode = modeSearch
		p.search.SetValue(p.keyword)
		return p, p.search.Focus()
	case "r":
		return p, p.fetch()
	case "n", "right":
		if p.hasNextPage() {
			p.page++
			return p, p.fetch()
		}
		return p, nil
	case "p", "left":
		if p.page > 1 {
			p.page--
			return p, p.fetch()
		}
		return p, nil
	case "enter":
		if post, ok := p.selected(); ok {
			return p, func() tea.Msg { return SelectedMsg{Post: post} }
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

// applyPage replaces the table contents with a freshly loaded page.
func (p *PostList) applyPage(page *api.PostPage) {
	if page == nil {
		p.items = nil
		p.total = 0
		p.tbl.SetRows(nil)
		return
	}

	p.items = page.Items
	p.total = page.TotalItems
	p.pageSize = page.PageSize
	if p.pageSize == 0 {
		p.pageSize = len(page.Items)
	}

	rows := make([]table.Row, 0, len(page.Items))
	for _, post := range page.Items {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", post.ID),
			post.Title,
			post.Brand,
			formatVND(post.Price),
			post.SellerName,
		})
	}
	p.tbl.SetRows(rows)
	p.tbl.SetCursor(0)
}

// selected returns the listing under the table cursor.
func (p *PostList) selected() (api.Post, bool) {
	idx := p.tbl.Cursor()
	if idx < 0 || idx >= len(p.items) {
		return api.Post{}, false
	}
	return p.items[idx], true
}

func (p *PostList) hasNextPage() bool {
	if p.pageSize == 0 {
		return false
	}
	return p.page*p.pageSize < p.total
}

// formatVND renders an amount with thousands separators, Vietnamese style.
func formatVND(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// View implements tea.Model
func (p *PostList) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Listings"))
	sb.WriteString("\n")

	if p.keyword != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Search: %q", p.keyword)))
		sb.WriteString("\n")
	}

	if p.mode == modeSearch {
		sb.WriteString(p.search.View())
		sb.WriteString("\n\n")
	}

	switch {
	case p.errMsg != "":
		sb.WriteString(styles.StatusError.Render(p.errMsg))
		sb.WriteString("\n")
	case p.loading && len(p.items) == 0:
		sb.WriteString(styles.Subtitle.Render("Loading listings..."))
		sb.WriteString("\n")
	case len(p.items) == 0:
		sb.WriteString(styles.Subtitle.Render("No listings found"))
		sb.WriteString("\n")
	default:
		sb.WriteString(p.tbl.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(fmt.Sprintf("Page %d · %d listings total", p.page, p.total)))
	}

	return sb.String()
}
