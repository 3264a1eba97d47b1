// ABOUTME: Moderation queue for the admin back office
// ABOUTME: Lists pending listings and applies approve or reject decisions

package adminqueue

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/tui/styles"
)

// LoadedMsg is sent when the pending queue arrives.
type LoadedMsg struct {
	Posts []api.Post
	Env   api.Envelope
}

// DecidedMsg is sent when an approve or reject call completes.
type DecidedMsg struct {
	PostID   int64
	Approved bool
	Env      api.Envelope
}

// CancelledMsg is sent when the admin leaves the queue.
type CancelledMsg struct{}

// AdminQueue shows listings awaiting moderation.
type AdminQueue struct {
	posts   *api.PostsClient
	pending []api.Post
	cursor  int
	loading bool
	errMsg  string
	notice  string
}

// New creates the moderation queue screen.
func New(posts *api.PostsClient) *AdminQueue {
	return &AdminQueue{posts: posts, loading: true}
}

// Init implements tea.Model
func (q *AdminQueue) Init() tea.Cmd {
	return q.fetch()
}

func (q *AdminQueue) fetch() tea.Cmd {
	q.loading = true
	q.errMsg = ""
	return func() tea.Msg {
		pending, env := q.posts.Pending(context.Background())
		return LoadedMsg{Posts: pending, Env: env}
	}
}

func (q *AdminQueue) decide(post api.Post, approve bool) tea.Cmd {
	return func() tea.Msg {
		var env api.Envelope
		if approve {
			env = q.posts.Approve(context.Background(), post.ID)
		} else {
			env = q.posts.Reject(context.Background(), post.ID, "Rejected from moderation queue")
		}
		return DecidedMsg{PostID: post.ID, Approved: approve, Env: env}
	}
}

// Update implements tea.Model
func (q *AdminQueue) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		q.loading = false
		if !msg.Env.Success {
			q.errMsg = msg.Env.Message
			return q, nil
		}
		q.pending = msg.Posts
		if q.cursor >= len(q.pending) {
			q.cursor = 0
		}
		return q, nil

	case DecidedMsg:
		if !msg.Env.Success {
			q.errMsg = msg.Env.Message
			return q, nil
		}
		q.remove(msg.PostID)
		if msg.Approved {
			q.notice = fmt.Sprintf("Approved listing #%d", msg.PostID)
		} else {
			q.notice = fmt.Sprintf("Rejected listing #%d", msg.PostID)
		}
		return q, nil

	case tea.KeyMsg:
		return q.updateKeys(msg)
	}

	return q, nil
}

func (q *AdminQueue) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return q, func() tea.Msg { return CancelledMsg{} }
	case "r":
		return q, q.fetch()
	case "up", "k":
		if q.cursor > 0 {
			q.cursor--
		}
	case "down", "j":
		if q.cursor < len(q.pending)-1 {
			q.cursor++
		}
	case "a":
		if post, ok := q.selected(); ok {
			return q, q.decide(post, true)
		}
	case "x":
		if post, ok := q.selected(); ok {
			return q, q.decide(post, false)
		}
	}
	return q, nil
}

func (q *AdminQueue) selected() (api.Post, bool) {
	if q.cursor < 0 || q.cursor >= len(q.pending) {
		return api.Post{}, false
	}
	return q.pending[q.cursor], true
}

// remove drops a decided listing from the local queue without a refetch.
func (q *AdminQueue) remove(postID int64) {
	kept := q.pending[:0]
	for _, p := range q.pending {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	q.pending = kept
	if q.cursor >= len(q.pending) && q.cursor > 0 {
		q.cursor = len(q.pending) - 1
	}
}

// View implements tea.Model
func (q *AdminQueue) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Moderation Queue"))
	sb.WriteString("\n")

	if q.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(q.errMsg))
		sb.WriteString("\n\n")
	} else if q.notice != "" {
		sb.WriteString(styles.StatusOK.Render(q.notice))
		sb.WriteString("\n\n")
	}

	switch {
	case q.loading:
		sb.WriteString(styles.Subtitle.Render("Loading pending listings..."))
	case len(q.pending) == 0:
		sb.WriteString(styles.Subtitle.Render("Nothing awaiting review"))
	default:
		for i, p := range q.pending {
			line := fmt.Sprintf("#%d  %s  %d VND  (%s)", p.ID, p.Title, p.Price, p.SellerName)
			if i == q.cursor {
				sb.WriteString(styles.KeyStyle.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("a Approve  x Reject  r Refresh  b Back"))
	}

	return sb.String()
}
