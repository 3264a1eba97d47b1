// ABOUTME: Root bubbletea model for the interactive marketplace browser
// ABOUTME: Routes messages between screens and applies session route guards

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/session"
	"github.com/evmarket/evmarket-cli/internal/tui/adminqueue"
	"github.com/evmarket/evmarket-cli/internal/tui/login"
	"github.com/evmarket/evmarket-cli/internal/tui/menu"
	"github.com/evmarket/evmarket-cli/internal/tui/postlist"
	"github.com/evmarket/evmarket-cli/internal/tui/styles"
	"github.com/evmarket/evmarket-cli/internal/tui/walletview"
)

// Screen identifies the active TUI screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenPosts
	ScreenWallet
	ScreenAdmin
)

const minTerminalWidth = 80

// restoredMsg is sent when the stored session has been re-validated.
type restoredMsg struct {
	snap session.Snapshot
}

// SessionChangedMsg carries a session snapshot pushed from outside the
// program loop, via Store.Subscribe and Program.Send.
type SessionChangedMsg struct {
	Snap session.Snapshot
}

// loginResultMsg is sent when a login attempt completes.
type loginResultMsg struct {
	env api.Envelope
}

// App is the root model for the TUI.
type App struct {
	client *api.Client
	store  *session.Store
	screen Screen
	snap   session.Snapshot
	width  int
	height int

	// adminRedirected makes the admin hand-off a one-shot: an admin who
	// navigates back to the menu stays there.
	adminRedirected bool

	// Child models
	menu      *menu.Menu
	loginView *login.Login
	posts     *postlist.PostList
	wallet    *walletview.WalletView
	admin     *adminqueue.AdminQueue
}

// New creates the root TUI model.
func New(client *api.Client, store *session.Store) *App {
	snap := store.Snapshot()
	return &App{
		client: client,
		store:  store,
		screen: ScreenMenu,
		snap:   snap,
		menu:   menu.New(snap),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.restoreSession()
}

// restoreSession re-validates any persisted credentials before first paint.
func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		snap := a.store.Restore(context.Background())
		return restoredMsg{snap: snap}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A rejected token ends the session before the screen that observed it
	// gets to render the failure; the guard re-run then redirects home.
	if sessionInvalid(msg) {
		a.store.Invalidate()
		return a.applySnapshot(a.store.Snapshot())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forward(msg)

	case restoredMsg:
		return a.applySnapshot(msg.snap)

	case SessionChangedMsg:
		return a.applySnapshot(msg.Snap)

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg.Action)

	case login.SubmitMsg:
		return a, a.doLogin(msg.Email, msg.Password)

	case login.CancelledMsg:
		return a.goHome()

	case loginResultMsg:
		return a.handleLoginResult(msg.env)

	case postlist.SelectedMsg:
		// Detail view not implemented in the browser yet; listing data is
		// already on screen.
		return a, nil

	case postlist.CancelledMsg, walletview.CancelledMsg, adminqueue.CancelledMsg:
		return a.goHome()

	default:
		return a.forward(msg)
	}
}

// sessionInvalid reports whether a child screen's result carries a rejected
// token. Only the session-invalid kind counts; ordinary failures stay with
// the screen that caused them.
func sessionInvalid(msg tea.Msg) bool {
	var env api.Envelope
	switch m := msg.(type) {
	case postlist.LoadedMsg:
		env = m.Env
	case walletview.LoadedMsg:
		env = m.Env
	case walletview.CreatedMsg:
		env = m.Env
	case walletview.HistoryMsg:
		env = m.Env
	case adminqueue.LoadedMsg:
		env = m.Env
	case adminqueue.DecidedMsg:
		env = m.Env
	default:
		return false
	}
	return !env.Success && env.Kind() == api.KindSessionInvalid
}

// forward routes a message to the active child model.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	case ScreenLogin:
		if a.loginView == nil {
			return a, nil
		}
		model, cmd := a.loginView.Update(msg)
		a.loginView = model.(*login.Login)
		return a, cmd
	case ScreenPosts:
		if a.posts == nil {
			return a, nil
		}
		model, cmd := a.posts.Update(msg)
		a.posts = model.(*postlist.PostList)
		return a, cmd
	case ScreenWallet:
		if a.wallet == nil {
			return a, nil
		}
		model, cmd := a.wallet.Update(msg)
		a.wallet = model.(*walletview.WalletView)
		return a, cmd
	case ScreenAdmin:
		if a.admin == nil {
			return a, nil
		}
		model, cmd := a.admin.Update(msg)
		a.admin = model.(*adminqueue.AdminQueue)
		return a, cmd
	}
	return a, nil
}

// applySnapshot records a session change and re-runs the route guards.
func (a *App) applySnapshot(snap session.Snapshot) (tea.Model, tea.Cmd) {
	a.snap = snap
	if a.menu != nil {
		a.menu.SetSnapshot(snap)
	}

	// A login screen must not stay visible for an authenticated session.
	if a.screen == ScreenLogin && PublicOnly(snap) == DecisionRedirect {
		return a.goHome()
	}

	// Session loss boots the visitor off member-only screens.
	if !snap.IsAuthenticated() && (a.screen == ScreenWallet || a.screen == ScreenAdmin) {
		return a.goHome()
	}

	if a.screen == ScreenMenu && AdminHome(snap, a.adminRedirected) {
		return a.goAdmin()
	}

	return a, nil
}

func (a *App) handleMenuAction(action menu.Action) (tea.Model, tea.Cmd) {
	switch action {
	case menu.ActionBrowse:
		a.posts = postlist.New(a.client.Posts)
		a.screen = ScreenPosts
		return a, a.posts.Init()

	case menu.ActionWallet:
		a.wallet = walletview.New(a.client.Wallet)
		a.screen = ScreenWallet
		return a, a.wallet.Init()

	case menu.ActionLogin:
		if PublicOnly(a.snap) != DecisionAllow {
			return a, nil
		}
		a.loginView = login.New()
		a.screen = ScreenLogin
		return a, a.loginView.Init()

	case menu.ActionLogout:
		a.store.Logout()
		return a.applySnapshot(a.store.Snapshot())

	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		env := a.store.Login(context.Background(), email, password)
		return loginResultMsg{env: env}
	}
}

func (a *App) handleLoginResult(env api.Envelope) (tea.Model, tea.Cmd) {
	if !env.Success {
		if a.loginView != nil {
			a.loginView.SetError(env.Message)
		}
		return a, nil
	}
	return a.applySnapshot(a.store.Snapshot())
}

func (a *App) goHome() (tea.Model, tea.Cmd) {
	a.screen = ScreenMenu
	a.loginView = nil
	a.posts = nil
	a.wallet = nil
	a.admin = nil
	if a.menu == nil {
		a.menu = menu.New(a.snap)
	} else {
		a.menu.SetSnapshot(a.snap)
	}
	if AdminHome(a.snap, a.adminRedirected) {
		return a.goAdmin()
	}
	return a, nil
}

func (a *App) goAdmin() (tea.Model, tea.Cmd) {
	a.adminRedirected = true
	a.admin = adminqueue.New(a.client.Posts)
	a.screen = ScreenAdmin
	return a, a.admin.Init()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.loginView != nil {
			content = a.loginView.View()
		}
	case ScreenPosts:
		if a.posts != nil {
			content = a.posts.View()
		}
	case ScreenWallet:
		if a.wallet != nil {
			content = a.wallet.View()
		}
	case ScreenAdmin:
		if a.admin != nil {
			content = a.admin.View()
		}
	default:
		if a.menu != nil {
			content = a.menu.View()
		}
	}

	if a.snap.Loading {
		content = styles.Subtitle.Render("Checking session...") + "\n\n" + content
	}

	return a.wrapWithFrame(content)
}

// wrapWithFrame adds the header and footer chrome around screen content.
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("EV Marketplace")

	rightText := ""
	if a.snap.IsAuthenticated() && a.snap.User != nil {
		rightText = contextStyle.Render(a.snap.User.Email) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin:
		shortcuts = []string{"Tab Next field", "Enter Submit", "Esc Back"}
	case ScreenPosts:
		shortcuts = []string{"/ Search", "←→ Page", "r Refresh", "b Back"}
	case ScreenWallet:
		shortcuts = []string{"r Refresh", "b Back"}
	case ScreenAdmin:
		shortcuts = []string{"a Approve", "x Reject", "r Refresh", "b Back"}
	}

	var styled []string
	var plain []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
		plain = append(plain, s)
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(plain, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯")
}

// Run starts the interactive browser and keeps it subscribed to session
// changes for as long as it runs.
func Run(client *api.Client, store *session.Store) error {
	app := New(client, store)

	p := tea.NewProgram(app, tea.WithAltScreen())

	cancel := store.Subscribe(func(snap session.Snapshot) {
		p.Send(SessionChangedMsg{Snap: snap})
	})
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
