// ABOUTME: Home menu for the interactive marketplace browser
// ABOUTME: Offers actions appropriate to the current session state

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evmarket/evmarket-cli/internal/session"
	"github.com/evmarket/evmarket-cli/internal/tui/styles"
)

// Action is a menu entry the user can pick.
type Action int

const (
	ActionBrowse Action = iota
	ActionWallet
	ActionLogin
	ActionLogout
	ActionQuit
)

// ActionSelectedMsg is sent when the user picks a menu entry.
type ActionSelectedMsg struct {
	Action Action
}

type entry struct {
	label  string
	action Action
}

// Menu is the home screen.
type Menu struct {
	entries []entry
	cursor  int
	snap    session.Snapshot
}

// New creates the home menu for the given session snapshot.
func New(snap session.Snapshot) *Menu {
	m := &Menu{}
	m.SetSnapshot(snap)
	return m
}

// SetSnapshot rebuilds the menu entries for a session change.
func (m *Menu) SetSnapshot(snap session.Snapshot) {
	m.snap = snap
	m.entries = []entry{
		{label: "Browse listings", action: ActionBrowse},
	}
	if snap.IsAuthenticated() {
		m.entries = append(m.entries,
			entry{label: "Wallet", action: ActionWallet},
			entry{label: "Sign out", action: ActionLogout},
		)
	} else {
		m.entries = append(m.entries, entry{label: "Sign in", action: ActionLogin})
	}
	m.entries = append(m.entries, entry{label: "Quit", action: ActionQuit})

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		action := m.entries[m.cursor].action
		return m, func() tea.Msg { return ActionSelectedMsg{Action: action} }
	case "q":
		return m, func() tea.Msg { return ActionSelectedMsg{Action: ActionQuit} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("EV Marketplace"))
	sb.WriteString("\n")

	if m.snap.IsAuthenticated() && m.snap.User != nil {
		sb.WriteString(styles.Subtitle.Render("Signed in as " + m.snap.User.Email))
	} else {
		sb.WriteString(styles.Subtitle.Render("Browsing as guest"))
	}
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		if i == m.cursor {
			sb.WriteString(styles.KeyStyle.Render("> " + e.label))
		} else {
			sb.WriteString("  " + e.label)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
