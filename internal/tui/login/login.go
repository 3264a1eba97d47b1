// ABOUTME: Login form screen as a bubbletea model
// ABOUTME: Uses a huh form and emits SubmitMsg exactly once per attempt

package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/evmarket/evmarket-cli/internal/tui/styles"
)

var (
	errInvalidEmail  = errors.New("enter a valid email address")
	errEmptyPassword = errors.New("password is required")
)

// SubmitMsg is sent when the user submits valid credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Login is the login form screen.
type Login struct {
	form       *huh.Form
	email      string
	password   string
	submitting bool
	errMsg     string
	width      int
}

// New creates the login screen with an empty form.
func New() *Login {
	l := &Login{}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(validatePassword),
		).Title("Sign in").
			Description("Enter your marketplace account credentials"),
	).WithTheme(createTheme())
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return errInvalidEmail
	}
	return nil
}

func validatePassword(s string) error {
	if s == "" {
		return errEmptyPassword
	}
	return nil
}

// createTheme returns a huh theme matching the marketplace palette.
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(styles.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(styles.Muted)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(styles.Primary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(styles.Primary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(styles.Danger)
	t.Blurred.Title = t.Blurred.Title.Foreground(styles.Muted)

	return t
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
		// Ignore input while a login attempt is running so a held-down
		// Enter key cannot fire a second request.
		if l.submitting {
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.submitting {
		l.submitting = true
		l.errMsg = ""
		email, password := l.email, l.password
		return l, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		}
	}

	return l, cmd
}

// Submitting reports whether a login attempt is in flight.
func (l *Login) Submitting() bool {
	return l.submitting
}

// SetError records a failed attempt and re-arms the form for another try.
func (l *Login) SetError(msg string) {
	l.submitting = false
	l.errMsg = msg
	l.form = l.createForm()
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	if l.errMsg != "" {
		sb.WriteString(styles.StatusError.Render(l.errMsg))
		sb.WriteString("\n\n")
	}

	if l.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(l.form.View())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("Esc to go back"))
	return sb.String()
}
