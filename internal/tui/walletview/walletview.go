// ABOUTME: Wallet screen as a bubbletea model
// ABOUTME: Shows balance and recent transactions, offers creation when absent

package walletview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evmarket/evmarket-cli/internal/api"
	"github.com/evmarket/evmarket-cli/internal/tui/styles"
)

// LoadedMsg is sent when the wallet fetch completes.
type LoadedMsg struct {
	Wallet *api.Wallet
	Env    api.Envelope
}

// HistoryMsg is sent when the transaction history arrives.
type HistoryMsg struct {
	Transactions []api.Transaction
	Env          api.Envelope
}

// CreatedMsg is sent when wallet creation completes.
type CreatedMsg struct {
	Wallet *api.Wallet
	Env    api.Envelope
}

// CancelledMsg is sent when the user backs out of the wallet screen.
type CancelledMsg struct{}

type state int

const (
	stateLoading state = iota
	stateReady
	stateAbsent
	stateFailed
	stateCreating
)

// WalletView shows the member's balance and ledger.
type WalletView struct {
	wallets *api.WalletClient
	state   state
	wallet  *api.Wallet
	history []api.Transaction
	errMsg  string
	width   int
}

// New creates the wallet screen.
func New(wallets *api.WalletClient) *WalletView {
	return &WalletView{wallets: wallets, state: stateLoading}
}

// Init implements tea.Model
func (w *WalletView) Init() tea.Cmd {
	return w.fetch()
}

func (w *WalletView) fetch() tea.Cmd {
	w.state = stateLoading
	w.errMsg = ""
	return func() tea.Msg {
		wallet, env := w.wallets.Get(context.Background())
		return LoadedMsg{Wallet: wallet, Env: env}
	}
}

func (w *WalletView) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		txs, env := w.wallets.History(context.Background())
		return HistoryMsg{Transactions: txs, Env: env}
	}
}

func (w *WalletView) create() tea.Cmd {
	w.state = stateCreating
	return func() tea.Msg {
		wallet, env := w.wallets.Create(context.Background())
		return CreatedMsg{Wallet: wallet, Env: env}
	}
}

// Update implements tea.Model
func (w *WalletView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		return w, nil

	case LoadedMsg:
		if msg.Env.Success {
			w.state = stateReady
			w.wallet = msg.Wallet
			return w, w.fetchHistory()
		}
		// A 404 means the account simply has no wallet yet, which is a
		// different prompt than a failed request.
		if msg.Env.NotFound() {
			w.state = stateAbsent
			return w, nil
		}
		w.state = stateFailed
		w.errMsg = msg.Env.Message
		return w, nil

	case HistoryMsg:
		if msg.Env.Success {
			w.history = msg.Transactions
		}
		return w, nil

	case CreatedMsg:
		if msg.Env.Success {
			w.state = stateReady
			w.wallet = msg.Wallet
			return w, nil
		}
		w.state = stateFailed
		w.errMsg = msg.Env.Message
		return w, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return w, func() tea.Msg { return CancelledMsg{} }
		case "r":
			if w.state == stateFailed || w.state == stateReady {
				return w, w.fetch()
			}
		case "c", "enter":
			if w.state == stateAbsent {
				return w, w.create()
			}
		}
	}

	return w, nil
}

// View implements tea.Model
func (w *WalletView) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Wallet"))
	sb.WriteString("\n")

	switch w.state {
	case stateLoading:
		sb.WriteString(styles.Subtitle.Render("Loading wallet..."))

	case stateCreating:
		sb.WriteString(styles.Subtitle.Render("Creating wallet..."))

	case stateAbsent:
		sb.WriteString("You don't have a wallet yet.\n\n")
		sb.WriteString(styles.KeyStyle.Render("c") + " Create wallet  ")
		sb.WriteString(styles.KeyStyle.Render("b") + " Back")

	case stateFailed:
		sb.WriteString(styles.StatusError.Render(w.errMsg))
		sb.WriteString("\n\n")
		sb.WriteString(styles.KeyStyle.Render("r") + " Retry  ")
		sb.WriteString(styles.KeyStyle.Render("b") + " Back")

	case stateReady:
		balance := int64(0)
		if w.wallet != nil {
			balance = w.wallet.Balance
		}
		sb.WriteString("Balance: ")
		sb.WriteString(styles.PriceStyle.Render(fmt.Sprintf("%d VND", balance)))
		sb.WriteString("\n\n")
		sb.WriteString(w.viewHistory())
	}

	return sb.String()
}

func (w *WalletView) viewHistory() string {
	if len(w.history) == 0 {
		return styles.Subtitle.Render("No transactions yet")
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Recent transactions"))
	sb.WriteString("\n")

	limit := len(w.history)
	if limit > 10 {
		limit = 10
	}
	for _, tx := range w.history[:limit] {
		sign := "+"
		amountStyle := styles.StatusOK
		if tx.Amount < 0 {
			sign = ""
			amountStyle = styles.StatusError
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			tx.CreatedAt,
			amountStyle.Render(fmt.Sprintf("%s%d", sign, tx.Amount)),
			tx.Description))
	}
	return sb.String()
}
