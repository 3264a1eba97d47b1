// ABOUTME: Tests for the wallet screen
// ABOUTME: Validates the no-wallet-yet prompt versus failure retry states

package walletview

import (
	"strings"
	"testing"

	"github.com/evmarket/evmarket-cli/internal/api"
)

func TestLoadedSuccess(t *testing.T) {
	w := New(nil)

	w.Update(LoadedMsg{
		Wallet: &api.Wallet{ID: 1, Balance: 250_000},
		Env:    api.Envelope{Success: true, Status: 200},
	})

	if w.state != stateReady {
		t.Errorf("expected ready state, got %d", w.state)
	}
	if w.wallet.Balance != 250_000 {
		t.Errorf("expected balance 250000, got %d", w.wallet.Balance)
	}
}

func TestLoadedNotFoundOffersCreation(t *testing.T) {
	w := New(nil)

	w.Update(LoadedMsg{Env: api.Envelope{Success: false, Status: 404, Message: "not found"}})

	if w.state != stateAbsent {
		t.Errorf("expected absent state for 404, got %d", w.state)
	}

	view := w.View()
	if !strings.Contains(view, "Create wallet") {
		t.Errorf("expected creation prompt in view, got:\n%s", view)
	}
}

func TestLoadedFailureOffersRetry(t *testing.T) {
	w := New(nil)

	w.Update(LoadedMsg{Env: api.Envelope{Success: false, Status: 0, Message: "Không thể kết nối đến máy chủ"}})

	if w.state != stateFailed {
		t.Errorf("expected failed state, got %d", w.state)
	}

	view := w.View()
	if !strings.Contains(view, "Retry") {
		t.Errorf("expected retry prompt in view, got:\n%s", view)
	}
	if strings.Contains(view, "Create wallet") {
		t.Error("transport failure must not offer wallet creation")
	}
}

func TestCreatedSuccess(t *testing.T) {
	w := New(nil)
	w.state = stateCreating

	w.Update(CreatedMsg{
		Wallet: &api.Wallet{ID: 2, Balance: 0},
		Env:    api.Envelope{Success: true, Status: 201},
	})

	if w.state != stateReady {
		t.Errorf("expected ready state after creation, got %d", w.state)
	}
}

func TestCreatedFailure(t *testing.T) {
	w := New(nil)
	w.state = stateCreating

	w.Update(CreatedMsg{Env: api.Envelope{Success: false, Status: 500, Message: "server error"}})

	if w.state != stateFailed {
		t.Errorf("expected failed state, got %d", w.state)
	}
	if w.errMsg != "server error" {
		t.Errorf("expected backend message kept, got %q", w.errMsg)
	}
}

func TestHistoryRendered(t *testing.T) {
	w := New(nil)
	w.Update(LoadedMsg{
		Wallet: &api.Wallet{Balance: 1_000_000},
		Env:    api.Envelope{Success: true, Status: 200},
	})
	w.Update(HistoryMsg{
		Transactions: []api.Transaction{
			{ID: 1, Amount: 500_000, Description: "Nạp tiền VNPay", CreatedAt: "2025-11-02"},
			{ID: 2, Amount: -200_000, Description: "Mua VinFast VF3", CreatedAt: "2025-11-03"},
		},
		Env: api.Envelope{Success: true, Status: 200},
	})

	view := w.View()
	if !strings.Contains(view, "Nạp tiền VNPay") {
		t.Errorf("expected deposit entry in view, got:\n%s", view)
	}
	if !strings.Contains(view, "-200000") {
		t.Errorf("expected debit amount in view, got:\n%s", view)
	}
}
