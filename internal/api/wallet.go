// ABOUTME: Wallet resource client
// ABOUTME: Balance, withdrawals, and transaction history

package api

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// WalletClient wraps the wallet endpoints. A user has no wallet until one is
// created; Get answers a 404 envelope in that case and callers use
// NotFound() to offer creation instead of a retry.
type WalletClient struct {
	t *Transport
}

// WithdrawInput is the payload for a wallet withdrawal.
type WithdrawInput struct {
	Amount      int64  `json:"amount"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
}

// Get fetches the caller's wallet.
func (c *WalletClient) Get(ctx context.Context) (*Wallet, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/wallet",
		requireAuth: true,
		fallback:    msgWalletFailed,
	})
	var wallet Wallet
	env = decodeInto(env, &wallet)
	if !env.Success {
		return nil, env
	}
	return &wallet, env
}

// Create opens a wallet for the caller.
func (c *WalletClient) Create(ctx context.Context) (*Wallet, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/wallet",
		requireAuth: true,
		fallback:    msgWalletFailed,
	})
	var wallet Wallet
	env = decodeInto(env, &wallet)
	if !env.Success {
		return nil, env
	}
	return &wallet, env
}

// Balance fetches the current balance. The backend returns either a bare
// number or {balance}.
func (c *WalletClient) Balance(ctx context.Context) (int64, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/wallet/balance",
		requireAuth: true,
		coalesce:    true,
		fallback:    msgWalletFailed,
	})
	if !env.Success {
		return 0, env
	}
	if env.Data.Type == gjson.Number {
		return env.Data.Int(), env
	}
	if v := env.Data.Get("balance"); v.Exists() {
		return v.Int(), env
	}
	return 0, env
}

// Withdraw moves wallet funds out to a bank account by raising a withdrawal
// request for admin review.
func (c *WalletClient) Withdraw(ctx context.Context, input WithdrawInput) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/wallet/withdraw",
		body:        input,
		requireAuth: true,
		fallback:    msgWithdrawFailed,
	})
}

// History fetches the wallet's transaction ledger.
func (c *WalletClient) History(ctx context.Context) ([]Transaction, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/wallet/transactions",
		requireAuth: true,
		fallback:    msgWalletFailed,
	})
	if !env.Success {
		return nil, env
	}
	var txs []Transaction
	env = decodeInto(env, &txs)
	if !env.Success {
		return nil, env
	}
	return txs, env
}
