// ABOUTME: Withdrawal request resource client
// ABOUTME: Raise, list, and moderate withdrawal requests

package api

import (
	"context"
	"fmt"
	"net/http"
)

// WithdrawalsClient wraps the withdrawal request endpoints.
type WithdrawalsClient struct {
	t *Transport
}

// Create raises a new withdrawal request for admin review.
func (c *WithdrawalsClient) Create(ctx context.Context, input WithdrawInput) (*WithdrawalRequest, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/withdrawals",
		body:        input,
		requireAuth: true,
		fallback:    msgWithdrawFailed,
	})
	var req WithdrawalRequest
	env = decodeInto(env, &req)
	if !env.Success {
		return nil, env
	}
	return &req, env
}

// Mine fetches the caller's own withdrawal requests.
func (c *WithdrawalsClient) Mine(ctx context.Context) ([]WithdrawalRequest, Envelope) {
	return c.list(ctx, "/api/withdrawals/mine")
}

// All fetches every withdrawal request. Admin only.
func (c *WithdrawalsClient) All(ctx context.Context) ([]WithdrawalRequest, Envelope) {
	return c.list(ctx, "/api/withdrawals")
}

func (c *WithdrawalsClient) list(ctx context.Context, path string) ([]WithdrawalRequest, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        path,
		requireAuth: true,
		fallback:    msgWalletFailed,
	})
	if !env.Success {
		return nil, env
	}
	var reqs []WithdrawalRequest
	env = decodeInto(env, &reqs)
	if !env.Success {
		return nil, env
	}
	return reqs, env
}

// Approve settles a pending withdrawal. Admin only.
func (c *WithdrawalsClient) Approve(ctx context.Context, id int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/withdrawals/%d/approve", id),
		requireAuth: true,
		fallback:    msgAdminFailed,
	})
}

// Reject declines a pending withdrawal with a reason. Admin only.
func (c *WithdrawalsClient) Reject(ctx context.Context, id int64, reason string) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/withdrawals/%d/reject", id),
		body:        map[string]string{"reason": reason},
		requireAuth: true,
		fallback:    msgAdminFailed,
	})
}
