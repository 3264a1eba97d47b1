// ABOUTME: Admin back-office resource client
// ABOUTME: User moderation and transaction queries

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AdminClient wraps the back-office endpoints. Every call requires an admin
// token; the backend enforces the role, the client only carries it.
type AdminClient struct {
	t *Transport
}

// TransactionFilter narrows an admin transaction query.
type TransactionFilter struct {
	UserID int64
	Type   string
	Page   int
}

// Users lists registered users.
func (c *AdminClient) Users(ctx context.Context, page int) ([]User, Envelope) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/admin/users",
		query:       q,
		requireAuth: true,
		fallback:    msgAdminFailed,
	})
	if !env.Success {
		return nil, env
	}
	var users []User
	env = decodeInto(env, &users)
	if !env.Success {
		return nil, env
	}
	return users, env
}

// SetUserStatus activates or bans a user account.
func (c *AdminClient) SetUserStatus(ctx context.Context, userID int64, status string) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPut,
		path:        fmt.Sprintf("/api/admin/users/%d/status", userID),
		body:        map[string]string{"status": status},
		requireAuth: true,
		fallback:    msgAdminFailed,
	})
}

// Transactions queries the platform transaction ledger.
func (c *AdminClient) Transactions(ctx context.Context, filter TransactionFilter) ([]Transaction, Envelope) {
	q := url.Values{}
	if filter.UserID > 0 {
		q.Set("userId", strconv.FormatInt(filter.UserID, 10))
	}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/admin/transactions",
		query:       q,
		requireAuth: true,
		fallback:    msgAdminFailed,
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
