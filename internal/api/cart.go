// ABOUTME: Shopping cart resource client
// ABOUTME: Get, add, update, remove, and clear cart entries

package api

import (
	"context"
	"fmt"
	"net/http"
)

// CartClient wraps the shopping cart endpoints. All cart operations require
// authentication.
type CartClient struct {
	t *Transport
}

// Get fetches the current cart.
func (c *CartClient) Get(ctx context.Context) (*Cart, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/cart",
		requireAuth: true,
		fallback:    msgCartFailed,
	})
	var cart Cart
	env = decodeInto(env, &cart)
	if !env.Success {
		return nil, env
	}
	return &cart, env
}

// Add puts a listing into the cart. A duplicate add is a business failure
// the backend answers with 409; the caller sees "already in cart" rather
// than the generic cart message so the two cases render differently.
func (c *CartClient) Add(ctx context.Context, postID int64, quantity int) Envelope {
	env := c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/cart/items",
		body:        map[string]any{"postId": postID, "quantity": quantity},
		requireAuth: true,
		fallback:    msgCartFailed,
	})
	if !env.Success && env.Status == http.StatusConflict && env.Message == msgCartFailed {
		env.Message = msgAlreadyInCart
		env.Err.Message = msgAlreadyInCart
	}
	return env
}

// Update changes the quantity of a cart entry.
func (c *CartClient) Update(ctx context.Context, postID int64, quantity int) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPut,
		path:        fmt.Sprintf("/api/cart/items/%d", postID),
		body:        map[string]any{"quantity": quantity},
		requireAuth: true,
		fallback:    msgCartFailed,
	})
}

// Remove deletes one entry from the cart.
func (c *CartClient) Remove(ctx context.Context, postID int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/api/cart/items/%d", postID),
		requireAuth: true,
		fallback:    msgCartFailed,
	})
}

// Clear empties the cart.
func (c *CartClient) Clear(ctx context.Context) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodDelete,
		path:        "/api/cart",
		requireAuth: true,
		fallback:    msgCartFailed,
	})
}
