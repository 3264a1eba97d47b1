// ABOUTME: Auction resource client
// ABOUTME: Browse running auctions and place bids

package api

import (
	"context"
	"fmt"
	"net/http"
)

// AuctionsClient wraps the auction endpoints.
type AuctionsClient struct {
	t *Transport
}

// List fetches running auctions.
func (c *AuctionsClient) List(ctx context.Context) ([]Auction, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/auctions",
		coalesce: true,
		fallback: msgAuctionFailed,
	})
	if !env.Success {
		return nil, env
	}
	var auctions []Auction
	env = decodeInto(env, &auctions)
	if !env.Success {
		return nil, env
	}
	return auctions, env
}

// Get fetches one auction by id.
func (c *AuctionsClient) Get(ctx context.Context, id int64) (*Auction, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/auctions/%d", id),
		fallback: msgAuctionFailed,
	})
	var auction Auction
	env = decodeInto(env, &auction)
	if !env.Success {
		return nil, env
	}
	return &auction, env
}

// Bid places a bid on a running auction.
func (c *AuctionsClient) Bid(ctx context.Context, id int64, amount int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/auctions/%d/bids", id),
		body:        map[string]int64{"amount": amount},
		requireAuth: true,
		fallback:    msgAuctionFailed,
	})
}
