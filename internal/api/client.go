// ABOUTME: Aggregate API client for the EV marketplace backend
// ABOUTME: One transport shared by all resource clients

package api

import "time"

// Client bundles the per-resource clients over one shared transport.
type Client struct {
	Auth        *AuthClient
	Posts       *PostsClient
	Cart        *CartClient
	Favorites   *FavoritesClient
	Wallet      *WalletClient
	Withdrawals *WithdrawalsClient
	Payment     *PaymentClient
	Admin       *AdminClient
	Brands      *BrandsClient
	Auctions    *AuctionsClient

	transport *Transport
}

// New creates a client for the given backend base URL. tokens supplies the
// bearer token for authenticated calls and may be nil.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	t := NewTransport(baseURL, timeout, tokens)
	return &Client{
		Auth:        &AuthClient{t: t},
		Posts:       &PostsClient{t: t},
		Cart:        &CartClient{t: t},
		Favorites:   &FavoritesClient{t: t},
		Wallet:      &WalletClient{t: t},
		Withdrawals: &WithdrawalsClient{t: t},
		Payment:     &PaymentClient{t: t},
		Admin:       &AdminClient{t: t},
		Brands:      &BrandsClient{t: t},
		Auctions:    &AuctionsClient{t: t},
		transport:   t,
	}
}

// Calls exposes the transport's network-call counter for tests.
func (c *Client) Calls() int64 {
	return c.transport.Calls()
}
