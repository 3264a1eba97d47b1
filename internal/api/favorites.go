// ABOUTME: Favorites resource client
// ABOUTME: Saved-listing list, add, remove, and lookup

package api

import (
	"context"
	"fmt"
	"net/http"
)

// FavoritesClient wraps the saved-listings endpoints.
type FavoritesClient struct {
	t *Transport
}

// List fetches all of the caller's saved listings.
func (c *FavoritesClient) List(ctx context.Context) ([]Favorite, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/favorites",
		requireAuth: true,
		fallback:    msgFavoritesFailed,
	})
	if !env.Success {
		return nil, env
	}
	var favs []Favorite
	env = decodeInto(env, &favs)
	if !env.Success {
		return nil, env
	}
	return favs, env
}

// Add saves a listing.
func (c *FavoritesClient) Add(ctx context.Context, postID int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/favorites",
		body:        map[string]int64{"postId": postID},
		requireAuth: true,
		fallback:    msgFavoritesFailed,
	})
}

// Remove unsaves a listing.
func (c *FavoritesClient) Remove(ctx context.Context, id int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/api/favorites/%d", id),
		requireAuth: true,
		fallback:    msgFavoritesFailed,
	})
}

// Get fetches one saved listing by id.
func (c *FavoritesClient) Get(ctx context.Context, id int64) (*Favorite, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        fmt.Sprintf("/api/favorites/%d", id),
		requireAuth: true,
		fallback:    msgFavoritesFailed,
	})
	var fav Favorite
	env = decodeInto(env, &fav)
	if !env.Success {
		return nil, env
	}
	return &fav, env
}
