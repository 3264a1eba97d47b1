// ABOUTME: Brand resource client
// ABOUTME: Vehicle and battery manufacturer lists

package api

import (
	"context"
	"net/http"
)

// BrandsClient wraps the brand list endpoints. Both lists are public and
// change rarely; concurrent fetches are coalesced.
type BrandsClient struct {
	t *Transport
}

// Vehicles fetches the vehicle manufacturer list.
func (c *BrandsClient) Vehicles(ctx context.Context) ([]Brand, Envelope) {
	return c.list(ctx, "/api/brands/vehicles")
}

// Batteries fetches the battery manufacturer list.
func (c *BrandsClient) Batteries(ctx context.Context) ([]Brand, Envelope) {
	return c.list(ctx, "/api/brands/batteries")
}

func (c *BrandsClient) list(ctx context.Context, path string) ([]Brand, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		coalesce: true,
		fallback: msgBrandsFailed,
	})
	if !env.Success {
		return nil, env
	}
	var brands []Brand
	env = decodeInto(env, &brands)
	if !env.Success {
		return nil, env
	}
	return brands, env
}
