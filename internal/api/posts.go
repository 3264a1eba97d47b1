// ABOUTME: Listings resource client
// ABOUTME: Browse, create, update, and moderate marketplace posts

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/sjson"
)

// PostsClient wraps the listing endpoints.
type PostsClient struct {
	t *Transport
}

// PostFilter narrows a listing search. Zero values are omitted from the
// query string.
type PostFilter struct {
	Keyword  string
	BrandID  int64
	Category string
	MinPrice int64
	MaxPrice int64
	Page     int
	PageSize int
}

func (f PostFilter) query() url.Values {
	q := url.Values{}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	if f.BrandID > 0 {
		q.Set("brandId", strconv.FormatInt(f.BrandID, 10))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatInt(f.MinPrice, 10))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatInt(f.MaxPrice, 10))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return q
}

// PostUpdate carries a partial update; nil fields are left untouched.
type PostUpdate struct {
	Title       *string
	Description *string
	Price       *int64
	BrandID     *int64
}

// payload builds a JSON body containing only the provided fields.
func (u PostUpdate) payload() (string, error) {
	body := "{}"
	var err error
	if u.Title != nil {
		if body, err = sjson.Set(body, "title", *u.Title); err != nil {
			return "", err
		}
	}
	if u.Description != nil {
		if body, err = sjson.Set(body, "description", *u.Description); err != nil {
			return "", err
		}
	}
	if u.Price != nil {
		if body, err = sjson.Set(body, "price", *u.Price); err != nil {
			return "", err
		}
	}
	if u.BrandID != nil {
		if body, err = sjson.Set(body, "brandId", *u.BrandID); err != nil {
			return "", err
		}
	}
	return body, nil
}

// List fetches a page of approved listings. Concurrent identical searches
// are coalesced.
func (c *PostsClient) List(ctx context.Context, filter PostFilter) (*PostPage, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/posts",
		query:    filter.query(),
		coalesce: true,
		fallback: msgPostsFailed,
	})
	return decodePostPage(env)
}

// Detail fetches one listing by id.
func (c *PostsClient) Detail(ctx context.Context, id int64) (*Post, Envelope) {
	env := c.t.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/posts/%d", id),
		fallback: msgPostsFailed,
	})
	var post Post
	env = decodeInto(env, &post)
	if !env.Success {
		return nil, env
	}
	return &post, env
}

// Create submits a new listing. The form carries the text fields plus any
// image files; the transport derives the multipart content type.
func (c *PostsClient) Create(ctx context.Context, form *Form) (*Post, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/posts",
		form:        form,
		requireAuth: true,
		fallback:    msgPostActionFailed,
	})
	var post Post
	env = decodeInto(env, &post)
	if !env.Success {
		return nil, env
	}
	return &post, env
}

// Update patches a listing with the provided fields only.
func (c *PostsClient) Update(ctx context.Context, id int64, update PostUpdate) Envelope {
	body, err := update.payload()
	if err != nil {
		return failureEnvelope(KindDecode, 0, msgPostActionFailed, nil)
	}
	return c.t.do(ctx, call{
		method:      http.MethodPut,
		path:        fmt.Sprintf("/api/posts/%d", id),
		body:        json.RawMessage(body),
		requireAuth: true,
		fallback:    msgPostActionFailed,
	})
}

// Delete removes one of the caller's listings.
func (c *PostsClient) Delete(ctx context.Context, id int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("/api/posts/%d", id),
		requireAuth: true,
		fallback:    msgPostActionFailed,
	})
}

// Mine fetches the caller's own listings, all statuses included.
func (c *PostsClient) Mine(ctx context.Context) ([]Post, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/posts/mine",
		requireAuth: true,
		fallback:    msgPostsFailed,
	})
	return decodePosts(env)
}

// Pending fetches listings awaiting moderation. Admin only.
func (c *PostsClient) Pending(ctx context.Context) ([]Post, Envelope) {
	env := c.t.do(ctx, call{
		method:      http.MethodGet,
		path:        "/api/posts/pending",
		requireAuth: true,
		fallback:    msgPostsFailed,
	})
	return decodePosts(env)
}

// Approve publishes a pending listing. Admin only.
func (c *PostsClient) Approve(ctx context.Context, id int64) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/posts/%d/approve", id),
		requireAuth: true,
		fallback:    msgPostActionFailed,
	})
}

// Reject declines a pending listing with a reason. Admin only.
func (c *PostsClient) Reject(ctx context.Context, id int64, reason string) Envelope {
	return c.t.do(ctx, call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/posts/%d/reject", id),
		body:        map[string]string{"reason": reason},
		requireAuth: true,
		fallback:    msgPostActionFailed,
	})
}

// decodePostPage tolerates both paged and bare-array payloads.
func decodePostPage(env Envelope) (*PostPage, Envelope) {
	if !env.Success {
		return nil, env
	}
	if env.Data.IsArray() {
		var items []Post
		env = decodeInto(env, &items)
		if !env.Success {
			return nil, env
		}
		return &PostPage{Items: items, TotalItems: len(items)}, env
	}
	var page PostPage
	env = decodeInto(env, &page)
	if !env.Success {
		return nil, env
	}
	return &page, env
}

func decodePosts(env Envelope) ([]Post, Envelope) {
	if !env.Success {
		return nil, env
	}
	var posts []Post
	env = decodeInto(env, &posts)
	if !env.Success {
		return nil, env
	}
	return posts, env
}
