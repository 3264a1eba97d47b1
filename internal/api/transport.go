// ABOUTME: HTTP transport shared by all resource clients
// ABOUTME: Attaches bearer tokens, recovers all failures into envelopes

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TokenSource supplies the current bearer token. An empty string means the
// visitor is anonymous. The session store is the only production
// implementation; tests use StaticToken.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Transport issues requests against the marketplace backend. Every call
// resolves to an Envelope; no failure mode escapes as an error or panic.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	group      singleflight.Group
	calls      atomic.Int64
}

// NewTransport creates a transport for the given base URL. tokens may be nil
// for a client that only performs public calls.
func NewTransport(baseURL string, timeout time.Duration, tokens TokenSource) *Transport {
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Transport{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// Calls returns the number of network requests actually issued. Calls that
// short-circuit (missing token) do not count.
func (t *Transport) Calls() int64 {
	return t.calls.Load()
}

// call describes one backend operation.
type call struct {
	method      string
	path        string
	query       url.Values
	body        any   // JSON-encoded request body
	form        *Form // multipart body; mutually exclusive with body
	requireAuth bool
	coalesce    bool   // merge identical concurrent GETs
	fallback    string // operation-specific default failure message
}

// do executes a call and normalizes the outcome. Authenticated calls with no
// token short-circuit before any network I/O.
func (t *Transport) do(ctx context.Context, c call) Envelope {
	token := t.tokens.Token()
	if c.requireAuth && token == "" {
		return failureEnvelope(KindAuthRequired, 0, msgNotLoggedIn, nil)
	}

	if c.coalesce && c.method == http.MethodGet {
		v, _, _ := t.group.Do(coalesceKey(c, token), func() (any, error) {
			return t.roundTrip(ctx, c, token), nil
		})
		return v.(Envelope)
	}

	return t.roundTrip(ctx, c, token)
}

// coalesceKey identifies a mergeable GET. The token is part of the key:
// concurrent callers holding different identities must never share one
// response.
func coalesceKey(c call, token string) string {
	return token + "|" + c.path + "?" + c.query.Encode()
}

func (t *Transport) roundTrip(ctx context.Context, c call, token string) Envelope {
	reqURL := t.baseURL + c.path
	if len(c.query) > 0 {
		reqURL += "?" + c.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case c.form != nil:
		body = c.form.reader()
		// The multipart writer owns the boundary; setting the header by
		// hand corrupts the upload.
		contentType = c.form.contentType()
	case c.body != nil:
		encoded, err := json.Marshal(c.body)
		if err != nil {
			return failureEnvelope(KindTransport, 0, msgGenericFailure, nil)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, c.method, reqURL, body)
	if err != nil {
		return failureEnvelope(KindTransport, 0, msgCannotConnect, nil)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	t.calls.Add(1)
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.transportFailure(ctx, c, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return failureEnvelope(KindTransport, resp.StatusCode, msgInvalidResponse, nil)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.requireAuth {
		// A token we believed valid was rejected. The session store decides
		// whether to reset state; the transport only tags the failure.
		return failureEnvelope(KindSessionInvalid, resp.StatusCode, msgSessionExpired, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failureEnvelope(KindBusiness, resp.StatusCode, c.fallback, respBody)
	}

	if businessFailure(respBody) {
		return failureEnvelope(KindBusiness, resp.StatusCode, c.fallback, respBody)
	}

	return successEnvelope(resp.StatusCode, respBody, "OK")
}

// transportFailure converts request errors to user-friendly envelopes.
func (t *Transport) transportFailure(ctx context.Context, c call, err error) Envelope {
	slog.Debug("request failed", "method", c.method, "path", c.path, "error", err)
	if ctx.Err() == context.Canceled {
		return failureEnvelope(KindTransport, 0, msgRequestCanceled, nil)
	}
	if ctx.Err() == context.DeadlineExceeded {
		return failureEnvelope(KindTransport, 0, msgRequestTimeout, nil)
	}
	return failureEnvelope(KindTransport, 0, msgCannotConnect, nil)
}
