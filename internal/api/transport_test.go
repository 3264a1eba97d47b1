// ABOUTME: Tests for the shared HTTP transport
// ABOUTME: Uses httptest to mock backend responses

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestTransport(serverURL, token string) *Transport {
	return NewTransport(serverURL, 5*time.Second, StaticToken(token))
}

func TestDo_AuthShortCircuit_NoNetworkCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "")
	env := tr.do(context.Background(), call{
		method:      http.MethodGet,
		path:        "/api/wallet",
		requireAuth: true,
		fallback:    "x",
	})

	if env.Success {
		t.Fatal("expected failure without token")
	}
	if env.Err.Kind != KindAuthRequired {
		t.Errorf("expected auth_required, got %v", env.Err.Kind)
	}
	if env.Message == "" {
		t.Error("expected a message")
	}
	if tr.Calls() != 0 {
		t.Errorf("expected zero network calls, got %d", tr.Calls())
	}
}

func TestDo_AttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"Data":{}}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "tok123")
	env := tr.do(context.Background(), call{
		method:      http.MethodGet,
		path:        "/api/cart",
		requireAuth: true,
		fallback:    "x",
	})

	if !env.Success {
		t.Fatalf("unexpected failure: %v", env.Err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestDo_AnonymousPublicCallHasNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "")
	env := tr.do(context.Background(), call{method: http.MethodGet, path: "/api/posts", fallback: "x"})
	if !env.Success {
		t.Fatalf("unexpected failure: %v", env.Err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	tr := newTestTransport("http://127.0.0.1:1", "")
	env := tr.do(context.Background(), call{method: http.MethodGet, path: "/api/posts", fallback: "x"})
	if env.Success {
		t.Fatal("expected failure")
	}
	if env.Err.Kind != KindTransport {
		t.Errorf("expected transport kind, got %v", env.Err.Kind)
	}
	if env.Status != 0 {
		t.Errorf("expected status 0 with no response, got %d", env.Status)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := newTestTransport(server.URL, "")
	env := tr.do(ctx, call{method: http.MethodGet, path: "/api/posts", fallback: "x"})
	if env.Success {
		t.Fatal("expected failure for canceled context")
	}
	if env.Err.Kind != KindTransport {
		t.Errorf("expected transport kind, got %v", env.Err.Kind)
	}
}

func TestDo_BusinessFailurePreservesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Message":"Wallet not found"}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "tok")
	env := tr.do(context.Background(), call{
		method:      http.MethodGet,
		path:        "/api/wallet",
		requireAuth: true,
		fallback:    "x",
	})

	if env.Success {
		t.Fatal("expected failure")
	}
	if !env.NotFound() {
		t.Errorf("expected NotFound, status = %d", env.Status)
	}
	if env.Message != "Wallet not found" {
		t.Errorf("expected backend message, got %q", env.Message)
	}
}

func TestDo_UnauthorizedOnAuthCallIsSessionInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"Message":"token expired"}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "stale-token")
	env := tr.do(context.Background(), call{
		method:      http.MethodGet,
		path:        "/api/cart",
		requireAuth: true,
		fallback:    "x",
	})

	if env.Err == nil || env.Err.Kind != KindSessionInvalid {
		t.Fatalf("expected session_invalid, got %+v", env.Err)
	}
}

func TestDo_UnauthorizedOnPublicCallStaysBusiness(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "")
	env := tr.do(context.Background(), call{method: http.MethodGet, path: "/api/posts", fallback: "x"})
	if env.Err == nil || env.Err.Kind != KindBusiness {
		t.Fatalf("401 on a non-auth call must not be tagged session_invalid, got %+v", env.Err)
	}
}

func TestDo_TwoHundredWithBusinessFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Sản phẩm đã có trong giỏ hàng"}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "tok")
	env := tr.do(context.Background(), call{
		method:      http.MethodPost,
		path:        "/api/cart/items",
		body:        map[string]int{"postId": 1},
		requireAuth: true,
		fallback:    "x",
	})

	if env.Success {
		t.Fatal("expected business failure despite 200")
	}
	if env.Err.Kind != KindBusiness {
		t.Errorf("expected business kind, got %v", env.Err.Kind)
	}
	if !strings.Contains(env.Message, "giỏ hàng") {
		t.Errorf("expected backend message surfaced, got %q", env.Message)
	}
}

func TestDo_MultipartContentTypeCarriesBoundary(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("backend could not parse multipart body: %v", err)
		}
		if r.FormValue("title") != "VF8" {
			t.Errorf("expected title field, got %q", r.FormValue("title"))
		}
		w.Write([]byte(`{"Data":{"id":1}}`))
	}))
	defer server.Close()

	form := NewForm()
	if err := form.AddField("title", "VF8"); err != nil {
		t.Fatal(err)
	}
	if err := form.AddFile("images", "photo.jpg", strings.NewReader("fake-jpeg-bytes")); err != nil {
		t.Fatal(err)
	}

	tr := newTestTransport(server.URL, "tok")
	env := tr.do(context.Background(), call{
		method:      http.MethodPost,
		path:        "/api/posts",
		form:        form,
		requireAuth: true,
		fallback:    "x",
	})

	if !env.Success {
		t.Fatalf("unexpected failure: %v", env.Err)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Errorf("expected generated multipart content type, got %q", gotContentType)
	}
}

func TestDo_CoalescesConcurrentIdenticalGets(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	tr := newTestTransport(server.URL, "")
	c := call{method: http.MethodGet, path: "/api/brands/vehicles", coalesce: true, fallback: "x"}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.do(context.Background(), c)
		}()
	}
	// Give the goroutines a moment to pile onto the same key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("expected 1 backend hit for 5 concurrent identical GETs, got %d", hits.Load())
	}
}

func TestCoalesceKey_SeparatesTokens(t *testing.T) {
	q := url.Values{}
	q.Set("page", "1")
	c := call{method: http.MethodGet, path: "/api/wallet/balance", query: q}

	a := coalesceKey(c, "token-a")
	b := coalesceKey(c, "token-b")
	if a == b {
		t.Error("calls under different tokens must not share a coalescing key")
	}
	if coalesceKey(c, "token-a") != a {
		t.Error("same call and token must map to a stable key")
	}
	if coalesceKey(call{method: http.MethodGet, path: "/api/wallet/balance"}, "token-a") == a {
		t.Error("query parameters must be part of the key")
	}
}
