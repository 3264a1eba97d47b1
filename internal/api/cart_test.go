// ABOUTME: Tests for the cart resource client
// ABOUTME: Duplicate adds must read differently from transport failures

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestCartAdd_DuplicateGetsDistinctMessage(t *testing.T) {
	var adds atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adds.Add(1) == 1 {
			w.Write([]byte(`{"Message":"Đã thêm vào giỏ hàng"}`))
			return
		}
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")

	first := c.Cart.Add(context.Background(), 42, 1)
	if !first.Success {
		t.Fatalf("first add should succeed: %v", first.Err)
	}

	second := c.Cart.Add(context.Background(), 42, 1)
	if second.Success {
		t.Fatal("second add should fail")
	}
	if second.Err.Kind != KindBusiness {
		t.Errorf("duplicate add is a business failure, got %v", second.Err.Kind)
	}
	if second.Message != "Sản phẩm đã có trong giỏ hàng" {
		t.Errorf("expected already-in-cart message, got %q", second.Message)
	}
}

func TestCartAdd_TransportFailureMessageDiffers(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "tok")
	env := c.Cart.Add(context.Background(), 42, 1)
	if env.Success {
		t.Fatal("expected failure")
	}
	if env.Err.Kind != KindTransport {
		t.Errorf("expected transport kind, got %v", env.Err.Kind)
	}
	if env.Message == "Sản phẩm đã có trong giỏ hàng" {
		t.Error("transport failure must not claim the item is already in the cart")
	}
}

func TestCartAdd_BackendMessagePreferredOnConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"Message":"Tin đăng này đã nằm trong giỏ của bạn"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	env := c.Cart.Add(context.Background(), 42, 1)
	if env.Message != "Tin đăng này đã nằm trong giỏ của bạn" {
		t.Errorf("backend message must win over the default, got %q", env.Message)
	}
}

func TestCartGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Data":{"items":[{"postId":1,"title":"VF8","price":700000000,"quantity":1}],"total":700000000}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	cart, env := c.Cart.Get(context.Background())
	if !env.Success {
		t.Fatalf("unexpected failure: %v", env.Err)
	}
	if len(cart.Items) != 1 || cart.Total != 700000000 {
		t.Errorf("unexpected cart: %+v", cart)
	}
}

func TestCartClear_RequiresAuth(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", "")
	env := c.Cart.Clear(context.Background())
	if env.Err == nil || env.Err.Kind != KindAuthRequired {
		t.Fatalf("expected auth_required, got %+v", env.Err)
	}
	if c.Calls() != 0 {
		t.Errorf("expected no network call, got %d", c.Calls())
	}
}
