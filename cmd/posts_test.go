// ABOUTME: Tests for the posts commands
// ABOUTME: Covers listing output, partial updates, and id validation

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/evmarket/evmarket-cli/internal/api"
)

func TestPostsList_Output(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"items": []map[string]any{
					{"id": 1, "title": "VinFast VF8", "price": 500000000, "brand": "VinFast"},
					{"id": 2, "title": "Pin LFP 60kWh", "price": 80000000, "brand": "CATL"},
				},
				"page":       1,
				"pageSize":   10,
				"totalItems": 2,
			},
		})
	}))
	defer server.Close()
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())

	var buf bytes.Buffer
	code := runPostsList(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "VinFast VF8") {
		t.Errorf("expected listing title in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "2 listings total") {
		t.Errorf("expected total count in output, got %q", buf.String())
	}
}

func TestPostsShow_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "no such post"})
	}))
	defer server.Close()
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())

	var buf bytes.Buffer
	code := runPostsShow(context.Background(), &buf, "42")

	if code != 1 {
		t.Fatalf("expected exit code 1 for missing listing, got %d", code)
	}
	if !strings.Contains(buf.String(), "not found") {
		t.Errorf("expected not-found message, got %q", buf.String())
	}
}

func TestPostsShow_InvalidID(t *testing.T) {
	var buf bytes.Buffer
	code := runPostsShow(context.Background(), &buf, "banana")

	if code != 2 {
		t.Fatalf("expected exit code 2 for invalid id, got %d", code)
	}
}

func TestPostsUpdate_OnlyChangedFlags(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		body = buf.Bytes()
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()
	t.Setenv("EVMARKET_API_URL", server.URL)
	dir := t.TempDir()
	t.Setenv("EVMARKET_CONFIG_DIR", dir)
	writeSession(t, dir)

	cmd := postsUpdateCmd
	cmd.Flags().Set("price", "123456")
	defer cmd.Flags().Set("price", "0")
	updatePrice = 123456

	var buf bytes.Buffer
	code := runPostsUpdate(context.Background(), &buf, cmd, "5")

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if gjson.GetBytes(body, "price").Int() != 123456 {
		t.Errorf("expected price in payload, got %s", body)
	}
	if gjson.GetBytes(body, "title").Exists() {
		t.Errorf("expected untouched fields omitted, got %s", body)
	}
}

func TestFormatPosts_WithStatus(t *testing.T) {
	out := formatPosts([]api.Post{
		{ID: 1, Title: "VinFast VF8", Price: 500000000, Brand: "VinFast", Status: api.PostStatusPending},
	}, true)

	if !strings.Contains(out, "[PENDING]") {
		t.Errorf("expected status marker, got %q", out)
	}
}
