// ABOUTME: Tests for the login and whoami commands
// ABOUTME: Runs against fake backend servers and checks exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newAuthServer serves a minimal login/profile backend.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "Sai email hoặc mật khẩu",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "opaque-token",
				"user": map[string]any{
					"id":       7,
					"fullName": "Nguyen Van A",
					"email":    creds.Email,
					"role":     "MEMBER",
					"status":   "ACTIVE",
				},
			},
		})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id":       7,
				"fullName": "Nguyen Van A",
				"email":    "a@example.com",
				"role":     "MEMBER",
				"status":   "ACTIVE",
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginCommand_Success(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())
	loginEmail = "a@example.com"
	loginPassword = "s3cret"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Nguyen Van A") {
		t.Errorf("expected identity in output, got %q", buf.String())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())
	loginEmail = "a@example.com"
	loginPassword = "wrong"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Sai email hoặc mật khẩu") {
		t.Errorf("expected backend message in output, got %q", buf.String())
	}
}

func TestLoginCommand_ConnectionError(t *testing.T) {
	t.Setenv("EVMARKET_API_URL", "http://127.0.0.1:1")
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())
	loginEmail = "a@example.com"
	loginPassword = "s3cret"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf)

	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestWhoami_AfterLogin(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())
	loginEmail = "a@example.com"
	loginPassword = "s3cret"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	code := runWhoami(context.Background(), &buf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "a@example.com") {
		t.Errorf("expected email in output, got %q", buf.String())
	}
}

func TestWhoami_RevokedTokenClearsSession(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	dir := t.TempDir()
	t.Setenv("EVMARKET_CONFIG_DIR", dir)

	// A stored session whose token the backend no longer accepts.
	record := map[string]any{
		"token": "revoked-token",
		"user":  map[string]any{"id": 7, "email": "a@example.com", "role": "MEMBER"},
	}
	data, _ := json.Marshal(record)
	if err := os.WriteFile(filepath.Join(dir, "session.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 1 {
		t.Fatalf("expected exit code 1 for revoked token, got %d", code)
	}
	if !strings.Contains(buf.String(), "Session expired") {
		t.Errorf("expected expiry message, got %q", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json")); !os.IsNotExist(err) {
		t.Error("expected the stored session to be removed")
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Errorf("expected not-signed-in message, got %q", buf.String())
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	server := newAuthServer(t)
	t.Setenv("EVMARKET_API_URL", server.URL)
	t.Setenv("EVMARKET_CONFIG_DIR", t.TempDir())
	loginEmail = "a@example.com"
	loginPassword = "s3cret"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("logout failed: %s", buf.String())
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf); code != 1 {
		t.Fatalf("expected whoami to report signed out, got %d", code)
	}
}
