package cms_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridianadvisory/site-backend/internal/platform/cms"
)

func TestLogin(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/local" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jwt":  "strapi-jwt",
			"user": map[string]interface{}{"id": 1, "email": "admin@x.com", "username": "admin"},
		})
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, nil)

	result, err := client.Login(context.Background(), "admin@x.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["identifier"] != "admin@x.com" || gotBody["password"] != "s3cret" {
		t.Fatalf("unexpected credentials on the wire: %v", gotBody)
	}
	if result.JWT != "strapi-jwt" {
		t.Fatalf("expected jwt relayed, got %q", result.JWT)
	}

	var user map[string]interface{}
	if err := json.Unmarshal(result.User, &user); err != nil {
		t.Fatalf("user payload should round-trip: %v", err)
	}
	if user["username"] != "admin" {
		t.Fatalf("unexpected user: %v", user)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid identifier or password"}}`))
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, nil)

	_, err := client.Login(context.Background(), "admin", "wrong")
	var authErr *cms.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if authErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", authErr.StatusCode)
	}
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token-123" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "email": "admin@x.com"})
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, nil)

	raw, err := client.Me(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var user map[string]interface{}
	if err := json.Unmarshal(raw, &user); err != nil {
		t.Fatalf("unexpected payload: %v", err)
	}
	if user["email"] != "admin@x.com" {
		t.Fatalf("unexpected user: %v", user)
	}
}

func TestMe_InvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Missing or invalid credentials"}}`))
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, nil)

	_, err := client.Me(context.Background(), "bad-token")
	var authErr *cms.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}
