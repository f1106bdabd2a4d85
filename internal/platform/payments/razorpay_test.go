package payments_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridianadvisory/site-backend/internal/platform/payments"
)

func TestRazorpayCreateOrder(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc123",
			"amount":   10050,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer srv.Close()

	g := payments.NewRazorpayGateway("key_id", "key_secret").WithBaseURL(srv.URL)

	order, err := g.CreateOrder(context.Background(), &payments.OrderRequest{
		Amount:      10050,
		Currency:    "INR",
		Receipt:     "rcpt_1700000000",
		Description: "Event registration",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuthUser != "key_id" || gotAuthPass != "key_secret" {
		t.Fatalf("expected basic auth credentials, got %s:%s", gotAuthUser, gotAuthPass)
	}
	if gotBody["amount"].(float64) != 10050 {
		t.Fatalf("expected amount 10050 on the wire, got %v", gotBody["amount"])
	}
	if gotBody["receipt"] != "rcpt_1700000000" {
		t.Fatalf("expected receipt relayed, got %v", gotBody["receipt"])
	}
	notes, _ := gotBody["notes"].(map[string]interface{})
	if notes["description"] != "Event registration" {
		t.Fatalf("expected description in notes, got %v", gotBody["notes"])
	}

	if order.ID != "order_abc123" || order.Status != "created" || order.Amount != 10050 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestRazorpayCreateOrder_APIFailure(t *testing.T) {
	const errBody = `{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(errBody))
	}))
	defer srv.Close()

	g := payments.NewRazorpayGateway("bad", "creds").WithBaseURL(srv.URL)

	_, err := g.CreateOrder(context.Background(), &payments.OrderRequest{Amount: 100, Currency: "INR"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}

	var gwErr *payments.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %T: %v", err, err)
	}
	if gwErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", gwErr.StatusCode)
	}
	if gwErr.Body != errBody {
		t.Fatalf("expected raw upstream body preserved, got %q", gwErr.Body)
	}
}
