package payments_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oviedojeepclub/clubhub/internal/payments"
)

func testClient(srv *httptest.Server) *payments.Client {
	client := payments.NewClient("test-token", "sandbox")
	client.BaseURL = srv.URL
	client.HTTPClient = srv.Client()
	return client
}

func TestCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/payments" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Unexpected authorization %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Square-Version") == "" {
			t.Error("Expected a Square-Version header")
		}

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["source_id"] != "cnon:card-nonce" {
			t.Errorf("Unexpected source_id %v", body["source_id"])
		}
		money, _ := body["amount_money"].(map[string]any)
		if money["amount"] != float64(payments.JoinAmountCents) || money["currency"] != "USD" {
			t.Errorf("Unexpected amount %v", money)
		}

		fmt.Fprint(w, `{"payment": {"id": "pay-1", "status": "COMPLETED", "receipt_url": "https://squareup.com/receipt/pay-1"}}`)
	}))
	defer srv.Close()

	payment, err := testClient(srv).CreatePayment(context.Background(), "cnon:card-nonce", "key-1", payments.JoinAmountCents)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payment.ID != "pay-1" || payment.Status != "COMPLETED" {
		t.Errorf("Unexpected payment %+v", payment)
	}
	if payment.ReceiptURL != "https://squareup.com/receipt/pay-1" {
		t.Errorf("Unexpected receipt URL %s", payment.ReceiptURL)
	}
}

func TestCreatePaymentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"code": "CARD_DECLINED", "detail": "Card declined."}]}`)
	}))
	defer srv.Close()

	if _, err := testClient(srv).CreatePayment(context.Background(), "cnon:bad", "key-2", payments.JoinAmountCents); err == nil {
		t.Fatal("Expected an error for a declined card")
	}
}

func TestCreatePaymentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testClient(srv).CreatePayment(context.Background(), "cnon:x", "key-3", payments.RenewAmountCents); err == nil {
		t.Fatal("Expected an error on a server failure")
	}
}

func TestListCatalogItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/catalog/list" || r.URL.Query().Get("types") != "ITEM" {
			t.Errorf("Unexpected request %s", r.URL.String())
		}
		fmt.Fprint(w, `{"objects": [{"type": "ITEM", "id": "item-1"}, {"type": "ITEM", "id": "item-2"}]}`)
	}))
	defer srv.Close()

	items, err := testClient(srv).ListCatalogItems(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}
}
