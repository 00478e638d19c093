package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func testInvoker(t *testing.T, handler http.Handler) (*Invoker, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewInvoker(srv.URL, 5*time.Second, testLogger()), srv
}

func searchBackend(t *testing.T, products []map[string]any) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /products/search", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding search request: %v", err)
		}
		if req["query"] == "" {
			t.Error("search request has empty query")
		}
		if req["limit"] != float64(10) {
			t.Errorf("search limit = %v, want 10", req["limit"])
		}
		json.NewEncoder(w).Encode(map[string]any{"products": products})
	})
	return mux
}

func TestInvokeSearchProduct(t *testing.T) {
	inv, _ := testInvoker(t, searchBackend(t, []map[string]any{
		{"name": "Summer Shoe", "stock": 5.0, "unitPrice": 1200.0},
	}))

	res := inv.Invoke(context.Background(), model.ActionSearchProduct,
		model.EntitySet{ProductCode: "SS122"})
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Err)
	}

	products := Products(res.Payload)
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if StringField(products[0], "name") != "Summer Shoe" {
		t.Errorf("name = %q, want Summer Shoe", StringField(products[0], "name"))
	}
}

func TestSearchQueryPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		entities model.EntitySet
		want     string
	}{
		{
			"product code wins",
			model.EntitySet{ProductCode: "SS122", Keywords: []string{"red"}, SearchTerms: []string{"shoes"}},
			"SS122",
		},
		{
			"keywords over search terms",
			model.EntitySet{Keywords: []string{"red", "shoes"}, SearchTerms: []string{"ladies"}},
			"red shoes",
		},
		{
			"search terms last",
			model.EntitySet{SearchTerms: []string{"ladies", "bag"}},
			"ladies bag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchQuery(tt.entities); got != tt.want {
				t.Errorf("searchQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvokeSearchWithoutQuery(t *testing.T) {
	called := false
	inv, _ := testInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	res := inv.Invoke(context.Background(), model.ActionSearchProduct, model.EntitySet{})
	if res.Err != "No search query provided" {
		t.Errorf("Err = %q, want %q", res.Err, "No search query provided")
	}
	if called {
		t.Error("backend was called without a query")
	}
}

func TestInvokeSearchBackendFailure(t *testing.T) {
	inv, _ := testInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	res := inv.Invoke(context.Background(), model.ActionSearchProduct,
		model.EntitySet{SearchTerms: []string{"shoes"}})
	if res.Err != "Search failed: 500" {
		t.Errorf("Err = %q, want %q", res.Err, "Search failed: 500")
	}
}

func TestInvokeSearchUnreachableBackend(t *testing.T) {
	inv := NewInvoker("http://127.0.0.1:1", 100*time.Millisecond, testLogger())

	res := inv.Invoke(context.Background(), model.ActionSearchProduct,
		model.EntitySet{SearchTerms: []string{"shoes"}})
	if !strings.HasPrefix(res.Err, "Search API error:") {
		t.Errorf("Err = %q, want Search API error prefix", res.Err)
	}
}

func TestInvokeCheckStock(t *testing.T) {
	inv, _ := testInvoker(t, searchBackend(t, []map[string]any{
		{"name": "Summer Shoe", "stock": 5.0},
	}))

	res := inv.Invoke(context.Background(), model.ActionCheckStock,
		model.EntitySet{ProductCode: "SS122"})
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if inStock, _ := res.Payload["in_stock"].(bool); !inStock {
		t.Error("in_stock = false, want true")
	}
	if got := NumberField(res.Payload, "quantity"); got != 5 {
		t.Errorf("quantity = %v, want 5", got)
	}
}

func TestInvokeCheckStockNoProducts(t *testing.T) {
	inv, _ := testInvoker(t, searchBackend(t, []map[string]any{}))

	res := inv.Invoke(context.Background(), model.ActionCheckStock,
		model.EntitySet{ProductCode: "SS999"})
	if res.Err != "Product not found" {
		t.Errorf("Err = %q, want %q", res.Err, "Product not found")
	}
}

func TestInvokeGetPrice(t *testing.T) {
	inv, _ := testInvoker(t, searchBackend(t, []map[string]any{
		{"name": "Summer Shoe", "unitPrice": 1250.5},
	}))

	res := inv.Invoke(context.Background(), model.ActionGetPrice,
		model.EntitySet{ProductCode: "SS122"})
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if got := NumberField(res.Payload, "price"); got != 1250.5 {
		t.Errorf("price = %v, want 1250.5", got)
	}
	if got := StringField(res.Payload, "currency"); got != "BDT" {
		t.Errorf("currency = %q, want BDT", got)
	}
}

func TestInvokeTrackOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/1234567", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"orderNo": "1234567", "status": "shipped"})
	})
	inv, _ := testInvoker(t, mux)

	res := inv.Invoke(context.Background(), model.ActionTrackOrder,
		model.EntitySet{OrderNumber: "1234567"})
	if res.Failed() {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if got := StringField(res.Payload, "status"); got != "shipped" {
		t.Errorf("status = %q, want shipped", got)
	}
}

func TestInvokeTrackOrderErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /orders/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	inv, _ := testInvoker(t, mux)

	tests := []struct {
		name     string
		entities model.EntitySet
		wantErr  string
	}{
		{"missing order number", model.EntitySet{}, "Order number required"},
		{"not found", model.EntitySet{OrderNumber: "404"}, "Order not found"},
		{"backend failure", model.EntitySet{OrderNumber: "500"}, "Order tracking failed: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := inv.Invoke(context.Background(), model.ActionTrackOrder, tt.entities)
			if res.Err != tt.wantErr {
				t.Errorf("Err = %q, want %q", res.Err, tt.wantErr)
			}
		})
	}
}

func TestInvokeOrdersByPhone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/phone/01712345678", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"orders": []any{map[string]any{"orderNo": "1"}}})
	})
	mux.HandleFunc("GET /orders/phone/01899999999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	inv, _ := testInvoker(t, mux)

	t.Run("found", func(t *testing.T) {
		res := inv.Invoke(context.Background(), model.ActionGetOrdersByPhone,
			model.EntitySet{PhoneNumber: "01712345678"})
		if res.Failed() {
			t.Fatalf("unexpected error: %s", res.Err)
		}
		if _, ok := res.Payload["orders"]; !ok {
			t.Error("payload has no orders field")
		}
	})

	t.Run("none found", func(t *testing.T) {
		res := inv.Invoke(context.Background(), model.ActionGetOrdersByPhone,
			model.EntitySet{PhoneNumber: "01899999999"})
		if res.Err != "No orders found for this phone number" {
			t.Errorf("Err = %q", res.Err)
		}
	})

	t.Run("missing phone", func(t *testing.T) {
		res := inv.Invoke(context.Background(), model.ActionGetOrdersByPhone, model.EntitySet{})
		if res.Err != "Phone number required" {
			t.Errorf("Err = %q, want %q", res.Err, "Phone number required")
		}
	})
}

func TestInvokeUnknownAction(t *testing.T) {
	inv, _ := testInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	res := inv.Invoke(context.Background(), model.ActionGreetUser, model.EntitySet{})
	if res.Err != "Unknown action: greet_user" {
		t.Errorf("Err = %q, want %q", res.Err, "Unknown action: greet_user")
	}
}
