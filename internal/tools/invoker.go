// Package tools translates dialogue actions into calls against the backend
// commerce API.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/logger"
	"github.com/yukishop/nlp-service/pkg/metrics"
)

// searchLimit is the result cap requested from the backend search endpoint.
const searchLimit = 10

// Result is the uniform outcome of a tool call: a backend-shaped payload on
// success, or an error string. There is no partial success.
type Result struct {
	Payload map[string]any
	Err     string
}

// Failed reports whether the call produced an error result.
func (r Result) Failed() bool {
	return r.Err != ""
}

func errResult(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// Invoker performs backend tool calls. It is stateless; every call is
// bounded by the client timeout and never retried.
type Invoker struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// NewInvoker creates a tool invoker against the given backend base URL.
func NewInvoker(baseURL string, timeout time.Duration, log *logger.Logger) *Invoker {
	return &Invoker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// Invoke dispatches one named tool action. Unknown actions yield an error
// result, not a failure.
func (inv *Invoker) Invoke(ctx context.Context, action model.Action, entities model.EntitySet) Result {
	start := time.Now()
	var res Result

	switch action {
	case model.ActionSearchProduct:
		res = inv.searchProducts(ctx, entities)
	case model.ActionCheckStock:
		res = inv.checkStock(ctx, entities)
	case model.ActionGetPrice:
		res = inv.getPrice(ctx, entities)
	case model.ActionTrackOrder:
		res = inv.trackOrder(ctx, entities)
	case model.ActionGetOrdersByPhone:
		res = inv.ordersByPhone(ctx, entities)
	default:
		res = errResult("Unknown action: %s", action)
	}

	status := "ok"
	if res.Failed() {
		status = "error"
		inv.logger.Warn("tool call failed",
			zap.String("action", string(action)),
			zap.String("error", res.Err),
		)
	}
	metrics.RecordToolCall(string(action), status, time.Since(start).Seconds())

	return res
}

// searchQuery resolves the backend search query from entities. Precedence:
// explicit product code, then explicit keywords, then extracted search terms.
func searchQuery(entities model.EntitySet) string {
	if entities.ProductCode != "" {
		return entities.ProductCode
	}
	if len(entities.Keywords) > 0 {
		return strings.Join(entities.Keywords, " ")
	}
	return strings.Join(entities.SearchTerms, " ")
}

func (inv *Invoker) searchProducts(ctx context.Context, entities model.EntitySet) Result {
	query := searchQuery(entities)
	if query == "" {
		return errResult("No search query provided")
	}

	body, err := json.Marshal(map[string]any{"query": query, "limit": searchLimit})
	if err != nil {
		return errResult("Search API error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inv.baseURL+"/products/search", bytes.NewReader(body))
	if err != nil {
		return errResult("Search API error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := inv.client.Do(req)
	if err != nil {
		return errResult("Search API error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errResult("Search failed: %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errResult("Search API error: %v", err)
	}

	return Result{Payload: payload}
}

// checkStock delegates to product search and projects stock information off
// the first returned product.
func (inv *Invoker) checkStock(ctx context.Context, entities model.EntitySet) Result {
	res := inv.searchProducts(ctx, entities)
	if res.Failed() {
		return res
	}

	products := Products(res.Payload)
	if len(products) == 0 {
		return errResult("Product not found")
	}

	product := products[0]
	stock := NumberField(product, "stock")

	return Result{Payload: map[string]any{
		"product":  product,
		"in_stock": stock > 0,
		"quantity": stock,
	}}
}

// getPrice delegates to product search and projects pricing off the first
// returned product.
func (inv *Invoker) getPrice(ctx context.Context, entities model.EntitySet) Result {
	res := inv.searchProducts(ctx, entities)
	if res.Failed() {
		return res
	}

	products := Products(res.Payload)
	if len(products) == 0 {
		return errResult("Product not found")
	}

	product := products[0]

	return Result{Payload: map[string]any{
		"product":  product,
		"price":    NumberField(product, "unitPrice"),
		"currency": "BDT",
	}}
}

func (inv *Invoker) trackOrder(ctx context.Context, entities model.EntitySet) Result {
	if entities.OrderNumber == "" {
		return errResult("Order number required")
	}

	payload, status, err := inv.get(ctx, "/orders/"+entities.OrderNumber)
	switch {
	case err != nil:
		return errResult("Order tracking API error: %v", err)
	case status == http.StatusNotFound:
		return errResult("Order not found")
	case status != http.StatusOK:
		return errResult("Order tracking failed: %d", status)
	}

	return Result{Payload: payload}
}

func (inv *Invoker) ordersByPhone(ctx context.Context, entities model.EntitySet) Result {
	if entities.PhoneNumber == "" {
		return errResult("Phone number required")
	}

	payload, status, err := inv.get(ctx, "/orders/phone/"+entities.PhoneNumber)
	switch {
	case err != nil:
		return errResult("Phone lookup API error: %v", err)
	case status == http.StatusNotFound:
		return errResult("No orders found for this phone number")
	case status != http.StatusOK:
		return errResult("Phone lookup failed: %d", status)
	}

	return Result{Payload: payload}
}

// get performs a GET against the backend and decodes a JSON body on 200.
func (inv *Invoker) get(ctx context.Context, path string) (map[string]any, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, inv.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := inv.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, err
	}

	return payload, resp.StatusCode, nil
}

// Products extracts the product list from a backend search payload.
func Products(payload map[string]any) []map[string]any {
	raw, ok := payload["products"].([]any)
	if !ok {
		return nil
	}

	products := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if p, ok := item.(map[string]any); ok {
			products = append(products, p)
		}
	}
	return products
}

// NumberField reads a numeric field off a decoded JSON object, defaulting
// to zero.
func NumberField(obj map[string]any, key string) float64 {
	if n, ok := obj[key].(float64); ok {
		return n
	}
	return 0
}

// StringField reads a string field off a decoded JSON object.
func StringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
