package model

import "time"

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ResponsePayload is the typed response object inside a DialogueResponse.
// Type selects which optional field is populated.
type ResponsePayload struct {
	Type      string           `json:"type"`
	Content   string           `json:"content"`
	Products  []map[string]any `json:"products,omitempty"`
	StockInfo map[string]any   `json:"stock_info,omitempty"`
	PriceInfo map[string]any   `json:"price_info,omitempty"`
	OrderData map[string]any   `json:"order_data,omitempty"`
	Variants  []any            `json:"variants,omitempty"`
}

// DialogueResponse is the full result of processing one utterance.
type DialogueResponse struct {
	Intent      Intent           `json:"intent"`
	Confidence  float64          `json:"confidence"`
	Entities    EntitySet        `json:"entities"`
	Message     string           `json:"message"`
	Timestamp   time.Time        `json:"timestamp"`
	SessionID   string           `json:"session_id"`
	Action      Action           `json:"action"`
	Response    *ResponsePayload `json:"response"`
	Suggestions []string         `json:"suggestions,omitempty"`

	// Error carries the failure description when processing degraded; it is
	// diagnostic only and never part of normal control flow.
	Error string `json:"error,omitempty"`
}
