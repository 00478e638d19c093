// Package dispatch orchestrates intent classification, entity extraction,
// tool invocation and response shaping for a single dialogue turn.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/internal/nlu"
	"github.com/yukishop/nlp-service/internal/session"
	"github.com/yukishop/nlp-service/internal/tools"
	"github.com/yukishop/nlp-service/pkg/logger"
	"github.com/yukishop/nlp-service/pkg/metrics"
)

// DefaultSession is the sentinel session used when a request carries no
// session id.
const DefaultSession = "default"

// maxDisplayedProducts caps how many search results are echoed to the user.
const maxDisplayedProducts = 3

// User-facing response copy.
const (
	greetingText = "Hello! I'm your shopping assistant. I can help you with product searches, " +
		"stock availability, price inquiries, order tracking, and product variants. " +
		"How can I help you today?"
	helpText = "I'm here to help! I can search products, check stock, provide pricing " +
		"information, and track orders. What would you like to know?"
	noProductsText = "No products found matching your search. Try different keywords or browse our categories."
	requestOrderInfoText = "Please provide your order number or phone number to track your order."
	requestPhoneText     = "Please provide your phone number to find your orders. Example: 01712345678"
	searchFirstText      = "Please search for a specific product first to see variants."
	degradedText         = "Sorry, I encountered an error processing your message. Please try again."
)

// ToolInvoker performs one backend tool call for a named action.
type ToolInvoker interface {
	Invoke(ctx context.Context, action model.Action, entities model.EntitySet) tools.Result
}

// Suggester proposes follow-up utterances for a turn.
type Suggester interface {
	Suggest(conv *model.ConversationContext) []string
}

// EventPublisher receives completed responses; publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, resp *model.DialogueResponse)
}

// Dispatcher resolves one utterance into a complete dialogue response.
type Dispatcher struct {
	classifier nlu.Classifier
	extractor  *nlu.Extractor
	tools      ToolInvoker
	suggester  Suggester
	sessions   session.Store
	events     EventPublisher
	logger     *logger.Logger
}

// New creates a dispatcher. events may be nil when event publishing is
// disabled.
func New(
	classifier nlu.Classifier,
	extractor *nlu.Extractor,
	invoker ToolInvoker,
	suggester Suggester,
	sessions session.Store,
	events EventPublisher,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		extractor:  extractor,
		tools:      invoker,
		suggester:  suggester,
		sessions:   sessions,
		events:     events,
		logger:     log,
	}
}

// outcome is the result of the per-intent dispatch step: the resolved
// action and the shaped payload. Every path, including the short-circuit
// request-for-info branches, flows back through Process so suggestions are
// attached uniformly.
type outcome struct {
	action  model.Action
	payload *model.ResponsePayload
}

// Process handles one utterance for a session. It never returns an error
// and never panics past its boundary: any unexpected failure degrades into
// a general-intent response carrying the failure description.
func (d *Dispatcher) Process(ctx context.Context, message, sessionID string) (resp *model.DialogueResponse) {
	if sessionID == "" {
		sessionID = DefaultSession
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.DegradedResponsesTotal.Inc()
			d.logger.Error("dispatch panic recovered",
				zap.String("session_id", sessionID),
				zap.Any("panic", r),
			)
			resp = &model.DialogueResponse{
				Intent:     model.IntentGeneral,
				Confidence: 0,
				Message:    message,
				SessionID:  sessionID,
				Timestamp:  time.Now(),
				Error:      fmt.Sprintf("%v", r),
				Response: &model.ResponsePayload{
					Type:    "text",
					Content: degradedText,
				},
			}
		}
	}()

	intent, confidence := d.classify(message)
	entities := d.extractor.Extract(message)

	resp = &model.DialogueResponse{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
		Message:    message,
		Timestamp:  time.Now(),
		SessionID:  sessionID,
	}

	out := d.dispatch(ctx, intent, entities, message)
	resp.Action = out.action
	resp.Response = out.payload

	conv := &model.ConversationContext{
		LastIntent:    intent,
		LastMessage:   message,
		Entities:      entities,
		Stage:         model.StageFor(intent, entities, out.action),
		ProductsFound: model.ProductsWereFound(intent, out.action),
		UpdatedAt:     time.Now(),
	}
	resp.Suggestions = d.suggester.Suggest(conv)

	if err := d.sessions.Put(ctx, sessionID, conv); err != nil {
		d.logger.Warn("failed to store session context",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	if d.events != nil {
		d.events.Publish(ctx, resp)
	}

	return resp
}

// classify runs the intent classifier, substituting (general, 0.0) on
// failure. Confidence 0 therefore always means degraded classification,
// never a valid low-confidence prediction.
func (d *Dispatcher) classify(message string) (model.Intent, float64) {
	intent, confidence, err := d.classifier.Classify(message)
	if err != nil {
		metrics.ClassifierFailuresTotal.Inc()
		d.logger.Warn("intent classification failed", zap.Error(err))
		return model.IntentGeneral, 0
	}

	metrics.IntentPredictionsTotal.WithLabelValues(string(intent)).Inc()
	return intent, confidence
}

func (d *Dispatcher) dispatch(ctx context.Context, intent model.Intent, entities model.EntitySet, message string) outcome {
	switch intent {
	case model.IntentGreeting:
		return outcome{model.ActionGreetUser, &model.ResponsePayload{Type: "text", Content: greetingText}}
	case model.IntentProductSearch:
		return d.handleProductSearch(ctx, entities)
	case model.IntentStockInquiry:
		return d.handleStockInquiry(ctx, entities)
	case model.IntentPriceInquiry:
		return d.handlePriceInquiry(ctx, entities)
	case model.IntentOrderStatus:
		return d.handleOrderStatus(ctx, entities)
	case model.IntentProvidePhone:
		return d.handleProvidePhone(ctx, entities)
	case model.IntentShowVariants:
		return d.handleShowVariants(ctx, entities, message)
	default:
		// general, plus any label the statistical classifier emits outside
		// the known set.
		return outcome{model.ActionProvideHelp, &model.ResponsePayload{Type: "text", Content: helpText}}
	}
}

func (d *Dispatcher) handleProductSearch(ctx context.Context, entities model.EntitySet) outcome {
	res := d.tools.Invoke(ctx, model.ActionSearchProduct, entities)
	if res.Failed() {
		return outcome{model.ActionSearchProduct, &model.ResponsePayload{
			Type:    "error",
			Content: "Sorry, I couldn't search for products: " + res.Err,
		}}
	}

	products := tools.Products(res.Payload)
	if len(products) == 0 {
		return outcome{model.ActionNoProductsFound, &model.ResponsePayload{
			Type:    "text",
			Content: noProductsText,
		}}
	}

	shown := products
	if len(shown) > maxDisplayedProducts {
		shown = shown[:maxDisplayedProducts]
	}

	return outcome{model.ActionSearchProduct, &model.ResponsePayload{
		Type:     "products",
		Content:  fmt.Sprintf("Found %d product(s):", len(products)),
		Products: shown,
	}}
}

func (d *Dispatcher) handleStockInquiry(ctx context.Context, entities model.EntitySet) outcome {
	res := d.tools.Invoke(ctx, model.ActionCheckStock, entities)
	if res.Failed() {
		return outcome{model.ActionCheckStock, &model.ResponsePayload{
			Type:    "error",
			Content: "Sorry, I couldn't check stock: " + res.Err,
		}}
	}

	name := productName(res.Payload, "Product")
	quantity := tools.NumberField(res.Payload, "quantity")

	status := "❌ Out of Stock"
	if inStock, _ := res.Payload["in_stock"].(bool); inStock {
		status = "✅ In Stock"
	}

	content := name + ": " + status
	if quantity > 0 {
		content += fmt.Sprintf(" (%d units available)", int(quantity))
	}

	return outcome{model.ActionCheckStock, &model.ResponsePayload{
		Type:      "stock",
		Content:   content,
		StockInfo: res.Payload,
	}}
}

func (d *Dispatcher) handlePriceInquiry(ctx context.Context, entities model.EntitySet) outcome {
	res := d.tools.Invoke(ctx, model.ActionGetPrice, entities)
	if res.Failed() {
		return outcome{model.ActionGetPrice, &model.ResponsePayload{
			Type:    "error",
			Content: "Sorry, I couldn't get price information: " + res.Err,
		}}
	}

	name := productName(res.Payload, "Product")
	price := tools.NumberField(res.Payload, "price")

	return outcome{model.ActionGetPrice, &model.ResponsePayload{
		Type:      "price",
		Content:   fmt.Sprintf("%s: ৳%s", name, strconv.FormatFloat(price, 'f', -1, 64)),
		PriceInfo: res.Payload,
	}}
}

func (d *Dispatcher) handleOrderStatus(ctx context.Context, entities model.EntitySet) outcome {
	var action model.Action
	switch {
	case entities.OrderNumber != "":
		action = model.ActionTrackOrder
	case entities.PhoneNumber != "":
		action = model.ActionGetOrdersByPhone
	default:
		return outcome{model.ActionRequestOrderInfo, &model.ResponsePayload{
			Type:    "text",
			Content: requestOrderInfoText,
		}}
	}

	return d.lookupOrder(ctx, action, entities)
}

func (d *Dispatcher) handleProvidePhone(ctx context.Context, entities model.EntitySet) outcome {
	if entities.PhoneNumber == "" {
		return outcome{model.ActionRequestPhoneNumber, &model.ResponsePayload{
			Type:    "text",
			Content: requestPhoneText,
		}}
	}

	return d.lookupOrder(ctx, model.ActionGetOrdersByPhone, entities)
}

func (d *Dispatcher) lookupOrder(ctx context.Context, action model.Action, entities model.EntitySet) outcome {
	res := d.tools.Invoke(ctx, action, entities)
	if res.Failed() {
		return outcome{action, &model.ResponsePayload{
			Type:    "error",
			Content: "Sorry, I couldn't track your order: " + res.Err,
		}}
	}

	return outcome{action, &model.ResponsePayload{
		Type:      "order",
		Content:   "Here's your order information:",
		OrderData: res.Payload,
	}}
}

func (d *Dispatcher) handleShowVariants(ctx context.Context, entities model.EntitySet, message string) outcome {
	action := variantAction(message)

	// The anchor product comes from search; variants hang off it.
	res := d.tools.Invoke(ctx, model.ActionSearchProduct, entities)
	products := tools.Products(res.Payload)
	if res.Failed() || len(products) == 0 {
		return outcome{action, &model.ResponsePayload{
			Type:    "text",
			Content: searchFirstText,
		}}
	}

	product := products[0]
	variants, _ := product["variation"].([]any)
	if len(variants) == 0 {
		name := tools.StringField(product, "name")
		if name == "" {
			name = "This product"
		}
		return outcome{action, &model.ResponsePayload{
			Type:    "text",
			Content: name + " doesn't have variants.",
		}}
	}

	name := tools.StringField(product, "name")
	if name == "" {
		name = "this product"
	}

	return outcome{action, &model.ResponsePayload{
		Type:     "variants",
		Content:  fmt.Sprintf("Available variants for %s:", name),
		Variants: variants,
	}}
}

// variantAction selects the variant sub-action by keyword presence in the
// raw lowercase message.
func variantAction(message string) model.Action {
	lower := strings.ToLower(message)
	hasColor := strings.Contains(lower, "color")
	hasSize := strings.Contains(lower, "size")

	switch {
	case hasColor && hasSize:
		return model.ActionShowAllVariants
	case hasColor:
		return model.ActionShowColorOptions
	case hasSize || strings.Contains(lower, "chart"):
		return model.ActionShowSizeChart
	case strings.Contains(lower, "compare") || strings.Contains(lower, "difference"):
		return model.ActionCompareVariants
	default:
		return model.ActionShowProductVariants
	}
}

// productName reads the name off the nested product object in a stock or
// price payload.
func productName(payload map[string]any, fallback string) string {
	if product, ok := payload["product"].(map[string]any); ok {
		if name := tools.StringField(product, "name"); name != "" {
			return name
		}
	}
	return fallback
}
