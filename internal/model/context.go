package model

import "time"

// Conversation stages summarize where in a multi-turn flow a session sits.
const (
	StageGreeting        = "greeting"
	StageProductFound    = "product_found"
	StageNoProductsFound = "no_products_found"
	StageCategorySearch  = "category_search"
	StagePriceChecked    = "price_checked"
	StageCategoryPricing = "category_pricing"
	StageStockChecked    = "stock_checked"
	StageVariantsShown   = "variants_shown"
	StageOrderTracked    = "order_tracked"
	StagePhoneProvided   = "phone_provided"
	StageGeneral         = "general"
)

// ConversationContext is the per-session state kept between turns. It is
// rebuilt from the current turn on every request and stored keyed by session
// id; concurrent updates to the same session are last-write-wins.
type ConversationContext struct {
	LastIntent    Intent    `json:"last_intent"`
	LastMessage   string    `json:"last_message"`
	Entities      EntitySet `json:"entities"`
	Stage         string    `json:"conversation_stage"`
	ProductsFound bool      `json:"products_found"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StageFor derives the conversation stage from the turn's intent, entities
// and resolved action.
func StageFor(intent Intent, entities EntitySet, action Action) string {
	switch intent {
	case IntentGreeting:
		return StageGreeting
	case IntentProductSearch:
		if entities.ProductCode != "" {
			return StageProductFound
		}
		if action == ActionNoProductsFound {
			return StageNoProductsFound
		}
		return StageCategorySearch
	case IntentPriceInquiry:
		if entities.ProductCode != "" {
			return StagePriceChecked
		}
		return StageCategoryPricing
	case IntentStockInquiry:
		return StageStockChecked
	case IntentShowVariants:
		return StageVariantsShown
	case IntentOrderStatus:
		return StageOrderTracked
	case IntentProvidePhone:
		return StagePhoneProvided
	default:
		return StageGeneral
	}
}

// ProductsWereFound reports whether the turn surfaced products to the user.
func ProductsWereFound(intent Intent, action Action) bool {
	return (intent == IntentProductSearch || intent == IntentShowVariants) &&
		action != ActionNoProductsFound
}
