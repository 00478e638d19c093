package suggest

import (
	"fmt"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/metrics"
)

// Rules is the deterministic suggestion strategy: a fixed ordered candidate
// list per intent, parameterized by the presence of a product code, order
// number or phone number. It is always available and serves both as the sole
// strategy when no model is loaded and as the fallback path.
type Rules struct{}

// Suggest implements Strategy. Unrecognized intents yield no candidates.
func (Rules) Suggest(conv *model.ConversationContext) []string {
	metrics.SuggestionsTotal.WithLabelValues("rules").Inc()
	return rulesFor(conv.LastIntent, conv.Entities)
}

func rulesFor(intent model.Intent, entities model.EntitySet) []string {
	code := entities.ProductCode

	switch intent {
	case model.IntentGreeting:
		return []string{
			"Search for women shoes",
			"Show me hijabs",
			"Track my order",
			"What's available in bags?",
		}

	case model.IntentProductSearch:
		if code != "" {
			return []string{
				fmt.Sprintf("Show colors for %s", code),
				fmt.Sprintf("Is %s in stock?", code),
				fmt.Sprintf("Price of %s", code),
				fmt.Sprintf("What sizes for %s?", code),
			}
		}
		return []string{
			"Show me more products",
			"Filter by color",
			"Filter by price range",
			"Show product details",
		}

	case model.IntentStockInquiry:
		if code != "" {
			return []string{
				fmt.Sprintf("Price of %s", code),
				fmt.Sprintf("Show variants for %s", code),
				fmt.Sprintf("Add %s to cart", code),
				"Show similar products",
			}
		}
		return []string{
			"Check other products",
			"Show available items",
			"Filter by availability",
			"Browse categories",
		}

	case model.IntentPriceInquiry:
		if code != "" {
			return []string{
				fmt.Sprintf("Is %s in stock?", code),
				fmt.Sprintf("Show colors for %s", code),
				fmt.Sprintf("Add %s to cart", code),
				"Compare prices",
			}
		}
		return []string{
			"Show price ranges",
			"Filter by budget",
			"Show affordable options",
			"Compare products",
		}

	case model.IntentOrderStatus:
		if entities.OrderNumber != "" {
			return []string{
				fmt.Sprintf("Track order %s", entities.OrderNumber),
				"When will it arrive?",
				"Change delivery address",
				"Cancel order",
			}
		}
		if entities.PhoneNumber != "" {
			return []string{
				"Show recent orders",
				"Track latest order",
				"Order history",
				"Delivery updates",
			}
		}
		return []string{
			"Track with order number",
			"Find orders by phone",
			"Check recent orders",
			"Order history",
		}

	case model.IntentShowVariants:
		if code != "" {
			return []string{
				fmt.Sprintf("Is %s available in red?", code),
				fmt.Sprintf("Show %s in medium", code),
				fmt.Sprintf("Compare %s colors", code),
				fmt.Sprintf("Size chart for %s", code),
			}
		}
		return []string{
			"Show size chart",
			"Available colors",
			"Compare styles",
			"Filter by size",
		}

	case model.IntentProvidePhone:
		return []string{
			"Track my order",
			"Show my recent orders",
			"Order history",
			"Find orders by phone",
		}

	case model.IntentGeneral:
		return []string{
			"Search for products",
			"Track my order",
			"Show me categories",
			"Help with shopping",
		}
	}

	return nil
}
