package suggest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yukishop/nlp-service/internal/model"
)

func TestRulesGreeting(t *testing.T) {
	conv := &model.ConversationContext{LastIntent: model.IntentGreeting}

	got := Rules{}.Suggest(conv)
	want := []string{
		"Search for women shoes",
		"Show me hijabs",
		"Track my order",
		"What's available in bags?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("greeting suggestions = %v, want %v", got, want)
	}
}

func TestRulesParameterizedByProductCode(t *testing.T) {
	tests := []struct {
		name   string
		intent model.Intent
		code   string
		first  string
	}{
		{"search with code", model.IntentProductSearch, "SS122", "Show colors for SS122"},
		{"search without code", model.IntentProductSearch, "", "Show me more products"},
		{"stock with code", model.IntentStockInquiry, "SS122", "Price of SS122"},
		{"price with code", model.IntentPriceInquiry, "B129", "Is B129 in stock?"},
		{"variants with code", model.IntentShowVariants, "SS122", "Is SS122 available in red?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &model.ConversationContext{
				LastIntent: tt.intent,
				Entities:   model.EntitySet{ProductCode: tt.code},
			}
			got := Rules{}.Suggest(conv)
			if len(got) != 4 {
				t.Fatalf("got %d suggestions, want 4", len(got))
			}
			if got[0] != tt.first {
				t.Errorf("first suggestion = %q, want %q", got[0], tt.first)
			}
		})
	}
}

func TestRulesOrderStatusBranches(t *testing.T) {
	tests := []struct {
		name     string
		entities model.EntitySet
		first    string
	}{
		{"with order number", model.EntitySet{OrderNumber: "1234567"}, "Track order 1234567"},
		{"with phone number", model.EntitySet{PhoneNumber: "01712345678"}, "Show recent orders"},
		{"with neither", model.EntitySet{}, "Track with order number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &model.ConversationContext{
				LastIntent: model.IntentOrderStatus,
				Entities:   tt.entities,
			}
			got := Rules{}.Suggest(conv)
			if len(got) != 4 {
				t.Fatalf("got %d suggestions, want 4", len(got))
			}
			if got[0] != tt.first {
				t.Errorf("first suggestion = %q, want %q", got[0], tt.first)
			}
		})
	}
}

func TestRulesUnrecognizedIntent(t *testing.T) {
	conv := &model.ConversationContext{LastIntent: "something_else"}

	if got := (Rules{}).Suggest(conv); got != nil {
		t.Errorf("suggestions = %v, want nil", got)
	}
}

type staticStrategy []string

func (s staticStrategy) Suggest(*model.ConversationContext) []string {
	return []string(s)
}

func TestEngineDedupesAndTruncates(t *testing.T) {
	engine := NewEngine(staticStrategy{"a", "b", "a", "c", "b", "d", "e"})

	got := engine.Suggest(&model.ConversationContext{})
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %v, want %v", got, want)
	}
}

func TestModelWithFallback(t *testing.T) {
	conv := &model.ConversationContext{LastIntent: model.IntentGreeting}

	t.Run("model output wins", func(t *testing.T) {
		s := ModelWithFallback{
			Model: staticStrategy{"From the model"},
			Rules: Rules{},
		}
		got := s.Suggest(conv)
		if !reflect.DeepEqual(got, []string{"From the model"}) {
			t.Errorf("Suggest = %v, want model output", got)
		}
	})

	t.Run("empty model falls back to rules", func(t *testing.T) {
		s := ModelWithFallback{
			Model: staticStrategy(nil),
			Rules: Rules{},
		}
		got := s.Suggest(conv)
		if len(got) != 4 || got[0] != "Search for women shoes" {
			t.Errorf("Suggest = %v, want greeting rule suggestions", got)
		}
	})
}

func TestContextString(t *testing.T) {
	conv := &model.ConversationContext{
		LastIntent:  model.IntentProductSearch,
		LastMessage: "Show me the red SS122 shoes please today",
		Entities: model.EntitySet{
			ProductCode: "SS122",
			SearchTerms: []string{"SS122"},
			Colors:      []string{"red"},
		},
		Stage:         model.StageProductFound,
		ProductsFound: true,
	}

	got := ContextString(conv)

	wantPrefix := "intent_product_search stage_product_found has_product_code search_SS122 color_red products_found"
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("context string = %q, want prefix %q", got, wantPrefix)
	}

	// The message contributes at most five lowercased words.
	if !strings.Contains(got, "msg_show") || !strings.Contains(got, "msg_ss122") {
		t.Errorf("context string missing message features: %q", got)
	}
	if strings.Contains(got, "msg_please") || strings.Contains(got, "msg_today") {
		t.Errorf("context string includes words past the cap: %q", got)
	}
}

func TestContextStringNoProducts(t *testing.T) {
	conv := &model.ConversationContext{
		LastIntent: model.IntentGeneral,
		Stage:      model.StageGeneral,
	}

	got := ContextString(conv)
	if !strings.Contains(got, "no_products_found") {
		t.Errorf("context string = %q, want no_products_found feature", got)
	}
	if strings.Contains(got, " products_found") {
		t.Errorf("context string = %q, must not carry products_found", got)
	}
}
