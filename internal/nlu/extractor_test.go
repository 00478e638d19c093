package nlu

import (
	"reflect"
	"testing"
)

func TestExtractProductCode(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"ss family lowercase", "is ss122 in stock?", "SS122"},
		{"ss family uppercase", "Is SS122 in stock?", "SS122"},
		{"b family", "show me b129", "B129"},
		{"h family with m", "do you have h12m", "H12M"},
		{"h family without m", "do you have h12", "H12"},
		{"first family wins", "compare ss122 and b129", "SS122"},
		{"no code", "show me red shoes", ""},
		{"embedded digits do not match", "missb129x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.ProductCode != tt.want {
				t.Errorf("Extract(%q).ProductCode = %q, want %q", tt.text, got.ProductCode, tt.want)
			}
		})
	}
}

func TestExtractOrderAndPhone(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name      string
		text      string
		wantOrder string
		wantPhone string
	}{
		{"order number", "track order 1234567", "1234567", ""},
		{"short digit run is not an order", "is ss122 in stock", "", ""},
		{"phone number", "my number is 01712345678", "", "01712345678"},
		{"phone prefix outside range", "call 01212345678", "", ""},
		{"order and phone together", "order 4455 phone 01812345678", "4455", "01812345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.OrderNumber != tt.wantOrder {
				t.Errorf("OrderNumber = %q, want %q", got.OrderNumber, tt.wantOrder)
			}
			if got.PhoneNumber != tt.wantPhone {
				t.Errorf("PhoneNumber = %q, want %q", got.PhoneNumber, tt.wantPhone)
			}
		})
	}
}

// An 11-digit phone run never yields an order number: no 4-10 digit slice of
// it has word boundaries on both sides.
func TestExtractPhoneRunIsNotAnOrderNumber(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("find orders for 01712345678")
	if got.OrderNumber != "" {
		t.Errorf("OrderNumber = %q, want empty", got.OrderNumber)
	}
	if got.PhoneNumber != "01712345678" {
		t.Errorf("PhoneNumber = %q, want 01712345678", got.PhoneNumber)
	}
}

func TestExtractColorsAndSizes(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("red shoes in medium")
	if !contains(got.Colors, "red") {
		t.Errorf("Colors = %v, want red present", got.Colors)
	}
	if !contains(got.Sizes, "medium") {
		t.Errorf("Sizes = %v, want medium present", got.Sizes)
	}
	// Substring matching also picks up the single-letter sizes inside words.
	if !contains(got.Sizes, "m") {
		t.Errorf("Sizes = %v, want m present", got.Sizes)
	}
}

func TestExtractSearchTerms(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"product code short-circuits terms",
			"is ss122 available",
			[]string{"SS122"},
		},
		{
			"stop words dropped",
			"search for red shoes",
			[]string{"red", "shoes"},
		},
		{
			"capped at three terms",
			"ladies leather handbag collection summer",
			[]string{"ladies", "leather", "handbag"},
		},
		{
			"single characters dropped",
			"i want a bag",
			[]string{"bag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if !reflect.DeepEqual(got.SearchTerms, tt.want) {
				t.Errorf("SearchTerms = %v, want %v", got.SearchTerms, tt.want)
			}
		})
	}
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	e := NewExtractor()

	lower := e.Extract("is ss122 in stock?")
	upper := e.Extract("IS SS122 IN STOCK?")

	if lower.ProductCode != upper.ProductCode {
		t.Errorf("product code differs by case: %q vs %q", lower.ProductCode, upper.ProductCode)
	}
	if !reflect.DeepEqual(lower.SearchTerms, upper.SearchTerms) {
		t.Errorf("search terms differ by case: %v vs %v", lower.SearchTerms, upper.SearchTerms)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
