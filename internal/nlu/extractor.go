// Package nlu provides entity extraction and intent classification over raw
// user utterances.
package nlu

import (
	"regexp"
	"strings"

	"github.com/yukishop/nlp-service/internal/model"
)

// Product code pattern families, tried in order. The first family with a
// match wins and later families are not consulted.
var productCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(ss\d{2,3})\b`),  // SS122, SS123
	regexp.MustCompile(`\b(b\d{2,3})\b`),   // B123, B129
	regexp.MustCompile(`\b(h\d{1,2}m?)\b`), // H12M, H12
}

var (
	orderNumberPattern = regexp.MustCompile(`\b(\d{4,10})\b`)
	phoneNumberPattern = regexp.MustCompile(`\b(01[3-9]\d{8})\b`)
	wordPattern        = regexp.MustCompile(`\w+`)
)

// Reference lists for attribute matching. Matching is substring containment
// against the lowercased utterance; all matches are kept in list order.
// The digit/phone/code patterns overlap on digit runs and no mutual
// exclusion is applied between them.
var referenceColors = []string{
	"red", "blue", "green", "black", "white", "yellow", "pink",
	"purple", "brown", "gray", "grey", "orange", "navy", "maroon",
	"gold", "silver", "beige", "cream",
}

var referenceSizes = []string{
	"xs", "small", "s", "medium", "m", "large", "l", "xl", "xxl",
	"2xl", "3xl", "36", "37", "38", "39", "40", "41", "42",
}

// stopWords are dropped from free-text search term extraction.
var stopWords = map[string]struct{}{
	"search": {}, "find": {}, "show": {}, "get": {}, "is": {}, "are": {},
	"the": {}, "a": {}, "an": {}, "for": {}, "available": {}, "i": {},
	"want": {}, "need": {}, "looking": {}, "product": {}, "item": {},
	"buy": {}, "purchase": {},
}

const maxSearchTerms = 3

// Extractor is a stateless pattern matcher over raw text. Extraction is
// deterministic and total: an absent pattern simply leaves its entity unset.
type Extractor struct{}

// NewExtractor creates an entity extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract pulls structured entities out of an utterance.
func (e *Extractor) Extract(text string) model.EntitySet {
	var ents model.EntitySet
	lower := strings.ToLower(text)

	for _, p := range productCodePatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			ents.ProductCode = strings.ToUpper(m[1])
			break
		}
	}

	if m := orderNumberPattern.FindStringSubmatch(text); m != nil {
		ents.OrderNumber = m[1]
	}

	if m := phoneNumberPattern.FindStringSubmatch(text); m != nil {
		ents.PhoneNumber = m[1]
	}

	for _, color := range referenceColors {
		if strings.Contains(lower, color) {
			ents.Colors = append(ents.Colors, color)
		}
	}

	for _, size := range referenceSizes {
		if strings.Contains(lower, size) {
			ents.Sizes = append(ents.Sizes, size)
		}
	}

	// A product code short-circuits free-text search term extraction.
	if ents.ProductCode != "" {
		ents.SearchTerms = []string{ents.ProductCode}
	} else {
		for _, word := range wordPattern.FindAllString(lower, -1) {
			if len(word) <= 1 {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			ents.SearchTerms = append(ents.SearchTerms, word)
			if len(ents.SearchTerms) == maxSearchTerms {
				break
			}
		}
	}

	return ents
}
