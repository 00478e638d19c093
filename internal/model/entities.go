package model

// EntitySet holds the structured values extracted from a single utterance.
// Absent entities are zero-valued and omitted from JSON.
type EntitySet struct {
	ProductCode string   `json:"productCode,omitempty"`
	OrderNumber string   `json:"orderNumber,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	SearchTerms []string `json:"searchTerms,omitempty"`

	// Keywords is never populated by extraction; callers constructing tool
	// filters directly may set it. It ranks between ProductCode and
	// SearchTerms when a search query is built.
	Keywords []string `json:"keywords,omitempty"`
}

// Empty reports whether no entity of any kind was extracted.
func (e EntitySet) Empty() bool {
	return e.ProductCode == "" && e.OrderNumber == "" && e.PhoneNumber == "" &&
		len(e.Colors) == 0 && len(e.Sizes) == 0 && len(e.SearchTerms) == 0 && len(e.Keywords) == 0
}
