package nlu

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Vectorizer maps text onto the sparse term-count space the trained models
// were fitted in. The vocabulary is exported by the training pipeline.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
}

// LoadVectorizer reads a vectorizer artifact from disk.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer: %w", err)
	}

	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vectorizer: %w", err)
	}
	if len(v.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer %s has an empty vocabulary", path)
	}

	return &v, nil
}

// Size returns the dimensionality of the term space.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

// Transform vectorizes text as sparse term counts. Tokens outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := v.Vocabulary[token]; ok {
			counts[idx]++
		}
	}
	return counts
}
