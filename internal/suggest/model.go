package suggest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/internal/nlu"
)

// maxMessageWords caps how many words of the last message are folded into
// the context string, mirroring what the model was trained on.
const maxMessageWords = 5

// binarizer holds the stable label ordering the multi-label model was
// trained against.
type binarizer struct {
	Classes []string `json:"classes"`
}

// multiLabelModel is a set of per-label binary linear classifiers. A label
// is predicted when its decision value is positive.
type multiLabelModel struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// Model is the learned suggestion strategy. It serializes the conversation
// context into a bag-of-features string, vectorizes it and returns the
// predicted label set in binarizer order, truncated to topK.
type Model struct {
	vectorizer *nlu.Vectorizer
	model      *multiLabelModel
	classes    []string
	topK       int
}

// LoadModel loads the three suggestion artifacts. Any of them missing or
// inconsistent is an error; the caller falls back to rule-only mode for the
// process lifetime.
func LoadModel(vectorizerPath, modelPath, binarizerPath string, topK int) (*Model, error) {
	vec, err := nlu.LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}

	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion model: %w", err)
	}
	var mlm multiLabelModel
	if err := json.Unmarshal(modelData, &mlm); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion model: %w", err)
	}

	binData, err := os.ReadFile(binarizerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion binarizer: %w", err)
	}
	var bin binarizer
	if err := json.Unmarshal(binData, &bin); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion binarizer: %w", err)
	}

	if len(mlm.Coefficients) != len(bin.Classes) || len(mlm.Intercepts) != len(bin.Classes) {
		return nil, fmt.Errorf("suggestion model has %d coefficient rows and %d intercepts for %d labels",
			len(mlm.Coefficients), len(mlm.Intercepts), len(bin.Classes))
	}
	for i, row := range mlm.Coefficients {
		if len(row) != vec.Size() {
			return nil, fmt.Errorf("suggestion model row %d has %d dims, vectorizer has %d", i, len(row), vec.Size())
		}
	}

	if topK <= 0 {
		topK = MaxSuggestions
	}

	return &Model{vectorizer: vec, model: &mlm, classes: bin.Classes, topK: topK}, nil
}

// Suggest implements Strategy. An empty result signals the caller to fall
// back to the rule strategy for this turn.
func (m *Model) Suggest(conv *model.ConversationContext) []string {
	x := m.vectorizer.Transform(ContextString(conv))

	var predicted []string
	for i, row := range m.model.Coefficients {
		score := m.model.Intercepts[i]
		for idx, val := range x {
			score += row[idx] * val
		}
		if score > 0 {
			predicted = append(predicted, m.classes[i])
			if len(predicted) == m.topK {
				break
			}
		}
	}

	return predicted
}

// ContextString serializes a conversation context into the bag-of-features
// string the suggestion model was trained on. Feature order matches the
// training pipeline.
func ContextString(conv *model.ConversationContext) string {
	features := make([]string, 0, 16)

	features = append(features, "intent_"+string(conv.LastIntent))
	features = append(features, "stage_"+conv.Stage)

	ents := conv.Entities
	if ents.ProductCode != "" {
		features = append(features, "has_product_code")
	}
	for _, term := range ents.SearchTerms {
		features = append(features, "search_"+term)
	}
	for _, color := range ents.Colors {
		features = append(features, "color_"+color)
	}
	for _, size := range ents.Sizes {
		features = append(features, "size_"+size)
	}
	if ents.OrderNumber != "" {
		features = append(features, "has_order_number")
	}
	if ents.PhoneNumber != "" {
		features = append(features, "has_phone_number")
	}

	if conv.ProductsFound {
		features = append(features, "products_found")
	} else {
		features = append(features, "no_products_found")
	}

	words := strings.Fields(strings.ToLower(conv.LastMessage))
	if len(words) > maxMessageWords {
		words = words[:maxMessageWords]
	}
	for _, w := range words {
		features = append(features, "msg_"+w)
	}

	return strings.Join(features, " ")
}
