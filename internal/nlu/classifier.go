package nlu

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/yukishop/nlp-service/internal/model"
)

// Classifier maps an utterance to an intent label with a confidence in
// [0, 1]. Implementations may be statistical: callers must tolerate labels
// outside the fixed intent enumeration and must substitute (general, 0.0)
// when Classify fails.
type Classifier interface {
	Classify(text string) (model.Intent, float64, error)
}

// linearModel is a one-vs-rest linear classifier exported from the training
// pipeline: one coefficient row and one intercept per class.
type linearModel struct {
	Classes      []string    `json:"classes"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

func loadLinearModel(path string, dims int) (*linearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m linearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	if len(m.Classes) == 0 {
		return nil, fmt.Errorf("model %s has no classes", path)
	}
	if len(m.Coefficients) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return nil, fmt.Errorf("model %s is inconsistent: %d classes, %d coefficient rows, %d intercepts",
			path, len(m.Classes), len(m.Coefficients), len(m.Intercepts))
	}
	for i, row := range m.Coefficients {
		if len(row) != dims {
			return nil, fmt.Errorf("model %s coefficient row %d has %d dims, vectorizer has %d",
				path, i, len(row), dims)
		}
	}

	return &m, nil
}

// scores computes the decision value for every class over a sparse vector.
func (m *linearModel) scores(x map[int]float64) []float64 {
	scores := make([]float64, len(m.Classes))
	copy(scores, m.Intercepts)
	for i, row := range m.Coefficients {
		for idx, val := range x {
			scores[i] += row[idx] * val
		}
	}
	return scores
}

// IntentClassifier evaluates the trained intent model in-process.
type IntentClassifier struct {
	vectorizer *Vectorizer
	model      *linearModel
}

// LoadIntentClassifier loads the vectorizer and intent model artifacts.
// Either artifact missing or inconsistent is a hard error; the service
// cannot start without its intent model.
func LoadIntentClassifier(vectorizerPath, modelPath string) (*IntentClassifier, error) {
	vec, err := LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}

	m, err := loadLinearModel(modelPath, vec.Size())
	if err != nil {
		return nil, err
	}

	return &IntentClassifier{vectorizer: vec, model: m}, nil
}

// Classify predicts the intent of text. The predicted label is the argmax
// class; confidence is its softmax probability over all class scores.
func (c *IntentClassifier) Classify(text string) (model.Intent, float64, error) {
	x := c.vectorizer.Transform(text)
	scores := c.model.scores(x)

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	return model.Intent(c.model.Classes[best]), softmax(scores, best), nil
}

// softmax returns the probability of class i, shifted by the max score for
// numerical stability.
func softmax(scores []float64, i int) float64 {
	max := scores[0]
	for _, s := range scores {
		if s > max {
			max = s
		}
	}

	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - max)
	}
	return math.Exp(scores[i]-max) / sum
}
