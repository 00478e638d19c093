// Package suggest proposes follow-up utterances for a conversation turn.
//
// Two strategies exist: a deterministic rule table and a learned multi-label
// model. The model is optional; when it is absent, or when it yields nothing
// usable for a turn, the rule table serves the request. Callers never see a
// suggestion failure.
package suggest

import (
	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/metrics"
)

// MaxSuggestions bounds every suggestion list shown to the user.
const MaxSuggestions = 4

// Strategy produces candidate follow-up utterances for a conversation turn.
type Strategy interface {
	Suggest(conv *model.ConversationContext) []string
}

// ModelWithFallback tries the learned strategy first and falls back to the
// rule table when the model yields nothing for that single call.
type ModelWithFallback struct {
	Model Strategy
	Rules Strategy
}

// Suggest implements Strategy.
func (s ModelWithFallback) Suggest(conv *model.ConversationContext) []string {
	if out := s.Model.Suggest(conv); len(out) > 0 {
		metrics.SuggestionsTotal.WithLabelValues("model").Inc()
		return out
	}
	metrics.SuggestionsTotal.WithLabelValues("fallback").Inc()
	return s.Rules.Suggest(conv)
}

// Engine applies the shared post-processing contract over a strategy:
// suggestions are de-duplicated preserving first-seen order and truncated to
// MaxSuggestions.
type Engine struct {
	strategy Strategy
}

// NewEngine wraps a strategy with the output contract.
func NewEngine(strategy Strategy) *Engine {
	return &Engine{strategy: strategy}
}

// Suggest returns at most MaxSuggestions unique follow-ups for the turn.
func (e *Engine) Suggest(conv *model.ConversationContext) []string {
	return dedupe(e.strategy.Suggest(conv), MaxSuggestions)
}

func dedupe(in []string, limit int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, limit)
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
