// Package feedback is the explainability layer: it scans raw, pre-imputation
// feature values against a curated threshold table and translates the
// findings into improvement suggestions.
//
// It never consults the trained models' feature importance at request time;
// the static table keeps feedback independent of model internals.
package feedback

import (
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/dedupe"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/vectorize"
)

// Caps on the explainability output.
const (
	maxLowFeatures    = 5
	maxSuggestions    = 5
	lowScoreThreshold = 50
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSuggestionOverrides replaces canned suggestions for the given
// features. Unknown feature names are ignored; empty suggestions are
// dropped. Used to apply the optional feedback-mapping artifact.
func WithSuggestionOverrides(overrides map[string]string) Option {
	return func(g *Generator) {
		for feature, suggestion := range overrides {
			if suggestion == "" {
				continue
			}
			if _, known := g.suggestions[feature]; known {
				g.suggestions[feature] = suggestion
			}
		}
	}
}

// Generator produces low-feature flags and suggestions for one request.
// It is immutable after construction and safe for concurrent use.
type Generator struct {
	suggestions map[string]string
}

// NewGenerator creates a Generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		suggestions: make(map[string]string, len(defaultSuggestions)),
	}
	for feature, suggestion := range defaultSuggestions {
		g.suggestions[feature] = suggestion
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// LowFeatures scans raw against the threshold table and returns the flagged
// feature names in table order, deduplicated and capped. Missing or
// unparsable raw values are skipped, not flagged: data the caller never
// supplied is not evidence of a problem.
func (g *Generator) LowFeatures(raw model.RawFeatures) []string {
	flagged := dedupe.NewList(dedupe.WithLimit(maxLowFeatures))

	for _, rule := range thresholdRules {
		value, ok := vectorize.ParseOptionalNumeric(raw[rule.Feature])
		if !ok {
			continue
		}

		bad := (rule.Direction == DirectionHigh && value > rule.Threshold) ||
			(rule.Direction == DirectionLow && value < rule.Threshold)
		if bad {
			flagged.Add(rule.Feature)
		}
	}

	return flagged.Items()
}

// Suggestions maps flagged features to canned suggestions, appends a
// generic suggestion for every skill scoring below the low threshold, and
// returns the result deduplicated in first-seen order, capped.
func (g *Generator) Suggestions(lowFeatures []string, scores model.SkillScores) []string {
	out := dedupe.NewList(dedupe.WithLimit(maxSuggestions))

	for _, feature := range lowFeatures {
		if suggestion, ok := g.suggestions[feature]; ok {
			out.Add(suggestion)
		}
	}

	bySkill := map[string]int{
		"confidence":    scores.Confidence,
		"clarity":       scores.Clarity,
		"empathy":       scores.Empathy,
		"communication": scores.Communication,
	}
	for _, s := range skillSuggestions {
		if bySkill[s.skill] < lowScoreThreshold {
			out.Add(s.suggestion)
		}
	}

	return out.Items()
}
