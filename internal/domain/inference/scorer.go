package inference

import (
	"context"
	"math"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/vectorize"
)

// Score bounds and the neutral fallback value.
const (
	minScore     = 0
	maxScore     = 100
	NeutralScore = 50
)

// Overall weights. Clarity carries the largest share because of its
// outsized contribution to perceived communication quality. Fixed design
// constants, not configuration.
const (
	weightConfidence    = 0.25
	weightClarity       = 0.30
	weightEmpathy       = 0.20
	weightCommunication = 0.25
)

// Scorer runs every skill model over one vector. It holds no mutable
// state: identical vectors yield identical scores for the life of the
// process.
type Scorer struct {
	registry *Registry
}

// NewScorer creates a Scorer over an immutable registry.
func NewScorer(registry *Registry) *Scorer {
	return &Scorer{registry: registry}
}

// Score computes the four skill scores for vec. Each raw prediction is
// rounded to the nearest integer and clamped into [0,100]. When the
// registry is not ready it returns the neutral fallback for every skill
// together with ErrModelsUnavailable; a score is always returned.
func (s *Scorer) Score(_ context.Context, vec vectorize.Vector) (model.SkillScores, error) {
	if s.registry == nil || !s.registry.Ready() {
		return NeutralScores(), ErrModelsUnavailable
	}

	scores := make(map[string]int, len(contract.TargetSkills()))
	for _, skill := range contract.TargetSkills() {
		m, _ := s.registry.Model(skill)
		pred, err := m.Predict(vec)
		if err != nil {
			// A loaded model that cannot predict is defect-class; fall
			// back to neutral for this skill rather than withholding the
			// result.
			scores[skill] = NeutralScore
			continue
		}
		scores[skill] = clampScore(pred)
	}

	return model.SkillScores{
		Confidence:    scores["confidence"],
		Clarity:       scores["clarity"],
		Empathy:       scores["empathy"],
		Communication: scores["communication"],
	}, nil
}

// Overall derives the weighted overall score from the four skill scores,
// rounded and clamped into [0,100].
func Overall(s model.SkillScores) int {
	weighted := weightConfidence*float64(s.Confidence) +
		weightClarity*float64(s.Clarity) +
		weightEmpathy*float64(s.Empathy) +
		weightCommunication*float64(s.Communication)
	return clampScore(weighted)
}

// NeutralScores returns the all-neutral fallback.
func NeutralScores() model.SkillScores {
	return model.SkillScores{
		Confidence:    NeutralScore,
		Clarity:       NeutralScore,
		Empathy:       NeutralScore,
		Communication: NeutralScore,
	}
}

func clampScore(raw float64) int {
	rounded := int(math.Round(raw))
	if rounded < minScore {
		return minScore
	}
	if rounded > maxScore {
		return maxScore
	}
	return rounded
}
