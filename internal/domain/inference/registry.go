// Package inference orchestrates the per-skill regression models over one
// feature vector and derives the weighted overall score.
package inference

import (
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
)

// SkillModel is an opaque regression artifact: given the canonical feature
// vector it returns a raw scalar prediction. Implementations must be
// deterministic and safe for concurrent use.
type SkillModel interface {
	Predict(features []float64) (float64, error)
}

// Registry holds the loaded skill models and side artifacts. It is built
// once at process start and never mutated afterwards, so concurrent
// readers need no synchronization. Restart is the update mechanism; there
// is no hot reload.
type Registry struct {
	models     map[string]SkillModel
	importance map[string]map[string]float64
}

// RegistryOption applies a configuration option to the Registry.
type RegistryOption func(*Registry)

// WithModels sets the per-skill models. The map is copied.
func WithModels(models map[string]SkillModel) RegistryOption {
	return func(r *Registry) {
		for skill, m := range models {
			if m != nil {
				r.models[skill] = m
			}
		}
	}
}

// WithImportance sets the per-skill feature-importance tables. Served for
// introspection only; the scoring hot path never reads it.
func WithImportance(importance map[string]map[string]float64) RegistryOption {
	return func(r *Registry) {
		if importance != nil {
			r.importance = importance
		}
	}
}

// NewRegistry creates an immutable model registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		models:     make(map[string]SkillModel, len(contract.TargetSkills())),
		importance: make(map[string]map[string]float64),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Ready reports whether every target skill has a loaded model. A registry
// that is not ready serves the neutral fallback instead of failing.
func (r *Registry) Ready() bool {
	for _, skill := range contract.TargetSkills() {
		if _, ok := r.models[skill]; !ok {
			return false
		}
	}
	return true
}

// Model returns the model loaded for skill.
func (r *Registry) Model(skill string) (SkillModel, bool) {
	m, ok := r.models[skill]
	return m, ok
}

// Skills returns the skills with a loaded model, in canonical order.
func (r *Registry) Skills() []string {
	var skills []string
	for _, skill := range contract.TargetSkills() {
		if _, ok := r.models[skill]; ok {
			skills = append(skills, skill)
		}
	}
	return skills
}

// Importance returns the per-skill feature-importance tables. Callers must
// treat the returned map as read-only.
func (r *Registry) Importance() map[string]map[string]float64 {
	return r.importance
}
