// Package model contains domain types passed between layers.
package model

// RawFeatures maps a feature name to whatever the perception layer sent for
// it. Values may be absent, nil, non-numeric, NaN or infinite; the
// vectorize package absorbs all of that. Unknown keys are ignored.
type RawFeatures map[string]any

// SkillScores holds the four integer skill scores, each in [0,100].
type SkillScores struct {
	Confidence    int `json:"confidence"`
	Clarity       int `json:"clarity"`
	Empathy       int `json:"empathy"`
	Communication int `json:"communication"`
}

// ScoreResult is the complete outcome of one scoring call. Fields mirror
// the /score response schema. Scores are never withheld: a degraded or
// defective request still yields neutral scores with Degraded set.
type ScoreResult struct {
	SkillScores

	Overall                int      `json:"overall"`
	LowFeatures            []string `json:"low_features"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	VideoAvailable         bool     `json:"video_available"`
	Degraded               bool     `json:"degraded,omitempty"`
}

// ModelInfo describes the loaded model registry for introspection.
type ModelInfo struct {
	ModelsLoaded      bool                          `json:"models_loaded"`
	Skills            []string                      `json:"skills"`
	NFeatures         int                           `json:"n_features"`
	FeatureNames      []string                      `json:"feature_names"`
	FeatureImportance map[string]map[string]float64 `json:"feature_importance"`
}

// Readiness is the is-ready introspection shape consumed by the HTTP shell.
type Readiness struct {
	Loaded    bool     `json:"loaded"`
	Skills    []string `json:"skills"`
	NFeatures int      `json:"n_features"`
}
