// Package contract is the single source of truth for the feature contract
// between the perception layer and the decision layer.
//
// The ordered feature list below is FROZEN at schema version 1.0.0. It is
// append-only: reordering or removing an entry silently invalidates every
// model trained against it. Deployments must retrain before touching it.
package contract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Version is the frozen schema version. Trained model artifacts are only
// valid against this exact version.
const Version = "1.0.0"

// Modality identifies which perception channel produces a feature.
type Modality string

// Known modalities. Only video is optional.
const (
	ModalityText  Modality = "text"
	ModalityAudio Modality = "audio"
	ModalityVideo Modality = "video"
)

// FeatureDefinition describes one feature in the frozen contract.
type FeatureDefinition struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Default  float64  `json:"default"`
	Modality Modality `json:"modality"`
	Optional bool     `json:"optional"`
}

// definitions is the canonical ordered feature list. Position is assigned
// from slice order at package load. APPEND ONLY.
var definitions = assignPositions([]FeatureDefinition{
	// Text metrics (17).
	{Name: "semantic_relevance_mean", Min: 0, Max: 1, Default: 0.7, Modality: ModalityText},
	{Name: "semantic_relevance_std", Min: 0, Max: 1, Default: 0.2, Modality: ModalityText},
	{Name: "topic_drift_ratio", Min: 0, Max: 1, Default: 0.15, Modality: ModalityText},
	{Name: "avg_sentence_length", Min: 1, Max: 50, Default: 15, Modality: ModalityText},
	{Name: "sentence_length_std", Min: 0, Max: 20, Default: 5, Modality: ModalityText},
	{Name: "avg_response_length_sec", Min: 1, Max: 120, Default: 30, Modality: ModalityText},
	{Name: "response_length_consistency", Min: 0, Max: 1, Default: 0.5, Modality: ModalityText},
	{Name: "assertive_phrase_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "modal_verb_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "hedge_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "filler_word_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "empathy_phrase_ratio", Min: 0, Max: 1, Default: 0.05, Modality: ModalityText},
	{Name: "reflective_response_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "question_back_ratio", Min: 0, Max: 1, Default: 0.1, Modality: ModalityText},
	{Name: "avg_sentiment", Min: -1, Max: 1, Default: 0, Modality: ModalityText},
	{Name: "sentiment_variance", Min: 0, Max: 1, Default: 0.2, Modality: ModalityText},
	{Name: "negative_spike_count", Min: 0, Max: 20, Default: 1, Modality: ModalityText},

	// Audio metrics (14).
	{Name: "speech_rate_wpm", Min: 60, Max: 250, Default: 140, Modality: ModalityAudio},
	{Name: "speech_rate_variance", Min: 0, Max: 50, Default: 10, Modality: ModalityAudio},
	{Name: "mean_pause_duration", Min: 0.1, Max: 5, Default: 0.8, Modality: ModalityAudio},
	{Name: "pause_frequency", Min: 0, Max: 30, Default: 8, Modality: ModalityAudio},
	{Name: "silence_ratio", Min: 0, Max: 1, Default: 0.2, Modality: ModalityAudio},
	{Name: "pitch_mean", Min: 50, Max: 400, Default: 150, Modality: ModalityAudio},
	{Name: "pitch_variance", Min: 0, Max: 100, Default: 25, Modality: ModalityAudio},
	{Name: "energy_mean", Min: 0, Max: 1, Default: 0.5, Modality: ModalityAudio},
	{Name: "energy_variance", Min: 0, Max: 0.5, Default: 0.15, Modality: ModalityAudio},
	{Name: "monotony_score", Min: 0, Max: 1, Default: 0.3, Modality: ModalityAudio},
	{Name: "audio_confidence_prob", Min: 0, Max: 1, Default: 0.5, Modality: ModalityAudio},
	{Name: "audio_nervous_prob", Min: 0, Max: 1, Default: 0.3, Modality: ModalityAudio},
	{Name: "audio_calm_prob", Min: 0, Max: 1, Default: 0.5, Modality: ModalityAudio},
	{Name: "emotion_consistency", Min: 0, Max: 1, Default: 0.6, Modality: ModalityAudio},

	// Video metrics (7), optional modality.
	{Name: "eye_contact_ratio", Min: 0, Max: 1, Default: 0.6, Modality: ModalityVideo, Optional: true},
	{Name: "gaze_variance", Min: 0, Max: 1, Default: 0.3, Modality: ModalityVideo, Optional: true},
	{Name: "head_turn_frequency", Min: 0, Max: 10, Default: 2, Modality: ModalityVideo, Optional: true},
	{Name: "expression_variance", Min: 0, Max: 1, Default: 0.4, Modality: ModalityVideo, Optional: true},
	{Name: "smile_ratio", Min: 0, Max: 1, Default: 0.3, Modality: ModalityVideo, Optional: true},
	{Name: "neutral_face_ratio", Min: 0, Max: 1, Default: 0.5, Modality: ModalityVideo, Optional: true},
	{Name: "emotion_mismatch_score", Min: 0, Max: 1, Default: 0.2, Modality: ModalityVideo, Optional: true},
})

// targetSkills are the regression targets, in canonical order.
var targetSkills = []string{"confidence", "clarity", "empathy", "communication"}

var (
	index       = buildIndex(definitions)
	fingerprint = computeFingerprint(definitions)
)

func assignPositions(defs []FeatureDefinition) []FeatureDefinition {
	for i := range defs {
		defs[i].Position = i
	}
	return defs
}

func buildIndex(defs []FeatureDefinition) map[string]int {
	idx := make(map[string]int, len(defs))
	for i, d := range defs {
		idx[d.Name] = i
	}
	return idx
}

// computeFingerprint hashes the ordered feature names. Two builds agree on
// the contract iff their fingerprints match; artifact loaders verify this
// at startup.
func computeFingerprint(defs []FeatureDefinition) string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	sum := sha256.Sum256([]byte(strings.Join(names, "\n")))
	return hex.EncodeToString(sum[:])
}

// FeatureCount returns N, the length of the canonical vector.
func FeatureCount() int { return len(definitions) }

// Definitions returns the canonical ordered feature list. Callers must
// treat the returned slice as read-only.
func Definitions() []FeatureDefinition { return definitions }

// AllFeatureNames returns the N feature names in canonical order.
func AllFeatureNames() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.Name
	}
	return names
}

// NamesByModality returns the feature names of one modality in canonical order.
func NamesByModality(m Modality) []string {
	var names []string
	for _, d := range definitions {
		if d.Modality == m {
			names = append(names, d.Name)
		}
	}
	return names
}

// CountByModality returns how many features belong to one modality.
func CountByModality(m Modality) int {
	return len(NamesByModality(m))
}

// Lookup returns the definition for name. Unknown names are an internal
// misuse: external inputs with unknown keys are ignored before ever
// reaching Lookup.
func Lookup(name string) (FeatureDefinition, error) {
	i, ok := index[name]
	if !ok {
		return FeatureDefinition{}, fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	return definitions[i], nil
}

// TargetSkills returns the regression target names in canonical order.
// Callers must treat the returned slice as read-only.
func TargetSkills() []string { return targetSkills }

// Fingerprint returns the SHA-256 hex digest of the ordered feature names.
func Fingerprint() string { return fingerprint }
