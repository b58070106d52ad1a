package feedback

// Direction states on which side of the threshold a feature value becomes
// problematic.
type Direction string

// Directions: DirectionHigh flags value > threshold, DirectionLow flags
// value < threshold.
const (
	DirectionHigh Direction = "high"
	DirectionLow  Direction = "low"
)

// ThresholdRule maps one interpretable feature to its problem threshold.
type ThresholdRule struct {
	Feature   string
	Direction Direction
	Threshold float64
}

// thresholdRules is the curated, ordered rule table. It deliberately covers
// only a subset of the contract judged interpretable, and stays independent
// of model internals so feedback is stable across retraining. Iteration
// order decides which flags survive the cap, so the order is part of the
// contract.
var thresholdRules = []ThresholdRule{
	// High values are bad.
	{Feature: "silence_ratio", Direction: DirectionHigh, Threshold: 0.3},
	{Feature: "topic_drift_ratio", Direction: DirectionHigh, Threshold: 0.3},
	{Feature: "hedge_ratio", Direction: DirectionHigh, Threshold: 0.3},
	{Feature: "filler_word_ratio", Direction: DirectionHigh, Threshold: 0.3},
	{Feature: "audio_nervous_prob", Direction: DirectionHigh, Threshold: 0.5},
	{Feature: "monotony_score", Direction: DirectionHigh, Threshold: 0.5},
	{Feature: "gaze_variance", Direction: DirectionHigh, Threshold: 0.5},
	{Feature: "emotion_mismatch_score", Direction: DirectionHigh, Threshold: 0.4},

	// Low values are bad.
	{Feature: "semantic_relevance_mean", Direction: DirectionLow, Threshold: 0.5},
	{Feature: "assertive_phrase_ratio", Direction: DirectionLow, Threshold: 0.1},
	{Feature: "empathy_phrase_ratio", Direction: DirectionLow, Threshold: 0.05},
	{Feature: "eye_contact_ratio", Direction: DirectionLow, Threshold: 0.4},
	{Feature: "audio_confidence_prob", Direction: DirectionLow, Threshold: 0.4},
	{Feature: "emotion_consistency", Direction: DirectionLow, Threshold: 0.5},
}

// defaultSuggestions maps a flagged feature to its canned improvement
// suggestion. A feedback-mapping artifact may override entries at startup.
var defaultSuggestions = map[string]string{
	"silence_ratio":             "Reduce pauses and hesitation in your responses",
	"audio_nervous_prob":        "Practice speaking with a more calm and steady tone",
	"hedge_ratio":               "Use more definitive language instead of hedging phrases like 'maybe' or 'I think'",
	"filler_word_ratio":         "Minimize filler words like 'um', 'uh', 'like', 'you know'",
	"assertive_phrase_ratio":    "Use more assertive language such as 'I did', 'I achieved', 'I led'",
	"monotony_score":            "Add more variation to your voice tone and speaking pace",
	"topic_drift_ratio":         "Stay more focused on the question being asked",
	"semantic_relevance_mean":   "Keep your answers more relevant and on-topic",
	"empathy_phrase_ratio":      "Use more empathetic language like 'I understand', 'I see your point'",
	"reflective_response_ratio": "Show understanding by reflecting back key points",
	"eye_contact_ratio":         "Maintain more consistent eye contact with the camera",
	"audio_confidence_prob":     "Project more confidence through your voice",
	"emotion_consistency":       "Maintain a more consistent emotional tone throughout",
}

// skillSuggestion is a generic suggestion appended when a skill score dips
// below lowScoreThreshold.
type skillSuggestion struct {
	skill      string
	suggestion string
}

var skillSuggestions = []skillSuggestion{
	{skill: "confidence", suggestion: "Focus on projecting confidence through body language and voice"},
	{skill: "clarity", suggestion: "Structure your responses with clear beginnings, middles, and ends"},
	{skill: "empathy", suggestion: "Show more engagement and understanding of the interviewer's perspective"},
}

// Rules returns the ordered threshold rule table. Callers must treat the
// returned slice as read-only.
func Rules() []ThresholdRule { return thresholdRules }
