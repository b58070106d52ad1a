package contract

// Schema is the JSON export of the complete contract. It mirrors the
// schema artifact persisted by the training pipeline; the artifact store
// compares a loaded export against this one at startup.
type Schema struct {
	Version         string                       `json:"version"`
	Fingerprint     string                       `json:"fingerprint"`
	NFeatures       int                          `json:"n_features"`
	NTextFeatures   int                          `json:"n_text_features"`
	NAudioFeatures  int                          `json:"n_audio_features"`
	NVideoFeatures  int                          `json:"n_video_features"`
	FeatureOrder    []string                     `json:"feature_order"`
	TargetLabels    []string                     `json:"target_labels"`
	FeatureMetadata map[string]FeatureDefinition `json:"feature_metadata"`
	TextFeatures    []string                     `json:"text_features"`
	AudioFeatures   []string                     `json:"audio_features"`
	VideoFeatures   []string                     `json:"video_features"`
}

// Export returns the complete schema as a serializable structure.
func Export() Schema {
	meta := make(map[string]FeatureDefinition, len(definitions))
	for _, d := range definitions {
		meta[d.Name] = d
	}
	return Schema{
		Version:         Version,
		Fingerprint:     Fingerprint(),
		NFeatures:       FeatureCount(),
		NTextFeatures:   CountByModality(ModalityText),
		NAudioFeatures:  CountByModality(ModalityAudio),
		NVideoFeatures:  CountByModality(ModalityVideo),
		FeatureOrder:    AllFeatureNames(),
		TargetLabels:    TargetSkills(),
		FeatureMetadata: meta,
		TextFeatures:    NamesByModality(ModalityText),
		AudioFeatures:   NamesByModality(ModalityAudio),
		VideoFeatures:   NamesByModality(ModalityVideo),
	}
}
