// Package artifacts loads the persisted outputs of the offline training
// pipeline: one serialized XGBoost regressor per skill, the JSON feature
// schema export, the per-skill feature-importance tables and the optional
// feedback-mapping table.
//
// All loading happens once at process startup; nothing here runs on the
// scoring hot path.
package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitryikh/leaves"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/inference"
	"github.com/Divyansh-Wadhwa/AURA/pkg/logger"
)

// Artifact file names inside the store directory. The per-skill model file
// is "<skill>_model.bin" in the XGBoost binary format.
const (
	modelFileSuffix     = "_model.bin"
	schemaFileName      = "schema.json"
	importanceFileName  = "feature_importance.json"
	feedbackMapFileName = "feedback_mapping.json"
)

// Store reads trained artifacts from the local filesystem.
type Store struct {
	dir        string
	schemaFile string
	logger     logger.Logger
}

// New creates a Store with configuration options.
func New(opts ...Option) *Store {
	s := &Store{
		dir: "models",
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.schemaFile == "" {
		s.schemaFile = filepath.Join(s.dir, schemaFileName)
	}
	if s.logger == nil {
		s.logger = logger.Named("artifacts")
	}

	return s
}

// schemaExport is the subset of the schema artifact the store verifies.
type schemaExport struct {
	Version      string   `json:"version"`
	Fingerprint  string   `json:"fingerprint"`
	NFeatures    int      `json:"n_features"`
	FeatureOrder []string `json:"feature_order"`
}

// VerifySchema compares the persisted schema export against the compiled
// contract. A missing file is ErrArtifactMissing (the caller may continue
// on the embedded contract); any disagreement is ErrSchemaMismatch and
// must abort startup.
func (s *Store) VerifySchema(ctx context.Context) error {
	data, err := os.ReadFile(s.schemaFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, s.schemaFile)
		}
		return fmt.Errorf("%w: read %s: %v", ErrArtifactCorrupt, s.schemaFile, err)
	}

	var export schemaExport
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrArtifactCorrupt, s.schemaFile, err)
	}

	if export.Version != contract.Version {
		return fmt.Errorf("%w: schema export version %q, contract version %q",
			ErrSchemaMismatch, export.Version, contract.Version)
	}
	if export.NFeatures != contract.FeatureCount() {
		return fmt.Errorf("%w: schema export has %d features, contract has %d",
			ErrSchemaMismatch, export.NFeatures, contract.FeatureCount())
	}
	names := contract.AllFeatureNames()
	if len(export.FeatureOrder) != len(names) {
		return fmt.Errorf("%w: schema export order has %d entries, contract has %d",
			ErrSchemaMismatch, len(export.FeatureOrder), len(names))
	}
	for i, name := range names {
		if export.FeatureOrder[i] != name {
			return fmt.Errorf("%w: feature order diverges at position %d: export %q, contract %q",
				ErrSchemaMismatch, i, export.FeatureOrder[i], name)
		}
	}
	if export.Fingerprint != "" && export.Fingerprint != contract.Fingerprint() {
		return fmt.Errorf("%w: schema fingerprint %q does not match contract %q",
			ErrSchemaMismatch, export.Fingerprint, contract.Fingerprint())
	}

	s.logger.Info(ctx, "schema export verified",
		logger.String("version", export.Version),
		logger.Int("n_features", export.NFeatures),
	)
	return nil
}

// LoadModels loads one regressor per target skill. Missing or unreadable
// model files leave the returned map partial and are reported through a
// wrapped ErrArtifactMissing so the caller can start degraded; a model
// whose feature count exceeds the contract's is ErrSchemaMismatch and
// fatal.
func (s *Store) LoadModels(ctx context.Context) (map[string]inference.SkillModel, error) {
	models := make(map[string]inference.SkillModel, len(contract.TargetSkills()))
	var missing []string

	for _, skill := range contract.TargetSkills() {
		path := filepath.Join(s.dir, skill+modelFileSuffix)

		ensemble, err := leaves.XGEnsembleFromFile(path, false)
		if err != nil {
			if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
				s.logger.Warn(ctx, "model artifact not found", logger.String("path", path))
			} else {
				s.logger.Error(ctx, "model artifact unreadable",
					logger.String("path", path), logger.Error(err))
			}
			missing = append(missing, skill)
			continue
		}

		if ensemble.NFeatures() > contract.FeatureCount() {
			return nil, fmt.Errorf("%w: %s model expects %d features, contract has %d",
				ErrSchemaMismatch, skill, ensemble.NFeatures(), contract.FeatureCount())
		}

		models[skill] = &xgbModel{ensemble: ensemble}
		s.logger.Info(ctx, "model artifact loaded",
			logger.String("skill", skill),
			logger.Int("trees", ensemble.NEstimators()),
		)
	}

	if len(missing) > 0 {
		return models, fmt.Errorf("%w: no model for %s", ErrArtifactMissing, strings.Join(missing, ", "))
	}
	return models, nil
}

// LoadImportance reads the per-skill feature-importance tables. Served by
// the introspection endpoint only.
func (s *Store) LoadImportance(_ context.Context) (map[string]map[string]float64, error) {
	path := filepath.Join(s.dir, importanceFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrArtifactCorrupt, path, err)
	}

	var importance map[string]map[string]float64
	if err := json.Unmarshal(data, &importance); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrArtifactCorrupt, path, err)
	}
	return importance, nil
}

// LoadFeedbackMapping reads the optional feature-to-suggestion override
// table. Absence is normal: the built-in table substitutes.
func (s *Store) LoadFeedbackMapping(_ context.Context) (map[string]string, error) {
	path := filepath.Join(s.dir, feedbackMapFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrArtifactCorrupt, path, err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrArtifactCorrupt, path, err)
	}
	return mapping, nil
}

// xgbModel adapts a leaves ensemble to the SkillModel contract.
type xgbModel struct {
	ensemble *leaves.Ensemble
}

// Predict returns the raw ensemble prediction for the canonical vector.
func (m *xgbModel) Predict(features []float64) (float64, error) {
	if len(features) < m.ensemble.NFeatures() {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d",
			ErrSchemaMismatch, len(features), m.ensemble.NFeatures())
	}
	return m.ensemble.PredictSingle(features, 0), nil
}
