// Package service provides the core decision-layer service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Divyansh-Wadhwa/AURA/internal/adapters/artifacts"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/feedback"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/inference"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/vectorize"
	"github.com/Divyansh-Wadhwa/AURA/pkg/logger"
	"github.com/Divyansh-Wadhwa/AURA/pkg/metrics"
)

// Default service configuration.
const (
	defaultModelsDir    = "models"
	defaultMaxBatchSize = 64
)

// Service implements the decision layer: imputation, inference and
// feedback over one raw feature mapping. Everything it holds is read-only
// after Start, so concurrent requests need no locking.
type Service struct {
	mu sync.RWMutex

	// Configuration.
	modelsDir    string
	schemaFile   string
	batchWorkers int
	maxBatchSize int

	// Read-only after Start.
	registry  *inference.Registry
	scorer    *inference.Scorer
	generator *feedback.Generator

	// Counters for /stats.
	requests         atomic.Int64
	degradedRequests atomic.Int64

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithModelsDir sets the directory holding trained artifacts.
func WithModelsDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.modelsDir = dir
		}
	}
}

// WithSchemaFile overrides the schema export path.
func WithSchemaFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.schemaFile = path
		}
	}
}

// WithBatchWorkers sets the number of workers used by ScoreBatch.
func WithBatchWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.batchWorkers = count
		}
	}
}

// WithMaxBatchSize caps the number of sessions per batch request.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithRegistry injects a pre-built model registry, bypassing the artifact
// store for model loading.
func WithRegistry(registry *inference.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelsDir:    defaultModelsDir,
		batchWorkers: runtime.NumCPU(),
		maxBatchSize: defaultMaxBatchSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start verifies the schema contract and loads all artifacts. Missing
// models leave the service in a degraded state rather than failing; a
// schema mismatch is fatal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting decision service...",
		logger.String("schema_version", contract.Version),
		logger.Int("n_features", contract.FeatureCount()),
	)

	store := artifacts.New(
		artifacts.WithDir(s.modelsDir),
		artifacts.WithSchemaFile(s.schemaFile),
		artifacts.WithLogger(s.logger.Named("artifacts")),
	)

	if err := store.VerifySchema(ctx); err != nil {
		if !errors.Is(err, artifacts.ErrArtifactMissing) {
			return err
		}
		s.logger.Warn(ctx, "schema export absent; trusting embedded contract", logger.Error(err))
	}

	if s.registry == nil {
		models, err := store.LoadModels(ctx)
		if err != nil {
			if !errors.Is(err, artifacts.ErrArtifactMissing) {
				return err
			}
			s.logger.Warn(ctx, "starting degraded: scoring will serve the neutral fallback", logger.Error(err))
		}

		importance, err := store.LoadImportance(ctx)
		if err != nil {
			if !errors.Is(err, artifacts.ErrArtifactMissing) {
				return err
			}
			importance = nil
		}

		s.registry = inference.NewRegistry(
			inference.WithModels(models),
			inference.WithImportance(importance),
		)
	}

	var feedbackOpts []feedback.Option
	mapping, err := store.LoadFeedbackMapping(ctx)
	switch {
	case err == nil:
		feedbackOpts = append(feedbackOpts, feedback.WithSuggestionOverrides(mapping))
		s.logger.Info(ctx, "feedback mapping artifact applied", logger.Int("entries", len(mapping)))
	case !errors.Is(err, artifacts.ErrArtifactMissing):
		return err
	}

	s.scorer = inference.NewScorer(s.registry)
	s.generator = feedback.NewGenerator(feedbackOpts...)

	metrics.UpdateModelsLoaded(len(s.registry.Skills()))

	s.started = true
	s.logger.Info(ctx, "decision service started",
		logger.Bool("ready", s.registry.Ready()),
		logger.Strings("skills", s.registry.Skills()),
		logger.Int("batch_workers", s.batchWorkers),
	)
	return nil
}

// Stop marks the service stopped. There are no resources to release; model
// artifacts live for the whole process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "decision service stopped")
}

// Score runs the full decision pipeline over one raw feature mapping.
// It always returns a complete result; on a degraded registry the result
// is the neutral fallback accompanied by inference.ErrModelsUnavailable,
// and on an internal vector defect by vectorize.ErrInvalidVector.
func (s *Service) Score(ctx context.Context, raw model.RawFeatures) (model.ScoreResult, error) {
	start := time.Now()
	s.requests.Add(1)
	metrics.RecordScoringRequest()

	vec, videoAvailable := vectorize.Build(raw)
	metrics.RecordVideoAvailability(videoAvailable)
	for modality, n := range vectorize.MissingCounts(raw) {
		metrics.AddImputedFeatures(string(modality), n)
	}

	if err := vectorize.Validate(vec); err != nil {
		metrics.RecordScoringError()
		s.logger.Error(ctx, "malformed feature vector reached inference", logger.Error(err))
		return neutralResult(videoAvailable), err
	}

	scorer := s.scorer
	if scorer == nil {
		scorer = inference.NewScorer(nil)
	}
	scores, err := scorer.Score(ctx, vec)
	if err != nil {
		s.degradedRequests.Add(1)
		metrics.RecordScoringDegraded()
		s.logger.Debug(ctx, "scored with neutral fallback", logger.Error(err))
		return neutralResult(videoAvailable), err
	}

	generator := s.generator
	if generator == nil {
		generator = feedback.NewGenerator()
	}
	lowFeatures := generator.LowFeatures(raw)
	suggestions := generator.Suggestions(lowFeatures, scores)
	overall := inference.Overall(scores)

	metrics.ObserveSkillScore("confidence", scores.Confidence)
	metrics.ObserveSkillScore("clarity", scores.Clarity)
	metrics.ObserveSkillScore("empathy", scores.Empathy)
	metrics.ObserveSkillScore("communication", scores.Communication)
	metrics.ObserveOverallScore(overall)
	metrics.ObserveLowFeatures(len(lowFeatures))
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	return model.ScoreResult{
		SkillScores:            scores,
		Overall:                overall,
		LowFeatures:            lowFeatures,
		ImprovementSuggestions: suggestions,
		VideoAvailable:         videoAvailable,
	}, nil
}

// ScoreBatch scores several sessions, fanning the work out over a bounded
// worker pool. Results keep input order. Per-session degradation is
// carried inside each result; only context cancellation fails the batch.
func (s *Service) ScoreBatch(ctx context.Context, batch []model.RawFeatures) ([]model.ScoreResult, error) {
	metrics.RecordBatchRequest(len(batch))

	results := make([]model.ScoreResult, len(batch))
	if len(batch) == 0 {
		return results, nil
	}

	workers := s.batchWorkers
	if workers > len(batch) {
		workers = len(batch)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, _ := s.Score(ctx, batch[i])
				results[i] = result
			}
		}()
	}

feed:
	for i := range batch {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, ctx.Err()
}

// MaxBatchSize returns the configured per-request session cap.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// Ready reports whether every skill model is loaded.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry != nil && s.registry.Ready()
}

// Readiness returns the is-ready introspection shape.
func (s *Service) Readiness() model.Readiness {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := model.Readiness{NFeatures: contract.FeatureCount(), Skills: []string{}}
	if s.registry != nil {
		r.Loaded = s.registry.Ready()
		if skills := s.registry.Skills(); skills != nil {
			r.Skills = skills
		}
	}
	return r
}

// ModelInfo returns model metadata for the introspection endpoint.
func (s *Service) ModelInfo() model.ModelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := model.ModelInfo{
		NFeatures:         contract.FeatureCount(),
		FeatureNames:      contract.AllFeatureNames(),
		Skills:            []string{},
		FeatureImportance: map[string]map[string]float64{},
	}
	if s.registry != nil {
		info.ModelsLoaded = s.registry.Ready()
		if skills := s.registry.Skills(); skills != nil {
			info.Skills = skills
		}
		if importance := s.registry.Importance(); importance != nil {
			info.FeatureImportance = importance
		}
	}
	return info
}

// Schema returns the complete feature contract export.
func (s *Service) Schema() contract.Schema {
	return contract.Export()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"schema_version":    contract.Version,
		"n_features":        contract.FeatureCount(),
		"batch_workers":     s.batchWorkers,
		"max_batch_size":    s.maxBatchSize,
		"requests":          s.requests.Load(),
		"degraded_requests": s.degradedRequests.Load(),
	}
	if s.registry != nil {
		stats["models_loaded"] = len(s.registry.Skills())
		stats["ready"] = s.registry.Ready()
	}
	return stats
}

// neutralResult is the complete fallback result: scores are never withheld.
func neutralResult(videoAvailable bool) model.ScoreResult {
	return model.ScoreResult{
		SkillScores:            inference.NeutralScores(),
		Overall:                inference.NeutralScore,
		LowFeatures:            []string{},
		ImprovementSuggestions: []string{},
		VideoAvailable:         videoAvailable,
		Degraded:               true,
	}
}
