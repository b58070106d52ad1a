package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Divyansh-Wadhwa/AURA/internal/adapters/http/api"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/inference"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
)

// Mock implementation for testing
type mockDecision struct {
	result       model.ScoreResult
	scoreErr     error
	ready        bool
	maxBatchSize int

	scored []model.RawFeatures
}

func (m *mockDecision) Score(_ context.Context, raw model.RawFeatures) (model.ScoreResult, error) {
	m.scored = append(m.scored, raw)
	return m.result, m.scoreErr
}

func (m *mockDecision) ScoreBatch(ctx context.Context, batch []model.RawFeatures) ([]model.ScoreResult, error) {
	results := make([]model.ScoreResult, len(batch))
	for i, raw := range batch {
		results[i], _ = m.Score(ctx, raw)
	}
	return results, nil
}

func (m *mockDecision) MaxBatchSize() int {
	if m.maxBatchSize > 0 {
		return m.maxBatchSize
	}
	return 64
}

func (m *mockDecision) Readiness() model.Readiness {
	skills := []string{}
	if m.ready {
		skills = contract.TargetSkills()
	}
	return model.Readiness{Loaded: m.ready, Skills: skills, NFeatures: contract.FeatureCount()}
}

func (m *mockDecision) ModelInfo() model.ModelInfo {
	return model.ModelInfo{
		ModelsLoaded: m.ready,
		Skills:       contract.TargetSkills(),
		NFeatures:    contract.FeatureCount(),
		FeatureNames: contract.AllFeatureNames(),
	}
}

func (m *mockDecision) Schema() contract.Schema { return contract.Export() }

func (m *mockDecision) GetStats() map[string]interface{} {
	return map[string]interface{}{"requests": int64(7)}
}

func newTestMux(deps *mockDecision) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func scoredResult() model.ScoreResult {
	return model.ScoreResult{
		SkillScores: model.SkillScores{
			Confidence:    72,
			Clarity:       65,
			Empathy:       58,
			Communication: 70,
		},
		Overall:                66,
		LowFeatures:            []string{"silence_ratio"},
		ImprovementSuggestions: []string{"Reduce long pauses; keep a steady flow while thinking aloud."},
		VideoAvailable:         true,
	}
}

func TestHandleScore(t *testing.T) {
	Convey("Given a score endpoint", t, func() {
		deps := &mockDecision{result: scoredResult(), ready: true}
		mux := newTestMux(deps)

		Convey("When posting grouped modality metrics", func() {
			body := `{
				"session_id": "s-123",
				"text_metrics": {"semantic_relevance_mean": 0.8},
				"audio_metrics": {"speech_rate_wpm": 140},
				"video_metrics": {"eye_contact_ratio": 0.7}
			}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))

			Convey("Then it returns 200 with the scored result", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["session_id"], ShouldEqual, "s-123")
				So(resp["overall"], ShouldEqual, 66)
				So(resp["video_available"], ShouldEqual, true)
			})

			Convey("Then the groups were flattened into one raw mapping", func() {
				So(deps.scored, ShouldHaveLength, 1)
				So(deps.scored[0], ShouldContainKey, "semantic_relevance_mean")
				So(deps.scored[0], ShouldContainKey, "speech_rate_wpm")
				So(deps.scored[0], ShouldContainKey, "eye_contact_ratio")
			})
		})

		Convey("When posting flat features", func() {
			body := `{"features": {"speech_rate_wpm": 150}}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.scored[0], ShouldContainKey, "speech_rate_wpm")
		})

		Convey("When posting malformed JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("{not json")))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/score", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the backend is degraded", func() {
			deps.result = model.ScoreResult{
				SkillScores: model.SkillScores{
					Confidence: 50, Clarity: 50, Empathy: 50, Communication: 50,
				},
				Overall:                50,
				LowFeatures:            []string{},
				ImprovementSuggestions: []string{},
				Degraded:               true,
			}
			deps.scoreErr = inference.ErrModelsUnavailable

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{}`)))

			Convey("Then it still answers 200 with the neutral fallback", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["overall"], ShouldEqual, 50)
				So(resp["degraded"], ShouldEqual, true)
			})
		})
	})
}

func TestHandleScoreBatch(t *testing.T) {
	Convey("Given a batch score endpoint", t, func() {
		deps := &mockDecision{result: scoredResult(), ready: true, maxBatchSize: 2}
		mux := newTestMux(deps)

		Convey("When posting a batch within the limit", func() {
			body := `{"sessions": [
				{"session_id": "a", "features": {"speech_rate_wpm": 120}},
				{"session_id": "b", "features": {"speech_rate_wpm": 160}}
			]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score/batch", strings.NewReader(body)))

			Convey("Then results keep input order with session ids", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					Results []map[string]any `json:"results"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Results, ShouldHaveLength, 2)
				So(resp.Results[0]["session_id"], ShouldEqual, "a")
				So(resp.Results[1]["session_id"], ShouldEqual, "b")
			})
		})

		Convey("When the batch exceeds the limit", func() {
			body := `{"sessions": [{}, {}, {}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score/batch", strings.NewReader(body)))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "batch_too_large")
		})

		Convey("When the batch is empty", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score/batch", strings.NewReader(`{"sessions": []}`)))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestIntrospectionEndpoints(t *testing.T) {
	Convey("Given the introspection endpoints", t, func() {
		deps := &mockDecision{ready: true}
		mux := newTestMux(deps)

		Convey("When requesting /healthz on a ready service", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["status"], ShouldEqual, "healthy")
			So(resp["models_loaded"], ShouldEqual, true)
		})

		Convey("When requesting /healthz on a degraded service", func() {
			deps.ready = false
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "degraded")
		})

		Convey("When requesting /model/info", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/model/info", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp map[string]any
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["n_features"], ShouldEqual, contract.FeatureCount())
		})

		Convey("When requesting /schema", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, contract.Fingerprint())
		})

		Convey("When requesting /stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "requests")
		})

		Convey("When requesting /metrics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
