package inference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/inference"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/vectorize"
	"github.com/smartystreets/goconvey/convey"
)

// constModel predicts a fixed value regardless of input.
type constModel float64

func (m constModel) Predict(_ []float64) (float64, error) { return float64(m), nil }

// failingModel always errors.
type failingModel struct{}

func (failingModel) Predict(_ []float64) (float64, error) {
	return 0, errors.New("corrupt ensemble")
}

func fullRegistry(confidence, clarity, empathy, communication float64) *inference.Registry {
	return inference.NewRegistry(inference.WithModels(map[string]inference.SkillModel{
		"confidence":    constModel(confidence),
		"clarity":       constModel(clarity),
		"empathy":       constModel(empathy),
		"communication": constModel(communication),
	}))
}

func testVector() vectorize.Vector {
	vec, _ := vectorize.Build(model.RawFeatures{})
	return vec
}

func TestScorer(t *testing.T) {
	convey.Convey("Given a scorer over a complete registry", t, func() {
		ctx := context.Background()

		convey.Convey("When predictions are in range", func() {
			scorer := inference.NewScorer(fullRegistry(74.4, 68.5, 80.9, 72.0))
			scores, err := scorer.Score(ctx, testVector())

			convey.Convey("Then each prediction is rounded to the nearest integer", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(scores.Confidence, convey.ShouldEqual, 74)
				convey.So(scores.Clarity, convey.ShouldEqual, 69)
				convey.So(scores.Empathy, convey.ShouldEqual, 81)
				convey.So(scores.Communication, convey.ShouldEqual, 72)
			})
		})

		convey.Convey("When predictions fall outside [0,100]", func() {
			scorer := inference.NewScorer(fullRegistry(123.4, -5.0, 100.4, 0.0))
			scores, err := scorer.Score(ctx, testVector())

			convey.Convey("Then they are clamped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(scores.Confidence, convey.ShouldEqual, 100)
				convey.So(scores.Clarity, convey.ShouldEqual, 0)
				convey.So(scores.Empathy, convey.ShouldEqual, 100)
				convey.So(scores.Communication, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When a loaded model fails to predict", func() {
			registry := inference.NewRegistry(inference.WithModels(map[string]inference.SkillModel{
				"confidence":    failingModel{},
				"clarity":       constModel(70),
				"empathy":       constModel(70),
				"communication": constModel(70),
			}))
			scores, err := inference.NewScorer(registry).Score(ctx, testVector())

			convey.Convey("Then that skill degrades to neutral without failing the request", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(scores.Confidence, convey.ShouldEqual, inference.NeutralScore)
				convey.So(scores.Clarity, convey.ShouldEqual, 70)
			})
		})

		convey.Convey("When scoring the same vector repeatedly", func() {
			scorer := inference.NewScorer(fullRegistry(61.2, 59.8, 70.1, 66.6))
			first, err1 := scorer.Score(ctx, testVector())
			second, err2 := scorer.Score(ctx, testVector())

			convey.Convey("Then results are identical", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(first, convey.ShouldResemble, second)
			})
		})
	})

	convey.Convey("Given a scorer over an incomplete registry", t, func() {
		registry := inference.NewRegistry(inference.WithModels(map[string]inference.SkillModel{
			"confidence": constModel(80),
		}))
		s := inference.NewScorer(registry)

		convey.Convey("When scoring", func() {
			scores, err := s.Score(context.Background(), testVector())

			convey.Convey("Then every skill is the neutral fallback and the condition is signaled", func() {
				convey.So(errors.Is(err, inference.ErrModelsUnavailable), convey.ShouldBeTrue)
				convey.So(scores, convey.ShouldResemble, inference.NeutralScores())
			})
		})
	})
}

func TestOverall(t *testing.T) {
	convey.Convey("Given the overall weighting", t, func() {
		convey.Convey("Then the documented example holds", func() {
			// 0.25*80 + 0.30*60 + 0.20*40 + 0.25*80 = 20+18+8+20 = 66
			scores := model.SkillScores{Confidence: 80, Clarity: 60, Empathy: 40, Communication: 80}
			convey.So(inference.Overall(scores), convey.ShouldEqual, 66)
		})

		convey.Convey("Then bounds hold at the extremes", func() {
			convey.So(inference.Overall(model.SkillScores{}), convey.ShouldEqual, 0)
			all100 := model.SkillScores{Confidence: 100, Clarity: 100, Empathy: 100, Communication: 100}
			convey.So(inference.Overall(all100), convey.ShouldEqual, 100)
		})

		convey.Convey("Then the neutral fallback averages to neutral", func() {
			convey.So(inference.Overall(inference.NeutralScores()), convey.ShouldEqual, inference.NeutralScore)
		})
	})
}

func TestRegistry(t *testing.T) {
	convey.Convey("Given a model registry", t, func() {
		convey.Convey("When all four skills are loaded", func() {
			r := fullRegistry(1, 2, 3, 4)
			convey.So(r.Ready(), convey.ShouldBeTrue)
			convey.So(r.Skills(), convey.ShouldResemble,
				[]string{"confidence", "clarity", "empathy", "communication"})
		})

		convey.Convey("When a skill is missing", func() {
			r := inference.NewRegistry(inference.WithModels(map[string]inference.SkillModel{
				"confidence": constModel(1),
				"clarity":    constModel(1),
			}))
			convey.So(r.Ready(), convey.ShouldBeFalse)
			convey.So(r.Skills(), convey.ShouldResemble, []string{"confidence", "clarity"})
		})

		convey.Convey("When empty", func() {
			r := inference.NewRegistry()
			convey.So(r.Ready(), convey.ShouldBeFalse)
			convey.So(r.Skills(), convey.ShouldBeEmpty)
			convey.So(r.Importance(), convey.ShouldBeEmpty)
		})

		convey.Convey("When importance tables are attached", func() {
			r := inference.NewRegistry(inference.WithImportance(map[string]map[string]float64{
				"confidence": {"silence_ratio": 0.3},
			}))
			convey.So(r.Importance()["confidence"]["silence_ratio"], convey.ShouldEqual, 0.3)
		})
	})
}
