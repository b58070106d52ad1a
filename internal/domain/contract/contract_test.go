package contract_test

import (
	"testing"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/smartystreets/goconvey/convey"
)

func TestFrozenContract(t *testing.T) {
	convey.Convey("Given the frozen feature contract", t, func() {
		convey.Convey("Then the feature counts are fixed", func() {
			convey.So(contract.FeatureCount(), convey.ShouldEqual, 38)
			convey.So(contract.CountByModality(contract.ModalityText), convey.ShouldEqual, 17)
			convey.So(contract.CountByModality(contract.ModalityAudio), convey.ShouldEqual, 14)
			convey.So(contract.CountByModality(contract.ModalityVideo), convey.ShouldEqual, 7)
		})

		convey.Convey("Then the vector order is frozen", func() {
			names := contract.AllFeatureNames()
			convey.So(names, convey.ShouldHaveLength, 38)
			convey.So(names[0], convey.ShouldEqual, "semantic_relevance_mean")
			convey.So(names[16], convey.ShouldEqual, "negative_spike_count")
			convey.So(names[17], convey.ShouldEqual, "speech_rate_wpm")
			convey.So(names[21], convey.ShouldEqual, "silence_ratio")
			convey.So(names[31], convey.ShouldEqual, "eye_contact_ratio")
			convey.So(names[37], convey.ShouldEqual, "emotion_mismatch_score")
		})

		convey.Convey("Then positions match slice order and names are unique", func() {
			seen := make(map[string]bool)
			for i, def := range contract.Definitions() {
				convey.So(def.Position, convey.ShouldEqual, i)
				convey.So(seen[def.Name], convey.ShouldBeFalse)
				seen[def.Name] = true
			}
		})

		convey.Convey("Then every default lies inside its declared range", func() {
			for _, def := range contract.Definitions() {
				convey.So(def.Min, convey.ShouldBeLessThan, def.Max)
				convey.So(def.Default, convey.ShouldBeGreaterThanOrEqualTo, def.Min)
				convey.So(def.Default, convey.ShouldBeLessThanOrEqualTo, def.Max)
			}
		})

		convey.Convey("Then exactly the video features are optional", func() {
			for _, def := range contract.Definitions() {
				convey.So(def.Optional, convey.ShouldEqual, def.Modality == contract.ModalityVideo)
			}
		})

		convey.Convey("Then target skills are fixed and ordered", func() {
			convey.So(contract.TargetSkills(), convey.ShouldResemble,
				[]string{"confidence", "clarity", "empathy", "communication"})
		})
	})
}

func TestLookup(t *testing.T) {
	convey.Convey("Given the contract lookup", t, func() {
		convey.Convey("When looking up a known feature", func() {
			def, err := contract.Lookup("silence_ratio")
			convey.So(err, convey.ShouldBeNil)
			convey.So(def.Position, convey.ShouldEqual, 21)
			convey.So(def.Modality, convey.ShouldEqual, contract.ModalityAudio)
			convey.So(def.Min, convey.ShouldEqual, 0.0)
			convey.So(def.Max, convey.ShouldEqual, 1.0)
		})

		convey.Convey("When looking up an unknown feature", func() {
			_, err := contract.Lookup("charisma_quotient")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "unknown feature")
		})
	})
}

func TestFingerprint(t *testing.T) {
	convey.Convey("Given the contract fingerprint", t, func() {
		convey.Convey("Then it is a stable non-empty SHA-256 hex digest", func() {
			fp := contract.Fingerprint()
			convey.So(fp, convey.ShouldHaveLength, 64)
			convey.So(contract.Fingerprint(), convey.ShouldEqual, fp)
		})
	})
}

func TestExport(t *testing.T) {
	convey.Convey("Given the schema export", t, func() {
		schema := contract.Export()

		convey.Convey("Then it mirrors the compiled contract", func() {
			convey.So(schema.Version, convey.ShouldEqual, contract.Version)
			convey.So(schema.NFeatures, convey.ShouldEqual, contract.FeatureCount())
			convey.So(schema.FeatureOrder, convey.ShouldResemble, contract.AllFeatureNames())
			convey.So(schema.TargetLabels, convey.ShouldResemble, contract.TargetSkills())
			convey.So(schema.Fingerprint, convey.ShouldEqual, contract.Fingerprint())
			convey.So(schema.FeatureMetadata, convey.ShouldHaveLength, contract.FeatureCount())
			convey.So(len(schema.TextFeatures)+len(schema.AudioFeatures)+len(schema.VideoFeatures),
				convey.ShouldEqual, contract.FeatureCount())
		})
	})
}
