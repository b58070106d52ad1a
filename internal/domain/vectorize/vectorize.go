// Package vectorize turns a raw, possibly malformed feature mapping into a
// complete, range-valid feature vector in the contract's canonical order.
//
// Build is total: upstream perception failures are expected, so any input
// shape, including an empty mapping, degrades gracefully to a defaulted
// vector instead of failing.
package vectorize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Divyansh-Wadhwa/AURA/internal/domain/contract"
	"github.com/Divyansh-Wadhwa/AURA/internal/domain/model"
)

// Vector is a dense vector of contract.FeatureCount() floats in canonical
// feature order. It is built once per request and treated as immutable.
type Vector []float64

// neutralVideoValue substitutes missing video features when the video
// modality is absent. The video_available flag carried alongside the
// vector, not the value itself, signals absence downstream.
const neutralVideoValue = 0.0

// ParseOptionalNumeric converts an arbitrary raw value to a float64. The
// second return is false for anything unusable: nil, booleans, NaN, ±Inf,
// non-numeric strings and non-numeric types. It never panics.
func ParseOptionalNumeric(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case bool:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// VideoAvailable reports whether the optional video modality was present:
// true iff at least one video feature appears in raw with a non-nil value.
// Validity of the value is deliberately not checked here.
func VideoAvailable(raw model.RawFeatures) bool {
	for _, def := range contract.Definitions() {
		if def.Modality != contract.ModalityVideo {
			continue
		}
		if v, ok := raw[def.Name]; ok && v != nil {
			return true
		}
	}
	return false
}

// Build produces the canonical vector and the video availability flag from
// raw input. Per feature: a valid value is clipped into its range; an
// invalid required feature takes its default; an invalid optional (video)
// feature takes its default when video is available, otherwise the neutral
// placeholder. Unknown keys in raw are ignored.
func Build(raw model.RawFeatures) (Vector, bool) {
	videoAvailable := VideoAvailable(raw)

	vec := make(Vector, contract.FeatureCount())
	for _, def := range contract.Definitions() {
		value, valid := ParseOptionalNumeric(raw[def.Name])
		switch {
		case valid:
			vec[def.Position] = clip(value, def.Min, def.Max)
		case def.Optional && !videoAvailable:
			vec[def.Position] = neutralVideoValue
		default:
			vec[def.Position] = def.Default
		}
	}
	return vec, videoAvailable
}

// MissingCounts returns, per modality, how many features of raw were absent
// or invalid and therefore imputed by Build. Used for observability only.
func MissingCounts(raw model.RawFeatures) map[contract.Modality]int {
	counts := make(map[contract.Modality]int, 3)
	for _, def := range contract.Definitions() {
		if _, valid := ParseOptionalNumeric(raw[def.Name]); !valid {
			counts[def.Modality]++
		}
	}
	return counts
}

// Validate checks the well-formedness post-condition: exact length and no
// NaN/Inf anywhere. A violation can only come from a programming defect,
// never from user input, and is fatal to the single request.
func Validate(v Vector) error {
	if len(v) != contract.FeatureCount() {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidVector, len(v), contract.FeatureCount())
	}
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite value at position %d", ErrInvalidVector, i)
		}
	}
	return nil
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
