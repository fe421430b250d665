package domain

import (
	"math"
	"sort"
)

// ProbabilityConfig holds the parameters that turn theme scores into selection weights.
type ProbabilityConfig struct {
	// UndersampledInteractions is the interaction count below which a theme
	// gets the UndersampledFloor.
	UndersampledInteractions int64

	// UndersampledFloor is the minimum raw weight of an undersampled theme.
	UndersampledFloor float64

	// DislikeThreshold is the score below which DislikeDampening applies.
	DislikeThreshold float64

	// DislikeDampening multiplies the raw weight of strongly disliked themes.
	DislikeDampening float64
}

// DefaultProbabilityConfig returns the standard weighting parameters.
func DefaultProbabilityConfig() ProbabilityConfig {
	return ProbabilityConfig{
		UndersampledInteractions: 5,
		UndersampledFloor:        0.3,
		DislikeThreshold:         -0.5,
		DislikeDampening:         0.3,
	}
}

// ThemeWeight is a selection weight for a theme.
type ThemeWeight struct {
	ThemeID int64
	Weight  float64
}

// ScoreToProbability maps a score in [-1, 1] onto [0, 1].
func ScoreToProbability(score float64) float64 {
	return (ClampScore(score) + 1) / 2
}

// ThemeProbability computes the raw, pre-normalization weight of a theme.
// The undersampled floor is applied before dislike dampening, so a strongly
// disliked theme with few interactions ends up at floor * dampening.
func ThemeProbability(pref ThemePreference, cfg ProbabilityConfig) float64 {
	p := ScoreToProbability(pref.Score)

	if pref.Interactions < cfg.UndersampledInteractions {
		p = math.Max(p, cfg.UndersampledFloor)
	}

	if pref.Score < cfg.DislikeThreshold {
		p *= cfg.DislikeDampening
	}

	return p
}

// ThemeProbabilities computes normalized selection weights for every theme
// with a positive raw weight. Results are ordered by theme ID.
// Returns nil when no theme survives.
func ThemeProbabilities(prefs []ThemePreference, cfg ProbabilityConfig) []ThemeWeight {
	weights := make([]ThemeWeight, 0, len(prefs))
	for _, pref := range prefs {
		p := ThemeProbability(pref, cfg)
		if p > 0 {
			weights = append(weights, ThemeWeight{ThemeID: pref.ThemeID, Weight: p})
		}
	}

	if len(weights) == 0 {
		return nil
	}

	sort.Slice(weights, func(i, j int) bool {
		return weights[i].ThemeID < weights[j].ThemeID
	})

	return NormalizeWeights(weights)
}

// NormalizeWeights scales weights so they sum to 1.
// A zero total gives every theme the same weight.
func NormalizeWeights(weights []ThemeWeight) []ThemeWeight {
	if len(weights) == 0 {
		return nil
	}

	total := float64(0)
	for _, w := range weights {
		total += w.Weight
	}

	result := make([]ThemeWeight, len(weights))
	for i, w := range weights {
		result[i].ThemeID = w.ThemeID
		if total > 0 {
			result[i].Weight = w.Weight / total
		} else {
			result[i].Weight = 1 / float64(len(weights))
		}
	}

	return result
}

// JitterWeights perturbs each weight by a uniform offset in [-amplitude, amplitude]
// and floors the result at minWeight. A single weight is returned unchanged.
// uniform must return values in [0, 1).
func JitterWeights(
	weights []ThemeWeight,
	amplitude, minWeight float64,
	uniform func() float64,
) []ThemeWeight {
	result := make([]ThemeWeight, len(weights))
	copy(result, weights)

	if len(result) <= 1 {
		return result
	}

	for i := range result {
		offset := (uniform()*2 - 1) * amplitude
		result[i].Weight = math.Max(result[i].Weight+offset, minWeight)
	}

	return result
}

// ChooseWeighted draws one theme from a categorical distribution.
// r must be in [0, 1). Weights need not sum to 1.
// Returns false when weights is empty.
func ChooseWeighted(weights []ThemeWeight, r float64) (int64, bool) {
	if len(weights) == 0 {
		return 0, false
	}

	total := float64(0)
	for _, w := range weights {
		total += w.Weight
	}

	target := r * total
	cumulative := float64(0)
	for _, w := range weights {
		cumulative += w.Weight
		if target < cumulative {
			return w.ThemeID, true
		}
	}

	// Floating point rounding can leave target at the very top of the range.
	return weights[len(weights)-1].ThemeID, true
}
