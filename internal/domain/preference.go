package domain

const (
	MinScore = -1.0
	MaxScore = 1.0
)

// ThemePreference is a user's running affinity for one theme.
// Score is in [MinScore, MaxScore], 0 being neutral.
type ThemePreference struct {
	ThemeID      int64   `json:"theme_id"`
	Name         string  `json:"name"`
	Glyph        string  `json:"glyph"`
	Score        float64 `json:"score"`
	Interactions int64   `json:"interactions"`
}

// ClampScore bounds a score to [MinScore, MaxScore].
func ClampScore(score float64) float64 {
	if score > MaxScore {
		return MaxScore
	}
	if score < MinScore {
		return MinScore
	}
	return score
}

// ApplyFeedback returns the new score after one like or dislike of a joke
// linked to the theme with the given weight. Non-positive weights fall back
// to DefaultLinkWeight.
func ApplyFeedback(current, weight float64, liked bool, learningRate float64) float64 {
	if weight <= 0 {
		weight = DefaultLinkWeight
	}

	delta := learningRate * weight
	if !liked {
		delta = -delta
	}

	return ClampScore(ClampScore(current) + delta)
}
