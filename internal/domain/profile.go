package domain

import "sort"

// UserProfile summarises a user's theme preferences.
type UserProfile struct {
	Themes              []ThemePreference `json:"themes"`
	TotalInteractions   int64             `json:"total_interactions"`
	FavoriteTheme       *ThemePreference  `json:"favorite_theme"`
	LeastFavoriteTheme  *ThemePreference  `json:"least_favorite_theme"`
	MostInteractedTheme *ThemePreference  `json:"most_interacted_theme"`
}

// BuildUserProfile derives a profile from preference rows.
// Themes are sorted by score descending; ties keep theme ID order, and the
// lowest theme ID wins ties for favorite, least favorite and most interacted.
// Returns nil if prefs is empty.
func BuildUserProfile(prefs []ThemePreference) *UserProfile {
	if len(prefs) == 0 {
		return nil
	}

	byID := make([]ThemePreference, len(prefs))
	copy(byID, prefs)
	sort.Slice(byID, func(i, j int) bool { return byID[i].ThemeID < byID[j].ThemeID })

	profile := &UserProfile{}
	var favorite, leastFavorite, mostInteracted int
	for i, p := range byID {
		profile.TotalInteractions += p.Interactions

		if p.Score > byID[favorite].Score {
			favorite = i
		}
		if p.Score < byID[leastFavorite].Score {
			leastFavorite = i
		}
		if p.Interactions > byID[mostInteracted].Interactions {
			mostInteracted = i
		}
	}

	profile.FavoriteTheme = &byID[favorite]
	profile.LeastFavoriteTheme = &byID[leastFavorite]
	profile.MostInteractedTheme = &byID[mostInteracted]

	profile.Themes = make([]ThemePreference, len(byID))
	copy(profile.Themes, byID)
	sort.SliceStable(profile.Themes, func(i, j int) bool {
		return profile.Themes[i].Score > profile.Themes[j].Score
	})

	return profile
}
