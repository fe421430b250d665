package domain

// Theme is one of the configured topical categories.
type Theme struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Description string `json:"description"`
}

// ThemeRef is the presentation metadata attached to a recommended joke.
type ThemeRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

// ThemeStatistics counts linked jokes per theme.
type ThemeStatistics struct {
	ThemeID  int64  `json:"theme_id"`
	Name     string `json:"name"`
	Glyph    string `json:"glyph"`
	Total    int64  `json:"total"`
	Approved int64  `json:"approved"`
}
