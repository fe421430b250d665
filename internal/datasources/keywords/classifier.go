// Package keywords assigns jokes to themes by case-insensitive substring matches.
package keywords

import (
	"sort"
	"strings"

	"github.com/jbeshir/joke-feed/internal/datasources"
)

var _ datasources.Classifier = (*Classifier)(nil)

// Rule maps a theme to the words that signal it.
type Rule struct {
	ThemeID int64
	Words   []string
}

type Classifier struct {
	rules          []Rule
	defaultThemeID int64
}

// New builds a classifier. Texts matching no rule are assigned defaultThemeID.
func New(rules []Rule, defaultThemeID int64) *Classifier {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		words := make([]string, 0, len(r.Words))
		for _, w := range r.Words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			continue
		}
		normalized = append(normalized, Rule{ThemeID: r.ThemeID, Words: words})
	}

	return &Classifier{
		rules:          normalized,
		defaultThemeID: defaultThemeID,
	}
}

// Classify returns matched theme IDs in ascending order, never empty.
func (c *Classifier) Classify(text string) []int64 {
	lower := strings.ToLower(text)

	seen := make(map[int64]struct{})
	var themes []int64
	for _, r := range c.rules {
		if _, ok := seen[r.ThemeID]; ok {
			continue
		}
		for _, w := range r.Words {
			if strings.Contains(lower, w) {
				seen[r.ThemeID] = struct{}{}
				themes = append(themes, r.ThemeID)
				break
			}
		}
	}

	if len(themes) == 0 {
		return []int64{c.defaultThemeID}
	}

	sort.Slice(themes, func(i, j int) bool { return themes[i] < themes[j] })
	return themes
}
