package command

import (
	"context"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/metrics"
)

// UpdatePreferenceConfig holds configuration for the UpdatePreference command.
type UpdatePreferenceConfig struct {
	// LearningRate is the score step for a joke linked with weight 1.
	LearningRate float64
}

type UpdatePreferenceRequest struct {
	UserID int64
	JokeID int64
	Liked  bool
}

// UpdatePreference moves the user's score for every theme of a joke toward
// or away from it. Updates for one user are applied one at a time.
type UpdatePreference struct {
	ThemesGetter       datasources.JokeThemesGetter
	PreferencesGetter  datasources.UserPreferencesGetter
	PreferenceUpserter datasources.UserPreferenceUpserter
	Config             UpdatePreferenceConfig

	locks *userLocks
}

// NewUpdatePreference creates a properly initialized UpdatePreference command.
func NewUpdatePreference(
	themesGetter datasources.JokeThemesGetter,
	preferencesGetter datasources.UserPreferencesGetter,
	preferenceUpserter datasources.UserPreferenceUpserter,
	cfg UpdatePreferenceConfig,
) *UpdatePreference {
	return &UpdatePreference{
		ThemesGetter:       themesGetter,
		PreferencesGetter:  preferencesGetter,
		PreferenceUpserter: preferenceUpserter,
		Config:             cfg,
		locks:              newUserLocks(),
	}
}

// Execute reports whether every theme of the joke was updated.
// A joke without themes is never scored and reports false.
func (c *UpdatePreference) Execute(ctx context.Context, req UpdatePreferenceRequest) bool {
	logger := domain.LoggerFromContext(ctx).With("user_id", req.UserID, "joke_id", req.JokeID)

	links, err := c.ThemesGetter.GetJokeThemes(ctx, req.JokeID)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch joke themes, skipping preference update", "error", err)
		metrics.PreferenceUpdates.WithLabelValues("storage_error").Inc()
		return false
	}
	if len(links) == 0 {
		logger.InfoContext(ctx, "joke has no themes, skipping preference update")
		metrics.PreferenceUpdates.WithLabelValues("unclassified").Inc()
		return false
	}

	unlock := c.locks.lock(req.UserID)
	defer unlock()

	prefs, err := c.PreferencesGetter.GetUserPreferences(ctx, req.UserID)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch user preferences, skipping preference update", "error", err)
		metrics.PreferenceUpdates.WithLabelValues("storage_error").Inc()
		return false
	}

	ok := true
	for _, link := range links {
		current := prefs[link.ThemeID].Score
		score := domain.ApplyFeedback(current, link.Weight, req.Liked, c.Config.LearningRate)

		err := c.PreferenceUpserter.UpsertUserPreference(ctx, req.UserID, link.ThemeID, score, true)
		if err != nil {
			logger.WarnContext(ctx, "failed to store theme preference",
				"theme_id", link.ThemeID, "error", err)
			metrics.PreferenceUpdates.WithLabelValues("storage_error").Inc()
			ok = false
			continue
		}

		logger.DebugContext(ctx, "updated theme preference",
			"theme_id", link.ThemeID, "previous_score", current, "score", score)
		metrics.PreferenceUpdates.WithLabelValues("updated").Inc()
	}

	return ok
}
