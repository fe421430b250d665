package command

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/metrics"
)

// RecommendJokeConfig holds configuration for the RecommendJoke command.
type RecommendJokeConfig struct {
	// ExplorationRate is the probability of ignoring preferences entirely
	// and picking any unseen joke.
	ExplorationRate float64

	// JitterAmplitude bounds the random offset added to each theme weight.
	JitterAmplitude float64

	// MinThemeWeight is the floor applied to jittered weights.
	MinThemeWeight float64

	Probability domain.ProbabilityConfig

	// LearningRate and ThemeCount are only reported by Stats.
	LearningRate float64
	ThemeCount   int
}

type RecommendJokeRequest struct {
	UserID int64
}

// RecommendJokeStats describes the engine's state for monitoring.
type RecommendJokeStats struct {
	TrackedUsers    int     `json:"tracked_users"`
	ExplorationRate float64 `json:"exploration_rate"`
	LearningRate    float64 `json:"learning_rate"`
	ThemeCount      int     `json:"theme_count"`
}

// RecommendJoke picks a joke for a user, weighting themes by the user's
// scores while steering away from jokes they have already rated.
type RecommendJoke struct {
	Store       datasources.EngineStore
	ViewHistory *domain.ViewHistory
	Config      RecommendJokeConfig

	// Uniform returns values in [0, 1). Defaults to math/rand/v2.
	Uniform func() float64
}

// NewRecommendJoke creates a properly initialized RecommendJoke command.
func NewRecommendJoke(
	store datasources.EngineStore,
	viewHistory *domain.ViewHistory,
	cfg RecommendJokeConfig,
) *RecommendJoke {
	return &RecommendJoke{
		Store:       store,
		ViewHistory: viewHistory,
		Config:      cfg,
		Uniform:     rand.Float64,
	}
}

// Execute returns nil only when no approved joke is available; storage
// failures fall back to an unfiltered random joke.
func (c *RecommendJoke) Execute(ctx context.Context, req RecommendJokeRequest) *domain.JokeView {
	logger := domain.LoggerFromContext(ctx).With("user_id", req.UserID)
	ctx = domain.ContextWithLogger(ctx, logger)

	joke, path, err := c.recommend(ctx, req.UserID)
	if err != nil {
		logger.WarnContext(ctx, "recommendation failed, using unfiltered random joke",
			"stage", path, "error", err)
		joke, path = c.lastResort(ctx)
	}

	if joke == nil {
		logger.InfoContext(ctx, "no joke available", "path", path)
		metrics.RecommendationsServed.WithLabelValues(metrics.PathEmptyCatalog).Inc()
		return nil
	}

	logger.DebugContext(ctx, "recommended joke", "joke_id", joke.ID, "path", path)
	metrics.RecommendationsServed.WithLabelValues(path).Inc()
	return joke
}

// Stats reports the engine's parameters and how many users it tracks.
func (c *RecommendJoke) Stats() RecommendJokeStats {
	users := c.ViewHistory.Users()
	metrics.ViewHistoryUsers.Set(float64(users))

	return RecommendJokeStats{
		TrackedUsers:    users,
		ExplorationRate: c.Config.ExplorationRate,
		LearningRate:    c.Config.LearningRate,
		ThemeCount:      c.Config.ThemeCount,
	}
}

func (c *RecommendJoke) recommend(ctx context.Context, userID int64) (*domain.JokeView, string, error) {
	logger := domain.LoggerFromContext(ctx)

	prefs, err := c.Store.GetUserPreferences(ctx, userID)
	if err != nil {
		return nil, "preferences", err
	}
	if len(prefs) == 0 {
		joke, err := c.Store.GetApprovedRandomJoke(ctx, nil, nil)
		return joke, metrics.PathNoPreferences, err
	}

	rated, err := c.Store.GetUserInteractionHistory(ctx, userID)
	if err != nil {
		return nil, "view_history", err
	}
	c.ViewHistory.Merge(userID, rated)
	exclude := c.ViewHistory.Snapshot(userID)

	if c.Uniform() < c.Config.ExplorationRate {
		joke, err := c.Store.GetApprovedRandomJoke(ctx, exclude, nil)
		return joke, metrics.PathExploration, err
	}

	weights := domain.ThemeProbabilities(sortedPreferences(prefs), c.Config.Probability)
	if weights == nil {
		logger.InfoContext(ctx, "no theme has a positive weight")
		joke, err := c.Store.GetApprovedRandomJoke(ctx, exclude, nil)
		return joke, metrics.PathNoThemes, err
	}

	jittered := domain.JitterWeights(weights, c.Config.JitterAmplitude, c.Config.MinThemeWeight, c.Uniform)
	themeID, _ := domain.ChooseWeighted(jittered, c.Uniform())

	joke, err := c.Store.GetApprovedRandomJoke(ctx, exclude, &themeID)
	if err != nil {
		return nil, metrics.PathThemed, err
	}
	if joke == nil {
		logger.InfoContext(ctx, "no unseen joke in chosen theme", "theme_id", themeID)
		joke, err := c.Store.GetApprovedRandomJoke(ctx, exclude, nil)
		return joke, metrics.PathThemeFallback, err
	}

	pref := prefs[themeID]
	joke.Theme = &domain.ThemeRef{ID: themeID, Name: pref.Name, Glyph: pref.Glyph}
	return joke, metrics.PathThemed, nil
}

func (c *RecommendJoke) lastResort(ctx context.Context) (*domain.JokeView, string) {
	joke, err := c.Store.GetApprovedRandomJoke(ctx, nil, nil)
	if err != nil {
		domain.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch any joke", "error", err)
		return nil, metrics.PathLastResort
	}
	return joke, metrics.PathLastResort
}

func sortedPreferences(prefs map[int64]domain.ThemePreference) []domain.ThemePreference {
	result := make([]domain.ThemePreference, 0, len(prefs))
	for _, p := range prefs {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ThemeID < result[j].ThemeID
	})
	return result
}
