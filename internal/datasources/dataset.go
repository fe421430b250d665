package datasources

import (
	"context"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// EngineStore is the storage contract of the preference and selection engines.
type EngineStore interface {
	ApprovedRandomJokeGetter
	UserPreferencesGetter
	JokeThemesGetter
	InteractionHistoryGetter
	UserPreferenceUpserter
	InteractionRecorder
}

// DatasetRepository combines every storage operation the service uses.
type DatasetRepository interface {
	EngineStore
	UserRegistrar
	FavoriteToggler
	FavoritesLister
	JokeSubmitter
	UserJokesLister
	PendingJokesCounter
	PendingJokesLister
	JokeStatusSetter
	ThemeStatisticsLister
	LatestJokesLister
}

// ApprovedRandomJokeGetter picks a random approved joke.
// Jokes in excludeIDs are skipped; a non-nil themeID restricts the pick to that theme.
// Returns nil, nil when nothing matches.
type ApprovedRandomJokeGetter interface {
	GetApprovedRandomJoke(ctx context.Context, excludeIDs []int64, themeID *int64) (*domain.JokeView, error)
}

// UserPreferencesGetter returns the user's preference rows, keyed by theme ID.
type UserPreferencesGetter interface {
	GetUserPreferences(ctx context.Context, userID int64) (map[int64]domain.ThemePreference, error)
}

// JokeThemesGetter returns the theme links of a joke.
type JokeThemesGetter interface {
	GetJokeThemes(ctx context.Context, jokeID int64) ([]domain.JokeThemeLink, error)
}

// InteractionHistoryGetter returns the IDs of every joke the user rated, oldest first.
type InteractionHistoryGetter interface {
	GetUserInteractionHistory(ctx context.Context, userID int64) ([]int64, error)
}

// UserPreferenceUpserter stores a new score for a (user, theme) pair, creating the row if needed.
// When incrementInteractions is set the interaction counter is incremented atomically.
type UserPreferenceUpserter interface {
	UpsertUserPreference(ctx context.Context, userID, themeID int64, score float64, incrementInteractions bool) error
}

// InteractionRecorder stores the latest like/dislike verdict of a user for a joke.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, userID, jokeID int64, liked bool) error
}

// UserRegistrar fetches a user by external ID, creating it with neutral
// preferences for every theme on first sight.
type UserRegistrar interface {
	GetOrCreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

// FavoriteToggler flips the favorite mark of a joke, returning whether it is now a favorite.
type FavoriteToggler interface {
	ToggleFavorite(ctx context.Context, userID, jokeID int64) (bool, error)
}

// FavoritesLister lists the user's approved favorite jokes, newest mark first.
type FavoritesLister interface {
	ListUserFavorites(ctx context.Context, userID int64) ([]domain.JokeView, error)
}

// JokeSubmitter stores a pending joke along with its theme links.
type JokeSubmitter interface {
	SubmitJoke(ctx context.Context, text string, authorID int64, themeIDs []int64) (int64, error)
}

// UserJokesLister lists jokes authored by a user, optionally filtered by status.
type UserJokesLister interface {
	ListUserJokes(ctx context.Context, authorID int64, status *domain.JokeStatus) ([]domain.UserJoke, error)
}

type PendingJokesCounter interface {
	CountPendingJokes(ctx context.Context) (int64, error)
}

type PendingJokesLister interface {
	ListPendingJokes(ctx context.Context, limit int) ([]domain.Joke, error)
}

// JokeStatusSetter changes a joke's moderation status. Returns false if the joke does not exist.
type JokeStatusSetter interface {
	SetJokeStatus(ctx context.Context, jokeID int64, status domain.JokeStatus) (bool, error)
}

type ThemeStatisticsLister interface {
	ListThemeStatistics(ctx context.Context) ([]domain.ThemeStatistics, error)
}

// LatestJokesLister lists the most recently added approved jokes.
type LatestJokesLister interface {
	ListLatestApprovedJokes(ctx context.Context, limit int) ([]domain.Joke, error)
}
