// Package breaker guards the engine storage contract with a circuit breaker.
// While the circuit is open calls fail fast, which the engines treat the same
// as any other storage failure.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/metrics"
)

var _ datasources.EngineStore = (*EngineStore)(nil)

type Config struct {
	Name string

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period after which closed-state counts reset.
	Interval time.Duration

	// Timeout is how long the circuit stays open before going half-open.
	Timeout time.Duration

	// MinRequests and FailureRatio control when the circuit trips.
	MinRequests  uint32
	FailureRatio float64
}

type EngineStore struct {
	store datasources.EngineStore
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

func New(store datasources.EngineStore, cfg Config) *EngineStore {
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// A caller giving up is not evidence the store is unhealthy.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &EngineStore{store: store, cb: cb, name: cfg.Name}
}

// State reports the current circuit state.
func (s *EngineStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *EngineStore) GetApprovedRandomJoke(
	ctx context.Context, excludeIDs []int64, themeID *int64,
) (*domain.JokeView, error) {
	return execute(ctx, s, func() (*domain.JokeView, error) {
		return s.store.GetApprovedRandomJoke(ctx, excludeIDs, themeID)
	})
}

func (s *EngineStore) GetUserPreferences(
	ctx context.Context, userID int64,
) (map[int64]domain.ThemePreference, error) {
	return execute(ctx, s, func() (map[int64]domain.ThemePreference, error) {
		return s.store.GetUserPreferences(ctx, userID)
	})
}

func (s *EngineStore) GetJokeThemes(ctx context.Context, jokeID int64) ([]domain.JokeThemeLink, error) {
	return execute(ctx, s, func() ([]domain.JokeThemeLink, error) {
		return s.store.GetJokeThemes(ctx, jokeID)
	})
}

func (s *EngineStore) GetUserInteractionHistory(ctx context.Context, userID int64) ([]int64, error) {
	return execute(ctx, s, func() ([]int64, error) {
		return s.store.GetUserInteractionHistory(ctx, userID)
	})
}

func (s *EngineStore) UpsertUserPreference(
	ctx context.Context, userID, themeID int64, score float64, incrementInteractions bool,
) error {
	_, err := execute(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.store.UpsertUserPreference(ctx, userID, themeID, score, incrementInteractions)
	})
	return err
}

func (s *EngineStore) RecordInteraction(ctx context.Context, userID, jokeID int64, liked bool) error {
	_, err := execute(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.store.RecordInteraction(ctx, userID, jokeID, liked)
	})
	return err
}

func execute[T any](ctx context.Context, s *EngineStore, fn func() (T, error)) (T, error) {
	result, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			domain.LoggerFromContext(ctx).WarnContext(ctx, "storage call rejected by circuit breaker",
				"name", s.name, "error", err)
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		}
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		var zero T
		return zero, errors.New("circuit breaker: unexpected result type")
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
