package controller

import (
	"net/http"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type EngineStatsProvider interface {
	Stats() command.RecommendJokeStats
}

type EngineStatsGet struct {
	Stats          EngineStatsProvider
	PendingCounter datasources.PendingJokesCounter
}

type EngineStatsResponse struct {
	command.RecommendJokeStats
	PendingJokes int64 `json:"pending_jokes"`
}

func (c EngineStatsGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	pending, err := c.PendingCounter.CountPendingJokes(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to count pending jokes", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, EngineStatsResponse{
		RecommendJokeStats: c.Stats.Stats(),
		PendingJokes:       pending,
	})
}
