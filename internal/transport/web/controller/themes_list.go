package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type ThemesList struct {
	Lister         datasources.ThemeStatisticsLister
	PendingCounter datasources.PendingJokesCounter
	CacheMaxAge    time.Duration
}

type ThemesListResponse struct {
	Data     []domain.ThemeStatistics `json:"data"`
	Metadata ThemesListMetadata       `json:"metadata"`
}

type ThemesListMetadata struct {
	PendingJokes int64 `json:"pending_jokes"`
}

func (c ThemesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	stats, err := c.Lister.ListThemeStatistics(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list theme statistics", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	pending, err := c.PendingCounter.CountPendingJokes(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to count pending jokes", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if stats == nil {
		stats = []domain.ThemeStatistics{}
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	writeJSON(ctx, w, http.StatusOK, ThemesListResponse{
		Data:     stats,
		Metadata: ThemesListMetadata{PendingJokes: pending},
	})
}
