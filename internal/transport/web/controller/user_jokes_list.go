package controller

import (
	"net/http"
	"slices"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type UserJokesList struct {
	Lister datasources.UserJokesLister
}

type UserJokesListResponse struct {
	Data []domain.UserJoke `json:"data"`
}

func (c UserJokesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var status *domain.JokeStatus
	if q := r.URL.Query(); q.Has("status") {
		s := domain.JokeStatus(q.Get("status"))
		if !slices.Contains(domain.ValidJokeStatuses, s) {
			logger.ErrorContext(ctx, "invalid joke status filter", "status", s)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		status = &s
	}

	jokes, err := c.Lister.ListUserJokes(ctx, domain.UserIDFromContext(ctx), status)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list user jokes", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if jokes == nil {
		jokes = []domain.UserJoke{}
	}

	writeJSON(ctx, w, http.StatusOK, UserJokesListResponse{Data: jokes})
}
