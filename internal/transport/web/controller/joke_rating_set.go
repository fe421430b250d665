package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type FeedbackRecorder interface {
	Execute(ctx context.Context, req command.RecordFeedbackRequest) bool
}

type JokeRatingSet struct {
	Command FeedbackRecorder
}

type JokeRatingSetResponse struct {
	Updated bool `json:"updated"`
}

func (c JokeRatingSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logger := domain.LoggerFromContext(r.Context())

	jokeID, ok := jokeIDFromVars(r)
	if !ok {
		logger.ErrorContext(r.Context(), "invalid joke ID", "joke_id", vars["joke_id"])
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	ctx := domain.ContextWithLogger(r.Context(), logger.With("joke_id", jokeID))

	var liked bool
	switch vars["liked"] {
	case boolTrue:
		liked = true
	case boolFalse:
		liked = false
	default:
		logger.ErrorContext(ctx, "invalid liked value", "value", vars["liked"])
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated := c.Command.Execute(ctx, command.RecordFeedbackRequest{
		UserID: domain.UserIDFromContext(ctx),
		JokeID: jokeID,
		Liked:  liked,
	})

	writeJSON(ctx, w, http.StatusOK, JokeRatingSetResponse{Updated: updated})
}
