package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type JokeFavoriteToggle struct {
	Command command.Command[command.ToggleFavoriteRequest, command.ToggleFavoriteResult]
}

func (c JokeFavoriteToggle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := domain.LoggerFromContext(r.Context())

	jokeID, ok := jokeIDFromVars(r)
	if !ok {
		logger.ErrorContext(r.Context(), "invalid joke ID", "joke_id", mux.Vars(r)["joke_id"])
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	ctx := domain.ContextWithLogger(r.Context(), logger.With("joke_id", jokeID))

	res, err := c.Command.Execute(ctx, command.ToggleFavoriteRequest{
		UserID: domain.UserIDFromContext(ctx),
		JokeID: jokeID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to toggle favorite", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, res)
}
