package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/domain"
)

const maxSubmitBodyBytes = 16 << 10

type JokeSubmit struct {
	Command command.Command[command.SubmitJokeRequest, domain.SubmittedJoke]
}

type JokeSubmitRequest struct {
	Text string `json:"text"`
}

func (c JokeSubmit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var body JokeSubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)).Decode(&body); err != nil {
		logger.WarnContext(ctx, "unable to decode joke submission", "error", err)
		writeMessage(ctx, w, http.StatusBadRequest, "Request body must be JSON with a text field.")
		return
	}

	res, err := c.Command.Execute(ctx, command.SubmitJokeRequest{
		AuthorID: domain.UserIDFromContext(ctx),
		Text:     body.Text,
	})
	switch {
	case errors.Is(err, command.ErrJokeTooShort):
		writeMessage(ctx, w, http.StatusBadRequest, "Joke is too short.")
		return
	case errors.Is(err, command.ErrJokeTooLong):
		writeMessage(ctx, w, http.StatusBadRequest, "Joke is too long.")
		return
	case errors.Is(err, command.ErrJokeForbiddenWord):
		writeMessage(ctx, w, http.StatusBadRequest, "Joke contains forbidden words.")
		return
	case err != nil:
		logger.ErrorContext(ctx, "unable to submit joke", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, res)
}
