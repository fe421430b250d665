package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// Bool string constants for route parameters.
const (
	boolTrue  = "true"
	boolFalse = "false"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

func writeMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, MessageResponse{Message: message})
}

// jokeIDFromVars parses the joke_id route variable, which must be a positive integer.
func jokeIDFromVars(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["joke_id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
