package controller

import (
	"context"
	"net/http"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

// learningThreshold is the number of ratings below which the response says
// recommendations are still being tuned.
const learningThreshold = 5

type JokeRecommender interface {
	Execute(ctx context.Context, req command.RecommendJokeRequest) *domain.JokeView
}

type JokeRecommended struct {
	Command      JokeRecommender
	RatedHistory datasources.InteractionHistoryGetter
}

type JokeRecommendedResponse struct {
	Data     *domain.JokeView        `json:"data"`
	Metadata JokeRecommendedMetadata `json:"metadata"`
}

type JokeRecommendedMetadata struct {
	RatedCount int  `json:"rated_count"`
	Learning   bool `json:"learning"`
}

func (c JokeRecommended) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)
	userID := domain.UserIDFromContext(ctx)

	joke := c.Command.Execute(ctx, command.RecommendJokeRequest{UserID: userID})
	if joke == nil {
		writeMessage(ctx, w, http.StatusNotFound, "No jokes available right now.")
		return
	}

	var metadata JokeRecommendedMetadata
	rated, err := c.RatedHistory.GetUserInteractionHistory(ctx, userID)
	if err != nil {
		// The hint is cosmetic; serve the joke without it.
		logger.WarnContext(ctx, "unable to count rated jokes", "error", err)
	} else {
		metadata.RatedCount = len(rated)
		metadata.Learning = len(rated) < learningThreshold
	}

	writeJSON(ctx, w, http.StatusOK, JokeRecommendedResponse{
		Data:     joke,
		Metadata: metadata,
	})
}
