package controller

import (
	"net/http"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type UserProfileGet struct {
	Command command.Command[command.GetUserProfileRequest, *domain.UserProfile]
}

type UserProfileResponse struct {
	Data     *domain.UserProfile `json:"data"`
	Metadata UserProfileMetadata `json:"metadata"`
}

type UserProfileMetadata struct {
	Learning bool `json:"learning"`
}

func (c UserProfileGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	profile, err := c.Command.Execute(ctx, command.GetUserProfileRequest{UserID: domain.UserIDFromContext(ctx)})
	if err != nil {
		logger.ErrorContext(ctx, "unable to build user profile", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, UserProfileResponse{
		Data: profile,
		Metadata: UserProfileMetadata{
			Learning: profile == nil || profile.TotalInteractions < learningThreshold,
		},
	})
}
