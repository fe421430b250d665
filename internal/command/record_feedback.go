package command

import (
	"context"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/metrics"
)

type RecordFeedbackRequest struct {
	UserID int64
	JokeID int64
	Liked  bool
}

// RecordFeedback stores a like or dislike and feeds it to the preference engine.
type RecordFeedback struct {
	InteractionRecorder datasources.InteractionRecorder
	PreferenceUpdater   *UpdatePreference
}

// NewRecordFeedback creates a properly initialized RecordFeedback command.
func NewRecordFeedback(
	interactionRecorder datasources.InteractionRecorder,
	preferenceUpdater *UpdatePreference,
) *RecordFeedback {
	return &RecordFeedback{
		InteractionRecorder: interactionRecorder,
		PreferenceUpdater:   preferenceUpdater,
	}
}

// Execute reports whether both the interaction and the preference update were stored.
// The preference update is attempted even when the interaction could not be recorded.
func (c *RecordFeedback) Execute(ctx context.Context, req RecordFeedbackRequest) bool {
	logger := domain.LoggerFromContext(ctx)

	verdict := "disliked"
	if req.Liked {
		verdict = "liked"
	}

	if req.UserID <= 0 || req.JokeID <= 0 {
		logger.WarnContext(ctx, "rejecting feedback with invalid identifiers",
			"user_id", req.UserID, "joke_id", req.JokeID)
		metrics.FeedbackRecorded.WithLabelValues(verdict, "invalid").Inc()
		return false
	}

	recorded := true
	if err := c.InteractionRecorder.RecordInteraction(ctx, req.UserID, req.JokeID, req.Liked); err != nil {
		logger.WarnContext(ctx, "failed to record interaction",
			"user_id", req.UserID, "joke_id", req.JokeID, "error", err)
		recorded = false
	}

	updated := c.PreferenceUpdater.Execute(ctx, UpdatePreferenceRequest(req))

	outcome := "ok"
	if !recorded || !updated {
		outcome = "failed"
	}
	metrics.FeedbackRecorded.WithLabelValues(verdict, outcome).Inc()

	return recorded && updated
}
