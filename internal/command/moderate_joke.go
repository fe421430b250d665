package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

var ErrJokeNotFound = errors.New("joke not found")

type ModerateJokeRequest struct {
	JokeID int64
	Status domain.JokeStatus
}

// ModerateJoke moves a joke out of (or back into) the moderation queue.
type ModerateJoke struct {
	StatusSetter datasources.JokeStatusSetter
}

// NewModerateJoke creates a properly initialized ModerateJoke command.
func NewModerateJoke(statusSetter datasources.JokeStatusSetter) *ModerateJoke {
	return &ModerateJoke{StatusSetter: statusSetter}
}

func (c *ModerateJoke) Execute(ctx context.Context, req ModerateJokeRequest) (Empty, error) {
	if !slices.Contains(domain.ValidJokeStatuses, req.Status) {
		return Empty{}, fmt.Errorf("invalid joke status [%s]", req.Status)
	}

	found, err := c.StatusSetter.SetJokeStatus(ctx, req.JokeID, req.Status)
	if err != nil {
		return Empty{}, fmt.Errorf("setting joke status: %w", err)
	}
	if !found {
		return Empty{}, ErrJokeNotFound
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "moderated joke",
		"joke_id", req.JokeID, "status", req.Status)

	return Empty{}, nil
}

