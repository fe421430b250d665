package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type ToggleFavoriteRequest struct {
	UserID int64
	JokeID int64
}

type ToggleFavoriteResult struct {
	Favorited bool `json:"favorited"`
}

type ToggleFavorite struct {
	Toggler datasources.FavoriteToggler
}

// NewToggleFavorite creates a properly initialized ToggleFavorite command.
func NewToggleFavorite(toggler datasources.FavoriteToggler) *ToggleFavorite {
	return &ToggleFavorite{Toggler: toggler}
}

func (c *ToggleFavorite) Execute(ctx context.Context, req ToggleFavoriteRequest) (ToggleFavoriteResult, error) {
	favorited, err := c.Toggler.ToggleFavorite(ctx, req.UserID, req.JokeID)
	if err != nil {
		return ToggleFavoriteResult{}, fmt.Errorf("toggling favorite: %w", err)
	}

	domain.LoggerFromContext(ctx).DebugContext(ctx, "toggled favorite",
		"user_id", req.UserID, "joke_id", req.JokeID, "favorited", favorited)

	return ToggleFavoriteResult{Favorited: favorited}, nil
}
