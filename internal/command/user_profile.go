package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type GetUserProfileRequest struct {
	UserID int64
}

// GetUserProfile summarises a user's theme scores.
type GetUserProfile struct {
	PreferencesGetter datasources.UserPreferencesGetter
}

// NewGetUserProfile creates a properly initialized GetUserProfile command.
func NewGetUserProfile(preferencesGetter datasources.UserPreferencesGetter) *GetUserProfile {
	return &GetUserProfile{PreferencesGetter: preferencesGetter}
}

// Execute returns nil, nil for a user with no preferences.
func (c *GetUserProfile) Execute(ctx context.Context, req GetUserProfileRequest) (*domain.UserProfile, error) {
	prefs, err := c.PreferencesGetter.GetUserPreferences(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("getting user preferences: %w", err)
	}

	return domain.BuildUserProfile(sortedPreferences(prefs)), nil
}
