package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jbeshir/joke-feed/internal/datasources/mocks"
	"github.com/jbeshir/joke-feed/internal/domain"
)

func TestRecordFeedback_Execute(t *testing.T) {
	cases := []struct {
		name        string
		req         RecordFeedbackRequest
		recordErr   error
		upsertErr   error
		skipStorage bool
		expected    bool
	}{
		{
			name:     "liked",
			req:      RecordFeedbackRequest{UserID: 1, JokeID: 2, Liked: true},
			expected: true,
		},
		{
			name:     "disliked",
			req:      RecordFeedbackRequest{UserID: 1, JokeID: 2, Liked: false},
			expected: true,
		},
		{
			name:      "interaction_error_still_updates_preferences",
			req:       RecordFeedbackRequest{UserID: 1, JokeID: 2, Liked: true},
			recordErr: errors.New("database error"),
			expected:  false,
		},
		{
			name:      "preference_error",
			req:       RecordFeedbackRequest{UserID: 1, JokeID: 2, Liked: true},
			upsertErr: errors.New("database error"),
			expected:  false,
		},
		{
			name:        "invalid_user",
			req:         RecordFeedbackRequest{UserID: 0, JokeID: 2, Liked: true},
			skipStorage: true,
			expected:    false,
		},
		{
			name:        "invalid_joke",
			req:         RecordFeedbackRequest{UserID: 1, JokeID: -5, Liked: true},
			skipStorage: true,
			expected:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := mocks.NewMockEngineStore(t)

			if !tc.skipStorage {
				store.EXPECT().RecordInteraction(mock.Anything, tc.req.UserID, tc.req.JokeID, tc.req.Liked).
					Return(tc.recordErr).Once()
				store.EXPECT().GetJokeThemes(mock.Anything, tc.req.JokeID).
					Return([]domain.JokeThemeLink{{ThemeID: 1, Weight: 1}}, nil).Once()
				store.EXPECT().GetUserPreferences(mock.Anything, tc.req.UserID).
					Return(map[int64]domain.ThemePreference{}, nil).Once()
				store.EXPECT().UpsertUserPreference(mock.Anything, tc.req.UserID, int64(1), mock.Anything, true).
					Return(tc.upsertErr).Once()
			}

			cmd := NewRecordFeedback(store, newMockUpdatePreference(store))
			assert.Equal(t, tc.expected, cmd.Execute(context.Background(), tc.req))
		})
	}
}

func TestRecordFeedback_RerateKeepsOneInteraction(t *testing.T) {
	store := newFakeStore(1, 2, 1, 2)
	cmd := NewRecordFeedback(store, NewUpdatePreference(store, store, store, testUpdatePreferenceConfig()))
	ctx := context.Background()

	assert.True(t, cmd.Execute(ctx, RecordFeedbackRequest{UserID: 5, JokeID: 3, Liked: true}))
	assert.True(t, cmd.Execute(ctx, RecordFeedbackRequest{UserID: 5, JokeID: 1, Liked: true}))
	assert.True(t, cmd.Execute(ctx, RecordFeedbackRequest{UserID: 5, JokeID: 3, Liked: false}))

	history, err := store.GetUserInteractionHistory(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, history)
}
