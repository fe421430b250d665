package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources/mocks"
	"github.com/jbeshir/joke-feed/internal/domain"
)

func testContextWithUserID(userID int64) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		ctx = domain.ContextWithUserID(ctx, userID)
		return r.WithContext(ctx)
	}
}

type stubRecommender struct {
	joke *domain.JokeView
	got  command.RecommendJokeRequest
}

func (s *stubRecommender) Execute(_ context.Context, req command.RecommendJokeRequest) *domain.JokeView {
	s.got = req
	return s.joke
}

type stubFeedbackRecorder struct {
	updated bool
	got     command.RecordFeedbackRequest
	calls   int
}

func (s *stubFeedbackRecorder) Execute(_ context.Context, req command.RecordFeedbackRequest) bool {
	s.got = req
	s.calls++
	return s.updated
}

func TestJokeRecommended_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		joke         *domain.JokeView
		rated        []int64
		ratedErr     error
		wantStatus   int
		wantLearning bool
		wantRated    int
		skipHistory  bool
	}{
		{
			name:         "new_user_is_learning",
			joke:         &domain.JokeView{ID: 1, Text: "A joke"},
			rated:        []int64{},
			wantStatus:   http.StatusOK,
			wantLearning: true,
		},
		{
			name:       "experienced_user",
			joke:       &domain.JokeView{ID: 1, Text: "A joke", Theme: &domain.ThemeRef{ID: 2, Name: "School"}},
			rated:      []int64{1, 2, 3, 4, 5, 6},
			wantStatus: http.StatusOK,
			wantRated:  6,
		},
		{
			name:       "history_error_still_serves_joke",
			joke:       &domain.JokeView{ID: 1, Text: "A joke"},
			ratedErr:   errors.New("database error"),
			wantStatus: http.StatusOK,
		},
		{
			name:        "no_joke",
			wantStatus:  http.StatusNotFound,
			skipHistory: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := mocks.NewMockEngineStore(t)
			if !tc.skipHistory {
				store.EXPECT().GetUserInteractionHistory(mock.Anything, int64(7)).Return(tc.rated, tc.ratedErr).Once()
			}
			recommender := &stubRecommender{joke: tc.joke}

			req := httptest.NewRequest(http.MethodGet, "/v1/jokes/recommended", nil)
			req = testContextWithUserID(7)(req)
			rec := httptest.NewRecorder()

			JokeRecommended{Command: recommender, RatedHistory: store}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, int64(7), recommender.got.UserID)
			if tc.wantStatus != http.StatusOK {
				return
			}

			var resp JokeRecommendedResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.joke, resp.Data)
			assert.Equal(t, tc.wantLearning, resp.Metadata.Learning)
			assert.Equal(t, tc.wantRated, resp.Metadata.RatedCount)
		})
	}
}

func TestJokeRatingSet_ServeHTTP(t *testing.T) {
	cases := []struct {
		name        string
		jokeID      string
		liked       string
		updated     bool
		wantStatus  int
		wantLiked   bool
		wantUpdated bool
		skipCommand bool
	}{
		{name: "liked", jokeID: "12", liked: "true", updated: true, wantStatus: http.StatusOK, wantLiked: true, wantUpdated: true},
		{name: "disliked", jokeID: "12", liked: "false", updated: true, wantStatus: http.StatusOK, wantUpdated: true},
		{name: "not_updated", jokeID: "12", liked: "true", updated: false, wantStatus: http.StatusOK, wantLiked: true},
		{name: "invalid_liked", jokeID: "12", liked: "maybe", wantStatus: http.StatusBadRequest, skipCommand: true},
		{name: "invalid_joke_id", jokeID: "abc", liked: "true", wantStatus: http.StatusBadRequest, skipCommand: true},
		{name: "negative_joke_id", jokeID: "-3", liked: "true", wantStatus: http.StatusBadRequest, skipCommand: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &stubFeedbackRecorder{updated: tc.updated}

			req := httptest.NewRequest(http.MethodPost, "/v1/jokes/"+tc.jokeID+"/rating/"+tc.liked, nil)
			req = testContextWithUserID(7)(req)
			req = mux.SetURLVars(req, map[string]string{"joke_id": tc.jokeID, "liked": tc.liked})
			rec := httptest.NewRecorder()

			JokeRatingSet{Command: recorder}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.skipCommand {
				assert.Zero(t, recorder.calls)
				return
			}

			assert.Equal(t, command.RecordFeedbackRequest{UserID: 7, JokeID: 12, Liked: tc.wantLiked}, recorder.got)
			var resp JokeRatingSetResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.wantUpdated, resp.Updated)
		})
	}
}

func TestJokeFavoriteToggle_ServeHTTP(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().ToggleFavorite(mock.Anything, int64(7), int64(3)).Return(true, nil).Once()
	catalog.EXPECT().ToggleFavorite(mock.Anything, int64(7), int64(4)).Return(false, errors.New("database error")).Once()

	controller := JokeFavoriteToggle{Command: command.NewToggleFavorite(catalog)}

	serve := func(jokeID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/jokes/"+jokeID+"/favorite", nil)
		req = testContextWithUserID(7)(req)
		req = mux.SetURLVars(req, map[string]string{"joke_id": jokeID})
		rec := httptest.NewRecorder()
		controller.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorited":true}`, rec.Body.String())

	assert.Equal(t, http.StatusInternalServerError, serve("4").Code)
	assert.Equal(t, http.StatusBadRequest, serve("x").Code)
}

func TestFavoritesList_ServeHTTP(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().ListUserFavorites(mock.Anything, int64(7)).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/favorites", nil)
	req = testContextWithUserID(7)(req)
	rec := httptest.NewRecorder()

	FavoritesList{Lister: catalog}.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestJokeSubmit_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
		expectSave bool
	}{
		{name: "accepted", body: `{"text":"My boss said I was fired up. Then he fired me."}`, wantStatus: http.StatusCreated, expectSave: true},
		{name: "too_short", body: `{"text":"short"}`, wantStatus: http.StatusBadRequest},
		{name: "forbidden_word", body: `{"text":"Buy my new joke book at https://example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid_json", body: `not json`, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalog(t)
			if tc.expectSave {
				catalog.EXPECT().Classify(mock.Anything).Return([]int64{1}).Once()
				catalog.EXPECT().SubmitJoke(mock.Anything, mock.Anything, int64(7), []int64{1}).Return(int64(99), nil).Once()
			}

			cmd := command.NewSubmitJoke(catalog, catalog, command.SubmitJokeConfig{
				MinLength:      10,
				MaxLength:      1000,
				ForbiddenWords: []string{"https://"},
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/jokes", strings.NewReader(tc.body))
			req = testContextWithUserID(7)(req)
			rec := httptest.NewRecorder()

			JokeSubmit{Command: cmd}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.expectSave {
				assert.JSONEq(t, `{"joke_id":99,"theme_ids":[1]}`, rec.Body.String())
			}
		})
	}
}

func TestUserJokesList_ServeHTTP(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := domain.JokeStatusPending

	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().ListUserJokes(mock.Anything, int64(7), &pending).Return([]domain.UserJoke{
		{ID: 5, Text: "Pending joke", Status: domain.JokeStatusPending, CreatedAt: created},
	}, nil).Once()

	controller := UserJokesList{Lister: catalog}

	req := httptest.NewRequest(http.MethodGet, "/v1/me/jokes?status=pending", nil)
	req = testContextWithUserID(7)(req)
	rec := httptest.NewRecorder()
	controller.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp UserJokesListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(5), resp.Data[0].ID)

	req = httptest.NewRequest(http.MethodGet, "/v1/me/jokes?status=published", nil)
	req = testContextWithUserID(7)(req)
	rec = httptest.NewRecorder()
	controller.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserProfileGet_ServeHTTP(t *testing.T) {
	t.Run("with_preferences", func(t *testing.T) {
		store := mocks.NewMockEngineStore(t)
		store.EXPECT().GetUserPreferences(mock.Anything, int64(7)).Return(map[int64]domain.ThemePreference{
			1: {ThemeID: 1, Name: "Work", Score: 0.3, Interactions: 6},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/me/profile", nil)
		req = testContextWithUserID(7)(req)
		rec := httptest.NewRecorder()
		UserProfileGet{Command: command.NewGetUserProfile(store)}.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp UserProfileResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Data)
		assert.Equal(t, int64(1), resp.Data.FavoriteTheme.ThemeID)
		assert.False(t, resp.Metadata.Learning)
	})

	t.Run("no_preferences", func(t *testing.T) {
		store := mocks.NewMockEngineStore(t)
		store.EXPECT().GetUserPreferences(mock.Anything, int64(7)).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/me/profile", nil)
		req = testContextWithUserID(7)(req)
		rec := httptest.NewRecorder()
		UserProfileGet{Command: command.NewGetUserProfile(store)}.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":null,"metadata":{"learning":true}}`, rec.Body.String())
	})
}

func TestThemesList_ServeHTTP(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().ListThemeStatistics(mock.Anything).Return([]domain.ThemeStatistics{
		{ThemeID: 1, Name: "Work", Glyph: "💻", Total: 4, Approved: 3},
	}, nil).Once()
	catalog.EXPECT().CountPendingJokes(mock.Anything).Return(int64(1), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/themes", nil)
	req = testContextWithUserID(0)(req)
	rec := httptest.NewRecorder()
	ThemesList{Lister: catalog, PendingCounter: catalog, CacheMaxAge: time.Minute}.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "max-age=60", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t,
		`{"data":[{"theme_id":1,"name":"Work","glyph":"💻","total":4,"approved":3}],"metadata":{"pending_jokes":1}}`,
		rec.Body.String())
}

type stubStats command.RecommendJokeStats

func (s stubStats) Stats() command.RecommendJokeStats {
	return command.RecommendJokeStats(s)
}

func TestEngineStatsGet_ServeHTTP(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().CountPendingJokes(mock.Anything).Return(int64(3), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req = testContextWithUserID(0)(req)
	rec := httptest.NewRecorder()
	EngineStatsGet{
		Stats:          stubStats{TrackedUsers: 2, ExplorationRate: 0.1, LearningRate: 0.1, ThemeCount: 5},
		PendingCounter: catalog,
	}.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"tracked_users":2,"exploration_rate":0.1,"learning_rate":0.1,"theme_count":5,"pending_jokes":3}`,
		rec.Body.String())
}

func TestRSS_ServeHTTP(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().ListLatestApprovedJokes(mock.Anything, 2).Return([]domain.Joke{
		{ID: 8, Text: "The newest joke", Status: domain.JokeStatusApproved, CreatedAt: created},
	}, nil).Once()

	controller := RSS{
		FeedHostname: "https://jokes.example.com",
		FeedPath:     "/rss",
		Lister:       catalog,
		CacheMaxAge:  5 * time.Minute,
	}

	req := httptest.NewRequest(http.MethodGet, "/rss?limit=2", nil)
	req = testContextWithUserID(0)(req)
	rec := httptest.NewRecorder()
	controller.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "max-age=300", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "The newest joke")
	assert.Contains(t, rec.Body.String(), "https://jokes.example.com/rss#8")

	for _, limit := range []string{"0", "abc", "500"} {
		req := httptest.NewRequest(http.MethodGet, "/rss?limit="+limit, nil)
		req = testContextWithUserID(0)(req)
		rec := httptest.NewRecorder()
		controller.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %s", limit)
	}
}

func TestFeedTitle(t *testing.T) {
	assert.Equal(t, "Short", feedTitle("Short"))

	long := strings.Repeat("ж", feedTitleRunes+5)
	assert.Equal(t, strings.Repeat("ж", feedTitleRunes)+"…", feedTitle(long))
}
