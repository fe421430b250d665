package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources/mocks"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type testDataset struct {
	*mocks.MockEngineStore
	*mocks.MockCatalog
}

func newTestDataset(t *testing.T) testDataset {
	return testDataset{
		MockEngineStore: mocks.NewMockEngineStore(t),
		MockCatalog:     mocks.NewMockCatalog(t),
	}
}

func newTestRouter(t *testing.T) (http.Handler, testDataset) {
	t.Helper()

	dataset := newTestDataset(t)
	commands := Commands{
		RecommendJoke: command.NewRecommendJoke(dataset, domain.NewViewHistory(10), command.RecommendJokeConfig{
			ExplorationRate: 0.1,
			LearningRate:    0.1,
			ThemeCount:      5,
		}),
	}

	handler, err := MakeRouter(
		dataset,
		commands,
		"https://jokes.example.com", "Jokes", "jokes@example.com",
		time.Minute,
		NewAuthMiddleware([]AuthValidator{NewHeaderValidator()}, command.NewRegisterUser(dataset)),
	)
	require.NoError(t, err)

	return handler, dataset
}

func TestMakeRouter_PreflightAllowsIdentityHeaders(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/jokes/recommended", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), HeaderUserID)
}

func TestMakeRouter_AuthRequiredEndpoints(t *testing.T) {
	handler, _ := newTestRouter(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/jokes/recommended"},
		{http.MethodPost, "/v1/jokes/3/rating/true"},
		{http.MethodPost, "/v1/jokes/3/favorite"},
		{http.MethodPost, "/v1/jokes"},
		{http.MethodGet, "/v1/favorites"},
		{http.MethodGet, "/v1/me/jokes"},
		{http.MethodGet, "/v1/me/profile"},
	}

	for _, e := range endpoints {
		t.Run(e.method+" "+e.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(e.method, e.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMakeRouter_PublicStats(t *testing.T) {
	handler, dataset := newTestRouter(t)
	dataset.MockCatalog.EXPECT().CountPendingJokes(mock.Anything).Return(int64(2), nil).Once()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"tracked_users":0,"exploration_rate":0.1,"learning_rate":0.1,"theme_count":5,"pending_jokes":2}`,
		rec.Body.String())
}

func TestMakeRouter_AuthenticatedRating(t *testing.T) {
	dataset := newTestDataset(t)
	dataset.MockCatalog.EXPECT().GetOrCreateUser(mock.Anything, domain.User{ExternalID: "555"}).
		Return(domain.User{ID: 9, ExternalID: "555"}, nil).Once()
	dataset.MockEngineStore.EXPECT().RecordInteraction(mock.Anything, int64(9), int64(3), true).
		Return(nil).Once()
	dataset.MockEngineStore.EXPECT().GetJokeThemes(mock.Anything, int64(3)).
		Return([]domain.JokeThemeLink{{ThemeID: 1, Weight: 1}}, nil).Once()
	dataset.MockEngineStore.EXPECT().GetUserPreferences(mock.Anything, int64(9)).
		Return(map[int64]domain.ThemePreference{}, nil).Once()
	dataset.MockEngineStore.EXPECT().UpsertUserPreference(mock.Anything, int64(9), int64(1), mock.Anything, true).
		Return(nil).Once()

	handler := routerWithFeedback(t, dataset)

	req := httptest.NewRequest(http.MethodPost, "/v1/jokes/3/rating/true", nil)
	req.Header.Set(HeaderUserID, "555")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":true}`, rec.Body.String())
}

func routerWithFeedback(t *testing.T, dataset testDataset) http.Handler {
	t.Helper()

	updatePreference := command.NewUpdatePreference(
		dataset, dataset, dataset,
		command.UpdatePreferenceConfig{LearningRate: 0.1},
	)
	handler, err := MakeRouter(
		dataset,
		Commands{RecordFeedback: command.NewRecordFeedback(dataset, updatePreference)},
		"https://jokes.example.com", "Jokes", "jokes@example.com",
		time.Minute,
		NewAuthMiddleware([]AuthValidator{NewHeaderValidator()}, command.NewRegisterUser(dataset)),
	)
	require.NoError(t, err)

	return handler
}
