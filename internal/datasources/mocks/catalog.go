package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

var (
	_ datasources.UserRegistrar         = (*MockCatalog)(nil)
	_ datasources.FavoriteToggler       = (*MockCatalog)(nil)
	_ datasources.FavoritesLister       = (*MockCatalog)(nil)
	_ datasources.JokeSubmitter         = (*MockCatalog)(nil)
	_ datasources.UserJokesLister       = (*MockCatalog)(nil)
	_ datasources.PendingJokesCounter   = (*MockCatalog)(nil)
	_ datasources.PendingJokesLister    = (*MockCatalog)(nil)
	_ datasources.JokeStatusSetter      = (*MockCatalog)(nil)
	_ datasources.ThemeStatisticsLister = (*MockCatalog)(nil)
	_ datasources.LatestJokesLister     = (*MockCatalog)(nil)
	_ datasources.Classifier            = (*MockCatalog)(nil)
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCatalog mocks every non-engine datasources interface, plus Classifier.
type MockCatalog struct {
	mock.Mock
}

type MockCatalog_Expecter struct {
	mock *mock.Mock
}

// NewMockCatalog creates a mock whose expectations are asserted on test cleanup.
func NewMockCatalog(t testingT) *MockCatalog {
	m := &MockCatalog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalog) EXPECT() *MockCatalog_Expecter {
	return &MockCatalog_Expecter{mock: &m.Mock}
}

func (m *MockCatalog) GetOrCreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	ret := m.Called(ctx, user)
	stored, _ := ret.Get(0).(domain.User)
	return stored, ret.Error(1)
}

func (e *MockCatalog_Expecter) GetOrCreateUser(ctx, user interface{}) *mock.Call {
	return e.mock.On("GetOrCreateUser", ctx, user)
}

func (m *MockCatalog) ToggleFavorite(ctx context.Context, userID, jokeID int64) (bool, error) {
	ret := m.Called(ctx, userID, jokeID)
	return ret.Bool(0), ret.Error(1)
}

func (e *MockCatalog_Expecter) ToggleFavorite(ctx, userID, jokeID interface{}) *mock.Call {
	return e.mock.On("ToggleFavorite", ctx, userID, jokeID)
}

func (m *MockCatalog) ListUserFavorites(ctx context.Context, userID int64) ([]domain.JokeView, error) {
	ret := m.Called(ctx, userID)
	jokes, _ := ret.Get(0).([]domain.JokeView)
	return jokes, ret.Error(1)
}

func (e *MockCatalog_Expecter) ListUserFavorites(ctx, userID interface{}) *mock.Call {
	return e.mock.On("ListUserFavorites", ctx, userID)
}

func (m *MockCatalog) SubmitJoke(ctx context.Context, text string, authorID int64, themeIDs []int64) (int64, error) {
	ret := m.Called(ctx, text, authorID, themeIDs)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

func (e *MockCatalog_Expecter) SubmitJoke(ctx, text, authorID, themeIDs interface{}) *mock.Call {
	return e.mock.On("SubmitJoke", ctx, text, authorID, themeIDs)
}

func (m *MockCatalog) ListUserJokes(
	ctx context.Context, authorID int64, status *domain.JokeStatus,
) ([]domain.UserJoke, error) {
	ret := m.Called(ctx, authorID, status)
	jokes, _ := ret.Get(0).([]domain.UserJoke)
	return jokes, ret.Error(1)
}

func (e *MockCatalog_Expecter) ListUserJokes(ctx, authorID, status interface{}) *mock.Call {
	return e.mock.On("ListUserJokes", ctx, authorID, status)
}

func (m *MockCatalog) CountPendingJokes(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	count, _ := ret.Get(0).(int64)
	return count, ret.Error(1)
}

func (e *MockCatalog_Expecter) CountPendingJokes(ctx interface{}) *mock.Call {
	return e.mock.On("CountPendingJokes", ctx)
}

func (m *MockCatalog) ListPendingJokes(ctx context.Context, limit int) ([]domain.Joke, error) {
	ret := m.Called(ctx, limit)
	jokes, _ := ret.Get(0).([]domain.Joke)
	return jokes, ret.Error(1)
}

func (e *MockCatalog_Expecter) ListPendingJokes(ctx, limit interface{}) *mock.Call {
	return e.mock.On("ListPendingJokes", ctx, limit)
}

func (m *MockCatalog) SetJokeStatus(ctx context.Context, jokeID int64, status domain.JokeStatus) (bool, error) {
	ret := m.Called(ctx, jokeID, status)
	return ret.Bool(0), ret.Error(1)
}

func (e *MockCatalog_Expecter) SetJokeStatus(ctx, jokeID, status interface{}) *mock.Call {
	return e.mock.On("SetJokeStatus", ctx, jokeID, status)
}

func (m *MockCatalog) ListThemeStatistics(ctx context.Context) ([]domain.ThemeStatistics, error) {
	ret := m.Called(ctx)
	stats, _ := ret.Get(0).([]domain.ThemeStatistics)
	return stats, ret.Error(1)
}

func (e *MockCatalog_Expecter) ListThemeStatistics(ctx interface{}) *mock.Call {
	return e.mock.On("ListThemeStatistics", ctx)
}

func (m *MockCatalog) ListLatestApprovedJokes(ctx context.Context, limit int) ([]domain.Joke, error) {
	ret := m.Called(ctx, limit)
	jokes, _ := ret.Get(0).([]domain.Joke)
	return jokes, ret.Error(1)
}

func (e *MockCatalog_Expecter) ListLatestApprovedJokes(ctx, limit interface{}) *mock.Call {
	return e.mock.On("ListLatestApprovedJokes", ctx, limit)
}

func (m *MockCatalog) Classify(text string) []int64 {
	ret := m.Called(text)
	themes, _ := ret.Get(0).([]int64)
	return themes
}

func (e *MockCatalog_Expecter) Classify(text interface{}) *mock.Call {
	return e.mock.On("Classify", text)
}
