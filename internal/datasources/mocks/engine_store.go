// Package mocks holds testify mocks of the datasources interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

var _ datasources.EngineStore = (*MockEngineStore)(nil)

// MockEngineStore mocks datasources.EngineStore.
type MockEngineStore struct {
	mock.Mock
}

type MockEngineStore_Expecter struct {
	mock *mock.Mock
}

// NewMockEngineStore creates a mock whose expectations are asserted on test cleanup.
func NewMockEngineStore(t testingT) *MockEngineStore {
	m := &MockEngineStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEngineStore) EXPECT() *MockEngineStore_Expecter {
	return &MockEngineStore_Expecter{mock: &m.Mock}
}

func (m *MockEngineStore) GetApprovedRandomJoke(
	ctx context.Context, excludeIDs []int64, themeID *int64,
) (*domain.JokeView, error) {
	ret := m.Called(ctx, excludeIDs, themeID)
	joke, _ := ret.Get(0).(*domain.JokeView)
	return joke, ret.Error(1)
}

func (e *MockEngineStore_Expecter) GetApprovedRandomJoke(ctx, excludeIDs, themeID interface{}) *mock.Call {
	return e.mock.On("GetApprovedRandomJoke", ctx, excludeIDs, themeID)
}

func (m *MockEngineStore) GetUserPreferences(
	ctx context.Context, userID int64,
) (map[int64]domain.ThemePreference, error) {
	ret := m.Called(ctx, userID)
	prefs, _ := ret.Get(0).(map[int64]domain.ThemePreference)
	return prefs, ret.Error(1)
}

func (e *MockEngineStore_Expecter) GetUserPreferences(ctx, userID interface{}) *mock.Call {
	return e.mock.On("GetUserPreferences", ctx, userID)
}

func (m *MockEngineStore) GetJokeThemes(ctx context.Context, jokeID int64) ([]domain.JokeThemeLink, error) {
	ret := m.Called(ctx, jokeID)
	links, _ := ret.Get(0).([]domain.JokeThemeLink)
	return links, ret.Error(1)
}

func (e *MockEngineStore_Expecter) GetJokeThemes(ctx, jokeID interface{}) *mock.Call {
	return e.mock.On("GetJokeThemes", ctx, jokeID)
}

func (m *MockEngineStore) GetUserInteractionHistory(ctx context.Context, userID int64) ([]int64, error) {
	ret := m.Called(ctx, userID)
	ids, _ := ret.Get(0).([]int64)
	return ids, ret.Error(1)
}

func (e *MockEngineStore_Expecter) GetUserInteractionHistory(ctx, userID interface{}) *mock.Call {
	return e.mock.On("GetUserInteractionHistory", ctx, userID)
}

func (m *MockEngineStore) UpsertUserPreference(
	ctx context.Context, userID, themeID int64, score float64, incrementInteractions bool,
) error {
	ret := m.Called(ctx, userID, themeID, score, incrementInteractions)
	return ret.Error(0)
}

func (e *MockEngineStore_Expecter) UpsertUserPreference(
	ctx, userID, themeID, score, incrementInteractions interface{},
) *mock.Call {
	return e.mock.On("UpsertUserPreference", ctx, userID, themeID, score, incrementInteractions)
}

func (m *MockEngineStore) RecordInteraction(ctx context.Context, userID, jokeID int64, liked bool) error {
	ret := m.Called(ctx, userID, jokeID, liked)
	return ret.Error(0)
}

func (e *MockEngineStore_Expecter) RecordInteraction(ctx, userID, jokeID, liked interface{}) *mock.Call {
	return e.mock.On("RecordInteraction", ctx, userID, jokeID, liked)
}
