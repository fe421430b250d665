package command

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// fakeStore is an in-memory EngineStore for tests that make many calls.
type fakeStore struct {
	mu sync.Mutex

	rng *rand.Rand

	// jokeThemes maps joke ID to its single theme.
	jokeThemes   map[int64]int64
	prefs        map[int64]map[int64]domain.ThemePreference
	interactions map[int64][]int64
}

func newFakeStore(seed uint64, jokesPerTheme int, themeIDs ...int64) *fakeStore {
	s := &fakeStore{
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		jokeThemes:   make(map[int64]int64),
		prefs:        make(map[int64]map[int64]domain.ThemePreference),
		interactions: make(map[int64][]int64),
	}

	id := int64(1)
	for _, themeID := range themeIDs {
		for i := 0; i < jokesPerTheme; i++ {
			s.jokeThemes[id] = themeID
			id++
		}
	}

	return s
}

func (s *fakeStore) setPreferences(userID int64, prefs ...domain.ThemePreference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[int64]domain.ThemePreference)
	for _, p := range prefs {
		m[p.ThemeID] = p
	}
	s.prefs[userID] = m
}

func (s *fakeStore) GetApprovedRandomJoke(
	_ context.Context, excludeIDs []int64, themeID *int64,
) (*domain.JokeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []int64
	for id, theme := range s.jokeThemes {
		if themeID != nil && theme != *themeID {
			continue
		}
		if slices.Contains(excludeIDs, id) {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	slices.Sort(candidates)
	id := candidates[s.rng.IntN(len(candidates))]
	return &domain.JokeView{ID: id, Text: "joke"}, nil
}

func (s *fakeStore) GetUserPreferences(_ context.Context, userID int64) (map[int64]domain.ThemePreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int64]domain.ThemePreference)
	for k, v := range s.prefs[userID] {
		result[k] = v
	}
	return result, nil
}

func (s *fakeStore) GetJokeThemes(_ context.Context, jokeID int64) ([]domain.JokeThemeLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, ok := s.jokeThemes[jokeID]
	if !ok {
		return nil, nil
	}
	return []domain.JokeThemeLink{{ThemeID: theme, Weight: domain.DefaultLinkWeight}}, nil
}

func (s *fakeStore) GetUserInteractionHistory(_ context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.interactions[userID]), nil
}

func (s *fakeStore) UpsertUserPreference(
	_ context.Context, userID, themeID int64, score float64, incrementInteractions bool,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs[userID] == nil {
		s.prefs[userID] = make(map[int64]domain.ThemePreference)
	}
	p := s.prefs[userID][themeID]
	p.ThemeID = themeID
	p.Score = score
	if incrementInteractions {
		p.Interactions++
	}
	s.prefs[userID][themeID] = p
	return nil
}

func (s *fakeStore) RecordInteraction(_ context.Context, userID, jokeID int64, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := slices.DeleteFunc(s.interactions[userID], func(id int64) bool { return id == jokeID })
	s.interactions[userID] = append(ids, jokeID)
	return nil
}
