package app

import (
	"time"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources/breaker"
	"github.com/jbeshir/joke-feed/internal/datasources/keywords"
	"github.com/jbeshir/joke-feed/internal/datasources/sqlstore"
	"github.com/jbeshir/joke-feed/internal/domain"
)

// Theme IDs of the default taxonomy.
const (
	WorkThemeID      int64 = 1
	SchoolThemeID    int64 = 2
	AnimalsThemeID   int64 = 3
	DarkHumorThemeID int64 = 4
	MiscThemeID      int64 = 5
)

// DefaultThemes returns the theme taxonomy seeded into an empty database.
func DefaultThemes() []domain.Theme {
	return []domain.Theme{
		{ID: WorkThemeID, Slug: "work", Name: "Work", Glyph: "💻", Description: "Jokes about work and the office"},
		{ID: SchoolThemeID, Slug: "school", Name: "School", Glyph: "🎓", Description: "Jokes about students and studying"},
		{ID: AnimalsThemeID, Slug: "animals", Name: "Animals", Glyph: "🐈", Description: "Jokes about animals"},
		{ID: DarkHumorThemeID, Slug: "dark-humor", Name: "Dark humor", Glyph: "🔞", Description: "Jokes about things that should not be funny"},
		{ID: MiscThemeID, Slug: "misc", Name: "Miscellaneous", Glyph: "🎭", Description: "Jokes for every occasion"},
	}
}

// DefaultKeywordRules returns the words used to classify submitted jokes.
// Texts matching none of them go to MiscThemeID.
func DefaultKeywordRules() []keywords.Rule {
	return []keywords.Rule{
		{ThemeID: WorkThemeID, Words: []string{
			"work", "office", "boss", "colleague", "salary", "meeting", "report", "deadline",
			"работа", "офис", "начальник", "коллега", "зарплата", "совещание", "отчет", "дедлайн",
		}},
		{ThemeID: SchoolThemeID, Words: []string{
			"student", "university", "exam", "teacher", "lecture", "professor", "homework", "dorm",
			"студент", "универ", "сессия", "экзамен", "зачет", "препод", "лекция", "институт", "общежитие",
		}},
		{ThemeID: AnimalsThemeID, Words: []string{
			"cat", "dog", "mouse", "bear", "cow", "parrot", "caught",
			"кот", "собака", "мышь", "медведь", "съел", "поймал", "корова", "попугай",
		}},
		{ThemeID: DarkHumorThemeID, Words: []string{
			"death", "died", "funeral", "grave", "coffin",
			"смерть", "умер", "штирлиц", "мюллер",
		}},
	}
}

// DefaultStarterJokes returns the approved jokes inserted into an empty catalog.
func DefaultStarterJokes() []sqlstore.SeedJoke {
	return []sqlstore.SeedJoke{
		{
			Text:     "My boss told me to have a good day. So I went home.",
			ThemeIDs: []int64{WorkThemeID},
		},
		{
			Text:     "I asked my colleague what the deadline was. He said yesterday, and then went for lunch.",
			ThemeIDs: []int64{WorkThemeID},
		},
		{
			Text:     "Teacher: why is your homework in your father's handwriting? Student: I used his pen.",
			ThemeIDs: []int64{SchoolThemeID},
		},
		{
			Text:     "A student sleeps through the exam and still gets a C. The professor calls it consistency.",
			ThemeIDs: []int64{SchoolThemeID},
		},
		{
			Text:     "Why don't cats play poker in the jungle? Too many cheetahs.",
			ThemeIDs: []int64{AnimalsThemeID},
		},
		{
			Text:     "A parrot at the office repeats everything the boss says. It got promoted first.",
			ThemeIDs: []int64{WorkThemeID, AnimalsThemeID},
		},
		{
			Text:     "My grandfather died peacefully in his sleep. Not screaming like the passengers in his car.",
			ThemeIDs: []int64{DarkHumorThemeID},
		},
		{
			Text:     "I have a joke about construction, but I'm still working on it.",
			ThemeIDs: []int64{MiscThemeID},
		},
		{
			Text:     "Parallel lines have so much in common. It's a shame they'll never meet.",
			ThemeIDs: []int64{MiscThemeID},
		},
	}
}

// DefaultRecommendJokeConfig returns the default selection engine tuning.
func DefaultRecommendJokeConfig(themeCount int) command.RecommendJokeConfig {
	return command.RecommendJokeConfig{
		ExplorationRate: 0.1,
		JitterAmplitude: 0.05,
		MinThemeWeight:  0.01,
		Probability:     domain.DefaultProbabilityConfig(),
		LearningRate:    DefaultUpdatePreferenceConfig().LearningRate,
		ThemeCount:      themeCount,
	}
}

func DefaultUpdatePreferenceConfig() command.UpdatePreferenceConfig {
	return command.UpdatePreferenceConfig{
		LearningRate: 0.1,
	}
}

func DefaultSubmitJokeConfig() command.SubmitJokeConfig {
	return command.SubmitJokeConfig{
		MinLength: 10,
		MaxLength: 1000,
		ForbiddenWords: []string{
			"buy", "sell", "advert",
			"купить", "продать", "реклама",
			"http://", "https://", ".com", ".ru",
		},
	}
}

// DefaultBreakerConfig returns the circuit breaker settings around engine storage.
func DefaultBreakerConfig() breaker.Config {
	return breaker.Config{
		Name:         "engine_store",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}
