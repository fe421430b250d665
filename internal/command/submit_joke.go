package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
	"github.com/jbeshir/joke-feed/internal/metrics"
)

var (
	ErrJokeTooShort      = errors.New("joke is too short")
	ErrJokeTooLong       = errors.New("joke is too long")
	ErrJokeForbiddenWord = errors.New("joke contains forbidden words")
)

// SubmitJokeConfig holds configuration for the SubmitJoke command.
type SubmitJokeConfig struct {
	MinLength int
	MaxLength int

	// ForbiddenWords are rejected as case-insensitive substrings.
	ForbiddenWords []string
}

type SubmitJokeRequest struct {
	AuthorID int64
	Text     string
}

// SubmitJoke validates a user's joke, classifies it and adds it to the moderation queue.
type SubmitJoke struct {
	Classifier datasources.Classifier
	Submitter  datasources.JokeSubmitter
	Config     SubmitJokeConfig
}

// NewSubmitJoke creates a properly initialized SubmitJoke command.
func NewSubmitJoke(
	classifier datasources.Classifier,
	submitter datasources.JokeSubmitter,
	cfg SubmitJokeConfig,
) *SubmitJoke {
	return &SubmitJoke{
		Classifier: classifier,
		Submitter:  submitter,
		Config:     cfg,
	}
}

// Execute returns ErrJokeTooShort, ErrJokeTooLong or ErrJokeForbiddenWord
// for submissions that fail validation.
func (c *SubmitJoke) Execute(ctx context.Context, req SubmitJokeRequest) (domain.SubmittedJoke, error) {
	text := strings.TrimSpace(req.Text)

	if err := c.validate(text); err != nil {
		metrics.JokesSubmitted.WithLabelValues("rejected").Inc()
		return domain.SubmittedJoke{}, err
	}

	themeIDs := c.Classifier.Classify(text)

	jokeID, err := c.Submitter.SubmitJoke(ctx, text, req.AuthorID, themeIDs)
	if err != nil {
		metrics.JokesSubmitted.WithLabelValues("error").Inc()
		return domain.SubmittedJoke{}, fmt.Errorf("submitting joke: %w", err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "joke submitted for moderation",
		"joke_id", jokeID, "author_id", req.AuthorID, "theme_ids", themeIDs)
	metrics.JokesSubmitted.WithLabelValues("accepted").Inc()

	return domain.SubmittedJoke{JokeID: jokeID, ThemeIDs: themeIDs}, nil
}

func (c *SubmitJoke) validate(text string) error {
	length := utf8.RuneCountInString(text)
	if length < c.Config.MinLength {
		return ErrJokeTooShort
	}
	if c.Config.MaxLength > 0 && length > c.Config.MaxLength {
		return ErrJokeTooLong
	}

	lower := strings.ToLower(text)
	for _, word := range c.Config.ForbiddenWords {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return ErrJokeForbiddenWord
		}
	}

	return nil
}
