package sqlstore

import (
	"context"
	"fmt"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// SeedJoke is a starter joke inserted into an empty catalog.
type SeedJoke struct {
	Text     string
	ThemeIDs []int64
}

// Seed is the bootstrap data applied by EnsureSchema.
type Seed struct {
	Themes []domain.Theme
	Jokes  []SeedJoke
}

// EnsureSchema creates missing tables, inserts any configured themes that are
// not yet stored, and adds the starter jokes if the catalog is empty.
// It is safe to run against an already initialised database.
func (r *Repository) EnsureSchema(ctx context.Context, seed Seed) error {
	logger := domain.LoggerFromContext(ctx)

	for _, stmt := range r.dialect.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, theme := range seed.Themes {
		ib := r.dialect.flavor.NewInsertBuilder()
		ib.InsertIgnoreInto("themes")
		ib.Cols("id", "slug", "name", "glyph", "description")
		ib.Values(theme.ID, theme.Slug, theme.Name, theme.Glyph, theme.Description)

		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seeding theme %s: %w", theme.Slug, err)
		}
	}

	var jokeCount int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM jokes").Scan(&jokeCount); err != nil {
		return fmt.Errorf("counting jokes: %w", err)
	}

	if jokeCount == 0 {
		for _, joke := range seed.Jokes {
			if _, err := r.insertJoke(ctx, tx, joke.Text, nil, domain.JokeStatusApproved, joke.ThemeIDs); err != nil {
				return fmt.Errorf("seeding starter joke: %w", err)
			}
		}
		logger.InfoContext(ctx, "seeded starter jokes", "count", len(seed.Jokes))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
