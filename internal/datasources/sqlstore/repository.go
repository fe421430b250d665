package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

var _ datasources.DatasetRepository = (*Repository)(nil)

type Repository struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func New(db *sql.DB, driver Driver) (*Repository, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, dialect: d, now: time.Now}, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// ============================================
// Engine Store Implementation
// ============================================

func (r *Repository) GetApprovedRandomJoke(
	ctx context.Context, excludeIDs []int64, themeID *int64,
) (*domain.JokeView, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("j.id", "j.text")
	sb.From("jokes j")

	conds := []string{sb.Equal("j.status", string(domain.JokeStatusApproved))}
	if themeID != nil {
		sb.Join("joke_themes jt", "jt.joke_id = j.id")
		conds = append(conds, sb.Equal("jt.theme_id", *themeID))
	}
	if len(excludeIDs) > 0 {
		conds = append(conds, sb.NotIn("j.id", int64sToArgs(excludeIDs)...))
	}
	sb.Where(conds...)
	sb.OrderBy(r.dialect.random)
	sb.Limit(1)

	query, args := sb.Build()

	var joke domain.JokeView
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&joke.ID, &joke.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching random approved joke: %w", err)
	}

	return &joke, nil
}

func (r *Repository) GetUserPreferences(
	ctx context.Context, userID int64,
) (map[int64]domain.ThemePreference, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("t.id", "t.name", "t.glyph", "up.score", "up.interactions")
	sb.From("user_preferences up")
	sb.Join("themes t", "t.id = up.theme_id")
	sb.Where(sb.Equal("up.user_id", userID))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running user preferences query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	prefs := make(map[int64]domain.ThemePreference)
	for rows.Next() {
		var p domain.ThemePreference
		if err := rows.Scan(&p.ThemeID, &p.Name, &p.Glyph, &p.Score, &p.Interactions); err != nil {
			return nil, fmt.Errorf("scanning user preference: %w", err)
		}
		prefs[p.ThemeID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return prefs, nil
}

func (r *Repository) GetJokeThemes(ctx context.Context, jokeID int64) ([]domain.JokeThemeLink, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("theme_id", "weight")
	sb.From("joke_themes")
	sb.Where(sb.Equal("joke_id", jokeID))
	sb.OrderBy("theme_id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running joke themes query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []domain.JokeThemeLink
	for rows.Next() {
		var l domain.JokeThemeLink
		if err := rows.Scan(&l.ThemeID, &l.Weight); err != nil {
			return nil, fmt.Errorf("scanning joke theme: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return links, nil
}

func (r *Repository) GetUserInteractionHistory(ctx context.Context, userID int64) ([]int64, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("joke_id")
	sb.From("interactions")
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("rated_at", "joke_id")

	query, args := sb.Build()
	return r.queryIDs(ctx, query, args)
}

func (r *Repository) UpsertUserPreference(
	ctx context.Context, userID, themeID int64, score float64, incrementInteractions bool,
) error {
	var increment int64
	if incrementInteractions {
		increment = 1
	}

	_, err := r.db.ExecContext(ctx, r.dialect.upsertPreference,
		userID, themeID, domain.ClampScore(score), increment, r.now().UnixMilli(), increment)
	if err != nil {
		return fmt.Errorf("upserting user preference: %w", err)
	}
	return nil
}

func (r *Repository) RecordInteraction(ctx context.Context, userID, jokeID int64, liked bool) error {
	_, err := r.db.ExecContext(ctx, r.dialect.upsertInteraction, userID, jokeID, liked, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upserting interaction: %w", err)
	}
	return nil
}

// ============================================
// Helpers
// ============================================

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) queryIDs(ctx context.Context, query string, args []any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running ID query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return ids, nil
}

func int64sToArgs(ids []int64) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
