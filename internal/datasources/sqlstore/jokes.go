package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"

	"github.com/jbeshir/joke-feed/internal/domain"
)

func (r *Repository) SubmitJoke(ctx context.Context, text string, authorID int64, themeIDs []int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := r.insertJoke(ctx, tx, text, &authorID, domain.JokeStatusPending, themeIDs)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

func (r *Repository) insertJoke(
	ctx context.Context, q execQuerier,
	text string, authorID *int64, status domain.JokeStatus, themeIDs []int64,
) (int64, error) {
	var author sql.NullInt64
	if authorID != nil {
		author = sql.NullInt64{Int64: *authorID, Valid: true}
	}

	ib := r.dialect.flavor.NewInsertBuilder()
	ib.InsertInto("jokes")
	ib.Cols("text", "author_id", "status", "created_at")
	ib.Values(text, author, string(status), r.now().UnixMilli())

	query, args := ib.Build()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting joke: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading joke ID: %w", err)
	}

	if len(themeIDs) > 0 {
		lb := r.dialect.flavor.NewInsertBuilder()
		lb.InsertIgnoreInto("joke_themes")
		lb.Cols("joke_id", "theme_id", "weight")
		for _, themeID := range themeIDs {
			lb.Values(id, themeID, domain.DefaultLinkWeight)
		}

		query, args = lb.Build()
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("linking joke themes: %w", err)
		}
	}

	return id, nil
}

func (r *Repository) ListUserJokes(
	ctx context.Context, authorID int64, status *domain.JokeStatus,
) ([]domain.UserJoke, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("id", "text", "status", "created_at")
	sb.From("jokes")

	conds := []string{sb.Equal("author_id", authorID)}
	if status != nil {
		conds = append(conds, sb.Equal("status", string(*status)))
	}
	sb.Where(conds...)
	sb.OrderBy("created_at DESC", "id DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running user jokes query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	jokes := []domain.UserJoke{}
	for rows.Next() {
		var j domain.UserJoke
		var status string
		var createdAt int64
		if err := rows.Scan(&j.ID, &j.Text, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user joke: %w", err)
		}
		j.Status = domain.JokeStatus(status)
		j.CreatedAt = time.UnixMilli(createdAt)
		jokes = append(jokes, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return jokes, nil
}

func (r *Repository) CountPendingJokes(ctx context.Context) (int64, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("jokes")
	sb.Where(sb.Equal("status", string(domain.JokeStatusPending)))

	query, args := sb.Build()
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting pending jokes: %w", err)
	}
	return count, nil
}

// ListPendingJokes returns the moderation queue, oldest first.
func (r *Repository) ListPendingJokes(ctx context.Context, limit int) ([]domain.Joke, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("id", "text", "author_id", "status", "created_at")
	sb.From("jokes")
	sb.Where(sb.Equal("status", string(domain.JokeStatusPending)))
	sb.OrderBy("created_at", "id")
	sb.Limit(limit)

	query, args := sb.Build()
	return r.queryJokes(ctx, query, args)
}

func (r *Repository) ListLatestApprovedJokes(ctx context.Context, limit int) ([]domain.Joke, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("id", "text", "author_id", "status", "created_at")
	sb.From("jokes")
	sb.Where(sb.Equal("status", string(domain.JokeStatusApproved)))
	sb.OrderBy("created_at DESC", "id DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	return r.queryJokes(ctx, query, args)
}

func (r *Repository) SetJokeStatus(ctx context.Context, jokeID int64, status domain.JokeStatus) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// MySQL reports zero affected rows for a no-op update, so existence is checked separately.
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM jokes WHERE id = ?", jokeID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking joke exists: %w", err)
	}

	ub := r.dialect.flavor.NewUpdateBuilder()
	ub.Update("jokes")
	ub.Set(ub.Assign("status", string(status)))
	ub.Where(ub.Equal("id", jokeID))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("updating joke status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}

	return true, nil
}

func (r *Repository) ListThemeStatistics(ctx context.Context) ([]domain.ThemeStatistics, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select(
		"t.id", "t.name", "t.glyph",
		"COUNT(jt.joke_id)",
		"COALESCE(SUM(CASE WHEN j.status = "+sb.Var(string(domain.JokeStatusApproved))+" THEN 1 ELSE 0 END), 0)",
	)
	sb.From("themes t")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "joke_themes jt", "jt.theme_id = t.id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "jokes j", "j.id = jt.joke_id")
	sb.GroupBy("t.id", "t.name", "t.glyph")
	sb.OrderBy("t.id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running theme statistics query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := []domain.ThemeStatistics{}
	for rows.Next() {
		var s domain.ThemeStatistics
		if err := rows.Scan(&s.ThemeID, &s.Name, &s.Glyph, &s.Total, &s.Approved); err != nil {
			return nil, fmt.Errorf("scanning theme statistics: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return stats, nil
}

func (r *Repository) queryJokes(ctx context.Context, query string, args []any) ([]domain.Joke, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running jokes query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	jokes := []domain.Joke{}
	for rows.Next() {
		var j domain.Joke
		var author sql.NullInt64
		var status string
		var createdAt int64
		if err := rows.Scan(&j.ID, &j.Text, &author, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning joke: %w", err)
		}
		if author.Valid {
			j.AuthorID = &author.Int64
		}
		j.Status = domain.JokeStatus(status)
		j.CreatedAt = time.UnixMilli(createdAt)
		jokes = append(jokes, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return jokes, nil
}
