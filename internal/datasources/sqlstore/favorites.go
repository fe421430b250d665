package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// ToggleFavorite removes the favorite mark if present and adds it otherwise.
func (r *Repository) ToggleFavorite(ctx context.Context, userID, jokeID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM favorites WHERE user_id = ? AND joke_id = ?", userID, jokeID,
	).Scan(&exists)

	var favorited bool
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ib := r.dialect.flavor.NewInsertBuilder()
		ib.InsertIgnoreInto("favorites")
		ib.Cols("user_id", "joke_id", "created_at")
		ib.Values(userID, jokeID, r.now().UnixMilli())

		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("adding favorite: %w", err)
		}
		favorited = true
	case err != nil:
		return false, fmt.Errorf("checking favorite: %w", err)
	default:
		db := r.dialect.flavor.NewDeleteBuilder()
		db.DeleteFrom("favorites")
		db.Where(db.Equal("user_id", userID), db.Equal("joke_id", jokeID))

		query, args := db.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("removing favorite: %w", err)
		}
		favorited = false
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}

	return favorited, nil
}

func (r *Repository) ListUserFavorites(ctx context.Context, userID int64) ([]domain.JokeView, error) {
	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("j.id", "j.text")
	sb.From("favorites f")
	sb.Join("jokes j", "j.id = f.joke_id")
	sb.Where(
		sb.Equal("f.user_id", userID),
		sb.Equal("j.status", string(domain.JokeStatusApproved)),
	)
	sb.OrderBy("f.created_at DESC", "j.id DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running favorites query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favorites := []domain.JokeView{}
	for rows.Next() {
		var j domain.JokeView
		if err := rows.Scan(&j.ID, &j.Text); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		favorites = append(favorites, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return favorites, nil
}
