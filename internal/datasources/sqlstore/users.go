package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jbeshir/joke-feed/internal/domain"
)

// GetOrCreateUser looks a user up by external ID, registering it on first
// sight. A newly registered user gets one neutral preference row per stored theme.
func (r *Repository) GetOrCreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.now()

	ib := r.dialect.flavor.NewInsertBuilder()
	ib.InsertIgnoreInto("users")
	ib.Cols("external_id", "username", "first_name", "last_name", "created_at")
	ib.Values(user.ExternalID, user.Username, user.FirstName, user.LastName, now.UnixMilli())

	query, args := ib.Build()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, fmt.Errorf("checking inserted user: %w", err)
	}

	sb := r.dialect.flavor.NewSelectBuilder()
	sb.Select("id", "external_id", "username", "first_name", "last_name", "created_at")
	sb.From("users")
	sb.Where(sb.Equal("external_id", user.ExternalID))

	query, args = sb.Build()
	var stored domain.User
	var createdAt int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(
		&stored.ID, &stored.ExternalID, &stored.Username, &stored.FirstName, &stored.LastName, &createdAt,
	); err != nil {
		return domain.User{}, fmt.Errorf("fetching user: %w", err)
	}
	stored.CreatedAt = time.UnixMilli(createdAt)

	if inserted > 0 {
		if err := r.seedUserPreferences(ctx, tx, stored.ID, now); err != nil {
			return domain.User{}, err
		}
		domain.LoggerFromContext(ctx).InfoContext(ctx, "registered user",
			"user_id", stored.ID, "external_id", stored.ExternalID)
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, fmt.Errorf("committing transaction: %w", err)
	}

	return stored, nil
}

func (r *Repository) seedUserPreferences(ctx context.Context, q execQuerier, userID int64, now time.Time) error {
	rows, err := q.QueryContext(ctx, "SELECT id FROM themes ORDER BY id")
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}
	var themeIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scanning theme ID: %w", err)
		}
		themeIDs = append(themeIDs, id)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("closing rows iterator: %w", err)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(themeIDs) == 0 {
		return nil
	}

	ib := r.dialect.flavor.NewInsertBuilder()
	ib.InsertIgnoreInto("user_preferences")
	ib.Cols("user_id", "theme_id", "score", "interactions", "updated_at")
	for _, themeID := range themeIDs {
		ib.Values(userID, themeID, 0.0, 0, now.UnixMilli())
	}

	query, args := ib.Build()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seeding user preferences: %w", err)
	}
	return nil
}
