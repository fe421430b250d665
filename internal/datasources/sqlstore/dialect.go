package sqlstore

import (
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

// dialect holds the SQL that differs between backends.
type dialect struct {
	flavor sqlbuilder.Flavor

	// random is the ORDER BY expression for a random row.
	random string

	schema []string

	// upsertPreference args: user_id, theme_id, score, initial interactions, updated_at, increment.
	upsertPreference string

	// upsertInteraction args: user_id, joke_id, liked, rated_at.
	upsertInteraction string
}

func dialectFor(driver Driver) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect, nil
	case DriverMySQL:
		return mysqlDialect, nil
	default:
		return dialect{}, fmt.Errorf("unknown database driver [%s]", driver)
	}
}

var sqliteDialect = dialect{
	flavor: sqlbuilder.SQLite,
	random: "RANDOM()",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id VARCHAR(64)  NOT NULL UNIQUE,
			username    VARCHAR(255) NOT NULL DEFAULT '',
			first_name  VARCHAR(255) NOT NULL DEFAULT '',
			last_name   VARCHAR(255) NOT NULL DEFAULT '',
			created_at  BIGINT       NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS themes (
			id          INTEGER PRIMARY KEY,
			slug        VARCHAR(64)  NOT NULL UNIQUE,
			name        VARCHAR(255) NOT NULL,
			glyph       VARCHAR(16)  NOT NULL DEFAULT '',
			description TEXT         NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jokes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			text       TEXT        NOT NULL,
			author_id  BIGINT      NULL,
			status     VARCHAR(16) NOT NULL DEFAULT 'approved',
			created_at BIGINT      NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jokes_status ON jokes(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_jokes_author ON jokes(author_id)`,
		`CREATE TABLE IF NOT EXISTS joke_themes (
			joke_id  BIGINT NOT NULL,
			theme_id BIGINT NOT NULL,
			weight   DOUBLE NOT NULL DEFAULT 1.0,
			PRIMARY KEY (joke_id, theme_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_joke_themes_theme ON joke_themes(theme_id)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id      BIGINT NOT NULL,
			theme_id     BIGINT NOT NULL,
			score        DOUBLE NOT NULL DEFAULT 0.0,
			interactions BIGINT NOT NULL DEFAULT 0,
			updated_at   BIGINT NOT NULL,
			PRIMARY KEY (user_id, theme_id)
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id  BIGINT  NOT NULL,
			joke_id  BIGINT  NOT NULL,
			liked    BOOLEAN NOT NULL,
			rated_at BIGINT  NOT NULL,
			PRIMARY KEY (user_id, joke_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id    BIGINT NOT NULL,
			joke_id    BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, joke_id)
		)`,
	},
	upsertPreference: `INSERT INTO user_preferences (user_id, theme_id, score, interactions, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, theme_id) DO UPDATE SET
			score = excluded.score,
			interactions = user_preferences.interactions + ?,
			updated_at = excluded.updated_at`,
	upsertInteraction: `INSERT INTO interactions (user_id, joke_id, liked, rated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, joke_id) DO UPDATE SET
			liked = excluded.liked,
			rated_at = excluded.rated_at`,
}

var mysqlDialect = dialect{
	flavor: sqlbuilder.MySQL,
	random: "RAND()",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
			external_id VARCHAR(64)  NOT NULL UNIQUE,
			username    VARCHAR(255) NOT NULL DEFAULT '',
			first_name  VARCHAR(255) NOT NULL DEFAULT '',
			last_name   VARCHAR(255) NOT NULL DEFAULT '',
			created_at  BIGINT       NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS themes (
			id          BIGINT       NOT NULL PRIMARY KEY,
			slug        VARCHAR(64)  NOT NULL UNIQUE,
			name        VARCHAR(255) NOT NULL,
			glyph       VARCHAR(16)  NOT NULL DEFAULT '',
			description TEXT         NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS jokes (
			id         BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
			text       TEXT        NOT NULL,
			author_id  BIGINT      NULL,
			status     VARCHAR(16) NOT NULL DEFAULT 'approved',
			created_at BIGINT      NOT NULL,
			INDEX idx_jokes_status (status, created_at),
			INDEX idx_jokes_author (author_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS joke_themes (
			joke_id  BIGINT NOT NULL,
			theme_id BIGINT NOT NULL,
			weight   DOUBLE NOT NULL DEFAULT 1.0,
			PRIMARY KEY (joke_id, theme_id),
			INDEX idx_joke_themes_theme (theme_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id      BIGINT NOT NULL,
			theme_id     BIGINT NOT NULL,
			score        DOUBLE NOT NULL DEFAULT 0.0,
			interactions BIGINT NOT NULL DEFAULT 0,
			updated_at   BIGINT NOT NULL,
			PRIMARY KEY (user_id, theme_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id  BIGINT  NOT NULL,
			joke_id  BIGINT  NOT NULL,
			liked    BOOLEAN NOT NULL,
			rated_at BIGINT  NOT NULL,
			PRIMARY KEY (user_id, joke_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id    BIGINT NOT NULL,
			joke_id    BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, joke_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	upsertPreference: `INSERT INTO user_preferences (user_id, theme_id, score, interactions, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			score = VALUES(score),
			interactions = interactions + ?,
			updated_at = VALUES(updated_at)`,
	upsertInteraction: `INSERT INTO interactions (user_id, joke_id, liked, rated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			liked = VALUES(liked),
			rated_at = VALUES(rated_at)`,
}
