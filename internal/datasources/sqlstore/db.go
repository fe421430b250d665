package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverMySQL  Driver = "mysql"
)

const mysqlParamStr = "parseTime=true"

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// Connect opens and pings the database. It does not touch the schema; call
// EnsureSchema once at startup for that.
func Connect(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", appendParams(dsn, sqlitePragmas))
		if err != nil {
			return nil, fmt.Errorf("opening SQLite DB: %w", err)
		}
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY between our own goroutines.
		db.SetMaxOpenConns(1)
	case DriverMySQL:
		db, err = sql.Open("mysql", appendParams(dsn, mysqlParamStr))
		if err != nil {
			return nil, fmt.Errorf("opening MySQL DB: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	default:
		return nil, fmt.Errorf("unknown database driver [%s]", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checking %s DB connection: %w", driver, err)
	}

	return db, nil
}

func appendParams(dsn, params string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}
