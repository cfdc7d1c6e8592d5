package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:codegrade.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/codegrade?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS activities (
  id TEXT PRIMARY KEY,
  join_code TEXT NOT NULL,
  title TEXT NOT NULL,
  instruction TEXT NOT NULL,
  max_score REAL NOT NULL,
  criteria_json TEXT NOT NULL,
  created_by TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_join_code ON activities(join_code, created_at);

CREATE TABLE IF NOT EXISTS participants (
  id TEXT PRIMARY KEY,
  join_code TEXT NOT NULL,
  student_name TEXT NOT NULL,
  section TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  ts INTEGER NOT NULL,
  join_code TEXT NOT NULL,
  student_name TEXT NOT NULL,
  section TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL,
  code TEXT NOT NULL,
  ai_model TEXT NOT NULL,
  total_score REAL NOT NULL DEFAULT 0,
  feedback_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_join_code ON submissions(join_code, total_score);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS activities (
  id TEXT PRIMARY KEY,
  join_code TEXT NOT NULL,
  title TEXT NOT NULL,
  instruction TEXT NOT NULL,
  max_score DOUBLE PRECISION NOT NULL,
  criteria_json TEXT NOT NULL,
  created_by TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_join_code ON activities(join_code, created_at);

CREATE TABLE IF NOT EXISTS participants (
  id TEXT PRIMARY KEY,
  join_code TEXT NOT NULL,
  student_name TEXT NOT NULL,
  section TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
  id TEXT PRIMARY KEY,
  ts BIGINT NOT NULL,
  join_code TEXT NOT NULL,
  student_name TEXT NOT NULL,
  section TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL,
  code TEXT NOT NULL,
  ai_model TEXT NOT NULL,
  total_score DOUBLE PRECISION NOT NULL DEFAULT 0,
  feedback_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_join_code ON submissions(join_code, total_score);
`
