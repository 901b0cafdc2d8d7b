package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the relational store and creates missing tables.
func Open(driver, dsn string) (*sqlx.DB, error) {
	var schema []string
	switch driver {
	case DriverPostgres:
		schema = postgresSchema
	case DriverSQLite:
		schema = sqliteSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// A single connection serialises writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("driver", driver).Msg("✅ Connected to database")

	if err := InitTables(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// sqlitePragmas are applied by the driver to every connection it opens.
var sqlitePragmas = []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"}

func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, pragma := range sqlitePragmas {
		dsn += sep + "_pragma=" + pragma
		sep = "&"
	}
	return dsn
}

// InitTables runs the bootstrap statements in order.
func InitTables(db *sqlx.DB, schema []string) error {
	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("init tables: %w", err)
		}
	}
	log.Info().Msg("✅ Database tables initialized")
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(32) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS foods (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		calories_per_100g DOUBLE PRECISION CHECK (calories_per_100g >= 0),
		weight DOUBLE PRECISION CHECK (weight >= 0),
		meal_type TEXT,
		date VARCHAR(10),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		calories_per_hour DOUBLE PRECISION CHECK (calories_per_hour >= 0),
		duration DOUBLE PRECISION CHECK (duration >= 0),
		calories_burned DOUBLE PRECISION CHECK (calories_burned >= 0),
		sets INTEGER CHECK (sets >= 0),
		completed BOOLEAN NOT NULL DEFAULT TRUE,
		date VARCHAR(10),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_foods_user_created ON foods(user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_user_created ON exercises(user_id, created_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS foods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		calories_per_100g REAL CHECK (calories_per_100g >= 0),
		weight REAL CHECK (weight >= 0),
		meal_type TEXT,
		date TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		calories_per_hour REAL CHECK (calories_per_hour >= 0),
		duration REAL CHECK (duration >= 0),
		calories_burned REAL CHECK (calories_burned >= 0),
		sets INTEGER CHECK (sets >= 0),
		completed BOOLEAN NOT NULL DEFAULT 1,
		date TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_foods_user_created ON foods(user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_user_created ON exercises(user_id, created_at DESC)`,
}
