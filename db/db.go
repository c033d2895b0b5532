package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and makes sure the schema exists.
func Open(dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, err
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)

	if err := createTables(sqldb); err != nil {
		sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func createTables(sqldb *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			max_attendees INT NOT NULL,
			creator_id BIGINT NOT NULL REFERENCES users(id)
		)`,
		// UNIQUE(user_id, event_id) is the only hard guard against double
		// registration; the service layer checks it redundantly.
		`CREATE TABLE IF NOT EXISTS registrations (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			event_id BIGINT NOT NULL REFERENCES events(id),
			registration_time TIMESTAMPTZ NOT NULL,
			attended BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (user_id, event_id)
		)`,
		// The 4-images-per-event cap lives in the image service, not here.
		`CREATE TABLE IF NOT EXISTS images (
			id BIGSERIAL PRIMARY KEY,
			event_id BIGINT NOT NULL REFERENCES events(id),
			image_url TEXT NOT NULL,
			display_order INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := sqldb.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
