package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Bootstrap DDL, safe to run on every start. The UNIQUE (job_id, user_id)
// index on applications is the at-most-once apply guarantee; nothing in the
// application layer is allowed to rely on a weaker check.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies (id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		level TEXT NOT NULL,
		salary BIGINT NOT NULL,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_company_id_idx ON jobs (company_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		resume TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users (id),
		resume TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL,
		UNIQUE (job_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS applications_user_id_idx ON applications (user_id)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
