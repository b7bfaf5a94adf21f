package trackdb

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

// Migrations returns the schema migrations. The raw SQL differs between
// Postgres and Sqlite only in the auto-increment primary key syntax.
func Migrations(log logs.Log, driver string) []migration.Migrator {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == dbh.DriverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE users(
			id `+serial+`,
			username TEXT NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			joined_at TIMESTAMP
		);
		CREATE UNIQUE INDEX idx_users_username ON users(username);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE session(key TEXT PRIMARY KEY, user_id BIGINT NOT NULL, created_at TIMESTAMP, expires_at TIMESTAMP);
		CREATE INDEX idx_session_user_id ON session(user_id);
		CREATE INDEX idx_session_expires_at ON session(expires_at);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE issues(
			id `+serial+`,
			user_id BIGINT NOT NULL,
			floor TEXT,
			room TEXT,
			device TEXT,
			description TEXT,
			priority TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			remark TEXT,
			created_at TIMESTAMP
		);
		CREATE INDEX idx_issues_user_id ON issues(user_id);
		CREATE INDEX idx_issues_created_at ON issues(created_at);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE contact(
			id `+serial+`,
			name TEXT,
			email TEXT,
			message TEXT,
			created_at TIMESTAMP
		);
	`))

	return migs
}
