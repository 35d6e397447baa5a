package app

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed init.sql
var initSQL string

// schemaVersion is bumped whenever init.sql changes incompatibly. Opening a
// database written by a different version fails instead of silently mixing
// layouts.
const schemaVersion = "1"

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(initSQL); err != nil {
		return dbError("apply schema", err)
	}

	var current string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = 'schema_version'`).Scan(&current)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES ('schema_version', ?)`, schemaVersion)
		if err != nil {
			return dbError("record schema version", err)
		}
	case err != nil:
		return dbError("read schema version", err)
	case current != schemaVersion:
		return dbError("schema check",
			fmt.Errorf("index schema version %s, this build supports %s", current, schemaVersion))
	}

	return nil
}
