package postgres

import (
	"database/sql"
	"fmt"
	"os"
)

var schemaPaths = []string{
	"script/migration/schema.sql",       // go run ./cmd/api from the backend root
	"../script/migration/schema.sql",    // from cmd/
	"../../script/migration/schema.sql", // from cmd/api
	"backend/script/migration/schema.sql",
}

// RunMigrations executes schema.sql; every statement in it is idempotent.
func RunMigrations(db *sql.DB) error {
	schemaPath := findSchema()

	content, err := os.ReadFile(schemaPath)
	if err != nil {
		wd, _ := os.Getwd()
		return fmt.Errorf("failed to read migration file '%s' (wd %s): %v", schemaPath, wd, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute schema.sql: %v", err)
	}
	return nil
}

func findSchema() string {
	if p := os.Getenv("SCHEMA_PATH"); p != "" {
		return p
	}
	for _, path := range schemaPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return schemaPaths[0]
}
