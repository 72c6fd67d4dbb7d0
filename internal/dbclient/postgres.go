package dbclient

import (
	"fmt"
	"strconv"

	"gridboard/internal/domain"

	_ "github.com/lib/pq"
)

// buildPostgresDSN constructs a Postgres connection string from a mirror target.
func buildPostgresDSN(t *domain.MirrorTarget, password string) string {
	port := t.Port
	if port == 0 {
		port = 5432
	}
	sslMode := t.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		t.Host, port, t.Username, password, t.Database, sslMode,
	)
}

type postgresDialect struct{}

func (postgresDialect) placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) createTable(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data_json TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
}

func (postgresDialect) upsert(table string) string {
	return `INSERT INTO ` + table + ` (id, name, data_json, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, data_json = EXCLUDED.data_json, updated_at = EXCLUDED.updated_at`
}
