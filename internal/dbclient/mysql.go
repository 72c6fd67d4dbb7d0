package dbclient

import (
	"fmt"

	"gridboard/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

// buildMySQLDSN constructs a MySQL DSN from a mirror target.
func buildMySQLDSN(t *domain.MirrorTarget, password string) string {
	port := t.Port
	if port == 0 {
		port = 3306
	}
	// Format: user:password@tcp(host:port)/dbname?parseTime=true
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		t.Username, password, t.Host, port, t.Database,
	)
	if t.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}

type mysqlDialect struct{}

func (mysqlDialect) placeholder(int) string { return "?" }

func (mysqlDialect) createTable(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		data_json LONGTEXT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`
}

func (mysqlDialect) upsert(table string) string {
	return `INSERT INTO ` + table + ` (id, name, data_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), data_json = VALUES(data_json), updated_at = VALUES(updated_at)`
}
