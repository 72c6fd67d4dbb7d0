package dbclient

import (
	"context"
	"fmt"
	"regexp"

	"gridboard/internal/domain"
)

// DefaultTable is where layouts are mirrored when a target names no table.
const DefaultTable = "gridboard_layouts"

// Connector mirrors saved layouts into an external database.
type Connector interface {
	// TestConnection verifies connectivity.
	TestConnection(ctx context.Context) error

	// PushLayout inserts or replaces the layout with doc.ID.
	PushLayout(ctx context.Context, doc *domain.LayoutDocument) error

	// FetchLayout reads a mirrored layout back.
	FetchLayout(ctx context.Context, id string) (*domain.LayoutDocument, error)

	// DeleteLayout removes a mirrored layout. Missing layouts are not an error.
	DeleteLayout(ctx context.Context, id string) error

	// Close closes the connection.
	Close() error
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func tableName(t *domain.MirrorTarget) (string, error) {
	name := t.Table
	if name == "" {
		name = DefaultTable
	}
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return name, nil
}

// NewConnector creates a Connector for the given mirror target.
// The password must be provided separately (from the secret store).
func NewConnector(t *domain.MirrorTarget, password string) (Connector, error) {
	table, err := tableName(t)
	if err != nil {
		return nil, err
	}
	switch t.Driver {
	case domain.MirrorDriverSQLite:
		return newSQLiteConnector(t, table)
	case domain.MirrorDriverMySQL:
		return newSQLConnector("mysql", buildMySQLDSN(t, password), table, mysqlDialect{})
	case domain.MirrorDriverPostgres:
		return newSQLConnector("postgres", buildPostgresDSN(t, password), table, postgresDialect{})
	case domain.MirrorDriverMongoDB:
		return newMongoConnector(t, password, table)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", t.Driver)
	}
}
