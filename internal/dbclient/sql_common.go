package dbclient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gridboard/internal/domain"
)

// dialect holds the statements that differ between SQL engines.
type dialect interface {
	placeholder(n int) string
	createTable(table string) string
	upsert(table string) string
}

// sqlConnector is the shared implementation for MySQL, Postgres, and SQLite.
type sqlConnector struct {
	driverName string
	db         *sql.DB
	table      string
	dialect    dialect

	mu    sync.Mutex
	ready bool
}

// newSQLConnector creates a generic SQL connector.
func newSQLConnector(driverName, dsn, table string, d dialect) (*sqlConnector, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	// Sensible pool settings for a desktop app
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	return &sqlConnector{driverName: driverName, db: db, table: table, dialect: d}, nil
}

func (c *sqlConnector) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}

// ensureTable creates the mirror table on first use.
func (c *sqlConnector) ensureTable(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if _, err := c.db.ExecContext(ctx, c.dialect.createTable(c.table)); err != nil {
		return fmt.Errorf("create %s mirror table: %w", c.driverName, err)
	}
	c.ready = true
	return nil
}

func (c *sqlConnector) PushLayout(ctx context.Context, doc *domain.LayoutDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := c.ensureTable(ctx); err != nil {
		return err
	}
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	created := doc.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	if _, err := c.db.ExecContext(ctx, c.dialect.upsert(c.table), doc.ID, doc.Name, string(raw), created.UTC(), updated.UTC()); err != nil {
		return fmt.Errorf("push layout %s: %w", doc.ID, err)
	}
	return nil
}

func (c *sqlConnector) FetchLayout(ctx context.Context, id string) (*domain.LayoutDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := c.ensureTable(ctx); err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT id, name, data_json, created_at, updated_at FROM %s WHERE id = %s`, c.table, c.dialect.placeholder(1))

	var doc domain.LayoutDocument
	var raw string
	err := c.db.QueryRowContext(ctx, q, id).Scan(&doc.ID, &doc.Name, &raw, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mirrored layout not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch layout %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", id, err)
	}
	return &doc, nil
}

func (c *sqlConnector) DeleteLayout(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := c.ensureTable(ctx); err != nil {
		return err
	}
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, c.table, c.dialect.placeholder(1))
	if _, err := c.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

func (c *sqlConnector) Close() error {
	return c.db.Close()
}
