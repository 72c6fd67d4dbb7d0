package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gridboard/internal/domain"
)

var ErrLayoutNotFound = errors.New("layout not found")

// LayoutStore implements domain.LayoutStore using SQLite. Layout data is
// kept as a JSON column in the export shape.
type LayoutStore struct {
	db *DB
}

func NewLayoutStore(db *DB) *LayoutStore {
	return &LayoutStore{db: db}
}

// SaveLayout inserts doc or overwrites the layout with the same id.
func (s *LayoutStore) SaveLayout(doc *domain.LayoutDocument) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	_, err = s.db.conn.Exec(
		`INSERT INTO layouts (id, name, data_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data_json = excluded.data_json, updated_at = excluded.updated_at`,
		doc.ID, doc.Name, string(raw), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (s *LayoutStore) GetLayout(id string) (*domain.LayoutDocument, error) {
	return s.scanOne(s.db.conn.QueryRow(
		`SELECT id, name, data_json, created_at, updated_at FROM layouts WHERE id = ?`, id,
	))
}

// GetLayoutByName looks a layout up by its unique name.
func (s *LayoutStore) GetLayoutByName(name string) (*domain.LayoutDocument, error) {
	return s.scanOne(s.db.conn.QueryRow(
		`SELECT id, name, data_json, created_at, updated_at FROM layouts WHERE name = ?`, name,
	))
}

func (s *LayoutStore) scanOne(row *sql.Row) (*domain.LayoutDocument, error) {
	var doc domain.LayoutDocument
	var raw string
	err := row.Scan(&doc.ID, &doc.Name, &raw, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get layout: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &doc.Data); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", doc.ID, err)
	}
	return &doc, nil
}

// ListLayouts returns every layout without its data, newest first.
func (s *LayoutStore) ListLayouts() ([]domain.LayoutDocument, error) {
	rows, err := s.db.conn.Query(`SELECT id, name, created_at, updated_at FROM layouts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.LayoutDocument
	for rows.Next() {
		var d domain.LayoutDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DeleteLayout removes a layout and its revisions.
func (s *LayoutStore) DeleteLayout(id string) error {
	if _, err := s.db.conn.Exec(`DELETE FROM layout_revisions WHERE layout_id = ?`, id); err != nil {
		return fmt.Errorf("delete revisions: %w", err)
	}
	res, err := s.db.conn.Exec(`DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLayoutNotFound
	}
	return nil
}
