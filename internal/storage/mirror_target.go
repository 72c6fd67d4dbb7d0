package storage

import (
	"database/sql"
	"fmt"
	"time"

	"gridboard/internal/domain"
)

// MirrorTargetStore manages mirror database records in SQLite.
type MirrorTargetStore struct {
	db *DB
}

func NewMirrorTargetStore(db *DB) *MirrorTargetStore {
	return &MirrorTargetStore{db: db}
}

const mirrorColumns = `id, name, driver, host, port, database_name, username, ssl_mode, table_name, extra_json, enabled, created_at, updated_at`

func (s *MirrorTargetStore) CreateTarget(t *domain.MirrorTarget) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.Conn().Exec(
		`INSERT INTO mirror_targets (`+mirrorColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Driver, t.Host, t.Port, t.Database, t.Username, t.SSLMode, t.Table, t.ExtraJSON, t.Enabled, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTarget(row scanner) (*domain.MirrorTarget, error) {
	t := &domain.MirrorTarget{}
	err := row.Scan(&t.ID, &t.Name, &t.Driver, &t.Host, &t.Port, &t.Database, &t.Username, &t.SSLMode, &t.Table, &t.ExtraJSON, &t.Enabled, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *MirrorTargetStore) GetTarget(id string) (*domain.MirrorTarget, error) {
	t, err := scanTarget(s.db.Conn().QueryRow(`SELECT `+mirrorColumns+` FROM mirror_targets WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mirror target not found: %s", id)
	}
	return t, err
}

func (s *MirrorTargetStore) ListTargets() ([]domain.MirrorTarget, error) {
	rows, err := s.db.Conn().Query(`SELECT ` + mirrorColumns + ` FROM mirror_targets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []domain.MirrorTarget
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, *t)
	}
	return targets, rows.Err()
}

func (s *MirrorTargetStore) UpdateTarget(t *domain.MirrorTarget) error {
	t.UpdatedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`UPDATE mirror_targets SET name=?, driver=?, host=?, port=?, database_name=?, username=?, ssl_mode=?, table_name=?, extra_json=?, enabled=?, updated_at=?
		 WHERE id=?`,
		t.Name, t.Driver, t.Host, t.Port, t.Database, t.Username, t.SSLMode, t.Table, t.ExtraJSON, t.Enabled, t.UpdatedAt, t.ID,
	)
	return err
}

func (s *MirrorTargetStore) DeleteTarget(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM mirror_targets WHERE id = ?`, id)
	return err
}
