package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gridboard/internal/domain"
)

// MaxRevisions is how many autosaved revisions are kept per layout.
const MaxRevisions = 40

// RevisionStore keeps autosaved copies of layouts in SQLite.
type RevisionStore struct {
	db *DB
}

func NewRevisionStore(db *DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// Push records a revision and prunes the oldest beyond MaxRevisions.
func (s *RevisionStore) Push(layoutID, label, dataJSON string) (*domain.LayoutRevision, error) {
	rev := &domain.LayoutRevision{
		ID:        uuid.New().String(),
		LayoutID:  layoutID,
		Label:     label,
		DataJSON:  dataJSON,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Conn().Exec(
		`INSERT INTO layout_revisions (id, layout_id, label, data_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		rev.ID, rev.LayoutID, rev.Label, rev.DataJSON, rev.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}
	if err := s.prune(layoutID, MaxRevisions); err != nil {
		return nil, err
	}
	return rev, nil
}

// List returns a layout's revisions, newest first.
func (s *RevisionStore) List(layoutID string) ([]domain.LayoutRevision, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, layout_id, label, data_json, created_at
		 FROM layout_revisions WHERE layout_id = ? ORDER BY rowid DESC`, layoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("load revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.LayoutRevision
	for rows.Next() {
		var r domain.LayoutRevision
		if err := rows.Scan(&r.ID, &r.LayoutID, &r.Label, &r.DataJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

func (s *RevisionStore) Get(id string) (*domain.LayoutRevision, error) {
	var r domain.LayoutRevision
	err := s.db.Conn().QueryRow(
		`SELECT id, layout_id, label, data_json, created_at FROM layout_revisions WHERE id = ?`, id,
	).Scan(&r.ID, &r.LayoutID, &r.Label, &r.DataJSON, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	return &r, nil
}

// prune removes the oldest revisions when the layout has more than max.
func (s *RevisionStore) prune(layoutID string, max int) error {
	var count int
	if err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM layout_revisions WHERE layout_id = ?`, layoutID).Scan(&count); err != nil {
		return fmt.Errorf("count revisions: %w", err)
	}
	if count <= max {
		return nil
	}
	_, err := s.db.Conn().Exec(
		`DELETE FROM layout_revisions WHERE id IN (
			SELECT id FROM layout_revisions WHERE layout_id = ?
			ORDER BY rowid ASC LIMIT ?
		)`, layoutID, count-max,
	)
	if err != nil {
		return fmt.Errorf("prune revisions: %w", err)
	}
	return nil
}
