package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gridboard/internal/domain"
	"gridboard/internal/logging"
	"gridboard/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Layout Service: named layouts, revisions and mirroring
// ─────────────────────────────────────────────────────────────

// Executor runs fn on the editor's goroutine and waits for it.
// frame.Loop.Do has this shape.
type Executor func(ctx context.Context, fn func()) error

// Inline runs fn on the calling goroutine.
func Inline(_ context.Context, fn func()) error {
	fn()
	return nil
}

type LayoutService struct {
	editor    *EditorService
	exec      Executor
	layouts   *storage.LayoutStore
	revisions *storage.RevisionStore
	mirror    *MirrorService
	emitter   EventEmitter
	logger    *log.Logger

	mu          sync.Mutex
	currentID   string
	currentName string
	lastVersion uint64
}

func NewLayoutService(ctx context.Context, editor *EditorService, exec Executor, layouts *storage.LayoutStore, revisions *storage.RevisionStore, emitter EventEmitter) *LayoutService {
	if exec == nil {
		exec = Inline
	}
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &LayoutService{
		editor:    editor,
		exec:      exec,
		layouts:   layouts,
		revisions: revisions,
		emitter:   emitter,
		logger:    logging.FromContext(ctx).WithPrefix("layouts"),
	}
}

// SetMirror enables pushing saved layouts to external databases.
func (s *LayoutService) SetMirror(m *MirrorService) { s.mirror = m }

// Current returns the id and name of the open layout; empty when unsaved.
func (s *LayoutService) Current() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID, s.currentName
}

// snapshot exports the live layout together with the store version.
func (s *LayoutService) snapshot(ctx context.Context) (domain.ExportData, uint64, error) {
	var data domain.ExportData
	var version uint64
	err := s.exec(ctx, func() {
		data = s.editor.Export()
		version = s.editor.Snapshot().Version
	})
	return data, version, err
}

// SaveLayout stores the live layout under name, overwriting a layout with
// the same name.
func (s *LayoutService) SaveLayout(ctx context.Context, name string) (*domain.LayoutDocument, error) {
	if name == "" {
		return nil, fmt.Errorf("save layout: empty name")
	}
	data, version, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}

	doc := &domain.LayoutDocument{ID: uuid.New().String(), Name: name, Data: data}
	existing, err := s.layouts.GetLayoutByName(name)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	case !errors.Is(err, storage.ErrLayoutNotFound):
		return nil, fmt.Errorf("save layout: %w", err)
	}
	if err := s.layouts.SaveLayout(doc); err != nil {
		s.logger.Error("save failed", "name", name, "err", err)
		return nil, err
	}

	s.mu.Lock()
	s.currentID, s.currentName, s.lastVersion = doc.ID, doc.Name, version
	s.mu.Unlock()

	s.logger.Info("layout saved", "name", name, "id", doc.ID)
	s.emitter.Emit(ctx, EventLayoutSaved, doc.ID)
	s.pushMirror(ctx, doc)
	return doc, nil
}

// LoadLayout replaces the live layout with a saved one. History is cleared.
func (s *LayoutService) LoadLayout(ctx context.Context, id string) (*domain.LayoutDocument, error) {
	doc, err := s.layouts.GetLayout(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, doc)
}

func (s *LayoutService) LoadLayoutByName(ctx context.Context, name string) (*domain.LayoutDocument, error) {
	doc, err := s.layouts.GetLayoutByName(name)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, doc)
}

func (s *LayoutService) load(ctx context.Context, doc *domain.LayoutDocument) (*domain.LayoutDocument, error) {
	id := doc.ID
	var importErr error
	var version uint64
	if err := s.exec(ctx, func() {
		importErr = s.editor.Import(doc.Data)
		version = s.editor.Snapshot().Version
	}); err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if importErr != nil {
		return nil, fmt.Errorf("load layout %s: %w", id, importErr)
	}

	s.mu.Lock()
	s.currentID, s.currentName, s.lastVersion = doc.ID, doc.Name, version
	s.mu.Unlock()
	return doc, nil
}

func (s *LayoutService) ListLayouts() ([]domain.LayoutDocument, error) {
	return s.layouts.ListLayouts()
}

func (s *LayoutService) DeleteLayout(ctx context.Context, id string) error {
	if err := s.layouts.DeleteLayout(id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.currentID == id {
		s.currentID, s.currentName, s.lastVersion = "", "", 0
	}
	s.mu.Unlock()
	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, id); err != nil {
			s.logger.Error("mirror delete failed", "id", id, "err", err)
		}
	}
	return nil
}

// SaveRevision records the live layout as a revision of the open layout.
// It does nothing when no layout is open or nothing changed since the last
// save.
func (s *LayoutService) SaveRevision(ctx context.Context, label string) (bool, error) {
	s.mu.Lock()
	id, last := s.currentID, s.lastVersion
	s.mu.Unlock()
	if id == "" {
		return false, nil
	}
	data, version, err := s.snapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}
	if version == last {
		return false, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("encode revision: %w", err)
	}
	if _, err := s.revisions.Push(id, label, string(raw)); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.currentID == id {
		s.lastVersion = version
	}
	s.mu.Unlock()
	s.logger.Debug("revision saved", "layout", id, "version", version)
	return true, nil
}

func (s *LayoutService) ListRevisions(layoutID string) ([]domain.LayoutRevision, error) {
	return s.revisions.List(layoutID)
}

// RestoreRevision imports a revision into the editor.
func (s *LayoutService) RestoreRevision(ctx context.Context, revisionID string) error {
	rev, err := s.revisions.Get(revisionID)
	if err != nil {
		return err
	}
	var data domain.ExportData
	if err := json.Unmarshal([]byte(rev.DataJSON), &data); err != nil {
		return fmt.Errorf("decode revision: %w", err)
	}
	var importErr error
	if err := s.exec(ctx, func() { importErr = s.editor.Import(data) }); err != nil {
		return err
	}
	return importErr
}

func (s *LayoutService) pushMirror(ctx context.Context, doc *domain.LayoutDocument) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Push(ctx, doc); err != nil {
		s.logger.Error("mirror push failed", "id", doc.ID, "err", err)
	}
}
