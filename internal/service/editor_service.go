package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gridboard/internal/command"
	"gridboard/internal/domain"
	"gridboard/internal/frame"
	"gridboard/internal/gesture"
	"gridboard/internal/grid"
	"gridboard/internal/history"
	"gridboard/internal/logging"
	"gridboard/internal/state"
)

// ─────────────────────────────────────────────────────────────
// Editor Service: the manipulation orchestrator
// ─────────────────────────────────────────────────────────────
//
// EditorService owns one editor instance: its state store, history and
// coordinate system. It is not safe for concurrent use; the desktop shell
// and the MCP server call it through the frame loop.

var ErrUnknownComponent = errors.New("unknown component type")

// EditorOptions configures an EditorService. Zero fields take defaults.
type EditorOptions struct {
	HistoryLimit     int
	SnapBackDuration time.Duration
	FrameRate        int
	Grid             grid.Config
	Viewport         domain.Viewport
}

func DefaultEditorOptions() EditorOptions {
	return EditorOptions{
		HistoryLimit:     history.DefaultLimit,
		SnapBackDuration: 200 * time.Millisecond,
		FrameRate:        60,
		Grid:             grid.DefaultConfig(),
		Viewport:         domain.ViewportDesktop,
	}
}

func (o EditorOptions) withDefaults() EditorOptions {
	d := DefaultEditorOptions()
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = d.HistoryLimit
	}
	if o.SnapBackDuration <= 0 {
		o.SnapBackDuration = d.SnapBackDuration
	}
	if o.FrameRate <= 0 {
		o.FrameRate = d.FrameRate
	}
	if o.Grid.Validate() != nil {
		o.Grid = d.Grid
	}
	if o.Viewport == "" {
		o.Viewport = d.Viewport
	}
	return o
}

// FrameDuration is the display frame interval for FrameRate.
func (o EditorOptions) FrameDuration() time.Duration {
	return time.Second / time.Duration(o.withDefaults().FrameRate)
}

// DeletionRequest describes a pending destructive operation.
type DeletionRequest struct {
	Kind        string   `json:"kind"` // "items" or "canvas"
	CanvasID    string   `json:"canvasId,omitempty"`
	ItemIDs     []string `json:"itemIds,omitempty"`
	Description string   `json:"description"`
}

// DeletionHook approves or rejects a deletion. A nil hook approves
// everything; an error or panic counts as a rejection.
type DeletionHook func(ctx context.Context, req DeletionRequest) (bool, error)

// LayoutChanged is the payload of EventLayoutChanged.
type LayoutChanged struct {
	Version  uint64          `json:"version"`
	Viewport domain.Viewport `json:"viewport"`
	Items    int             `json:"items"`
}

// Rejection is the payload of EventItemRejected.
type Rejection struct {
	Reason        string   `json:"reason"`
	ComponentType string   `json:"componentType,omitempty"`
	CanvasID      string   `json:"canvasId,omitempty"`
	ItemIDs       []string `json:"itemIds,omitempty"`
}

type EditorService struct {
	ctx     context.Context
	opts    EditorOptions
	store   *state.Store
	history *history.History
	coords  *grid.System
	regions *gesture.RegionTable
	defs    *DefinitionRegistry
	sched   frame.Scheduler
	emitter EventEmitter
	hook    DeletionHook
	logger  *log.Logger
	env     command.Env
}

// NewEditorService creates an editor with an empty layout. The logger is
// taken from ctx.
func NewEditorService(ctx context.Context, opts EditorOptions, defs *DefinitionRegistry, sched frame.Scheduler, emitter EventEmitter) *EditorService {
	opts = opts.withDefaults()
	if emitter == nil {
		emitter = nopEmitter{}
	}
	if defs == nil {
		defs = NewDefinitionRegistry()
	}
	s := &EditorService{
		ctx:     ctx,
		opts:    opts,
		store:   state.New(opts.Viewport),
		history: history.New(opts.HistoryLimit),
		defs:    defs,
		sched:   sched,
		emitter: emitter,
		logger:  logging.FromContext(ctx).WithPrefix("editor"),
	}
	s.regions = gesture.NewRegionTable(func(canvasID string, width float64) {
		s.coords.ContainerResized(canvasID, width)
	})
	s.coords = grid.NewSystem(opts.Grid, s.regions)
	s.env = command.Env{Store: s.store, Logger: s.logger}

	s.store.Subscribe(func(snap *state.Snapshot) {
		s.emitter.Emit(s.ctx, EventLayoutChanged, LayoutChanged{
			Version:  snap.Version,
			Viewport: snap.Viewport,
			Items:    snap.ItemCount(),
		})
	})
	s.history.Subscribe(func(a history.Availability) {
		s.emitter.Emit(s.ctx, EventHistoryChanged, a)
	})
	return s
}

func (s *EditorService) SetDeletionHook(h DeletionHook) { s.hook = h }

func (s *EditorService) Store() *state.Store { return s.store }
func (s *EditorService) History() *history.History { return s.history }
func (s *EditorService) Coords() *grid.System { return s.coords }
func (s *EditorService) Regions() *gesture.RegionTable { return s.regions }
func (s *EditorService) Definitions() *DefinitionRegistry { return s.defs }
func (s *EditorService) Options() EditorOptions { return s.opts }
func (s *EditorService) Snapshot() *state.Snapshot { return s.store.Snapshot() }
func (s *EditorService) Viewport() domain.Viewport { return s.store.Snapshot().Viewport }
func (s *EditorService) Availability() history.Availability { return s.history.Availability() }

// ── Items ─────────────────────────────────────────────────

// PlaceComponent adds a new component at grid position (x, y). It returns a
// nil item when the component cannot fit the canvas.
func (s *EditorService) PlaceComponent(ctx context.Context, canvasID, componentType string, x, y int, config domain.Config) (*domain.GridItem, error) {
	def, ok := s.defs.Definition(componentType)
	if !ok {
		return nil, fmt.Errorf("place %s: %w", componentType, ErrUnknownComponent)
	}
	if _, ok := s.store.Snapshot().Canvas(canvasID); !ok {
		return nil, fmt.Errorf("place %s: %w", componentType, state.ErrCanvasNotFound)
	}

	p := grid.ApplyBoundaryConstraints(def, x, y, grid.CanvasWidthUnits)
	if p == nil {
		logging.FromContext(ctx).Debug("component does not fit", "type", componentType, "canvas", canvasID)
		s.emitter.Emit(s.ctx, EventItemRejected, Rejection{Reason: "too-large", ComponentType: componentType, CanvasID: canvasID})
		return nil, nil
	}

	if config == nil {
		config = s.defs.DefaultConfig(componentType)
	}
	it := domain.GridItem{
		ID:     uuid.New().String(),
		Type:   componentType,
		Name:   def.Name,
		Config: config.Clone(),
	}
	it.SetLayout(domain.ViewportDesktop, domain.Layout{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})

	added, err := s.AddItems([]domain.GridItem{withCanvas(it, canvasID)})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// AddItems appends items to their canvases as one batch. Items without an
// id get one. The returned items carry their assigned z-index.
func (s *EditorService) AddItems(items []domain.GridItem) ([]domain.GridItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	var refs []state.ItemRef
	err := s.store.Update(func(next *state.Snapshot) error {
		refs = refs[:0]
		for _, it := range items {
			it = it.Clone()
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			if _, dup := next.FindItem(it.ID); dup {
				return fmt.Errorf("add item %s: duplicate id", it.ID)
			}
			if err := next.AppendItem(it.CanvasID, it); err != nil {
				return err
			}
			c, _ := next.Canvas(it.CanvasID)
			refs = append(refs, state.ItemRef{CanvasID: it.CanvasID, Index: len(c.Items) - 1, Item: c.Items[len(c.Items)-1]})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add items: %w", err)
	}
	s.history.Push(command.NewBatchAdd(s.env, refs))

	out := make([]domain.GridItem, len(refs))
	for i, r := range refs {
		out[i] = r.Item.Clone()
	}
	return out, nil
}

// DeleteItems removes items after the deletion hook approves. It reports
// whether anything was deleted.
func (s *EditorService) DeleteItems(ctx context.Context, ids []string) (bool, error) {
	snap := s.store.Snapshot()
	var found []string
	for _, id := range ids {
		if _, ok := snap.FindItem(id); ok {
			found = append(found, id)
		}
	}
	if len(found) == 0 {
		return false, nil
	}

	req := DeletionRequest{Kind: "items", ItemIDs: found, Description: fmt.Sprintf("Delete %d item(s)", len(found))}
	if !s.approve(ctx, req) {
		s.emitter.Emit(s.ctx, EventItemRejected, Rejection{Reason: "deletion-rejected", ItemIDs: found})
		return false, nil
	}

	var refs []state.ItemRef
	err := s.store.Update(func(next *state.Snapshot) error {
		refs = refs[:0]
		for _, id := range found {
			ref, err := next.RemoveItem(id)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete items: %w", err)
	}
	// Indices must be those before any removal so undo restores paint order.
	for i := range refs {
		if r, ok := snap.FindItem(refs[i].Item.ID); ok {
			refs[i].Index = r.Index
		}
	}
	s.history.Push(command.NewBatchDelete(s.env, refs))
	return true, nil
}

// UpdateConfig merges patch into each item's config. A nil value in patch
// removes the key. It returns the number of items changed.
func (s *EditorService) UpdateConfig(ids []string, patch domain.Config) (int, error) {
	var changes []command.ConfigChange
	err := s.store.Update(func(next *state.Snapshot) error {
		changes = changes[:0]
		for _, id := range ids {
			ref, ok := next.FindItem(id)
			if !ok {
				return fmt.Errorf("update config %s: %w", id, state.ErrItemNotFound)
			}
			before := ref.Item.Config.Clone()
			after := before.Clone()
			if after == nil {
				after = domain.Config{}
			}
			for k, v := range patch {
				if v == nil {
					delete(after, k)
					continue
				}
				after[k] = v
			}
			it := ref.Item
			it.Config = after
			if err := next.ReplaceItem(it); err != nil {
				return err
			}
			changes = append(changes, command.ConfigChange{ItemID: id, Before: before, After: after})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(changes) > 0 {
		s.history.Push(command.NewBatchUpdateConfig(s.env, changes))
	}
	return len(changes), nil
}

// ── Canvases ──────────────────────────────────────────────

// AddCanvas appends an empty canvas. An empty id gets a generated one.
func (s *EditorService) AddCanvas(id string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}
	index := 0
	err := s.store.Update(func(next *state.Snapshot) error {
		index = len(next.Order)
		return next.AddCanvas(id)
	})
	if err != nil {
		return "", fmt.Errorf("add canvas: %w", err)
	}
	s.history.Push(command.NewAddCanvas(s.env, id, index))
	return id, nil
}

// RemoveCanvas deletes a canvas and its items after the deletion hook
// approves.
func (s *EditorService) RemoveCanvas(ctx context.Context, id string) (bool, error) {
	c, ok := s.store.Snapshot().Canvas(id)
	if !ok {
		return false, fmt.Errorf("remove canvas %s: %w", id, state.ErrCanvasNotFound)
	}
	req := DeletionRequest{Kind: "canvas", CanvasID: id, Description: fmt.Sprintf("Remove canvas %s with %d item(s)", id, len(c.Items))}
	if !s.approve(ctx, req) {
		s.emitter.Emit(s.ctx, EventItemRejected, Rejection{Reason: "deletion-rejected", CanvasID: id})
		return false, nil
	}

	var removed *domain.Canvas
	index := -1
	err := s.store.Update(func(next *state.Snapshot) error {
		var err error
		removed, index, err = next.RemoveCanvas(id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("remove canvas: %w", err)
	}
	s.history.Push(command.NewRemoveCanvas(s.env, removed, index))
	s.regions.Remove(id)
	return true, nil
}

// ── Selection and viewport ────────────────────────────────

// SelectItem marks itemID as selected and its canvas as active. An empty id
// clears the selection.
func (s *EditorService) SelectItem(itemID string) error {
	return s.store.Update(func(next *state.Snapshot) error {
		if itemID == "" {
			next.SelectedItemID = ""
			return nil
		}
		ref, ok := next.FindItem(itemID)
		if !ok {
			return fmt.Errorf("select %s: %w", itemID, state.ErrItemNotFound)
		}
		next.SelectedItemID = itemID
		next.ActiveCanvasID = ref.CanvasID
		return nil
	})
}

func (s *EditorService) SetViewport(v domain.Viewport) error {
	if v != domain.ViewportDesktop && v != domain.ViewportMobile {
		return fmt.Errorf("set viewport: unknown viewport %q", v)
	}
	if s.Viewport() == v {
		return nil
	}
	return s.store.Update(func(next *state.Snapshot) error {
		next.Viewport = v
		return nil
	})
}

// ── History ───────────────────────────────────────────────

func (s *EditorService) Undo() bool { return s.history.Undo() }
func (s *EditorService) Redo() bool { return s.history.Redo() }
func (s *EditorService) CanUndo() bool { return s.history.CanUndo() }
func (s *EditorService) CanRedo() bool { return s.history.CanRedo() }
func (s *EditorService) ClearHistory() { s.history.Clear() }

// approve runs the deletion hook, treating errors and panics as rejection.
func (s *EditorService) approve(ctx context.Context, req DeletionRequest) (ok bool) {
	if s.hook == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("deletion hook panicked", "kind", req.Kind, "panic", r)
			ok = false
		}
	}()
	approved, err := s.hook(ctx, req)
	if err != nil {
		s.logger.Debug("deletion rejected", "kind", req.Kind, "err", err)
		return false
	}
	return approved
}

func withCanvas(it domain.GridItem, canvasID string) domain.GridItem {
	it.CanvasID = canvasID
	return it
}
