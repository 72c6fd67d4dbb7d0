package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"gridboard/internal/domain"
	"gridboard/internal/state"
)

// Export returns the current layout in the persisted shape.
func (s *EditorService) Export() domain.ExportData {
	return ExportSnapshot(s.store.Snapshot())
}

// ExportSnapshot converts a snapshot to the persisted shape.
func ExportSnapshot(snap *state.Snapshot) domain.ExportData {
	data := domain.ExportData{
		Version:  domain.ExportVersion,
		Viewport: snap.Viewport,
		Canvases: make(map[string]domain.ExportCanvas, len(snap.Canvases)),
		Order:    append([]string(nil), snap.Order...),
	}
	for _, id := range snap.Order {
		c := snap.Canvases[id]
		items := make([]domain.GridItem, len(c.Items))
		for i := range c.Items {
			items[i] = c.Items[i].Clone()
		}
		data.Canvases[id] = domain.ExportCanvas{Items: items}
	}
	return data
}

// Import replaces the whole layout and clears history. Missing item ids are
// generated and z-indices are renumbered per canvas, keeping stacking order.
func (s *EditorService) Import(data domain.ExportData) error {
	snap, err := SnapshotFromExport(data)
	if err != nil {
		return err
	}
	s.store.Replace(snap)
	s.history.Clear()
	s.logger.Info("layout imported", "canvases", len(snap.Order), "items", snap.ItemCount())
	return nil
}

// SnapshotFromExport builds a fresh snapshot from exported data.
func SnapshotFromExport(data domain.ExportData) (*state.Snapshot, error) {
	if data.Version == "" {
		return nil, fmt.Errorf("import layout: missing version")
	}
	vp := data.Viewport
	switch vp {
	case "":
		vp = domain.ViewportDesktop
	case domain.ViewportDesktop, domain.ViewportMobile:
	default:
		return nil, fmt.Errorf("import layout: unknown viewport %q", vp)
	}

	snap := state.NewSnapshot(vp)
	seen := make(map[string]bool)
	for _, id := range canvasOrder(data) {
		c := &domain.Canvas{ID: id, Items: make([]domain.GridItem, 0, len(data.Canvases[id].Items))}
		for _, it := range data.Canvases[id].Items {
			it = it.Clone()
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			if seen[it.ID] {
				return nil, fmt.Errorf("import layout: duplicate item id %s", it.ID)
			}
			seen[it.ID] = true
			it.CanvasID = id
			c.Items = append(c.Items, it)
		}
		renumberZ(c)
		if err := snap.InsertCanvas(len(snap.Order), c); err != nil {
			return nil, fmt.Errorf("import layout: %w", err)
		}
	}
	return snap, nil
}

// canvasOrder uses data.Order when it names exactly the exported canvases.
func canvasOrder(data domain.ExportData) []string {
	if len(data.Order) == len(data.Canvases) {
		ok := true
		dup := make(map[string]bool, len(data.Order))
		for _, id := range data.Order {
			if _, found := data.Canvases[id]; !found || dup[id] {
				ok = false
				break
			}
			dup[id] = true
		}
		if ok {
			return append([]string(nil), data.Order...)
		}
	}
	ids := make([]string, 0, len(data.Canvases))
	for id := range data.Canvases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func renumberZ(c *domain.Canvas) {
	idx := make([]int, len(c.Items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return c.Items[idx[a]].ZIndex < c.Items[idx[b]].ZIndex })
	for rank, i := range idx {
		c.Items[i].ZIndex = rank + 1
	}
	c.ZIndexCounter = len(c.Items)
}
