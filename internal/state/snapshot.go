package state

import (
	"errors"
	"fmt"

	"gridboard/internal/domain"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrCanvasNotFound = errors.New("canvas not found")
	ErrCanvasExists   = errors.New("canvas already exists")
)

// Snapshot is one published version of the editor state. Published snapshots
// are never modified; Store.Update works on a clone.
type Snapshot struct {
	Canvases       map[string]*domain.Canvas `json:"canvases"`
	Order          []string                  `json:"order"`
	Viewport       domain.Viewport           `json:"viewport"`
	ActiveCanvasID string                    `json:"activeCanvasId,omitempty"`
	SelectedItemID string                    `json:"selectedItemId,omitempty"`
	Version        uint64                    `json:"version"`
}

// NewSnapshot returns a snapshot with no canvases. An empty viewport means
// desktop.
func NewSnapshot(viewport domain.Viewport) *Snapshot {
	if viewport == "" {
		viewport = domain.ViewportDesktop
	}
	return &Snapshot{Canvases: make(map[string]*domain.Canvas), Viewport: viewport}
}

func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Canvases = make(map[string]*domain.Canvas, len(s.Canvases))
	for id, c := range s.Canvases {
		out.Canvases[id] = c.Clone()
	}
	out.Order = append([]string(nil), s.Order...)
	return &out
}

func (s *Snapshot) Canvas(id string) (*domain.Canvas, bool) {
	c, ok := s.Canvases[id]
	return c, ok
}

// ItemRef locates an item inside a snapshot.
type ItemRef struct {
	CanvasID string
	Index    int
	Item     domain.GridItem
}

// FindItem searches canvases in order for the item with id.
func (s *Snapshot) FindItem(id string) (ItemRef, bool) {
	for _, cid := range s.Order {
		c := s.Canvases[cid]
		if i := c.IndexOf(id); i >= 0 {
			return ItemRef{CanvasID: cid, Index: i, Item: c.Items[i]}, true
		}
	}
	return ItemRef{}, false
}

// AddCanvas appends an empty canvas at the end of the order.
func (s *Snapshot) AddCanvas(id string) error {
	return s.InsertCanvas(len(s.Order), &domain.Canvas{ID: id, Items: []domain.GridItem{}})
}

// InsertCanvas puts c at position index in the canvas order.
func (s *Snapshot) InsertCanvas(index int, c *domain.Canvas) error {
	if _, exists := s.Canvases[c.ID]; exists {
		return fmt.Errorf("insert canvas %s: %w", c.ID, ErrCanvasExists)
	}
	index = clampIndex(index, len(s.Order))
	s.Canvases[c.ID] = c
	s.Order = append(s.Order[:index], append([]string{c.ID}, s.Order[index:]...)...)
	return nil
}

// RemoveCanvas deletes a canvas and everything on it. It returns the removed
// canvas and its position in the order.
func (s *Snapshot) RemoveCanvas(id string) (*domain.Canvas, int, error) {
	c, ok := s.Canvases[id]
	if !ok {
		return nil, -1, fmt.Errorf("remove canvas %s: %w", id, ErrCanvasNotFound)
	}
	index := -1
	for i, cid := range s.Order {
		if cid == id {
			index = i
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
	delete(s.Canvases, id)
	if s.ActiveCanvasID == id {
		s.ActiveCanvasID = ""
	}
	if s.SelectedItemID != "" && c.IndexOf(s.SelectedItemID) >= 0 {
		s.SelectedItemID = ""
	}
	return c, index, nil
}

// InsertItem places it on canvasID at index, clamped to the item count.
func (s *Snapshot) InsertItem(canvasID string, index int, it domain.GridItem) error {
	c, ok := s.Canvases[canvasID]
	if !ok {
		return fmt.Errorf("insert item %s: %w", it.ID, ErrCanvasNotFound)
	}
	it.CanvasID = canvasID
	index = clampIndex(index, len(c.Items))
	c.Items = append(c.Items, domain.GridItem{})
	copy(c.Items[index+1:], c.Items[index:])
	c.Items[index] = it
	if it.ZIndex > c.ZIndexCounter {
		c.ZIndexCounter = it.ZIndex
	}
	return nil
}

// AppendItem adds it at the top of canvasID's stack with a fresh z-index.
func (s *Snapshot) AppendItem(canvasID string, it domain.GridItem) error {
	c, ok := s.Canvases[canvasID]
	if !ok {
		return fmt.Errorf("append item %s: %w", it.ID, ErrCanvasNotFound)
	}
	it.CanvasID = canvasID
	it.ZIndex = c.NextZIndex()
	c.Items = append(c.Items, it)
	return nil
}

// RemoveItem takes an item off its canvas and reports where it was.
func (s *Snapshot) RemoveItem(id string) (ItemRef, error) {
	ref, ok := s.FindItem(id)
	if !ok {
		return ItemRef{}, fmt.Errorf("remove item %s: %w", id, ErrItemNotFound)
	}
	c := s.Canvases[ref.CanvasID]
	c.Items = append(c.Items[:ref.Index], c.Items[ref.Index+1:]...)
	if s.SelectedItemID == id {
		s.SelectedItemID = ""
	}
	return ref, nil
}

// ReplaceItem overwrites the stored item with the same id in place.
func (s *Snapshot) ReplaceItem(it domain.GridItem) error {
	ref, ok := s.FindItem(it.ID)
	if !ok {
		return fmt.Errorf("replace item %s: %w", it.ID, ErrItemNotFound)
	}
	it.CanvasID = ref.CanvasID
	s.Canvases[ref.CanvasID].Items[ref.Index] = it
	return nil
}

// ItemCount returns the number of items across all canvases.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, c := range s.Canvases {
		n += len(c.Items)
	}
	return n
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Items returns canvasID's items in paint order, or nil for an unknown canvas.
func (s *Snapshot) Items(canvasID string) []domain.GridItem {
	if c, ok := s.Canvases[canvasID]; ok {
		return c.Items
	}
	return nil
}
