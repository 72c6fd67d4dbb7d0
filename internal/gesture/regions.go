package gesture

import "sync"

// Region is a canvas as currently laid out on the page.
type Region struct {
	CanvasID     string `json:"canvasId"`
	Bounds       Rect   `json:"bounds"`
	HasContainer bool   `json:"hasContainer"`
}

// RegionLocator enumerates every known canvas region for drop hit-testing.
type RegionLocator interface {
	Regions() []Region
}

// ContainerMeasurer reports a canvas container's live pixel size.
type ContainerMeasurer interface {
	Measure(canvasID string) (width, height float64, ok bool)
}

// ResolveRegion finds the region an item rectangle was dropped on. Full
// containment wins, the innermost region first; oversized items fall back to
// the region containing their center.
func ResolveRegion(regions []Region, item Rect) (Region, bool) {
	best := -1
	for i, r := range regions {
		if r.Bounds.Contains(item) && (best < 0 || r.Bounds.area() < regions[best].Bounds.area()) {
			best = i
		}
	}
	if best >= 0 {
		return regions[best], true
	}
	c := item.Center()
	for _, r := range regions {
		if r.Bounds.ContainsPoint(c) {
			return r, true
		}
	}
	return Region{}, false
}

// RegionTable is an in-memory RegionLocator and ContainerMeasurer fed by the
// front end whenever a canvas is laid out. Width changes are forwarded to
// OnResize so unit-size caches can be invalidated.
type RegionTable struct {
	mu       sync.RWMutex
	regions  map[string]Region
	order    []string
	onResize func(canvasID string, width float64)
}

func NewRegionTable(onResize func(canvasID string, width float64)) *RegionTable {
	return &RegionTable{regions: make(map[string]Region), onResize: onResize}
}

// Set records the bounds of a canvas.
func (t *RegionTable) Set(r Region) {
	t.mu.Lock()
	prev, existed := t.regions[r.CanvasID]
	if !existed {
		t.order = append(t.order, r.CanvasID)
	}
	t.regions[r.CanvasID] = r
	onResize := t.onResize
	t.mu.Unlock()

	if onResize != nil && existed && prev.Bounds.W != r.Bounds.W {
		onResize(r.CanvasID, r.Bounds.W)
	}
}

func (t *RegionTable) Remove(canvasID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.regions[canvasID]; !ok {
		return
	}
	delete(t.regions, canvasID)
	for i, id := range t.order {
		if id == canvasID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *RegionTable) Region(canvasID string) (Region, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.regions[canvasID]
	return r, ok
}

func (t *RegionTable) Regions() []Region {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Region, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.regions[id])
	}
	return out
}

func (t *RegionTable) Measure(canvasID string) (float64, float64, bool) {
	r, ok := t.Region(canvasID)
	if !ok || !r.HasContainer {
		return 0, 0, false
	}
	return r.Bounds.W, r.Bounds.H, true
}

// ContainerWidth lets the table act as the coordinate system's width source.
func (t *RegionTable) ContainerWidth(canvasID string) (float64, bool) {
	w, _, ok := t.Measure(canvasID)
	return w, ok
}
