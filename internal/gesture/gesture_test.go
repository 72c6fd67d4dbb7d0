package gesture

import (
	"testing"

	"gridboard/internal/domain"
	"gridboard/internal/frame"
	"gridboard/internal/grid"
)

type defs map[string]*domain.ComponentDefinition

func (d defs) Definition(t string) (*domain.ComponentDefinition, bool) {
	def, ok := d[t]
	return def, ok
}

type rig struct {
	regions *RegionTable
	coords  *grid.System
	surface *MemorySurface
	sched   *frame.Manual
	updates []domain.GridItem
}

// newRig lays out two 1000px canvases, hero above features, giving a 20px unit.
func newRig() *rig {
	r := &rig{surface: NewMemorySurface(), sched: frame.NewManual()}
	r.regions = NewRegionTable(nil)
	r.coords = grid.NewSystem(grid.DefaultConfig(), r.regions)
	r.regions.Set(Region{CanvasID: "hero", Bounds: Rect{X: 0, Y: 0, W: 1000, H: 400}, HasContainer: true})
	r.regions.Set(Region{CanvasID: "features", Bounds: Rect{X: 0, Y: 500, W: 1000, H: 400}, HasContainer: true})
	return r
}

func (r *rig) drag(cfg DragConfig) *Drag {
	cfg.Coords = r.coords
	cfg.Regions = r.regions
	cfg.Surface = r.surface
	cfg.Scheduler = r.sched
	if cfg.OnUpdate == nil {
		cfg.OnUpdate = func(it domain.GridItem) { r.updates = append(r.updates, it) }
	}
	return NewDrag(cfg)
}

func (r *rig) resize(d domain.DefinitionLookup) *Resize {
	return NewResize(ResizeConfig{
		Coords:      r.coords,
		Measurer:    r.regions,
		Surface:     r.surface,
		Scheduler:   r.sched,
		Definitions: d,
		OnUpdate:    func(it domain.GridItem) { r.updates = append(r.updates, it) },
	})
}

func heroItem() domain.GridItem {
	it := domain.GridItem{ID: "a", CanvasID: "hero", Type: "header"}
	it.SetLayout(domain.ViewportDesktop, domain.Layout{X: 0, Y: 0, Width: 10, Height: 6})
	return it
}

func TestDrag_FiftyMovesOneCommit(t *testing.T) {
	r := newRig()
	d := r.drag(DragConfig{})
	r.surface.SetSize("a", 200, 120)
	r.surface.SetTransform("a", Point{})
	before := r.surface.Writes()

	if !d.Start(heroItem()) {
		t.Fatal("Start refused")
	}
	for i := 0; i < 50; i++ {
		d.Move(2, 0.8)
	}
	if r.sched.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", r.sched.Pending())
	}
	r.sched.Flush()
	if got := r.surface.Writes() - before; got != 1 {
		t.Fatalf("visual writes = %d, want 1", got)
	}

	if out := d.End(); out != DragCommitted {
		t.Fatalf("outcome = %v, want committed", out)
	}
	if len(r.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(r.updates))
	}
	l := r.updates[0].Layout(domain.ViewportDesktop)
	if l.X != 5 || l.Y != 2 || l.Width != 10 || l.Height != 6 {
		t.Errorf("layout = %+v, want x=5 y=2 10x6", l)
	}
	if p := r.surface.Transform("a"); p.X != 100 || p.Y != 40 {
		t.Errorf("final transform = %+v, want snapped (100,40)", p)
	}
}

func TestDrag_ClampsToCanvasRightEdge(t *testing.T) {
	r := newRig()
	d := r.drag(DragConfig{})
	r.surface.SetSize("a", 200, 120)
	d.Start(heroItem())
	d.Move(810, 0)
	d.End()
	if l := r.updates[0].Layout(domain.ViewportDesktop); l.X != 40 {
		t.Errorf("x = %d, want 40", l.X)
	}
}

func TestDrag_MobileWritesCustomizedLayout(t *testing.T) {
	r := newRig()
	d := r.drag(DragConfig{Viewport: func() domain.Viewport { return domain.ViewportMobile }})
	r.surface.SetSize("a", 200, 120)
	d.Start(heroItem())
	d.Move(40, 0)
	d.End()
	it := r.updates[0]
	if m := it.Layouts[domain.ViewportMobile]; !m.Customized || m.X != 2 {
		t.Errorf("mobile layout = %+v, want customized x=2", m)
	}
	if it.Layout(domain.ViewportDesktop).X != 0 {
		t.Error("desktop layout changed by a mobile drag")
	}
}

func TestDrag_CrossCanvasTransfer(t *testing.T) {
	r := newRig()
	var got *Transfer
	d := r.drag(DragConfig{OnTransfer: func(tr Transfer) { got = &tr }})
	r.surface.SetSize("a", 200, 120)
	d.Start(heroItem())
	d.Move(0, 550)

	if out := d.End(); out != DragTransferred {
		t.Fatalf("outcome = %v, want transferred", out)
	}
	if len(r.updates) != 0 {
		t.Error("transfer also committed an in-canvas update")
	}
	if got == nil || got.TargetCanvasID != "features" || got.SourceCanvasID != "hero" {
		t.Fatalf("transfer = %+v", got)
	}
	if got.Position.X != 0 || got.Position.Y != 50 {
		t.Errorf("position = %+v, want (0,50)", got.Position)
	}
}

func TestDrag_SnapBackOutsideAnyCanvas(t *testing.T) {
	r := newRig()
	snapped := ""
	d := r.drag(DragConfig{OnSnapBack: func(id string) { snapped = id }})
	r.surface.SetSize("a", 200, 120)
	r.surface.SetTransform("a", Point{X: 20, Y: 20})
	d.Start(heroItem())
	d.Move(0, 400)
	r.sched.Flush()

	if out := d.End(); out != DragSnappedBack {
		t.Fatalf("outcome = %v, want snapped-back", out)
	}
	if len(r.updates) != 0 {
		t.Error("snap-back committed an update")
	}
	if snapped != "a" || r.surface.Animations() != 1 {
		t.Errorf("snapped=%q animations=%d", snapped, r.surface.Animations())
	}
	if p := r.surface.Transform("a"); p.X != 20 || p.Y != 20 {
		t.Errorf("transform = %+v, want origin (20,20)", p)
	}
}

func TestDrag_SnapBackWithoutContainer(t *testing.T) {
	r := newRig()
	r.regions.Set(Region{CanvasID: "ghost", Bounds: Rect{X: 0, Y: 1000, W: 1000, H: 400}})
	d := r.drag(DragConfig{})
	r.surface.SetSize("a", 200, 120)
	d.Start(heroItem())
	d.Move(0, 1100)
	if out := d.End(); out != DragSnappedBack {
		t.Fatalf("outcome = %v, want snapped-back", out)
	}
}

func TestDrag_DestroyDoesNotCommit(t *testing.T) {
	r := newRig()
	d := r.drag(DragConfig{})
	d.Start(heroItem())
	d.Move(10, 10)
	d.Destroy()
	if r.sched.Flush() != 0 {
		t.Error("pending visual update survived Destroy")
	}
	if d.End() != DragIgnored || len(r.updates) != 0 {
		t.Error("destroyed drag committed")
	}
}

func TestResolveRegion_PrefersContainment(t *testing.T) {
	regions := []Region{
		{CanvasID: "outer", Bounds: Rect{W: 1000, H: 1000}},
		{CanvasID: "inner", Bounds: Rect{X: 100, Y: 100, W: 300, H: 300}},
	}
	if r, _ := ResolveRegion(regions, Rect{X: 150, Y: 150, W: 50, H: 50}); r.CanvasID != "inner" {
		t.Errorf("got %q, want inner", r.CanvasID)
	}
	// Too big for inner, center still inside it, but outer contains it fully.
	if r, _ := ResolveRegion(regions, Rect{X: 90, Y: 90, W: 400, H: 400}); r.CanvasID != "outer" {
		t.Errorf("got %q, want outer", r.CanvasID)
	}
	if r, ok := ResolveRegion(regions[1:], Rect{X: 90, Y: 90, W: 400, H: 400}); !ok || r.CanvasID != "inner" {
		t.Errorf("center fallback: got %q ok=%v", r.CanvasID, ok)
	}
	if _, ok := ResolveRegion(regions[1:], Rect{X: 2000, Y: 2000, W: 10, H: 10}); ok {
		t.Error("resolved a drop far outside every region")
	}
}

func TestRegionTable_ForwardsWidthChanges(t *testing.T) {
	var resized []float64
	tab := NewRegionTable(func(_ string, w float64) { resized = append(resized, w) })
	tab.Set(Region{CanvasID: "c", Bounds: Rect{W: 800}, HasContainer: true})
	tab.Set(Region{CanvasID: "c", Bounds: Rect{W: 800, H: 300}, HasContainer: true})
	tab.Set(Region{CanvasID: "c", Bounds: Rect{W: 600}, HasContainer: true})
	if len(resized) != 1 || resized[0] != 600 {
		t.Errorf("resize notifications = %v, want [600]", resized)
	}
}

func TestResize_DirectionalSnap(t *testing.T) {
	tests := []struct {
		name  string
		dx    float64
		wantW int
	}{
		{"grow rounds up", 13, 6},     // 115px -> 120px
		{"shrink rounds down", -7, 4}, // 95px -> 80px
		{"unchanged rounds", 0, 5},    // 102px -> 100px
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			r.surface.SetSize("a", 102, 120)
			rz := r.resize(nil)
			if !rz.Start(heroItem(), HandleE) {
				t.Fatal("Start refused")
			}
			rz.Move(tt.dx, 0)
			rz.End()
			if len(r.updates) != 1 {
				t.Fatalf("updates = %d, want 1", len(r.updates))
			}
			if w := r.updates[0].Layout(domain.ViewportDesktop).Width; w != tt.wantW {
				t.Errorf("width = %d, want %d", w, tt.wantW)
			}
		})
	}
}

func TestResize_LeftHandleKeepsRightEdge(t *testing.T) {
	r := newRig()
	it := heroItem()
	it.SetLayout(domain.ViewportDesktop, domain.Layout{X: 10, Y: 0, Width: 10, Height: 6})
	r.surface.SetTransform("a", Point{X: 200})
	r.surface.SetSize("a", 200, 120)
	rz := r.resize(nil)
	rz.Start(it, HandleW)
	rz.Move(-45, 0)
	rz.End()
	l := r.updates[0].Layout(domain.ViewportDesktop)
	if l.X+l.Width != 20 {
		t.Errorf("right edge = %d, want 20 (layout %+v)", l.X+l.Width, l)
	}
	if l.Width != 13 {
		t.Errorf("width = %d, want 13", l.Width)
	}
}

func TestResize_ClampsToMinAndMax(t *testing.T) {
	d := defs{"header": {
		Type:        "header",
		DefaultSize: domain.Size{Width: 10, Height: 6},
		MinSize:     &domain.Size{Width: 5, Height: 3},
		MaxSize:     &domain.Size{Width: 12, Height: 10},
	}}
	r := newRig()
	r.surface.SetSize("a", 200, 120)
	rz := r.resize(d)
	rz.Start(heroItem(), HandleSE)
	rz.Move(-500, -500)
	r.sched.Flush()
	if w, h := r.surface.Size("a"); w != 100 || h != 60 {
		t.Errorf("live size = %vx%v, want clamped 100x60", w, h)
	}
	rz.Move(1000, 1000)
	rz.End()
	l := r.updates[0].Layout(domain.ViewportDesktop)
	if l.Width != 12 || l.Height != 10 {
		t.Errorf("size = %dx%d, want 12x10", l.Width, l.Height)
	}
}

func TestResize_StopsAtCanvasEdge(t *testing.T) {
	r := newRig()
	it := heroItem()
	it.SetLayout(domain.ViewportDesktop, domain.Layout{X: 40, Y: 0, Width: 8, Height: 6})
	r.surface.SetTransform("a", Point{X: 800})
	r.surface.SetSize("a", 160, 120)
	rz := r.resize(nil)
	rz.Start(it, HandleE)
	rz.Move(300, 0)
	r.sched.Flush()
	if w, _ := r.surface.Size("a"); w != 200 {
		t.Errorf("live width = %v, want 200", w)
	}
	rz.End()
	if l := r.updates[0].Layout(domain.ViewportDesktop); l.X != 40 || l.Width != 10 {
		t.Errorf("layout = %+v, want x=40 width=10", l)
	}
}

func TestResize_LockedAxisRefusesHandle(t *testing.T) {
	d := defs{"divider": {
		Type:        "divider",
		DefaultSize: domain.Size{Width: 50, Height: 1},
		MinSize:     &domain.Size{Width: 10, Height: 1},
		MaxSize:     &domain.Size{Width: 50, Height: 1},
	}}
	it := heroItem()
	it.Type = "divider"
	rz := newRig().resize(d)
	if rz.Start(it, HandleS) {
		t.Error("vertical handle started on a height-locked component")
	}
	if rz.Start(it, HandleSE) {
		t.Error("corner handle started on a height-locked component")
	}
	if !rz.Start(it, HandleE) {
		t.Error("horizontal handle refused")
	}
}

func TestEnabledHandles(t *testing.T) {
	if got := len(EnabledHandles(nil)); got != 8 {
		t.Errorf("no definition: %d handles, want 8", got)
	}
	locked := &domain.ComponentDefinition{
		MinSize: &domain.Size{Width: 4, Height: 4},
		MaxSize: &domain.Size{Width: 4, Height: 4},
	}
	if got := EnabledHandles(locked); len(got) != 0 {
		t.Errorf("fully locked: %v, want none", got)
	}
}
