package grid

import (
	"testing"

	"gridboard/internal/domain"
)

func TestConstrainPosition_Idempotent(t *testing.T) {
	for x := -30; x <= 80; x += 7 {
		for y := -10; y <= 10; y += 5 {
			for w := 0; w <= 60; w += 6 {
				x1, y1, _ := ConstrainPosition(x, y, w, 4, CanvasWidthUnits)
				x2, y2, adjusted := ConstrainPosition(x1, y1, w, 4, CanvasWidthUnits)
				if x1 != x2 || y1 != y2 {
					t.Fatalf("(%d,%d,w=%d): once=(%d,%d) twice=(%d,%d)", x, y, w, x1, y1, x2, y2)
				}
				if adjusted {
					t.Fatalf("(%d,%d,w=%d): second pass reported an adjustment", x, y, w)
				}
			}
		}
	}
}

func TestConstrainPosition_NoVerticalBound(t *testing.T) {
	x, y, adjusted := ConstrainPosition(5, 100000, 10, 6, CanvasWidthUnits)
	if x != 5 || y != 100000 || adjusted {
		t.Errorf("got (%d,%d,%v), want (5,100000,false)", x, y, adjusted)
	}
}

func TestApplyBoundaryConstraints_RejectsTooWide(t *testing.T) {
	def := &domain.ComponentDefinition{
		Type:        "wide",
		DefaultSize: domain.Size{Width: 60, Height: 5},
		MinSize:     &domain.Size{Width: 60, Height: 1},
	}
	if CanFit(def, CanvasWidthUnits) {
		t.Fatal("CanFit should be false")
	}
	if p := ApplyBoundaryConstraints(def, 0, 0, CanvasWidthUnits); p != nil {
		t.Fatalf("expected nil placement, got %+v", p)
	}
}

func TestApplyBoundaryConstraints_ClampsPosition(t *testing.T) {
	def := &domain.ComponentDefinition{Type: "card", DefaultSize: domain.Size{Width: 10, Height: 6}}
	got := ApplyBoundaryConstraints(def, 45, 0, CanvasWidthUnits)
	want := Placement{X: 40, Y: 0, Width: 10, Height: 6, PositionAdjusted: true, SizeAdjusted: false}
	if got == nil || *got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestConstrainSize(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.ComponentDefinition
		want     domain.Size
		adjusted bool
	}{
		{
			name: "fits",
			def:  domain.ComponentDefinition{DefaultSize: domain.Size{Width: 20, Height: 8}},
			want: domain.Size{Width: 20, Height: 8},
		},
		{
			name:     "shrunk to canvas",
			def:      domain.ComponentDefinition{DefaultSize: domain.Size{Width: 70, Height: 8}},
			want:     domain.Size{Width: 50, Height: 8},
			adjusted: true,
		},
		{
			name: "clamped to max after shrink",
			def: domain.ComponentDefinition{
				DefaultSize: domain.Size{Width: 70, Height: 30},
				MaxSize:     &domain.Size{Width: 40, Height: 20},
			},
			want:     domain.Size{Width: 40, Height: 20},
			adjusted: true,
		},
		{
			name: "raised to min",
			def: domain.ComponentDefinition{
				DefaultSize: domain.Size{Width: 2, Height: 1},
				MinSize:     &domain.Size{Width: 4, Height: 3},
			},
			want:     domain.Size{Width: 4, Height: 3},
			adjusted: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted := ConstrainSize(&tt.def, CanvasWidthUnits)
			if got != tt.want || adjusted != tt.adjusted {
				t.Errorf("got %+v/%v, want %+v/%v", got, adjusted, tt.want, tt.adjusted)
			}
		})
	}
}
