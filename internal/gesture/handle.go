package gesture

import (
	"strings"

	"gridboard/internal/domain"
)

// Handle names a resize grip by the edges it moves.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

var AllHandles = []Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

func (h Handle) Valid() bool {
	for _, a := range AllHandles {
		if a == h {
			return true
		}
	}
	return false
}

func (h Handle) Left() bool   { return strings.Contains(string(h), "w") }
func (h Handle) Right() bool  { return strings.Contains(string(h), "e") }
func (h Handle) Top() bool    { return strings.Contains(string(h), "n") }
func (h Handle) Bottom() bool { return strings.Contains(string(h), "s") }

func (h Handle) horizontal() bool { return h.Left() || h.Right() }
func (h Handle) vertical() bool   { return h.Top() || h.Bottom() }

// LockedAxes reports which axes cannot be resized because min equals max.
func LockedAxes(def *domain.ComponentDefinition) (width, height bool) {
	if def == nil || def.MinSize == nil || def.MaxSize == nil {
		return false, false
	}
	return def.MinSize.Width == def.MaxSize.Width, def.MinSize.Height == def.MaxSize.Height
}

// EnabledHandles lists the grips a component offers. Any grip touching a
// locked axis is left out.
func EnabledHandles(def *domain.ComponentDefinition) []Handle {
	lockW, lockH := LockedAxes(def)
	out := make([]Handle, 0, len(AllHandles))
	for _, h := range AllHandles {
		if (lockW && h.horizontal()) || (lockH && h.vertical()) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func handleEnabled(def *domain.ComponentDefinition, h Handle) bool {
	for _, e := range EnabledHandles(def) {
		if e == h {
			return true
		}
	}
	return false
}
