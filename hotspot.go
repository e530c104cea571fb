package touchpoint

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Hotspot is a ready-made Candidate: a HitShape placed at (X, Y) with
// callbacks, per-pointer over/down bookkeeping and optional dragging.
// Always use Hotspots by pointer; the Input compares candidates by identity.
type Hotspot struct {
	Name string

	// X and Y place the shape's local origin in scene coordinates.
	X, Y float64
	// Shape is the cheap hit region. A nil Shape is never hit.
	Shape HitShape
	// Exact, when set, is the expensive precise test in local coordinates.
	Exact func(lx, ly float64) bool
	// UseProbe tests touch pointers with their hit probe circle instead of
	// the single point. The mouse always uses the point.
	UseProbe bool

	PriorityID int
	Order      int
	Disabled   bool
	Entity     uint32

	// Draggable makes a press start a drag that follows the pointer.
	Draggable bool
	// SnapBack tweens the hotspot back to its drag origin when released.
	SnapBack     bool
	SnapDuration float32
	SnapEase     ease.TweenFunc

	OnOver      func(*Pointer)
	OnOut       func(*Pointer)
	OnDown      func(*Pointer)
	OnUp        func(p *Pointer, inside bool)
	OnDragStart func(*Pointer)
	OnDrag      func(*Pointer)
	OnDragEnd   func(*Pointer)

	over [MaxPointers]bool
	down [MaxPointers]bool

	drag        *Pointer
	dragMoved   bool
	dragOffsetX float64
	dragOffsetY float64
	dragStartX  float64
	dragStartY  float64

	snap *snapAnim
}

// snapAnim holds the active snap-back tweens for X and Y.
type snapAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// NewHotspot creates an enabled hotspot with the given shape at (x, y).
func NewHotspot(name string, x, y float64, shape HitShape) *Hotspot {
	return &Hotspot{
		Name:         name,
		X:            x,
		Y:            y,
		Shape:        shape,
		SnapDuration: 0.25,
		SnapEase:     ease.OutQuad,
	}
}

// Priority implements Candidate.
func (h *Hotspot) Priority() int { return h.PriorityID }

// RenderOrder implements Candidate.
func (h *Hotspot) RenderOrder() int { return h.Order }

// Enabled implements Candidate.
func (h *Hotspot) Enabled() bool { return !h.Disabled }

// EntityID implements Identified.
func (h *Hotspot) EntityID() uint32 { return h.Entity }

// IsOver reports whether pointer id currently targets the hotspot.
func (h *Hotspot) IsOver(id int) bool { return id >= 0 && id < MaxPointers && h.over[id] }

// IsDown reports whether pointer id pressed the hotspot and is still down.
func (h *Hotspot) IsDown(id int) bool { return id >= 0 && id < MaxPointers && h.down[id] }

// Dragging reports whether a drag is in progress.
func (h *Hotspot) Dragging() bool { return h.drag != nil }

func (h *Hotspot) hit(p *Pointer) bool {
	if h.Shape == nil {
		return false
	}
	lx, ly := p.X-h.X, p.Y-h.Y
	if h.UseProbe && !p.IsMouse() {
		c := p.Probe()
		c.X, c.Y = lx, ly
		return h.Shape.IntersectsCircle(c)
	}
	return h.Shape.Contains(lx, ly)
}

// CheckOver implements Candidate.
func (h *Hotspot) CheckOver(p *Pointer) bool { return h.hit(p) }

// CheckDown implements Candidate.
func (h *Hotspot) CheckDown(p *Pointer) bool { return h.hit(p) }

// NeedsExactTest implements ExactCandidate.
func (h *Hotspot) NeedsExactTest() bool { return h.Exact != nil }

// CheckExact implements ExactCandidate.
func (h *Hotspot) CheckExact(p *Pointer, fromClick bool) bool {
	if h.Exact == nil {
		return true
	}
	return h.Exact(p.X-h.X, p.Y-h.Y)
}

// PointerOver implements Candidate.
func (h *Hotspot) PointerOver(p *Pointer) {
	h.over[p.ID] = true
	if h.OnOver != nil {
		h.OnOver(p)
	}
}

// PointerOut implements Candidate.
func (h *Hotspot) PointerOut(p *Pointer) {
	h.over[p.ID] = false
	if h.OnOut != nil {
		h.OnOut(p)
	}
}

// PointerDown implements Candidate.
func (h *Hotspot) PointerDown(p *Pointer) {
	if !p.IsDown() {
		return
	}
	h.down[p.ID] = true
	if h.OnDown != nil {
		h.OnDown(p)
	}
	if h.Draggable && h.drag == nil {
		h.startDrag(p)
	}
}

// Released implements Candidate. It is broadcast for every release, so it
// ignores pointers that never pressed this hotspot.
func (h *Hotspot) Released(p *Pointer) {
	// The pointer drops its target on release without a PointerOut.
	h.over[p.ID] = false
	if !h.down[p.ID] {
		return
	}
	h.down[p.ID] = false
	inside := h.Enabled() && h.hit(p)
	if h.OnUp != nil {
		h.OnUp(p, inside)
	}
	if h.drag == p {
		h.stopDrag(p)
	}
}

// Update implements Candidate: the hotspot stays targeted while enabled.
func (h *Hotspot) Update(p *Pointer) bool {
	if !h.Enabled() {
		h.over[p.ID] = false
		return false
	}
	return true
}

// IsDragged implements Draggable.
func (h *Hotspot) IsDragged(p *Pointer) bool {
	return h.drag == p
}

// DragUpdate implements Draggable. Movement within the drag dead zone is
// ignored; past it the hotspot follows the pointer.
func (h *Hotspot) DragUpdate(p *Pointer) bool {
	if h.drag != p {
		return false
	}
	if !p.IsDown() || !h.Enabled() {
		h.stopDrag(p)
		return false
	}
	if !h.dragMoved {
		start := p.PositionDown()
		dx, dy := p.X-start.X, p.Y-start.Y
		if math.Sqrt(dx*dx+dy*dy) <= p.in.cfg.DragDeadZone {
			return true
		}
		h.dragMoved = true
		if h.OnDragStart != nil {
			h.OnDragStart(p)
		}
	}
	h.X = p.X - h.dragOffsetX
	h.Y = p.Y - h.dragOffsetY
	if h.OnDrag != nil {
		h.OnDrag(p)
	}
	return true
}

func (h *Hotspot) startDrag(p *Pointer) {
	h.drag = p
	h.dragMoved = false
	h.snap = nil
	h.dragOffsetX = p.X - h.X
	h.dragOffsetY = p.Y - h.Y
	h.dragStartX = h.X
	h.dragStartY = h.Y
}

func (h *Hotspot) stopDrag(p *Pointer) {
	moved := h.dragMoved
	h.drag = nil
	h.dragMoved = false
	if !moved {
		return
	}
	if h.OnDragEnd != nil {
		h.OnDragEnd(p)
	}
	if h.SnapBack {
		fn := h.SnapEase
		if fn == nil {
			fn = ease.Linear
		}
		h.snap = &snapAnim{
			tweenX: gween.New(float32(h.X), float32(h.dragStartX), h.SnapDuration, fn),
			tweenY: gween.New(float32(h.Y), float32(h.dragStartY), h.SnapDuration, fn),
		}
	}
}

// Snapping reports whether a snap-back tween is running.
func (h *Hotspot) Snapping() bool { return h.snap != nil }

// Tick advances the snap-back tween by dt seconds. There is no global
// animation manager; call Tick from the game loop.
func (h *Hotspot) Tick(dt float32) {
	if h.snap == nil {
		return
	}
	if !h.snap.doneX {
		val, done := h.snap.tweenX.Update(dt)
		h.X = float64(val)
		h.snap.doneX = done
	}
	if !h.snap.doneY {
		val, done := h.snap.tweenY.Update(dt)
		h.Y = float64(val)
		h.snap.doneY = done
	}
	if h.snap.doneX && h.snap.doneY {
		h.snap = nil
	}
}
