package touchpoint

import "time"

// MoveFunc observes pointer movement. fromClick is true when the move was
// triggered by a press rather than genuine motion.
type MoveFunc func(p *Pointer, x, y float64, fromClick bool)

// --- Handler registry ---

type handler[F any] struct {
	id   uint32
	fn   F
	dead bool
}

type handlerKind uint8

const (
	handlerDown handlerKind = iota
	handlerUp
	handlerTap
	handlerHold
	handlerMove
)

type handlerRegistry struct {
	down   []handler[func(*Pointer)]
	up     []handler[func(*Pointer)]
	tap    []handler[func(*Pointer, bool)]
	hold   []handler[func(*Pointer)]
	move   []handler[MoveFunc]
	nextID uint32

	// firing counts dispatches in progress. While it is non-zero, removed
	// entries are only marked dead and stale records that a compaction is due.
	firing int
	stale  bool
}

func (r *handlerRegistry) clear() {
	*r = handlerRegistry{nextID: r.nextID, firing: r.firing}
}

func (r *handlerRegistry) begin() {
	r.firing++
}

func (r *handlerRegistry) end() {
	r.firing--
	if r.firing > 0 || !r.stale {
		return
	}
	r.down = compactHandlers(r.down)
	r.up = compactHandlers(r.up)
	r.tap = compactHandlers(r.tap)
	r.hold = compactHandlers(r.hold)
	r.move = compactHandlers(r.move)
	r.stale = false
}

// CallbackHandle allows removing a registered observer.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside any observer, including for observers not yet reached by the
// current dispatch.
func (h CallbackHandle) Remove() {
	r := h.reg
	if r == nil {
		return
	}
	switch h.kind {
	case handlerDown:
		r.down = removeHandler(r, r.down, h.id)
	case handlerUp:
		r.up = removeHandler(r, r.up, h.id)
	case handlerTap:
		r.tap = removeHandler(r, r.tap, h.id)
	case handlerHold:
		r.hold = removeHandler(r, r.hold, h.id)
	case handlerMove:
		r.move = removeHandler(r, r.move, h.id)
	}
}

func removeHandler[F any](r *handlerRegistry, s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id != id || s[i].dead {
			continue
		}
		if r.firing > 0 {
			s[i].dead = true
			r.stale = true
			return s
		}
		copy(s[i:], s[i+1:])
		s[len(s)-1] = handler[F]{}
		return s[:len(s)-1]
	}
	return s
}

// compactHandlers drops dead entries in place.
func compactHandlers[F any](s []handler[F]) []handler[F] {
	out := s[:0]
	for _, h := range s {
		if !h.dead {
			out = append(out, h)
		}
	}
	clear(s[len(out):])
	return out
}

func (r *handlerRegistry) handle(kind handlerKind) CallbackHandle {
	return CallbackHandle{id: r.nextID, reg: r, kind: kind}
}

// --- Registration ---

// OnDown registers an observer for presses of any pointer allowed to drive
// the shared position.
func (in *Input) OnDown(fn func(*Pointer)) CallbackHandle {
	in.handlers.nextID++
	in.handlers.down = append(in.handlers.down, handler[func(*Pointer)]{id: in.handlers.nextID, fn: fn})
	return in.handlers.handle(handlerDown)
}

// OnUp registers an observer for releases.
func (in *Input) OnUp(fn func(*Pointer)) CallbackHandle {
	in.handlers.nextID++
	in.handlers.up = append(in.handlers.up, handler[func(*Pointer)]{id: in.handlers.nextID, fn: fn})
	return in.handlers.handle(handlerUp)
}

// OnTap registers an observer for taps. double is true when the tap followed
// the previous one within the double-tap window.
func (in *Input) OnTap(fn func(p *Pointer, double bool)) CallbackHandle {
	in.handlers.nextID++
	in.handlers.tap = append(in.handlers.tap, handler[func(*Pointer, bool)]{id: in.handlers.nextID, fn: fn})
	return in.handlers.handle(handlerTap)
}

// OnHold registers an observer fired once per press when the contact stays
// down past the hold rate.
func (in *Input) OnHold(fn func(*Pointer)) CallbackHandle {
	in.handlers.nextID++
	in.handlers.hold = append(in.handlers.hold, handler[func(*Pointer)]{id: in.handlers.nextID, fn: fn})
	return in.handlers.handle(handlerHold)
}

// OnMove registers a movement observer. Move observers run in reverse
// registration order: the most recently added observer runs first.
func (in *Input) OnMove(fn MoveFunc) CallbackHandle {
	in.handlers.nextID++
	in.handlers.move = append(in.handlers.move, handler[MoveFunc]{id: in.handlers.nextID, fn: fn})
	return in.handlers.handle(handlerMove)
}

// --- Dispatch ---

// Observers registered during a dispatch first run on the next one.

func (in *Input) fireDown(p *Pointer) {
	r := &in.handlers
	r.begin()
	for i, n := 0, len(r.down); i < n && i < len(r.down); i++ {
		if h := r.down[i]; !h.dead {
			h.fn(p)
		}
	}
	r.end()
	in.emit(EventPointerDown, p, p.target)
}

func (in *Input) fireUp(p *Pointer) {
	r := &in.handlers
	r.begin()
	for i, n := 0, len(r.up); i < n && i < len(r.up); i++ {
		if h := r.up[i]; !h.dead {
			h.fn(p)
		}
	}
	r.end()
	in.emit(EventPointerUp, p, p.target)
}

func (in *Input) fireTap(p *Pointer, double bool) {
	r := &in.handlers
	r.begin()
	for i, n := 0, len(r.tap); i < n && i < len(r.tap); i++ {
		if h := r.tap[i]; !h.dead {
			h.fn(p, double)
		}
	}
	r.end()
	if double {
		in.emit(EventDoubleTap, p, p.target)
	} else {
		in.emit(EventTap, p, p.target)
	}
}

func (in *Input) fireHold(p *Pointer) {
	r := &in.handlers
	r.begin()
	for i, n := 0, len(r.hold); i < n && i < len(r.hold); i++ {
		if h := r.hold[i]; !h.dead {
			h.fn(p)
		}
	}
	r.end()
	in.emit(EventHold, p, p.target)
}

// fireMove walks the move observers from last to first. An observer may
// remove itself or any other observer while being called; removed observers
// that have not run yet are skipped.
func (in *Input) fireMove(p *Pointer, x, y float64, fromClick bool) {
	r := &in.handlers
	r.begin()
	for i := len(r.move) - 1; i >= 0; i-- {
		if i >= len(r.move) {
			continue
		}
		if h := r.move[i]; !h.dead {
			h.fn(p, x, y, fromClick)
		}
	}
	r.end()
}

// --- Entity store bridge ---

// EntityStore is the interface for optional ECS integration.
// When set on an Input, pointer events are forwarded to it.
type EntityStore interface {
	EmitEvent(event PointerEvent)
}

// PointerEvent carries pointer event data for the ECS bridge.
type PointerEvent struct {
	Type      EventType
	PointerID int
	// EntityID is the entity of the pointer's target, or 0.
	EntityID uint32
	X, Y     float64
	Button   MouseButton
	Buttons  ButtonMask
	// Duration is the press duration for up, tap and hold events.
	Duration time.Duration
}

// SetEntityStore sets the optional ECS bridge.
func (in *Input) SetEntityStore(store EntityStore) {
	in.store = store
}

func (in *Input) emit(t EventType, p *Pointer, target Candidate) {
	if in.store == nil {
		return
	}
	entityID := entityOf(target)
	// Over/out only make sense for an entity; gestures are emitted regardless.
	if (t == EventPointerOver || t == EventPointerOut) && entityID == 0 {
		return
	}
	ev := PointerEvent{
		Type:      t,
		PointerID: p.ID,
		EntityID:  entityID,
		X:         p.X,
		Y:         p.Y,
		Button:    p.button,
		Buttons:   p.buttons,
	}
	switch t {
	case EventPointerUp, EventTap, EventDoubleTap:
		ev.Duration = p.timeUp.Sub(p.timeDown)
	case EventHold:
		ev.Duration = p.lastTick.Sub(p.timeDown)
	}
	in.store.EmitEvent(ev)
}
