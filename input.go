package touchpoint

import (
	"log/slog"
	"time"
)

// MaxPointers is the size of the pointer arena: slot 0 is the mouse, slots
// 1-10 are touch or pen contacts.
const MaxPointers = 11

// Input is the shared context of every pointer: the pointer arena, the
// candidate list, the arbitration state and the observers. All methods must be
// called from a single goroutine; resolving two pointers concurrently is
// undefined behavior.
type Input struct {
	cfg      *Config
	override Override
	viewport Viewport

	pointers   [MaxPointers]Pointer
	candidates []Candidate
	scratch    resolver

	handlers handlerRegistry
	store    EntityStore

	log       *slog.Logger
	customLog bool
	debug     bool

	// Paused stops move observers and target resolution; positions are still
	// tracked.
	Paused bool
	// PollLocked turns every move into a no-op.
	PollLocked bool
	// PointerLocked accumulates relative mouse movement (pointer-lock mode).
	PointerLocked bool

	activePointer       *Pointer
	x, y                float64
	totalActivePointers int

	injectQueue []syntheticEvent
	script      *ScriptRunner
}

// NewInput creates an Input with the given config. A nil config uses
// DefaultConfig. The viewport defaults to an unbounded identity transform.
func NewInput(cfg *Config) *Input {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	in := &Input{
		cfg:      cfg,
		override: cfg.override(),
		viewport: &ScaleViewport{ScaleX: 1, ScaleY: 1},
		log:      slog.New(slog.DiscardHandler),
	}
	for i := range in.pointers {
		in.pointers[i].init(in, i)
	}
	in.activePointer = &in.pointers[0]
	return in
}

// Config returns the live config. Changes to rates take effect immediately;
// call SetOverride to change the override policy.
func (in *Input) Config() *Config {
	return in.cfg
}

// SetOverride changes the multi-input arbitration policy.
func (in *Input) SetOverride(o Override) {
	in.override = o
	in.cfg.Override = o.String()
}

// Override returns the multi-input arbitration policy.
func (in *Input) Override() Override {
	return in.override
}

// SetViewport replaces the coordinate transform. A nil viewport restores the
// unbounded identity transform.
func (in *Input) SetViewport(v Viewport) {
	if v == nil {
		v = &ScaleViewport{ScaleX: 1, ScaleY: 1}
	}
	in.viewport = v
}

// Viewport returns the coordinate transform.
func (in *Input) Viewport() Viewport {
	return in.viewport
}

// --- Pointer arena ---

// Pointer returns the pointer in slot id, or nil if id is out of range.
func (in *Input) Pointer(id int) *Pointer {
	if id < 0 || id >= MaxPointers {
		return nil
	}
	return &in.pointers[id]
}

// Mouse returns the reserved mouse pointer (slot 0).
func (in *Input) Mouse() *Pointer {
	return &in.pointers[0]
}

// ActivePointer returns the pointer that last drove the shared position.
func (in *Input) ActivePointer() *Pointer {
	return in.activePointer
}

// Position returns the shared position mirrored from the active pointer.
func (in *Input) Position() (x, y float64) {
	return in.x, in.y
}

// TotalActivePointers returns the number of touch pointers currently down.
func (in *Input) TotalActivePointers() int {
	return in.totalActivePointers
}

// CountActive counts the active touch pointers by inspecting the arena.
func (in *Input) CountActive() int {
	n := 0
	for i := 1; i < MaxPointers; i++ {
		if in.pointers[i].active {
			n++
		}
	}
	return n
}

// FirstActive returns the lowest-numbered active touch pointer, or nil.
func (in *Input) FirstActive() *Pointer {
	for i := 1; i < MaxPointers; i++ {
		if in.pointers[i].active {
			return &in.pointers[i]
		}
	}
	return nil
}

// PointerByIdentifier returns the active touch pointer carrying the given
// device identifier, or nil.
func (in *Input) PointerByIdentifier(identifier int) *Pointer {
	for i := 1; i < MaxPointers; i++ {
		p := &in.pointers[i]
		if p.active && p.hasIdentity && p.identifier == identifier {
			return p
		}
	}
	return nil
}

// StartPointer assigns a touch event to the first inactive touch slot and
// presses it. Returns nil when every touch slot is in use.
func (in *Input) StartPointer(ev Event, now time.Time) *Pointer {
	for i := 1; i < MaxPointers; i++ {
		p := &in.pointers[i]
		if !p.active {
			return p.Press(ev, now)
		}
	}
	in.log.Warn("touch slots exhausted, dropping contact",
		"identifier", ev.Identifier, "slots", MaxPointers-1)
	return nil
}

// UpdatePointer moves the active touch pointer matching ev.Identifier.
// Returns nil if no pointer carries that identifier.
func (in *Input) UpdatePointer(ev Event, now time.Time) *Pointer {
	p := in.PointerByIdentifier(ev.Identifier)
	if p == nil {
		return nil
	}
	return p.Move(ev, now)
}

// StopPointer releases the active touch pointer matching ev.Identifier.
// Returns nil if no pointer carries that identifier.
func (in *Input) StopPointer(ev Event, now time.Time) *Pointer {
	p := in.PointerByIdentifier(ev.Identifier)
	if p == nil {
		return nil
	}
	return p.Release(ev, now)
}

// drivesShared reports whether p may update the shared active pointer and
// broadcast down/up/tap/hold under the override policy.
func (in *Input) drivesShared(p *Pointer) bool {
	switch in.override {
	case MouseOverridesTouch:
		return p.isMouse || !in.pointers[0].active
	case TouchOverridesMouse:
		return !p.isMouse || in.totalActivePointers == 0
	default:
		return true
	}
}

// --- Candidates ---

// AddCandidate appends c to the candidate list. The list order is the
// resolver's traversal order, not the render order.
func (in *Input) AddCandidate(c Candidate) {
	in.candidates = append(in.candidates, c)
}

// RemoveCandidate removes c from the candidate list. Any pointer targeting c
// drops the reference without callbacks.
func (in *Input) RemoveCandidate(c Candidate) {
	for i, cand := range in.candidates {
		if cand == c {
			copy(in.candidates[i:], in.candidates[i+1:])
			in.candidates[len(in.candidates)-1] = nil
			in.candidates = in.candidates[:len(in.candidates)-1]
			break
		}
	}
	for i := range in.pointers {
		if in.pointers[i].target == c {
			in.pointers[i].target = nil
		}
	}
}

// Candidates returns the candidate list. The returned slice MUST NOT be mutated.
func (in *Input) Candidates() []Candidate {
	return in.candidates
}

// --- Frame tick and lifecycle ---

// Update is the per-frame tick: it advances an attached script, drains one
// injected event and then ticks every active pointer. PollLocked does not
// stop the tick, so holds and history samples continue while moves are
// ignored.
func (in *Input) Update(now time.Time) {
	if in.script != nil {
		in.script.step(in)
	}
	in.ProcessInjected(now)
	for i := range in.pointers {
		in.pointers[i].Update(now)
	}
}

// Reset resets every pointer. A hard reset also drops every observer, the
// candidate list and any queued injections.
func (in *Input) Reset(hard bool) {
	for i := range in.pointers {
		in.pointers[i].Reset()
	}
	in.totalActivePointers = 0
	in.activePointer = &in.pointers[0]
	if hard {
		in.handlers.clear()
		clear(in.candidates)
		in.candidates = in.candidates[:0]
		in.injectQueue = in.injectQueue[:0]
		in.script = nil
	}
	if in.debug {
		in.log.Debug("input reset", "hard", hard)
	}
}
