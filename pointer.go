package touchpoint

import "time"

// Event is a raw device event as delivered by the platform layer.
type Event struct {
	// Identifier is the platform's opaque contact identifier. Platforms may
	// reuse identifiers once a contact ends.
	Identifier int
	// PointerID is the platform pointer id, or 0 when the device has none.
	PointerID int

	ClientX, ClientY float64
	PageX, PageY     float64
	ScreenX, ScreenY float64

	// MovementX and MovementY are relative deltas reported in pointer-lock mode.
	MovementX, MovementY float64

	// Button is the button that changed state; only read when HasButton is set.
	Button    MouseButton
	HasButton bool
	// Buttons is the full set of pressed buttons.
	Buttons ButtonMask
}

// Pointer tracks one physical contact: the mouse or a single touch/pen
// contact. Pointers live in the Input's arena and are never destroyed; they
// are deactivated and reset between sessions.
//
// Exactly one of IsDown and IsUp is true at any time.
type Pointer struct {
	in *Input

	// ID is the arena slot. Slot 0 is the mouse.
	ID int

	// X and Y are the position in scene coordinates.
	X, Y float64

	ClientX, ClientY float64
	PageX, PageY     float64
	ScreenX, ScreenY float64

	// RawMovementX/Y are the last relative deltas; MovementX/Y accumulate
	// them until ResetMovement. Only updated for the mouse in pointer-lock mode.
	RawMovementX, RawMovementY float64
	MovementX, MovementY       float64

	identifier  int
	pointerID   int
	hasIdentity bool

	isMouse    bool
	active     bool
	isDown     bool
	withinGame bool
	dirty      bool
	stateReset bool
	holdSent   bool

	button    MouseButton
	hasButton bool
	buttons   ButtonMask

	probe Circle

	timeDown         time.Time
	timeUp           time.Time
	previousTapTime  time.Time
	msSinceLastClick time.Duration
	totalTouches     int
	lastTick         time.Time

	positionDown Vec2
	positionUp   Vec2

	history  history
	nextDrop time.Time

	target Candidate
}

func (p *Pointer) init(in *Input, id int) {
	*p = Pointer{in: in, ID: id, isMouse: id == 0}
	p.probe.Radius = in.cfg.ProbeRadius
}

// Input returns the owning Input.
func (p *Pointer) Input() *Input { return p.in }

// IsMouse reports whether this is the reserved mouse slot.
func (p *Pointer) IsMouse() bool { return p.isMouse }

// Active reports whether the contact is physically down. The mouse stays
// active once it has been seen.
func (p *Pointer) Active() bool { return p.active }

// IsDown reports whether the contact is pressed.
func (p *Pointer) IsDown() bool { return p.isDown }

// IsUp reports whether the contact is released.
func (p *Pointer) IsUp() bool { return !p.isDown }

// WithinGame reports whether the last event landed inside the game area.
func (p *Pointer) WithinGame() bool { return p.withinGame }

// Identifier returns the platform identifier and whether one is assigned.
func (p *Pointer) Identifier() (int, bool) { return p.identifier, p.hasIdentity }

// PointerID returns the platform pointer id, or 0.
func (p *Pointer) PointerID() int { return p.pointerID }

// Button returns the last reported button and whether any was reported.
func (p *Pointer) Button() (MouseButton, bool) { return p.button, p.hasButton }

// Buttons returns the set of pressed buttons.
func (p *Pointer) Buttons() ButtonMask { return p.buttons }

// Probe returns the hit probe circle centered on the pointer.
func (p *Pointer) Probe() Circle { return p.probe }

// Target returns the current target, or nil. The pointer never owns it.
func (p *Pointer) Target() Candidate { return p.target }

// TimeDown returns when the pointer was last pressed.
func (p *Pointer) TimeDown() time.Time { return p.timeDown }

// TimeUp returns when the pointer was last released.
func (p *Pointer) TimeUp() time.Time { return p.timeUp }

// PreviousTapTime returns when the last tap was recognized.
func (p *Pointer) PreviousTapTime() time.Time { return p.previousTapTime }

// MsSinceLastClick is the time between the two most recent presses.
func (p *Pointer) MsSinceLastClick() time.Duration { return p.msSinceLastClick }

// TotalTouches counts presses since the last reset.
func (p *Pointer) TotalTouches() int { return p.totalTouches }

// PositionDown returns the position of the last press.
func (p *Pointer) PositionDown() Vec2 { return p.positionDown }

// PositionUp returns the position of the last release.
func (p *Pointer) PositionUp() Vec2 { return p.positionUp }

// History returns a copy of the recorded samples, oldest first.
func (p *Pointer) History() []Vec2 { return p.history.snapshot() }

// MarkDirty forces target resolution on the next Update even without
// movement, e.g. after the scene under a stationary pointer changed.
func (p *Pointer) MarkDirty() { p.dirty = true }

// WorldX returns X plus the viewport's camera offset.
func (p *Pointer) WorldX() float64 {
	cx, _ := p.in.viewport.CameraOffset()
	return p.X + cx
}

// WorldY returns Y plus the viewport's camera offset.
func (p *Pointer) WorldY() float64 {
	_, cy := p.in.viewport.CameraOffset()
	return p.Y + cy
}

// Duration returns how long the pointer has been down, or -1 when it is up.
func (p *Pointer) Duration(now time.Time) time.Duration {
	if !p.isDown {
		return -1
	}
	return now.Sub(p.timeDown)
}

// JustPressed reports whether the pointer is down and was pressed less than
// window ago. A window <= 0 uses the configured JustPressedRate.
func (p *Pointer) JustPressed(now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = p.in.cfg.JustPressedRate
	}
	return p.isDown && p.timeDown.Add(window).After(now)
}

// JustReleased reports whether the pointer is up and was released less than
// window ago. A window <= 0 uses the configured JustReleasedRate.
func (p *Pointer) JustReleased(now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = p.in.cfg.JustReleasedRate
	}
	return !p.isDown && p.timeUp.Add(window).After(now)
}

// ResetMovement zeroes the accumulated pointer-lock movement.
func (p *Pointer) ResetMovement() {
	p.MovementX = 0
	p.MovementY = 0
}

// --- Lifecycle ---

// Press starts a contact. Position fields and target resolution run
// immediately in press mode, and the resolved target (if any) is told it was
// touched.
func (p *Pointer) Press(ev Event, now time.Time) *Pointer {
	in := p.in

	p.setIdentity(ev)
	p.updateButtons(ev, true)

	p.history.reset()
	p.active = true
	p.withinGame = true
	p.isDown = true
	p.dirty = false

	// Elapsed since the previous press, measured before timeDown moves.
	p.msSinceLastClick = now.Sub(p.timeDown)
	p.timeDown = now
	p.holdSent = false

	p.move(ev, true, false)

	p.positionDown = Vec2{p.X, p.Y}

	if in.drivesShared(p) {
		in.x, in.y = p.X, p.Y
		in.fireDown(p)
	}

	p.stateReset = false
	p.totalTouches++
	if !p.isMouse {
		in.totalActivePointers++
	}

	in.trace("pointer down", p, "touches", p.totalTouches)

	if p.target != nil {
		p.target.PointerDown(p)
	}
	return p
}

// Move handles genuine motion of the contact.
func (p *Pointer) Move(ev Event, now time.Time) *Pointer {
	p.move(ev, false, false)
	return p
}

// Leave handles the contact leaving the game area. Target resolution still
// runs so the current target receives its pointer-out.
func (p *Pointer) Leave(ev Event, now time.Time) *Pointer {
	p.withinGame = false
	p.move(ev, false, true)
	return p
}

func (p *Pointer) move(ev Event, fromClick, leaving bool) {
	in := p.in
	if in.PollLocked {
		return
	}

	if ev.HasButton {
		p.button = ev.Button
		p.hasButton = true
	}
	if p.isMouse {
		p.active = true
	}

	p.ClientX, p.ClientY = ev.ClientX, ev.ClientY
	p.PageX, p.PageY = ev.PageX, ev.PageY
	p.ScreenX, p.ScreenY = ev.ScreenX, ev.ScreenY
	p.X, p.Y = in.viewport.PageToScene(ev.PageX, ev.PageY)

	if p.isMouse && in.PointerLocked && !fromClick {
		p.RawMovementX, p.RawMovementY = ev.MovementX, ev.MovementY
		p.MovementX += p.RawMovementX
		p.MovementY += p.RawMovementY
	}

	p.probe.X, p.probe.Y = p.X, p.Y
	p.probe.Radius = in.cfg.ProbeRadius

	if in.drivesShared(p) {
		in.activePointer = p
		in.x, in.y = p.X, p.Y
	}

	if leaving {
		p.withinGame = false
	} else {
		p.withinGame = in.viewport.ContainsPage(ev.PageX, ev.PageY)
	}

	if in.Paused {
		return
	}

	in.fireMove(p, p.X, p.Y, fromClick)

	if p.target != nil {
		if d, ok := p.target.(Draggable); ok && d.IsDragged(p) {
			if !d.DragUpdate(p) {
				p.target = nil
			}
			return
		}
	}
	if len(in.candidates) > 0 {
		in.resolve(p, fromClick)
	}
}

// Release ends a contact: classifies tap and double tap, deactivates touch
// slots, broadcasts Released to every candidate and clears the target. A
// release arriving right after Reset is ignored.
func (p *Pointer) Release(ev Event, now time.Time) *Pointer {
	in := p.in
	if p.stateReset {
		in.trace("release ignored after reset", p)
		return p
	}

	wasDown := p.isDown
	p.timeUp = now

	drives := in.drivesShared(p)
	if drives {
		in.fireUp(p)
	}

	if d := p.Duration(now); d >= 0 && d <= in.cfg.TapRate {
		double := now.Sub(p.previousTapTime) < in.cfg.DoubleTapRate
		// Only taps that reach the observers start a double-tap window.
		if drives {
			in.fireTap(p, double)
			p.previousTapTime = now
		}
		in.trace("tap", p, "double", double, "duration", d)
	}

	p.updateButtons(ev, false)
	if !p.isMouse {
		p.active = false
	}
	p.isDown = false
	p.withinGame = in.viewport.ContainsPage(ev.PageX, ev.PageY)
	p.clearIdentity()
	p.positionUp = Vec2{p.X, p.Y}

	if !p.isMouse && wasDown && in.totalActivePointers > 0 {
		in.totalActivePointers--
	}

	in.trace("pointer up", p, "duration", now.Sub(p.timeDown))

	for i := 0; i < len(in.candidates); i++ {
		in.candidates[i].Released(p)
	}
	p.target = nil
	return p
}

// Reset returns the pointer to an up, inactive state (the mouse stays
// active). A target, if assigned, is told it was released before the
// reference is dropped. Safe to call at any time.
func (p *Pointer) Reset() {
	in := p.in
	if !p.isMouse {
		p.active = false
		if p.isDown && in.totalActivePointers > 0 {
			in.totalActivePointers--
		}
	}
	p.clearIdentity()
	p.dirty = false
	p.isDown = false
	p.totalTouches = 0
	p.holdSent = false
	p.history.reset()
	p.stateReset = true
	p.buttons = 0
	p.hasButton = false

	if p.target != nil {
		p.target.Released(p)
	}
	p.target = nil
	in.trace("pointer reset", p)
}

// Update is the per-frame tick for the pointer: forced resolution when dirty,
// the one-shot hold gesture and history sampling.
func (p *Pointer) Update(now time.Time) {
	if !p.active {
		return
	}
	in := p.in
	p.lastTick = now

	if p.dirty {
		if len(in.candidates) > 0 {
			in.resolve(p, true)
		}
		p.dirty = false
	}

	if !p.holdSent && p.Duration(now) >= in.cfg.HoldRate {
		if in.drivesShared(p) {
			in.fireHold(p)
		}
		in.trace("hold", p)
		p.holdSent = true
	}

	if in.cfg.RecordHistory && !now.Before(p.nextDrop) {
		p.nextDrop = now.Add(in.cfg.RecordRate)
		p.history.push(Vec2{p.X, p.Y}, in.cfg.RecordLimit)
	}
}

func (p *Pointer) setIdentity(ev Event) {
	if ev.PointerID != 0 {
		p.pointerID = ev.PointerID
	}
	p.identifier = ev.Identifier
	p.hasIdentity = true
}

func (p *Pointer) clearIdentity() {
	p.identifier = 0
	p.pointerID = 0
	p.hasIdentity = false
}

// updateButtons records the button code and the pressed-button mask. The
// changed button is forced into (or out of) the mask in case the platform
// reports the mask before applying the change.
func (p *Pointer) updateButtons(ev Event, pressing bool) {
	p.buttons = ev.Buttons
	if !ev.HasButton {
		return
	}
	p.button = ev.Button
	p.hasButton = true
	if pressing {
		p.buttons |= ev.Button.Mask()
	} else {
		p.buttons &^= ev.Button.Mask()
	}
}
