package touchpoint

// Candidate is a scene object that can become a pointer's current target.
// The Input never owns candidates; it only holds them in its candidate list
// and as each pointer's non-owning target reference.
type Candidate interface {
	// Priority takes precedence over render order when resolving targets.
	Priority() int
	// RenderOrder is the candidate's draw position. Higher values are drawn
	// later and win ties between equal priorities.
	RenderOrder() int
	// Enabled reports whether the candidate currently accepts input.
	Enabled() bool

	// CheckOver is the cheap overlap test used for movement.
	CheckOver(p *Pointer) bool
	// CheckDown is the cheap overlap test used for presses.
	CheckDown(p *Pointer) bool

	// PointerOver is called when the candidate becomes p's target.
	PointerOver(p *Pointer)
	// PointerOut is called when the candidate stops being p's target.
	PointerOut(p *Pointer)
	// PointerDown is called when p is pressed while the candidate is
	// already its target.
	PointerDown(p *Pointer)
	// Released is broadcast to every candidate when any pointer is released.
	// Candidates must check for themselves whether the release concerns them.
	Released(p *Pointer)
	// Update runs each resolution in which the candidate stays p's target.
	// Returning false clears the target.
	Update(p *Pointer) bool
}

// ExactCandidate is implemented by candidates that need an expensive precise
// test (per-pixel alpha, path geometry) on top of the cheap overlap test.
// The resolver runs CheckExact at most once per candidate per resolution and
// skips it whenever a cheaper candidate already wins.
type ExactCandidate interface {
	Candidate
	NeedsExactTest() bool
	CheckExact(p *Pointer, fromClick bool) bool
}

// Draggable is implemented by candidates that can be dragged. While a
// candidate reports IsDragged for a pointer, that pointer bypasses target
// resolution and calls DragUpdate instead; returning false ends the drag
// continuation and clears the target.
type Draggable interface {
	Candidate
	IsDragged(p *Pointer) bool
	DragUpdate(p *Pointer) bool
}

// Identified is implemented by candidates that map to an ECS entity.
type Identified interface {
	EntityID() uint32
}

func needsExact(c Candidate) (ExactCandidate, bool) {
	ec, ok := c.(ExactCandidate)
	if !ok || !ec.NeedsExactTest() {
		return nil, false
	}
	return ec, true
}

func entityOf(c Candidate) uint32 {
	if id, ok := c.(Identified); ok {
		return id.EntityID()
	}
	return 0
}
