// Package ebitensource feeds Ebitengine mouse and touch state into a
// touchpoint.Input. Ebitengine exposes input as polled state rather than
// events, so a Source diffs each frame against the previous one and turns the
// differences into press, move, leave and release events.
package ebitensource

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/touchpoint"
)

// device is the slice of the ebiten input API a Source reads.
type device interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
}

type ebitenDevice struct{}

func (ebitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}
func (ebitenDevice) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}
func (ebitenDevice) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

// mouseButtons maps ebiten buttons to touchpoint buttons.
var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	tp touchpoint.MouseButton
}{
	{ebiten.MouseButtonLeft, touchpoint.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, touchpoint.MouseButtonMiddle},
	{ebiten.MouseButtonRight, touchpoint.MouseButtonRight},
	{ebiten.MouseButton3, touchpoint.MouseButtonBack},
	{ebiten.MouseButton4, touchpoint.MouseButtonForward},
}

// Source polls ebiten input once per frame and drives an Input.
type Source struct {
	in  *touchpoint.Input
	dev device

	// Mouse state from the previous poll.
	mouseSeen    bool
	mouseX       int
	mouseY       int
	mouseButtons touchpoint.ButtonMask

	// Touch slot bookkeeping, indexed by pointer slot (1-10).
	touchMap  [touchpoint.MaxPointers]ebiten.TouchID
	touchUsed [touchpoint.MaxPointers]bool
	touchLast [touchpoint.MaxPointers][2]int
	touchIDs  []ebiten.TouchID
	dropped   map[ebiten.TouchID]struct{}
}

// New creates a Source reading ebiten's global input state.
func New(in *touchpoint.Input) *Source {
	return newSource(in, ebitenDevice{})
}

func newSource(in *touchpoint.Input, dev device) *Source {
	return &Source{in: in, dev: dev, dropped: make(map[ebiten.TouchID]struct{})}
}

// Input returns the driven Input.
func (s *Source) Input() *touchpoint.Input {
	return s.in
}

// Update polls the devices and then ticks the Input. Call it from
// ebiten.Game.Update.
func (s *Source) Update(now time.Time) {
	s.Poll(now)
	s.in.Update(now)
}

// Poll converts device state changes since the previous poll into pointer
// events without ticking the Input.
func (s *Source) Poll(now time.Time) {
	s.pollMouse(now)
	s.pollTouches(now)
}

// pollMouse handles the mouse (pointer 0).
func (s *Source) pollMouse(now time.Time) {
	x, y := s.dev.CursorPosition()

	var mask touchpoint.ButtonMask
	for _, b := range mouseButtons {
		if s.dev.IsMouseButtonPressed(b.eb) {
			mask |= b.tp.Mask()
		}
	}

	ev := pageEvent(0, x, y)
	ev.Buttons = mask
	if s.mouseSeen {
		ev.MovementX = float64(x - s.mouseX)
		ev.MovementY = float64(y - s.mouseY)
	}

	m := s.in.Mouse()
	moved := !s.mouseSeen || x != s.mouseX || y != s.mouseY
	if moved {
		if !s.in.Viewport().ContainsPage(ev.PageX, ev.PageY) && m.WithinGame() {
			m.Leave(ev, now)
		} else {
			m.Move(ev, now)
		}
	}

	switch {
	case mask != 0 && s.mouseButtons == 0:
		ev.Button, ev.HasButton = lowestButton(mask), true
		m.Press(ev, now)
	case mask == 0 && s.mouseButtons != 0:
		ev.Button, ev.HasButton = lowestButton(s.mouseButtons), true
		m.Release(ev, now)
	}

	s.mouseButtons = mask
	s.mouseX, s.mouseY = x, y
	s.mouseSeen = true
}

// pollTouches handles touch input (pointers 1-10).
func (s *Source) pollTouches(now time.Time) {
	s.touchIDs = s.dev.AppendTouchIDs(s.touchIDs[:0])
	s.dropStale()

	var seen [touchpoint.MaxPointers]bool
	for _, tid := range s.touchIDs {
		x, y := s.dev.TouchPosition(tid)
		ev := pageEvent(int(tid), x, y)

		slot := s.slotFor(tid)
		if slot < 0 {
			if _, ok := s.dropped[tid]; ok {
				continue
			}
			p := s.in.StartPointer(ev, now)
			if p == nil {
				s.dropped[tid] = struct{}{}
				continue
			}
			s.touchUsed[p.ID] = true
			s.touchMap[p.ID] = tid
			s.touchLast[p.ID] = [2]int{x, y}
			seen[p.ID] = true
			continue
		}

		seen[slot] = true
		if s.touchLast[slot] != [2]int{x, y} {
			s.in.UpdatePointer(ev, now)
			s.touchLast[slot] = [2]int{x, y}
		}
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < touchpoint.MaxPointers; i++ {
		if s.touchUsed[i] && !seen[i] {
			last := s.touchLast[i]
			s.in.StopPointer(pageEvent(int(s.touchMap[i]), last[0], last[1]), now)
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}

	// Forget dropped contacts once they lift.
	for tid := range s.dropped {
		if !containsTouch(s.touchIDs, tid) {
			delete(s.dropped, tid)
		}
	}
}

// dropStale unmaps slots whose pointer no longer carries the contact, which
// happens after Input.Reset. The contact is ignored until it lifts.
func (s *Source) dropStale() {
	for i := 1; i < touchpoint.MaxPointers; i++ {
		if !s.touchUsed[i] {
			continue
		}
		p := s.in.Pointer(i)
		if id, ok := p.Identifier(); p.Active() && ok && id == int(s.touchMap[i]) {
			continue
		}
		s.dropped[s.touchMap[i]] = struct{}{}
		s.touchUsed[i] = false
		s.touchMap[i] = 0
	}
}

// slotFor returns the pointer slot mapped to tid, or -1.
func (s *Source) slotFor(tid ebiten.TouchID) int {
	for i := 1; i < touchpoint.MaxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	return -1
}

func containsTouch(ids []ebiten.TouchID, tid ebiten.TouchID) bool {
	for _, id := range ids {
		if id == tid {
			return true
		}
	}
	return false
}

// pageEvent builds an event whose client, page and screen coordinates are all
// the ebiten logical screen position.
func pageEvent(identifier, x, y int) touchpoint.Event {
	fx, fy := float64(x), float64(y)
	return touchpoint.Event{
		Identifier: identifier,
		ClientX:    fx, ClientY: fy,
		PageX: fx, PageY: fy,
		ScreenX: fx, ScreenY: fy,
	}
}

func lowestButton(mask touchpoint.ButtonMask) touchpoint.MouseButton {
	for _, b := range mouseButtons {
		if mask.Has(b.tp) {
			return b.tp
		}
	}
	return touchpoint.MouseButtonLeft
}
