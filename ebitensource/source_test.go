package ebitensource

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/touchpoint"
)

type fakeDevice struct {
	x, y    int
	pressed map[ebiten.MouseButton]bool
	touches map[ebiten.TouchID][2]int
	order   []ebiten.TouchID
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		pressed: make(map[ebiten.MouseButton]bool),
		touches: make(map[ebiten.TouchID][2]int),
	}
}

func (d *fakeDevice) CursorPosition() (int, int) { return d.x, d.y }

func (d *fakeDevice) IsMouseButtonPressed(b ebiten.MouseButton) bool { return d.pressed[b] }

func (d *fakeDevice) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, d.order...)
}

func (d *fakeDevice) TouchPosition(id ebiten.TouchID) (int, int) {
	p := d.touches[id]
	return p[0], p[1]
}

func (d *fakeDevice) touch(id ebiten.TouchID, x, y int) {
	if _, ok := d.touches[id]; !ok {
		d.order = append(d.order, id)
	}
	d.touches[id] = [2]int{x, y}
}

func (d *fakeDevice) lift(id ebiten.TouchID) {
	delete(d.touches, id)
	for i, o := range d.order {
		if o == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

var t0 = time.Unix(1000, 0)

func frame(n int) time.Time {
	return t0.Add(time.Duration(n) * 16 * time.Millisecond)
}

func TestMouseMoveActivates(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := newSource(in, dev)

	dev.x, dev.y = 30, 40
	s.Poll(frame(0))

	m := in.Mouse()
	if !m.Active() {
		t.Fatal("mouse should be active after the first poll")
	}
	if m.X != 30 || m.Y != 40 {
		t.Errorf("mouse at (%v, %v), want (30, 40)", m.X, m.Y)
	}

	dev.x = 35
	s.Poll(frame(1))
	if m.X != 35 {
		t.Errorf("mouse X = %v, want 35", m.X)
	}
}

func TestMouseMovementDeltas(t *testing.T) {
	in := touchpoint.NewInput(nil)
	in.PointerLocked = true
	dev := newFakeDevice()
	s := newSource(in, dev)

	s.Poll(frame(0))
	dev.x, dev.y = 4, -3
	s.Poll(frame(1))

	m := in.Mouse()
	if m.MovementX != 4 || m.MovementY != -3 {
		t.Errorf("movement = (%v, %v), want (4, -3)", m.MovementX, m.MovementY)
	}
}

func TestMousePressRelease(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := newSource(in, dev)

	var taps int
	var button touchpoint.MouseButton
	in.OnTap(func(p *touchpoint.Pointer, double bool) {
		taps++
		button, _ = p.Button()
	})

	dev.x, dev.y = 10, 10
	s.Poll(frame(0))
	dev.pressed[ebiten.MouseButtonRight] = true
	s.Poll(frame(1))
	if !in.Mouse().IsDown() {
		t.Fatal("mouse should be down")
	}
	if !in.Mouse().Buttons().Has(touchpoint.MouseButtonRight) {
		t.Error("right button should be in the mask")
	}

	// Holding the button does not re-press.
	s.Poll(frame(2))
	if got := in.Mouse().TotalTouches(); got != 1 {
		t.Errorf("TotalTouches = %d, want 1", got)
	}

	dev.pressed[ebiten.MouseButtonRight] = false
	s.Poll(frame(3))
	if in.Mouse().IsDown() {
		t.Error("mouse should be up")
	}
	if taps != 1 || button != touchpoint.MouseButtonRight {
		t.Errorf("taps = %d button = %v, want 1 tap with the right button", taps, button)
	}
}

func TestMouseLeave(t *testing.T) {
	in := touchpoint.NewInput(nil)
	in.SetViewport(touchpoint.NewScaleViewport(100, 100))
	dev := newFakeDevice()
	s := newSource(in, dev)

	h := touchpoint.NewHotspot("box", 0, 0, touchpoint.HitRect{Width: 100, Height: 100})
	outs := 0
	h.OnOut = func(*touchpoint.Pointer) { outs++ }
	in.AddCandidate(h)

	dev.x, dev.y = 50, 50
	s.Poll(frame(0))
	if !h.IsOver(0) {
		t.Fatal("mouse should be over the hotspot")
	}

	dev.x = 150
	s.Poll(frame(1))
	if in.Mouse().WithinGame() {
		t.Error("WithinGame should be false after leaving")
	}
	if outs != 1 {
		t.Errorf("outs = %d, want 1", outs)
	}
}

func TestTouchLifecycle(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := newSource(in, dev)

	dev.touch(7, 10, 10)
	dev.touch(9, 50, 50)
	s.Poll(frame(0))
	if in.TotalActivePointers() != 2 {
		t.Fatalf("TotalActivePointers = %d, want 2", in.TotalActivePointers())
	}
	p1 := in.PointerByIdentifier(7)
	p2 := in.PointerByIdentifier(9)
	if p1 == nil || p2 == nil || p1.ID != 1 || p2.ID != 2 {
		t.Fatalf("touch slots = %v, %v, want slots 1 and 2", p1, p2)
	}

	dev.touch(7, 20, 25)
	s.Poll(frame(1))
	if p1.X != 20 || p1.Y != 25 {
		t.Errorf("touch 7 at (%v, %v), want (20, 25)", p1.X, p1.Y)
	}

	dev.lift(7)
	s.Poll(frame(2))
	if p1.Active() {
		t.Error("lifted touch should release its slot")
	}
	if in.TotalActivePointers() != 1 {
		t.Errorf("TotalActivePointers = %d, want 1", in.TotalActivePointers())
	}
	if got := p1.PositionUp(); got != (touchpoint.Vec2{X: 20, Y: 25}) {
		t.Errorf("PositionUp = %v, want (20, 25)", got)
	}

	// A new contact reuses the freed slot.
	dev.touch(11, 0, 0)
	s.Poll(frame(3))
	if p := in.PointerByIdentifier(11); p == nil || p.ID != 1 {
		t.Errorf("new touch slot = %v, want 1", p)
	}
}

func TestTouchOverflowDropped(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := newSource(in, dev)

	for i := 1; i <= touchpoint.MaxPointers; i++ {
		dev.touch(ebiten.TouchID(i), i, i)
	}
	s.Poll(frame(0))
	if got := in.TotalActivePointers(); got != touchpoint.MaxPointers-1 {
		t.Fatalf("TotalActivePointers = %d, want %d", got, touchpoint.MaxPointers-1)
	}
	overflow := ebiten.TouchID(touchpoint.MaxPointers)
	if _, ok := s.dropped[overflow]; !ok {
		t.Fatal("overflow contact should be remembered as dropped")
	}

	// A dropped contact is not picked up when a slot frees.
	dev.lift(1)
	s.Poll(frame(1))
	if in.PointerByIdentifier(int(overflow)) != nil {
		t.Error("dropped contact should stay dropped until it lifts")
	}

	dev.lift(overflow)
	s.Poll(frame(2))
	if _, ok := s.dropped[overflow]; ok {
		t.Error("dropped contact should be forgotten once lifted")
	}
}

func TestTouchHeldAcrossReset(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := newSource(in, dev)

	downs := 0
	in.OnDown(func(*touchpoint.Pointer) { downs++ })

	dev.touch(7, 10, 10)
	s.Poll(frame(0))
	in.Reset(false)

	// A new contact takes the freed slot while 7 is still held.
	dev.touch(9, 50, 50)
	s.Poll(frame(1))
	p := in.PointerByIdentifier(9)
	if p == nil || p.ID != 1 {
		t.Fatalf("new touch slot = %v, want 1", p)
	}
	if in.PointerByIdentifier(7) != nil {
		t.Error("a contact held across a reset should not be pressed again")
	}

	dev.touch(7, 12, 12)
	s.Poll(frame(2))
	if in.TotalActivePointers() != 1 || downs != 2 {
		t.Errorf("TotalActivePointers = %d downs = %d, want 1 and 2", in.TotalActivePointers(), downs)
	}

	// Lifting the reset contact leaves the new one alone.
	dev.lift(7)
	s.Poll(frame(3))
	if !p.Active() || p.X != 50 {
		t.Errorf("touch 9 active=%v X=%v, want active at 50", p.Active(), p.X)
	}
	if _, ok := s.dropped[7]; ok {
		t.Error("lifted contact should be forgotten")
	}
}

func TestUpdateTicksInput(t *testing.T) {
	in := touchpoint.NewInput(nil)
	dev := newFakeDevice()
	s := New(in)
	s.dev = dev
	if s.Input() != in {
		t.Fatal("Input should return the driven Input")
	}

	holds := 0
	in.OnHold(func(*touchpoint.Pointer) { holds++ })

	dev.pressed[ebiten.MouseButtonLeft] = true
	s.Update(t0)
	s.Update(t0.Add(2 * time.Second))
	if holds != 1 {
		t.Errorf("holds = %d, want 1", holds)
	}
}
