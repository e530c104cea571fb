package touchpoint

import (
	"fmt"
	"time"
)

// t0 is an arbitrary fixed clock origin for tests.
var t0 = time.Unix(1_000_000, 0)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func pageAt(x, y float64) Event {
	return Event{PageX: x, PageY: y, ClientX: x, ClientY: y}
}

func touchAt(identifier int, x, y float64) Event {
	ev := pageAt(x, y)
	ev.Identifier = identifier
	return ev
}

// callLog records candidate callbacks in order across candidates.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// fakeCandidate is a scriptable Candidate. Its hit tests return fixed
// answers unless area is set, in which case they test the pointer position.
type fakeCandidate struct {
	name     string
	priority int
	order    int
	disabled bool

	hit  bool
	area *Rect

	exact      bool
	exactHit   bool
	exactCalls int
	cheapCalls int

	dragging     *Pointer
	dragContinue bool
	dragCalls    int

	updateResult bool

	log *callLog
}

func newFake(log *callLog, name string, priority, order int) *fakeCandidate {
	return &fakeCandidate{
		name:         name,
		priority:     priority,
		order:        order,
		hit:          true,
		updateResult: true,
		log:          log,
	}
}

func (f *fakeCandidate) Priority() int    { return f.priority }
func (f *fakeCandidate) RenderOrder() int { return f.order }
func (f *fakeCandidate) Enabled() bool    { return !f.disabled }

func (f *fakeCandidate) test(p *Pointer) bool {
	f.cheapCalls++
	if f.area != nil {
		return f.area.Contains(p.X, p.Y)
	}
	return f.hit
}

func (f *fakeCandidate) CheckOver(p *Pointer) bool { return f.test(p) }
func (f *fakeCandidate) CheckDown(p *Pointer) bool { return f.test(p) }

func (f *fakeCandidate) NeedsExactTest() bool { return f.exact }
func (f *fakeCandidate) CheckExact(p *Pointer, fromClick bool) bool {
	f.exactCalls++
	if f.log != nil {
		f.log.add("exact:%s", f.name)
	}
	return f.exactHit
}

func (f *fakeCandidate) PointerOver(p *Pointer) { f.record("over") }
func (f *fakeCandidate) PointerOut(p *Pointer)  { f.record("out") }
func (f *fakeCandidate) PointerDown(p *Pointer) { f.record("down") }
func (f *fakeCandidate) Released(p *Pointer)    { f.record("released") }
func (f *fakeCandidate) Update(p *Pointer) bool {
	f.record("update")
	return f.updateResult
}

func (f *fakeCandidate) IsDragged(p *Pointer) bool { return f.dragging == p }
func (f *fakeCandidate) DragUpdate(p *Pointer) bool {
	f.dragCalls++
	f.record("drag")
	return f.dragContinue
}

func (f *fakeCandidate) record(what string) {
	if f.log != nil {
		f.log.add("%s:%s", what, f.name)
	}
}
