package touchpoint

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
	injectReset
)

// syntheticEvent is a single injected pointer event in page coordinates,
// converted through the viewport exactly like device input.
type syntheticEvent struct {
	kind    injectKind
	pointer int
	x, y    float64
}

func (in *Input) inject(kind injectKind, pointer int, x, y float64) {
	if pointer < 0 || pointer >= MaxPointers {
		in.log.Warn("inject: pointer slot out of range", "pointer", pointer)
		return
	}
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: kind, pointer: pointer, x: x, y: y})
}

// InjectPress queues a press of the given pointer slot at page coordinates
// (x, y). The event is consumed on a later Update or ProcessInjected call.
func (in *Input) InjectPress(pointer int, x, y float64) {
	in.inject(injectPress, pointer, x, y)
}

// InjectMove queues a move of the given pointer slot.
func (in *Input) InjectMove(pointer int, x, y float64) {
	in.inject(injectMove, pointer, x, y)
}

// InjectRelease queues a release of the given pointer slot.
func (in *Input) InjectRelease(pointer int, x, y float64) {
	in.inject(injectRelease, pointer, x, y)
}

// InjectReset queues a reset of the given pointer slot.
func (in *Input) InjectReset(pointer int) {
	in.inject(injectReset, pointer, 0, 0)
}

// InjectTap queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (in *Input) InjectTap(pointer int, x, y float64) {
	in.InjectPress(pointer, x, y)
	in.InjectRelease(pointer, x, y)
}

// InjectDrag queues a full drag: a press at (fromX, fromY), frames-2
// intermediate moves along the easing curve fn, and a release at (toX, toY).
// A nil fn moves linearly. Minimum frames is 2 (press + release).
func (in *Input) InjectDrag(pointer int, fromX, fromY, toX, toY float64, frames int, fn ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	if fn == nil {
		fn = ease.Linear
	}
	in.InjectPress(pointer, fromX, fromY)
	steps := frames - 2
	tw := gween.New(0, 1, float32(steps+1), fn)
	for i := 1; i <= steps; i++ {
		t, _ := tw.Update(1)
		x := fromX + (toX-fromX)*float64(t)
		y := fromY + (toY-fromY)*float64(t)
		in.InjectMove(pointer, x, y)
	}
	in.InjectRelease(pointer, toX, toY)
}

// Pending returns the number of queued injected events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// ProcessInjected pops one injected event and feeds it to its pointer.
// Returns true if an event was consumed.
func (in *Input) ProcessInjected(now time.Time) bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	p := &in.pointers[evt.pointer]
	ev := Event{
		Identifier: evt.pointer,
		ClientX:    evt.x, ClientY: evt.y,
		PageX: evt.x, PageY: evt.y,
		ScreenX: evt.x, ScreenY: evt.y,
		Button: MouseButtonLeft, HasButton: evt.kind == injectPress || evt.kind == injectRelease,
	}
	switch evt.kind {
	case injectPress:
		p.Press(ev, now)
	case injectMove:
		if p.isDown {
			ev.Buttons = MouseButtonLeft.Mask()
		}
		p.Move(ev, now)
	case injectRelease:
		p.Release(ev, now)
	case injectReset:
		p.Reset()
	}
	return true
}
