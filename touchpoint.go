package touchpoint

// Vec2 is a 2D vector used for positions and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Circle is a circle in scene coordinates. Every pointer carries one as its
// hit probe.
type Circle struct {
	X, Y, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y float64) bool {
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// IntersectsRect reports whether the circle overlaps r.
func (c Circle) IntersectsRect(r Rect) bool {
	nx := clamp(c.X, r.X, r.X+r.Width)
	ny := clamp(c.Y, r.Y, r.Y+r.Height)
	return c.Contains(nx, ny)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft    MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                     // middle mouse button (scroll wheel click)
	MouseButtonRight                      // secondary (right) mouse button
	MouseButtonBack                       // browser back / X1
	MouseButtonForward                    // browser forward / X2
)

// ButtonMask is a bitmask of currently pressed mouse buttons, one bit per
// MouseButton.
type ButtonMask uint8

// Has reports whether b is pressed in the mask.
func (m ButtonMask) Has(b MouseButton) bool {
	return m&(1<<b) != 0
}

// Mask returns the single-bit mask for b.
func (b MouseButton) Mask() ButtonMask {
	return 1 << b
}

// Override selects which input source drives the shared active pointer when
// both mouse and touch are present.
type Override uint8

const (
	MouseTouchCombine   Override = iota // every pointer drives the shared position
	MouseOverridesTouch                 // the mouse always wins
	TouchOverridesMouse                 // the mouse only counts while no touch is active
)

var overrideNames = [...]string{
	MouseTouchCombine:   "combine",
	MouseOverridesTouch: "mouse",
	TouchOverridesMouse: "touch",
}

// String returns the config name of the override policy.
func (o Override) String() string {
	if int(o) < len(overrideNames) {
		return overrideNames[o]
	}
	return "unknown"
}

// ParseOverride maps a config name ("combine", "mouse", "touch") to an Override.
func ParseOverride(name string) (Override, bool) {
	for i, n := range overrideNames {
		if n == name {
			return Override(i), true
		}
	}
	return MouseTouchCombine, false
}

// EventType identifies a kind of pointer event emitted to an EntityStore.
type EventType uint8

const (
	EventPointerDown EventType = iota // a contact was pressed
	EventPointerUp                    // a contact was released
	EventTap                          // release within the tap window
	EventDoubleTap                    // tap within the double-tap window of the previous one
	EventHold                         // contact held past the hold threshold
	EventPointerOver                  // a candidate became the current target
	EventPointerOut                   // the current target lost the pointer
)

var eventTypeNames = [...]string{
	EventPointerDown: "down",
	EventPointerUp:   "up",
	EventTap:         "tap",
	EventDoubleTap:   "doubletap",
	EventHold:        "hold",
	EventPointerOver: "over",
	EventPointerOut:  "out",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}
