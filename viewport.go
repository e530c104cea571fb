package touchpoint

// Viewport converts raw device coordinates to scene coordinates. It stands in
// for the scale manager and world camera of the host engine.
type Viewport interface {
	// PageToScene maps page coordinates to scene coordinates.
	PageToScene(px, py float64) (x, y float64)
	// ContainsPage reports whether page coordinates lie inside the game area.
	ContainsPage(px, py float64) bool
	// CameraOffset is added to scene coordinates to produce world coordinates.
	CameraOffset() (x, y float64)
}

// ScaleViewport is a Viewport defined by an offset and scale:
//
//	scene = (page - Offset) * Scale
//
// A zero Bounds rectangle means the game area is unbounded.
type ScaleViewport struct {
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
	Bounds           Rect
	CameraX, CameraY float64
}

// NewScaleViewport returns an identity viewport whose game area is the
// rectangle (0, 0, width, height).
func NewScaleViewport(width, height float64) *ScaleViewport {
	return &ScaleViewport{
		ScaleX: 1,
		ScaleY: 1,
		Bounds: Rect{Width: width, Height: height},
	}
}

// PageToScene implements Viewport.
func (v *ScaleViewport) PageToScene(px, py float64) (float64, float64) {
	return (px - v.OffsetX) * v.ScaleX, (py - v.OffsetY) * v.ScaleY
}

// ContainsPage implements Viewport.
func (v *ScaleViewport) ContainsPage(px, py float64) bool {
	if v.Bounds.Width == 0 && v.Bounds.Height == 0 {
		return true
	}
	return v.Bounds.Contains(px, py)
}

// CameraOffset implements Viewport.
func (v *ScaleViewport) CameraOffset() (float64, float64) {
	return v.CameraX, v.CameraY
}
