package touchpoint

// HitShape is a hit region in a candidate's local coordinates.
type HitShape interface {
	// Contains reports whether the local point (x, y) lies inside the shape.
	Contains(x, y float64) bool
	// IntersectsCircle reports whether the local circle c overlaps the shape.
	IntersectsCircle(c Circle) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// IntersectsCircle reports whether c overlaps the rectangle.
func (r HitRect) IntersectsCircle(c Circle) bool {
	return c.IntersectsRect(Rect(r))
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// IntersectsCircle reports whether o overlaps the circle.
func (c HitCircle) IntersectsCircle(o Circle) bool {
	dx := o.X - c.CenterX
	dy := o.Y - c.CenterY
	r := c.Radius + o.Radius
	return dx*dx+dy*dy <= r*r
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// IntersectsCircle reports whether c overlaps the polygon: either the center
// is inside or some edge passes within the radius.
func (p HitPolygon) IntersectsCircle(c Circle) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	if p.Contains(c.X, c.Y) {
		return true
	}
	r2 := c.Radius * c.Radius
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		if segmentDist2(a, b, c.X, c.Y) <= r2 {
			return true
		}
	}
	return false
}

// segmentDist2 returns the squared distance from (x, y) to segment ab.
func segmentDist2(a, b Vec2, x, y float64) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = clamp(((x-a.X)*dx+(y-a.Y)*dy)/l2, 0, 1)
	}
	px := a.X + t*dx - x
	py := a.Y + t*dy - y
	return px*px + py*py
}
