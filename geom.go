package constellation

import "math"

func clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// quadPoint evaluates a quadratic Bezier curve at t.
func quadPoint(x0, y0, cx, cy, x1, y1, t float64) (float64, float64) {
	mt := 1 - t
	return mt*mt*x0 + 2*mt*t*cx + t*t*x1,
		mt*mt*y0 + 2*mt*t*cy + t*t*y1
}

// linkControl returns the control point of the curve drawn between two
// nodes: the midpoint pushed linkBend units along the left-hand normal.
func linkControl(ax, ay, bx, by float64) (float64, float64) {
	mx, my := (ax+bx)/2, (ay+by)/2
	dx, dy := bx-ax, by-ay
	dist := math.Max(1, math.Hypot(dx, dy))
	return mx + (-dy/dist)*linkBend, my + (dx/dist)*linkBend
}

// pillRect returns the rounded label box centred on (x, y). The corner
// radius never exceeds half of the shorter side.
func pillRect(x, y, w, h, r float64) (left, top, rr float64) {
	rr = math.Min(r, math.Min(w/2, h/2))
	return x - w/2, y - h/2, rr
}
