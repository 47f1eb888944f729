package game

import "math"

// rect is an axis-aligned wall block in screen pixels.
type rect struct {
	x int
	y int
	w int
	h int
}

func (r rect) bounds() (minX, minY, maxX, maxY float64) {
	return float64(r.x), float64(r.y), float64(r.x + r.w), float64(r.y + r.h)
}

// overlapsCircle reports whether a circle of the given radius touches r.
func (r rect) overlapsCircle(cx, cy, radius float64) bool {
	minX, minY, maxX, maxY := r.bounds()
	nx := clampf(cx, minX, maxX)
	ny := clampf(cy, minY, maxY)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < radius*radius
}

// HasLineOfSight returns true if a straight line from (ax,ay) to (bx,by)
// does not cross any wall.
func HasLineOfSight(ax, ay, bx, by float64, walls []rect) bool {
	_, hit := firstWallHit(ax, ay, bx, by, walls)
	return !hit
}

// firstWallHit returns the smallest segment parameter t in [0,1] at which
// the segment enters a wall.
func firstWallHit(ax, ay, bx, by float64, walls []rect) (float64, bool) {
	best, found := 1.0, false
	for _, w := range walls {
		minX, minY, maxX, maxY := w.bounds()
		if t, ok := rayAABBHitT(ax, ay, bx, by, minX, minY, maxX, maxY); ok && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	var ok bool
	if tMin, tMax, ok = clipSlab(ox, ex-ox, minX, maxX, tMin, tMax); !ok {
		return 0, false
	}
	if tMin, tMax, ok = clipSlab(oy, ey-oy, minY, maxY, tMin, tMax); !ok {
		return 0, false
	}
	return tMin, true
}

// clipSlab narrows [tMin,tMax] to the part of o+d·t lying between lo and hi.
func clipSlab(o, d, lo, hi, tMin, tMax float64) (float64, float64, bool) {
	if math.Abs(d) < 1e-12 {
		return tMin, tMax, o >= lo && o <= hi
	}
	t1 := (lo - o) / d
	t2 := (hi - o) / d
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin = math.Max(tMin, t1)
	tMax = math.Min(tMax, t2)
	return tMin, tMax, tMin <= tMax
}

// segmentDistance returns the distance from (px,py) to the segment a-b.
func segmentDistance(ax, ay, bx, by, px, py float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := clampf(((px-ax)*dx+(py-ay)*dy)/lenSq, 0, 1)
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
