// pkg/physics/geometry.go
package physics

import "math"

// parallelEpsilon is the determinant below which two segments are treated as parallel
const parallelEpsilon = 1e-6

// AABB is an axis-aligned box anchored at its minimum corner
type AABB struct {
	Pos  Vector2D
	Size Vector2D
}

// AABBFromCenter builds a box around center with the given half extents
func AABBFromCenter(center Vector2D, halfWidth, halfHeight float64) AABB {
	return AABB{
		Pos:  Vector2D{X: center.X - halfWidth, Y: center.Y - halfHeight},
		Size: Vector2D{X: halfWidth * 2, Y: halfHeight * 2},
	}
}

// Min returns the minimum corner
func (b AABB) Min() Vector2D {
	return b.Pos
}

// Max returns the maximum corner
func (b AABB) Max() Vector2D {
	return b.Pos.Add(b.Size)
}

// Center returns the center of the box
func (b AABB) Center() Vector2D {
	return b.Pos.Add(b.Size.Scale(0.5))
}

// Intersects reports whether two boxes overlap. Touching edges count as overlap.
func (b AABB) Intersects(other AABB) bool {
	minA, maxA := b.Min(), b.Max()
	minB, maxB := other.Min(), other.Max()
	return minA.X <= maxB.X &&
		maxA.X >= minB.X &&
		minA.Y <= maxB.Y &&
		maxA.Y >= minB.Y
}

// Union returns the smallest box covering both boxes
func (b AABB) Union(other AABB) AABB {
	lo := b.Min().Min(other.Min())
	hi := b.Max().Max(other.Max())
	return AABB{Pos: lo, Size: hi.Sub(lo)}
}

// IntersectRay tests the ray against the four edges of the box. It returns
// whether any edge is hit and the smallest hit distance along the ray, or
// +Inf when nothing is hit. A ray starting inside the box reports the exit
// distance.
func (b AABB) IntersectRay(ray Ray) (bool, float64) {
	lo, hi := b.Min(), b.Max()
	a := Vector2D{X: lo.X, Y: lo.Y}
	c := Vector2D{X: lo.X, Y: hi.Y}
	d := Vector2D{X: hi.X, Y: hi.Y}
	e := Vector2D{X: hi.X, Y: lo.Y}

	end := ray.Origin.Add(ray.Direction)
	edges := [4][2]Vector2D{{a, c}, {c, d}, {d, e}, {e, a}}

	hit := false
	best := math.Inf(1)
	for _, edge := range edges {
		ok, dist := LineLineIntersection(ray.Origin, end, edge[0], edge[1], true)
		if !ok {
			continue
		}
		hit = true
		if dist < best {
			best = dist
		}
	}
	return hit, best
}

// Ray is a half line. Direction is expected to be normalized by the caller,
// in which case hit distances are in world units.
type Ray struct {
	Origin    Vector2D
	Direction Vector2D
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector2D {
	return r.Origin.Add(r.Direction.Scale(t))
}

// LineLineIntersection intersects segment a1-a2 with segment b1-b2 using the
// closest-point parameterization. It returns the parameter s along a, where
// a1 + s*(a2-a1) is the hit point. With aInfinite the first segment is
// treated as a ray (s is only bounded below). Parallel segments never hit.
func LineLineIntersection(a1, a2, b1, b2 Vector2D, aInfinite bool) (bool, float64) {
	d0 := a2.Sub(a1)
	d1 := b2.Sub(b1)

	a := d0.Dot(d0)
	b := d0.Dot(d1)
	c := d1.Dot(d1)

	w := a1.Sub(b1)
	d := d0.Dot(w)
	e := d1.Dot(w)

	det := a*c - b*b
	if math.Abs(det) < parallelEpsilon {
		return false, math.Inf(1)
	}

	s := (b*e - c*d) / det
	t := (a*e - b*d) / det
	if s >= 0 && (s <= 1 || aInfinite) && t >= 0 && t <= 1 {
		return true, s
	}
	return false, math.Inf(1)
}
