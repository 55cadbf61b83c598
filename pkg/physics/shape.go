// pkg/physics/shape.go
package physics

import (
	"fmt"
	"math"
)

// ShapeKind identifies the geometry of a collider
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is either a circle (Radius) or an axis-aligned box (HalfWidth, HalfHeight)
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
}

// Circle returns a circle shape
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Box returns a box shape with the given half extents
func Box(halfWidth, halfHeight float64) Shape {
	return Shape{Kind: ShapeBox, HalfWidth: halfWidth, HalfHeight: halfHeight}
}

// Collider attaches a shape and a collision filter to a body.
// Two colliders interact only if each one's mask intersects the other's layer.
type Collider struct {
	Shape     Shape
	Layer     uint32
	LayerMask uint32
	// Trigger colliders are only tracked, never resolved
	Trigger bool
}

// Interacts applies the layer/mask filter in both directions
func (c Collider) Interacts(other Collider) bool {
	return c.LayerMask&other.Layer != 0 && other.LayerMask&c.Layer != 0
}

// BoundingBox returns the collider's box when centered at pos
func (c Collider) BoundingBox(pos Vector2D) AABB {
	switch c.Shape.Kind {
	case ShapeBox:
		return AABBFromCenter(pos, c.Shape.HalfWidth, c.Shape.HalfHeight)
	default:
		return AABBFromCenter(pos, c.Shape.Radius, c.Shape.Radius)
	}
}

// IntersectRay performs the exact per-shape ray test for a collider centered
// at pos and returns the hit distance along the ray.
func (c Collider) IntersectRay(ray Ray, pos Vector2D) (bool, float64) {
	switch c.Shape.Kind {
	case ShapeBox:
		return c.BoundingBox(pos).IntersectRay(ray)
	case ShapeCircle:
		return intersectRayCircle(ray, pos, c.Shape.Radius)
	default:
		return false, math.Inf(1)
	}
}

// intersectRayCircle solves |o + t*d - center| = r for the smallest t >= 0.
// A ray starting inside the circle reports the exit distance.
func intersectRayCircle(ray Ray, center Vector2D, radius float64) (bool, float64) {
	dir, ok := ray.Direction.TryNormalize()
	if !ok {
		return false, math.Inf(1)
	}
	scale := ray.Direction.Length()

	m := ray.Origin.Sub(center)
	b := m.Dot(dir)
	c := m.LengthSquared() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return false, math.Inf(1)
	}
	root := math.Sqrt(disc)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 {
		return false, math.Inf(1)
	}
	// distances are reported in units of ray.Direction, like the edge test
	return true, t / scale
}
