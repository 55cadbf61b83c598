// pkg/physics/collision.go
package physics

import "math"

// CollisionResult contains information about a collision.
// Correction is the displacement that separates A from B when added to A's
// position; Normal points from B towards A.
type CollisionResult struct {
	Collided   bool
	Correction Vector2D
	Normal     Vector2D
	Depth      float64
}

// CircleCircle tests two circles. Coincident centers have no separating
// direction and are reported as no collision.
func CircleCircle(posA, posB Vector2D, radiusA, radiusB float64) CollisionResult {
	diff := posB.Sub(posA)
	dist := diff.Length()
	if dist > radiusA+radiusB {
		return CollisionResult{}
	}
	dir, ok := diff.TryNormalize()
	if !ok {
		return CollisionResult{}
	}
	return CollisionResult{
		Collided:   true,
		Correction: dir.Scale(dist - radiusA - radiusB),
		Normal:     dir.Neg(),
		Depth:      radiusA + radiusB - dist,
	}
}

// CircleBox runs an approximate separating-axis test between a circle and an
// axis-aligned box over three axes: the box-corner-to-circle axis and the two
// box edge axes nearest the circle center. The axis with the smallest
// penetration becomes the contact normal.
func CircleBox(circlePos, boxPos Vector2D, radius, halfWidth, halfHeight float64) CollisionResult {
	left := boxPos.X - halfWidth
	right := boxPos.X + halfWidth
	closestX, axisX := left, UnitX.Neg()
	if math.Abs(circlePos.X-right) < math.Abs(circlePos.X-left) {
		closestX, axisX = right, UnitX
	}

	top := boxPos.Y + halfHeight
	bottom := boxPos.Y - halfHeight
	closestY, axisY := bottom, UnitY.Neg()
	if math.Abs(circlePos.Y-top) < math.Abs(circlePos.Y-bottom) {
		closestY, axisY = top, UnitY
	}

	axes := make([]Vector2D, 0, 3)
	if cornerAxis, ok := circlePos.Sub(Vector2D{X: closestX, Y: closestY}).TryNormalize(); ok {
		axes = append(axes, cornerAxis)
	}
	axes = append(axes, axisX, axisY)

	corners := [4]Vector2D{
		{X: halfWidth, Y: halfHeight},
		{X: -halfWidth, Y: halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: -halfWidth, Y: -halfHeight},
	}

	depth := math.Inf(1)
	var normal Vector2D
	for _, axis := range axes {
		circleMin := axis.Dot(circlePos) - radius
		boxMax := math.Inf(-1)
		for _, offset := range corners {
			boxMax = math.Max(boxMax, axis.Dot(boxPos.Add(offset)))
		}

		axisDepth := boxMax - circleMin
		if axisDepth < depth {
			depth = axisDepth
			normal = axis
		}
		if depth < 0 {
			return CollisionResult{}
		}
	}

	if depth <= 0 {
		return CollisionResult{}
	}
	return CollisionResult{
		Collided:   true,
		Correction: normal.Scale(depth),
		Normal:     normal,
		Depth:      depth,
	}
}

// Collide dispatches on the shape pair. The result is always expressed from
// A's point of view. Box-box pairs are not supported and never collide.
func Collide(a Collider, posA Vector2D, b Collider, posB Vector2D) CollisionResult {
	switch {
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		return CircleCircle(posA, posB, a.Shape.Radius, b.Shape.Radius)
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeBox:
		return CircleBox(posA, posB, a.Shape.Radius, b.Shape.HalfWidth, b.Shape.HalfHeight)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeCircle:
		res := CircleBox(posB, posA, b.Shape.Radius, a.Shape.HalfWidth, a.Shape.HalfHeight)
		if !res.Collided {
			return res
		}
		res.Correction = res.Correction.Neg()
		res.Normal = res.Normal.Neg()
		return res
	default:
		return CollisionResult{}
	}
}
