// pkg/physics/geometry_test.go
package physics

import (
	"math"
	"testing"
)

func TestAABB_FromCenter(t *testing.T) {
	b := AABBFromCenter(Vector2D{X: 10, Y: 20}, 3, 4)

	if b.Min() != (Vector2D{X: 7, Y: 16}) {
		t.Errorf("Min() = %v", b.Min())
	}
	if b.Max() != (Vector2D{X: 13, Y: 24}) {
		t.Errorf("Max() = %v", b.Max())
	}
	if b.Center() != (Vector2D{X: 10, Y: 20}) {
		t.Errorf("Center() = %v", b.Center())
	}
}

func TestAABB_Intersects(t *testing.T) {
	base := AABB{Pos: Vector2D{}, Size: Vector2D{X: 10, Y: 10}}

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"overlapping", AABB{Pos: Vector2D{X: 5, Y: 5}, Size: Vector2D{X: 10, Y: 10}}, true},
		{"contained", AABB{Pos: Vector2D{X: 2, Y: 2}, Size: Vector2D{X: 1, Y: 1}}, true},
		{"touching_edge", AABB{Pos: Vector2D{X: 10, Y: 0}, Size: Vector2D{X: 5, Y: 5}}, true},
		{"separate_x", AABB{Pos: Vector2D{X: 11, Y: 0}, Size: Vector2D{X: 5, Y: 5}}, false},
		{"separate_y", AABB{Pos: Vector2D{X: 0, Y: -6}, Size: Vector2D{X: 5, Y: 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
			if got := tt.other.Intersects(base); got != tt.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAABB_Union(t *testing.T) {
	a := AABBFromCenter(Vector2D{}, 1, 1)
	b := AABBFromCenter(Vector2D{X: 10, Y: -5}, 2, 1)

	u := a.Union(b)
	if u.Min() != (Vector2D{X: -1, Y: -6}) || u.Max() != (Vector2D{X: 12, Y: 1}) {
		t.Errorf("Union() = %+v", u)
	}
	if u != b.Union(a) {
		t.Errorf("Union() is not symmetric")
	}
}

func TestAABB_IntersectRay(t *testing.T) {
	b := AABBFromCenter(Vector2D{X: 10, Y: 0}, 2, 2)

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float64
	}{
		{"head_on", Ray{Origin: Vector2D{}, Direction: UnitX}, true, 8},
		{"from_inside_exits", Ray{Origin: Vector2D{X: 10}, Direction: UnitX}, true, 2},
		{"diagonal", Ray{Origin: Vector2D{X: 8, Y: -4}, Direction: Vector2D{X: 1, Y: 1}.Normalize()}, true, 2 * math.Sqrt2},
		{"miss_above", Ray{Origin: Vector2D{Y: 5}, Direction: UnitX}, false, 0},
		{"pointing_away", Ray{Origin: Vector2D{}, Direction: UnitX.Neg()}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, dist := b.IntersectRay(tt.ray)
			if hit != tt.hit {
				t.Fatalf("hit = %v, expected %v", hit, tt.hit)
			}
			if !tt.hit {
				if !math.IsInf(dist, 1) {
					t.Errorf("dist = %v on a miss, expected +Inf", dist)
				}
				return
			}
			if math.Abs(dist-tt.dist) > epsilon {
				t.Errorf("dist = %v, expected %v", dist, tt.dist)
			}
		})
	}
}

func TestLineLineIntersection(t *testing.T) {
	tests := []struct {
		name      string
		a1, a2    Vector2D
		b1, b2    Vector2D
		aInfinite bool
		hit       bool
		s         float64
	}{
		{"crossing", Vector2D{}, Vector2D{X: 4}, Vector2D{X: 2, Y: -1}, Vector2D{X: 2, Y: 1}, false, true, 0.5},
		{"beyond_segment", Vector2D{}, Vector2D{X: 1}, Vector2D{X: 2, Y: -1}, Vector2D{X: 2, Y: 1}, false, false, 0},
		{"beyond_segment_as_ray", Vector2D{}, Vector2D{X: 1}, Vector2D{X: 2, Y: -1}, Vector2D{X: 2, Y: 1}, true, true, 2},
		{"behind_origin", Vector2D{}, Vector2D{X: 1}, Vector2D{X: -2, Y: -1}, Vector2D{X: -2, Y: 1}, true, false, 0},
		{"misses_b", Vector2D{}, Vector2D{X: 4}, Vector2D{X: 2, Y: 1}, Vector2D{X: 2, Y: 3}, false, false, 0},
		{"parallel", Vector2D{}, Vector2D{X: 4}, Vector2D{Y: 1}, Vector2D{X: 4, Y: 1}, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, s := LineLineIntersection(tt.a1, tt.a2, tt.b1, tt.b2, tt.aInfinite)
			if hit != tt.hit {
				t.Fatalf("hit = %v, expected %v", hit, tt.hit)
			}
			if tt.hit && math.Abs(s-tt.s) > epsilon {
				t.Errorf("s = %v, expected %v", s, tt.s)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	r := Ray{Origin: Vector2D{X: 1, Y: 1}, Direction: UnitY}
	if got := r.At(3); got != (Vector2D{X: 1, Y: 4}) {
		t.Errorf("At(3) = %v", got)
	}
}
