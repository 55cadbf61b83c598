// pkg/physics/body.go
package physics

// Default damping factors for new bodies
const (
	DefaultDrag     = 0.001
	DefaultFriction = 0.1
)

// Body is a Verlet point mass. Velocity is implicit in the difference
// between the current and previous position.
type Body struct {
	PositionCurrent Vector2D
	PositionOld     Vector2D
	// Acceleration accumulates over a whole tick and is cleared by ResetForces
	Acceleration Vector2D
	// Fixed bodies have infinite mass and are never displaced by the solver
	Fixed    bool
	Drag     float64
	Friction float64

	// Collider is optional; bodies without one take part in constraints only
	Collider *Collider
	// Static bodies are indexed by the broad phase and never move
	Static bool
	// ConstantFriction re-applies friction every sub-step from last tick's contacts
	ConstantFriction bool
	// Track records contacts when non-nil
	Track *TrackCollision
}

// NewBody creates a body at rest at pos with default damping
func NewBody(pos Vector2D) Body {
	return Body{
		PositionCurrent: pos,
		PositionOld:     pos,
		Drag:            DefaultDrag,
		Friction:        DefaultFriction,
	}
}

// Accelerate adds to the accumulated acceleration
func (b *Body) Accelerate(acc Vector2D) {
	b.Acceleration = b.Acceleration.Add(acc)
}

// ResetForces clears the accumulated acceleration
func (b *Body) ResetForces() {
	b.Acceleration = Vector2D{}
}

// Velocity returns the implicit per-step velocity
func (b *Body) Velocity() Vector2D {
	return b.PositionCurrent.Sub(b.PositionOld)
}

// Movable reports whether the solver may displace the body
func (b *Body) Movable() bool {
	return !b.Fixed && !b.Static
}

// InverseMass is 1 for movable bodies and 0 for anchors
func (b *Body) InverseMass() float64 {
	if b.Movable() {
		return 1
	}
	return 0
}

// Integrate advances the body one Verlet step. Acceleration is left intact,
// so every sub-step of a tick re-applies the same accumulated value.
// A step that would produce a non-finite position is dropped.
func (b *Body) Integrate() {
	if !b.Movable() {
		return
	}
	vel := b.PositionCurrent.Sub(b.PositionOld).Scale(1 - b.Drag)
	next := b.PositionCurrent.Add(vel).Add(b.Acceleration)
	if !next.IsFinite() {
		return
	}
	b.PositionOld = b.PositionCurrent
	b.PositionCurrent = next
}

// Translate moves a movable body by delta if the result stays finite.
// It reports whether the move was applied.
func (b *Body) Translate(delta Vector2D) bool {
	if !b.Movable() {
		return false
	}
	next := b.PositionCurrent.Add(delta)
	if !next.IsFinite() {
		return false
	}
	b.PositionCurrent = next
	return true
}

// ApplyFriction damps the tangential part of the current velocity against a
// contact normal and returns the tangential velocity before damping.
func (b *Body) ApplyFriction(normal Vector2D) Vector2D {
	vel := b.Velocity()
	velN := normal.Scale(normal.Dot(vel))
	velT := vel.Sub(velN)
	b.Translate(velT.Scale(-b.Friction))
	return velT
}
