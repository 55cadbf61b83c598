// pkg/physics/constraint.go
package physics

import "math"

// SolveStick pulls two bodies toward the target separation in a single
// relaxation step. With ratio in (0, 1) and both ends movable, A takes ratio
// of the correction and B the rest; otherwise the correction is split by
// inverse mass, so a fixed end never moves. Nothing is written on error.
func SolveStick(a, b *Body, length, ratio float64) error {
	ma, mb := a.InverseMass(), b.InverseMass()
	if ma+mb <= 0 {
		return nil
	}

	diff := b.PositionCurrent.Sub(a.PositionCurrent)
	dir, ok := diff.TryNormalize()
	if !ok {
		return ErrDegenerateVector
	}
	errLen := diff.Length() - length

	wa, wb := ma/(ma+mb), mb/(ma+mb)
	if ratio > 0 && ratio < 1 && ma > 0 && mb > 0 {
		wa, wb = ratio, 1-ratio
	}

	nextA := a.PositionCurrent.Add(dir.Scale(errLen * wa))
	nextB := b.PositionCurrent.Sub(dir.Scale(errLen * wb))
	if !nextA.IsFinite() || !nextB.IsFinite() {
		return ErrNonFinite
	}
	if ma > 0 {
		a.PositionCurrent = nextA
	}
	if mb > 0 {
		b.PositionCurrent = nextB
	}
	return nil
}

// TetherParams tunes the hand/holder tether
type TetherParams struct {
	// MaxLength caps the hand's reach from the holder
	MaxLength float64
	// Power caps the per-step correction
	Power float64
	// HandShare is the fraction of each correction applied to the hand;
	// the holder takes the remainder
	HandShare float64
	// StepDivisor scales the discrepancy before the Power cap
	StepDivisor float64
}

// DefaultTetherParams matches the tuning the gameplay constants were set against
func DefaultTetherParams() TetherParams {
	return TetherParams{
		MaxLength:   64,
		Power:       0.4,
		HandShare:   0.95,
		StepDivisor: 8,
	}
}

// SolveTether moves the hand toward target as seen from the holder, at most
// MaxLength away, then hard-clamps the hand/holder distance to MaxLength.
// Both bodies are updated together or not at all.
func SolveTether(holder, hand *Body, target Vector2D, p TetherParams) error {
	toTarget := target.Sub(hand.PositionCurrent)
	dir, ok := toTarget.TryNormalize()
	if !ok {
		return ErrDegenerateVector
	}
	reach := math.Min(toTarget.Length(), p.MaxLength)
	ideal := holder.PositionCurrent.Add(dir.Scale(reach))

	diff := ideal.Sub(hand.PositionCurrent)
	dist := diff.Length()
	if dist == 0 {
		return nil
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return ErrNonFinite
	}
	step := dir2(diff, dist).Scale(math.Min(dist/p.StepDivisor, p.Power))

	handShare, holderShare := shares(holder, hand, p.HandShare)
	nextHand := hand.PositionCurrent.Add(step.Scale(handShare))
	nextHolder := holder.PositionCurrent.Sub(step.Scale(holderShare))

	link := nextHand.Sub(nextHolder)
	if over := p.MaxLength - link.Length(); over < 0 {
		linkDir, ok := link.TryNormalize()
		if !ok {
			return ErrNonFinite
		}
		nextHolder = nextHolder.Sub(linkDir.Scale(over * holderShare))
		nextHand = nextHand.Add(linkDir.Scale(over * handShare))
	}

	if !nextHand.IsFinite() || !nextHolder.IsFinite() {
		return ErrNonFinite
	}
	hand.PositionCurrent = nextHand
	holder.PositionCurrent = nextHolder
	return nil
}

func dir2(v Vector2D, length float64) Vector2D {
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// shares zeroes the share of any anchored end
func shares(holder, hand *Body, handShare float64) (float64, float64) {
	h, o := handShare, 1-handShare
	if !hand.Movable() {
		h = 0
	}
	if !holder.Movable() {
		o = 0
	}
	return h, o
}
