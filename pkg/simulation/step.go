// pkg/simulation/step.go
package simulation

import (
	"errors"

	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/physics"
)

// StepStats summarizes one tick. Contact and skip counts are summed over
// every sub-step.
type StepStats struct {
	Tick               uint64
	SubSteps           int
	StaticContacts     int
	DynamicContacts    int
	Triggers           int
	SkippedConstraints int
	Faults             int
}

// Step advances the world by one fixed tick:
//
//	reset forces, rotate contact history, apply gravity, then per sub-step:
//	gravity, floor, integrate, tethers, sticks, static pass,
//	dynamic pass (if enabled), tracked friction
//
// Gravity is applied once before the sub-steps and again inside each one,
// and acceleration is only cleared at the start of the tick, so the applied
// acceleration grows across the sub-steps of a tick.
func (w *World) Step() StepStats {
	w.ensureIndex()
	w.tick++
	stats := StepStats{Tick: w.tick, SubSteps: w.config.SubSteps}

	w.bodies.Each(func(_ physics.Handle, b *physics.Body) {
		b.ResetForces()
		if b.Track != nil {
			b.Track.Reset()
		}
	})
	w.applyGravity()

	for i := 0; i < w.config.SubSteps; i++ {
		w.applyGravity()
		w.applyBoundary()
		w.integrate()
		w.solveTethers(&stats)
		w.solveSticks(&stats)
		w.staticPass(&stats)
		if w.config.DynamicCollisions {
			w.dynamicPass(&stats)
		}
		w.trackedFriction()
	}

	return stats
}

func (w *World) applyGravity() {
	g := physics.Vector2D{Y: -w.config.Gravity}
	w.bodies.Each(func(_ physics.Handle, b *physics.Body) {
		if b.Movable() {
			b.Accelerate(g)
		}
	})
}

// applyBoundary clamps bodies below the floor back onto it, applying floor
// friction first
func (w *World) applyBoundary() {
	if !w.config.Boundary.Enabled {
		return
	}
	floor := w.config.Boundary.FloorY
	w.bodies.Each(func(_ physics.Handle, b *physics.Body) {
		if !b.Movable() || b.PositionCurrent.Y >= floor {
			return
		}
		b.ApplyFriction(physics.UnitY)
		b.PositionCurrent.Y = floor
	})
}

func (w *World) integrate() {
	w.bodies.Each(func(_ physics.Handle, b *physics.Body) {
		b.Integrate()
	})
}

func (w *World) solveTethers(stats *StepStats) {
	for _, t := range w.tethers {
		if !t.hasTarget {
			continue
		}
		holder, hand, err := w.bodies.Pair(t.holder, t.hand)
		if err != nil {
			stats.SkippedConstraints++
			continue
		}

		err = t.guard.Run(func() error {
			return physics.SolveTether(holder, hand, t.target, t.params)
		})
		switch {
		case err == nil:
		case skipped(err), errors.Is(err, physics.ErrDegenerateVector):
			stats.SkippedConstraints++
		default:
			stats.Faults++
			w.logger.Warn(w.ctx, "tether solve faulted",
				"name", t.guard.Name(),
				"tick", w.tick,
				"error", err,
			)
			w.bus.Publish(event.NewFaultEvent(w, w.tick, t.guard.Name(), err))
		}
	}
}

func (w *World) solveSticks(stats *StepStats) {
	for _, e := range w.sticks {
		a, b, err := w.bodies.Pair(e.stick.A, e.stick.B)
		if err != nil {
			// an endpoint was despawned mid-tick
			stats.SkippedConstraints++
			continue
		}

		err = physics.SolveStick(a, b, e.stick.Length, e.stick.Ratio)
		switch {
		case err == nil:
		case errors.Is(err, physics.ErrDegenerateVector):
			stats.SkippedConstraints++
		default:
			stats.Faults++
			w.logger.Debug(w.ctx, "stick solve faulted",
				"stick", uint64(e.id),
				"tick", w.tick,
				"error", err,
			)
			w.bus.Publish(event.NewFaultEvent(w, w.tick, "stick", err))
		}
	}
}

// staticPass resolves every movable collider against the indexed statics.
// The static side never moves; friction is applied before the correction.
func (w *World) staticPass(stats *StepStats) {
	var candidates []physics.Handle
	w.bodies.Each(func(h physics.Handle, b *physics.Body) {
		if b.Static || b.Collider == nil || !b.Movable() {
			return
		}
		candidates = w.index.QueryAppend(candidates[:0], b.Collider.BoundingBox(b.PositionCurrent))
		for _, sh := range candidates {
			s, ok := w.bodies.Get(sh)
			if !ok || s.Collider == nil || !b.Collider.Interacts(*s.Collider) {
				continue
			}
			res := physics.Collide(*b.Collider, b.PositionCurrent, *s.Collider, s.PositionCurrent)
			if !res.Collided {
				continue
			}

			if b.Collider.Trigger || s.Collider.Trigger {
				if b.Track != nil {
					b.Track.RecordTrigger(sh)
				}
				stats.Triggers++
				continue
			}

			b.ApplyFriction(res.Normal)
			b.Translate(res.Correction)
			if b.Track != nil {
				b.Track.RecordContact(sh, res.Normal)
			}
			stats.StaticContacts++
		}
	})
}

// dynamicPass resolves every unordered pair of non-static colliders,
// splitting the correction by inverse mass
func (w *World) dynamicPass(stats *StepStats) {
	type entry struct {
		h physics.Handle
		b *physics.Body
	}
	var dyn []entry
	w.bodies.Each(func(h physics.Handle, b *physics.Body) {
		if !b.Static && b.Collider != nil {
			dyn = append(dyn, entry{h, b})
		}
	})

	for i := 0; i < len(dyn); i++ {
		a := dyn[i]
		for j := i + 1; j < len(dyn); j++ {
			b := dyn[j]
			if !a.b.Collider.Interacts(*b.b.Collider) {
				continue
			}
			res := physics.Collide(*a.b.Collider, a.b.PositionCurrent, *b.b.Collider, b.b.PositionCurrent)
			if !res.Collided {
				continue
			}

			if a.b.Collider.Trigger || b.b.Collider.Trigger {
				if a.b.Track != nil {
					a.b.Track.RecordTrigger(b.h)
				}
				if b.b.Track != nil {
					b.b.Track.RecordTrigger(a.h)
				}
				stats.Triggers++
				continue
			}

			ma, mb := a.b.InverseMass(), b.b.InverseMass()
			if ma+mb <= 0 {
				continue
			}
			a.b.Translate(res.Correction.Scale(ma / (ma + mb)))
			b.b.Translate(res.Correction.Scale(-mb / (ma + mb)))
			if a.b.Track != nil {
				a.b.Track.RecordContact(b.h, res.Normal)
			}
			if b.b.Track != nil {
				b.b.Track.RecordContact(a.h, res.Normal.Neg())
			}
			stats.DynamicContacts++
		}
	}
}

// trackedFriction re-applies last tick's contact normals to bodies with
// constant friction, so a persisting contact does not flicker
func (w *World) trackedFriction() {
	w.bodies.Each(func(_ physics.Handle, b *physics.Body) {
		if !b.ConstantFriction || b.Track == nil {
			return
		}
		for _, h := range b.Track.SortedLast() {
			b.ApplyFriction(b.Track.Last[h].Normal)
		}
	})
}
