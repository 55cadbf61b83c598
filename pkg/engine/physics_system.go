// pkg/engine/physics_system.go
package engine

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// MaxTicksPerUpdate bounds the catch-up work of a single slow frame
const MaxTicksPerUpdate = 8

// TickListener is called after every physics tick
type TickListener func(stats simulation.StepStats)

// PhysicsSystem advances the simulation in fixed ticks from variable frame
// times. Leftover time carries over to the next frame.
type PhysicsSystem struct {
	game        *Game
	step        float64
	accumulator float64
	listeners   []TickListener
	last        simulation.StepStats
	dropped     uint64
}

// NewPhysicsSystem creates the system for g's tick rate
func NewPhysicsSystem(g *Game) *PhysicsSystem {
	return &PhysicsSystem{
		game: g,
		step: g.Config.TickDuration().Seconds(),
	}
}

// Priority implements ecs.Prioritizer
func (*PhysicsSystem) Priority() int {
	return PriorityPhysics
}

// AddTickListener registers fn to run after each tick
func (p *PhysicsSystem) AddTickListener(fn TickListener) {
	p.listeners = append(p.listeners, fn)
}

// Update feeds the cursor to the tether and runs every tick that is due
func (p *PhysicsSystem) Update(dt float32) {
	g := p.game
	if g.input.HasCursor {
		g.sim.SetTetherTarget(g.tether, g.input.Cursor)
	} else if !g.sim.TetherReleased(g.tether) {
		g.sim.ReleaseTetherTarget(g.tether)
		g.logger.Debug(g.ctx, "cursor lost, hand keeps its last target")
	}

	p.accumulator += float64(dt)
	ticks := 0
	for p.accumulator >= p.step && ticks < MaxTicksPerUpdate {
		p.last = g.sim.Step()
		for _, fn := range p.listeners {
			fn(p.last)
		}
		p.accumulator -= p.step
		ticks++
	}

	if p.accumulator >= p.step {
		behind := uint64(p.accumulator / p.step)
		p.dropped += behind
		p.accumulator -= float64(behind) * p.step
		g.logger.Debug(g.ctx, "physics fell behind, dropping ticks",
			"dropped", behind,
			"frame", time.Duration(float64(dt)*float64(time.Second)).String(),
		)
	}
}

// Dropped returns the number of ticks skipped to keep up with real time
func (p *PhysicsSystem) Dropped() uint64 {
	return p.dropped
}

// Remove implements ecs.System
func (*PhysicsSystem) Remove(ecs.BasicEntity) {}
