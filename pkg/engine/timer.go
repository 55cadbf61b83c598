// pkg/engine/timer.go
package engine

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// TimerState is the run timer as seen by the UI
type TimerState struct {
	Active  bool
	Elapsed time.Duration
}

// TimerSystem starts the run timer when the player enters a start trigger
// and stops it at a finish trigger
type TimerSystem struct {
	game    *Game
	active  bool
	elapsed time.Duration
}

// Priority implements ecs.Prioritizer
func (*TimerSystem) Priority() int {
	return PriorityTimer
}

// OnTick checks the player's triggers after a physics tick
func (t *TimerSystem) OnTick(simulation.StepStats) {
	g := t.game
	player, ok := g.sim.Body(g.player.Body)
	if !ok || player.Track == nil {
		return
	}

	for _, h := range player.Track.SortedTriggers() {
		static, ok := g.statics[h]
		if !ok {
			continue
		}
		if static.TimerStart {
			_, stillInside := player.Track.LastTriggers[h]
			t.active = true
			t.elapsed = 0
			if !stillInside {
				g.logger.Debug(g.ctx, "timer started", "trigger", static.Name)
				g.bus.Publish(event.NewTimerEvent(event.TimerStarted, t, h, 0))
			}
		}
		if static.Finish {
			if t.active {
				g.logger.Info(g.ctx, "run finished",
					"trigger", static.Name,
					"elapsed", t.elapsed.String(),
				)
				g.bus.Publish(event.NewTimerEvent(event.TimerFinished, t, h, t.elapsed))
			}
			t.active = false
			t.elapsed = 0
		}
	}
}

// Update advances the running timer by the frame time
func (t *TimerSystem) Update(dt float32) {
	if t.active {
		t.elapsed += time.Duration(float64(dt) * float64(time.Second))
	}
}

// State returns the timer state
func (t *TimerSystem) State() TimerState {
	return TimerState{Active: t.active, Elapsed: t.elapsed}
}

// Remove implements ecs.System
func (*TimerSystem) Remove(ecs.BasicEntity) {}
