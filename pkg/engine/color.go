// pkg/engine/color.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// DefaultColor is the global color before one is picked
const DefaultColor = "#00ff00"

// ColorState is the color picker state
type ColorState int

// Color picker states. Picked is terminal.
const (
	ColorPicking ColorState = iota
	ColorPicked
)

func (s ColorState) String() string {
	switch s {
	case ColorPicking:
		return "picking"
	case ColorPicked:
		return "picked"
	default:
		return "unknown"
	}
}

// ColorPickerSystem takes the global color from the first colored static
// the player touches
type ColorPickerSystem struct {
	game  *Game
	state ColorState
	color string
}

// Priority implements ecs.Prioritizer
func (*ColorPickerSystem) Priority() int {
	return PriorityColor
}

// OnTick looks for a colored contact while still picking
func (c *ColorPickerSystem) OnTick(simulation.StepStats) {
	if c.state != ColorPicking {
		return
	}
	g := c.game
	player, ok := g.sim.Body(g.player.Body)
	if !ok || player.Track == nil {
		return
	}

	for _, h := range player.Track.SortedCollisions() {
		static, ok := g.statics[h]
		if !ok || static.Color == "" {
			continue
		}
		c.color = static.Color
		c.state = ColorPicked
		g.logger.Info(g.ctx, "color picked",
			"static", static.Name,
			"color", c.color,
		)
		g.bus.Publish(event.NewColorEvent(c, h, c.color))
		return
	}
}

// Update implements ecs.System
func (*ColorPickerSystem) Update(float32) {}

// Remove implements ecs.System
func (*ColorPickerSystem) Remove(ecs.BasicEntity) {}
