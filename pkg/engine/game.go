// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/config"
	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/logging"
	"github.com/opd-ai/go-slinger/pkg/physics"
	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// System priorities. Higher runs first within a frame.
const (
	PriorityRope    = 30
	PriorityPhysics = 20
	PriorityTimer   = 10
	PriorityColor   = 5
)

// Input is the pointer state for one frame. Pressed and Released are edges
// and are consumed by the next Update.
type Input struct {
	Cursor    physics.Vector2D
	HasCursor bool
	Pressed   bool
	Released  bool
}

// Game wires the simulation into an ECS world together with the gameplay
// systems: rope shooting, the run timer and the color picker.
type Game struct {
	Config    *config.SimulationConfig
	SessionID string

	world  *ecs.World
	sim    *simulation.World
	bus    *event.Bus
	logger *logging.Logger
	ctx    context.Context

	player  *ActorEntity
	hand    *ActorEntity
	tether  simulation.TetherID
	statics map[physics.Handle]*StaticEntity
	input   Input

	physics *PhysicsSystem
	ropes   *RopeSystem
	timer   *TimerSystem
	colors  *ColorPickerSystem
}

// NewGame validates cfg and builds the scene it describes
func NewGame(cfg *config.SimulationConfig, logger *logging.Logger) (*Game, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	bus := event.NewEventBus()
	sim := simulation.NewWorld(*cfg, logger, bus)
	g := &Game{
		Config:    cfg,
		SessionID: sim.CorrelationID(),
		world:     &ecs.World{},
		sim:       sim,
		bus:       bus,
		logger:    logger.Component("engine"),
		ctx:       logging.WithCorrelationID(context.Background(), sim.CorrelationID()),
		statics:   make(map[physics.Handle]*StaticEntity),
	}

	if err := g.initScene(); err != nil {
		return nil, err
	}
	g.initSystems()

	g.logger.Info(g.ctx, "game created",
		"scene", cfg.Scene.Name,
		"statics", len(g.statics),
		"tick_rate", cfg.TickRate,
	)
	return g, nil
}

// initScene spawns the statics, the player, the hand and the tether between them
func (g *Game) initScene() error {
	scene := g.Config.Scene
	for _, s := range scene.AllStatics() {
		h := g.sim.AddBody(staticBody(s))
		g.statics[h] = newStaticEntity(h, s)
	}

	player := actorBody(scene.Player, g.Config)
	hand := actorBody(scene.Hand, g.Config)
	hand.ConstantFriction = true

	g.player = &ActorEntity{BasicEntity: ecs.NewBasic(), BodyComponent: BodyComponent{Body: g.sim.AddBody(player)}, Name: "player"}
	g.hand = &ActorEntity{BasicEntity: ecs.NewBasic(), BodyComponent: BodyComponent{Body: g.sim.AddBody(hand)}, Name: "hand"}

	tether, err := g.sim.AddTether(g.player.Body, g.hand.Body, 0)
	if err != nil {
		return fmt.Errorf("failed to attach hand: %w", err)
	}
	g.tether = tether

	g.sim.BuildStaticIndex()
	return nil
}

func (g *Game) initSystems() {
	g.physics = NewPhysicsSystem(g)
	g.ropes = &RopeSystem{game: g}
	g.timer = &TimerSystem{game: g}
	g.colors = &ColorPickerSystem{game: g, color: DefaultColor}

	g.physics.AddTickListener(g.timer.OnTick)
	g.physics.AddTickListener(g.colors.OnTick)

	g.world.AddSystem(g.ropes)
	g.world.AddSystem(g.physics)
	g.world.AddSystem(g.timer)
	g.world.AddSystem(g.colors)
}

// SetInput replaces the pointer state used by the next Update
func (g *Game) SetInput(in Input) {
	g.input = in
}

// Update runs every system for a frame of dt seconds
func (g *Game) Update(dt float32) {
	g.world.Update(dt)
	g.input.Pressed = false
	g.input.Released = false
}

// Player returns the player's body handle
func (g *Game) Player() physics.Handle {
	return g.player.Body
}

// Hand returns the hand's body handle
func (g *Game) Hand() physics.Handle {
	return g.hand.Body
}

// Tether returns the hand tether
func (g *Game) Tether() simulation.TetherID {
	return g.tether
}

// Timer returns the run timer state
func (g *Game) Timer() TimerState {
	return g.timer.State()
}

// Color returns the current global color
func (g *Game) Color() string {
	return g.colors.color
}

// ColorState returns whether a color has been picked yet
func (g *Game) ColorState() ColorState {
	return g.colors.state
}

// World returns the physics world
func (g *Game) World() *simulation.World {
	return g.sim
}

// Bus returns the event bus shared by the world and the systems
func (g *Game) Bus() *event.Bus {
	return g.bus
}

// Ticks returns the number of physics ticks run so far
func (g *Game) Ticks() uint64 {
	return g.sim.Tick()
}

// LastStats returns the statistics of the most recent physics tick
func (g *Game) LastStats() simulation.StepStats {
	return g.physics.last
}

// RopeSegments returns the number of live rope segments
func (g *Game) RopeSegments() int {
	return len(g.ropes.segments)
}

// Static returns the gameplay entity of a static body
func (g *Game) Static(h physics.Handle) (*StaticEntity, bool) {
	s, ok := g.statics[h]
	return s, ok
}

// StaticByName returns the static spawned from the named scene entry
func (g *Game) StaticByName(name string) (*StaticEntity, bool) {
	for _, s := range g.statics {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
