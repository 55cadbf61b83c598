// Package simulation ties the physics primitives into a world advanced in
// fixed ticks. A World owns its bodies, stick and tether constraints and the
// static broad-phase index, and is driven from a single goroutine.
package simulation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-slinger/pkg/config"
	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/logging"
	"github.com/opd-ai/go-slinger/pkg/physics"
	"github.com/opd-ai/go-slinger/pkg/spatial"
)

// StickID identifies a stick constraint
type StickID uint64

// TetherID identifies a tether constraint
type TetherID uint64

// Stick is a distance constraint between two bodies.
// Ratio in (0, 1) overrides the inverse-mass split of the correction.
type Stick struct {
	A, B   physics.Handle
	Length float64
	Ratio  float64
}

type stickEntry struct {
	id    StickID
	stick Stick
}

type tether struct {
	id        TetherID
	holder    physics.Handle
	hand      physics.Handle
	params    physics.TetherParams
	target    physics.Vector2D
	hasTarget bool
	released  bool
	guard     *FaultGuard
}

// World is the simulated scene
type World struct {
	config config.SimulationConfig
	logger *logging.Logger
	bus    *event.Bus
	ctx    context.Context

	bodies  *physics.BodyStore
	sticks  []stickEntry
	tethers []*tether
	nextID  uint64

	index      *spatial.KDTree
	indexDirty bool

	tick uint64
}

// NewWorld creates an empty world. A nil logger discards output and a nil
// bus creates a private one.
func NewWorld(cfg config.SimulationConfig, logger *logging.Logger, bus *event.Bus) *World {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	return &World{
		config:     cfg,
		logger:     logger.Component("simulation"),
		bus:        bus,
		ctx:        logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID()),
		bodies:     physics.NewBodyStore(),
		index:      spatial.Build(nil),
		indexDirty: false,
	}
}

// Config returns the configuration the world was created with
func (w *World) Config() config.SimulationConfig {
	return w.config
}

// Bus returns the event bus the world publishes to
func (w *World) Bus() *event.Bus {
	return w.bus
}

// CorrelationID returns the id attached to every log line of this world
func (w *World) CorrelationID() string {
	return logging.GetCorrelationID(w.ctx)
}

// Tick returns the number of completed ticks
func (w *World) Tick() uint64 {
	return w.tick
}

// AddBody inserts a body. Adding a static collider invalidates the index.
func (w *World) AddBody(body physics.Body) physics.Handle {
	if body.Static && body.Collider != nil {
		w.indexDirty = true
	}
	return w.bodies.Insert(body)
}

// Body resolves a handle. The pointer is valid until the next AddBody.
func (w *World) Body(h physics.Handle) (*physics.Body, bool) {
	return w.bodies.Get(h)
}

// Bodies returns the live handles in slot order
func (w *World) Bodies() []physics.Handle {
	return w.bodies.Handles()
}

// BodyCount returns the number of live bodies
func (w *World) BodyCount() int {
	return w.bodies.Len()
}

// RemoveBody deletes a body together with every stick and tether using it
func (w *World) RemoveBody(h physics.Handle) error {
	body, ok := w.bodies.Get(h)
	if !ok {
		return fmt.Errorf("remove body %s: %w", h, physics.ErrStaleHandle)
	}
	if body.Static && body.Collider != nil {
		w.indexDirty = true
	}

	sticks := w.sticks[:0]
	for _, e := range w.sticks {
		if e.stick.A != h && e.stick.B != h {
			sticks = append(sticks, e)
		}
	}
	clear(w.sticks[len(sticks):])
	w.sticks = sticks

	tethers := w.tethers[:0]
	for _, t := range w.tethers {
		if t.holder != h && t.hand != h {
			tethers = append(tethers, t)
		}
	}
	clear(w.tethers[len(tethers):])
	w.tethers = tethers

	w.bodies.Remove(h)
	return nil
}

// AddStick registers a stick between two distinct live bodies
func (w *World) AddStick(s Stick) (StickID, error) {
	if _, _, err := w.bodies.Pair(s.A, s.B); err != nil {
		return 0, fmt.Errorf("add stick: %w", err)
	}
	w.nextID++
	id := StickID(w.nextID)
	w.sticks = append(w.sticks, stickEntry{id: id, stick: s})
	return id, nil
}

// RemoveStick deletes a stick. It reports whether the stick existed.
func (w *World) RemoveStick(id StickID) bool {
	for i, e := range w.sticks {
		if e.id == id {
			w.sticks = append(w.sticks[:i], w.sticks[i+1:]...)
			return true
		}
	}
	return false
}

// Stick returns a registered stick
func (w *World) Stick(id StickID) (Stick, bool) {
	for _, e := range w.sticks {
		if e.id == id {
			return e.stick, true
		}
	}
	return Stick{}, false
}

// StickCount returns the number of registered sticks
func (w *World) StickCount() int {
	return len(w.sticks)
}

// AddTether links a hand to its holder. A power of zero or less keeps the
// configured tether power. The tether is inactive until its first target.
func (w *World) AddTether(holder, hand physics.Handle, power float64) (TetherID, error) {
	if _, _, err := w.bodies.Pair(holder, hand); err != nil {
		return 0, fmt.Errorf("add tether: %w", err)
	}
	params := w.config.Tether.Params()
	if power > 0 {
		params.Power = power
	}

	w.nextID++
	id := TetherID(w.nextID)
	name := fmt.Sprintf("tether-%d", id)
	w.tethers = append(w.tethers, &tether{
		id:     id,
		holder: holder,
		hand:   hand,
		params: params,
		guard:  NewFaultGuard(name, w.config.Fault, w.onBreakerChange),
	})
	return id, nil
}

// SetTetherTarget points the tether at target from the next sub-step on
func (w *World) SetTetherTarget(id TetherID, target physics.Vector2D) bool {
	t := w.findTether(id)
	if t == nil {
		return false
	}
	t.target = target
	t.hasTarget = true
	t.released = false
	return true
}

// ReleaseTetherTarget marks the input as lost. The tether keeps pulling
// toward the last target it was given until a new one is set.
func (w *World) ReleaseTetherTarget(id TetherID) bool {
	t := w.findTether(id)
	if t == nil {
		return false
	}
	t.released = true
	return true
}

// TetherReleased reports whether the tether's input was lost since its last
// target was set
func (w *World) TetherReleased(id TetherID) bool {
	t := w.findTether(id)
	return t != nil && t.released
}

// TetherTarget returns the point the tether is pulling toward
func (w *World) TetherTarget(id TetherID) (physics.Vector2D, bool) {
	t := w.findTether(id)
	if t == nil || !t.hasTarget {
		return physics.Vector2D{}, false
	}
	return t.target, true
}

// TetherState returns the fault guard state of a tether
func (w *World) TetherState(id TetherID) (gobreaker.State, bool) {
	t := w.findTether(id)
	if t == nil {
		return gobreaker.StateClosed, false
	}
	return t.guard.State(), true
}

func (w *World) findTether(id TetherID) *tether {
	for _, t := range w.tethers {
		if t.id == id {
			return t
		}
	}
	return nil
}

func (w *World) onBreakerChange(name string, from, to gobreaker.State) {
	// runs with the breaker locked; must not call back into the guard
	w.logger.Info(w.ctx, "fault guard state changed",
		"name", name,
		"from", from.String(),
		"to", to.String(),
		"tick", w.tick,
	)
	w.bus.Publish(event.NewBreakerEvent(w, name, from.String(), to.String()))
}

// BuildStaticIndex rebuilds the broad phase over every static box collider
// and returns the number indexed. Static circles are left out of the index.
func (w *World) BuildStaticIndex() int {
	var items []spatial.Item
	skipped := 0
	w.bodies.Each(func(h physics.Handle, b *physics.Body) {
		if !b.Static || b.Collider == nil {
			return
		}
		if b.Collider.Shape.Kind != physics.ShapeBox {
			skipped++
			return
		}
		items = append(items, spatial.Item{Handle: h, Box: b.Collider.BoundingBox(b.PositionCurrent)})
	})

	w.index = spatial.Build(items)
	w.indexDirty = false

	if skipped > 0 {
		w.logger.Warn(w.ctx, "static circle colliders are not indexed",
			"skipped", skipped,
		)
	}
	w.logger.Info(w.ctx, "static index built",
		"indexed", len(items),
		"nodes", w.index.NodeCount(),
		"depth", w.index.Depth(),
	)
	w.bus.Publish(event.NewIndexEvent(w, len(items), skipped))
	return len(items)
}

// Index returns the static broad phase, rebuilding it if statics changed
func (w *World) Index() *spatial.KDTree {
	w.ensureIndex()
	return w.index
}

func (w *World) ensureIndex() {
	if w.indexDirty {
		w.BuildStaticIndex()
	}
}

// Raycast returns the nearest static solid collider hit by ray.
// Trigger colliders are transparent.
func (w *World) Raycast(ray physics.Ray) (spatial.Hit, bool) {
	w.ensureIndex()
	return spatial.Raycast(w.index, ray, spatial.LookupFunc(w.lookupSolid))
}

// RaycastBatch casts every ray concurrently. The world must not be stepped
// or modified until it returns.
func (w *World) RaycastBatch(ctx context.Context, rays []physics.Ray) ([]spatial.Hit, []bool, error) {
	w.ensureIndex()
	return spatial.RaycastBatch(ctx, w.index, rays, spatial.LookupFunc(w.lookupSolid), runtime.GOMAXPROCS(0))
}

func (w *World) lookupSolid(h physics.Handle) (physics.Collider, physics.Vector2D, bool) {
	b, ok := w.bodies.Get(h)
	if !ok || b.Collider == nil || b.Collider.Trigger {
		return physics.Collider{}, physics.Vector2D{}, false
	}
	return *b.Collider, b.PositionCurrent, true
}
