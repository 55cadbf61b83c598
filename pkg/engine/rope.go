// pkg/engine/rope.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/physics"
	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// Rope segments collide with world geometry only
const (
	ropeLayer     uint32 = 1
	ropeLayerMask uint32 = 1
)

// RopeSystem shoots ropes from the hand on press and clears them on press
// or release
type RopeSystem struct {
	game     *Game
	segments []*RopeSegmentEntity
}

// Priority implements ecs.Prioritizer
func (*RopeSystem) Priority() int {
	return PriorityRope
}

// Update reacts to this frame's button edges
func (r *RopeSystem) Update(float32) {
	in := r.game.input
	if !in.Pressed && !in.Released {
		return
	}
	r.Clear()
	if in.Pressed && in.HasCursor {
		r.Shoot(in.Cursor)
	}
}

// Add registers a spawned segment
func (r *RopeSystem) Add(seg *RopeSegmentEntity) {
	r.segments = append(r.segments, seg)
}

// Remove despawns the segment's body along with its sticks
func (r *RopeSystem) Remove(e ecs.BasicEntity) {
	for i, seg := range r.segments {
		if seg.ID() != e.ID() {
			continue
		}
		// the body may already be gone if the world was edited directly
		_ = r.game.sim.RemoveBody(seg.Body)
		r.segments = append(r.segments[:i], r.segments[i+1:]...)
		return
	}
}

// Clear despawns every segment of the current rope
func (r *RopeSystem) Clear() {
	if len(r.segments) == 0 {
		return
	}
	g := r.game
	count := len(r.segments)
	segments := make([]*RopeSegmentEntity, count)
	copy(segments, r.segments)
	for _, seg := range segments {
		g.world.RemoveEntity(seg.BasicEntity)
	}

	g.logger.Debug(g.ctx, "rope cleared", "segments", count)
	g.bus.Publish(event.NewRopeEvent(event.RopeCleared, r, g.hand.Body, physics.Vector2D{}, count))
}

// Shoot casts a ray from the hand away from the player, toward cursor, and
// spawns a rope to the hit point if the hit static is hookable. It returns
// the number of segments spawned.
func (r *RopeSystem) Shoot(cursor physics.Vector2D) int {
	g := r.game
	player, ok := g.sim.Body(g.player.Body)
	if !ok {
		return 0
	}
	hand, ok := g.sim.Body(g.hand.Body)
	if !ok {
		return 0
	}
	dir, ok := cursor.Sub(player.PositionCurrent).TryNormalize()
	if !ok {
		return 0
	}

	ray := physics.Ray{Origin: hand.PositionCurrent, Direction: dir}
	hit, ok := g.sim.Raycast(ray)
	if !ok {
		g.logger.Debug(g.ctx, "rope missed")
		return 0
	}
	static, ok := g.statics[hit.Handle]
	if !ok || !static.Hookable {
		g.logger.Debug(g.ctx, "rope hit a surface it cannot hook", "handle", hit.Handle.String())
		return 0
	}

	anchor := ray.At(hit.Distance)
	n := r.spawn(ray.Origin, anchor)
	if n == 0 {
		return 0
	}

	g.logger.Info(g.ctx, "rope attached",
		"static", static.Name,
		"segments", n,
		"distance", hit.Distance,
	)
	g.bus.Publish(event.NewRopeEvent(event.RopeAttached, r, g.hand.Body, anchor, n))
	return n
}

// spawn lays segments evenly from start to end, chaining each to the
// previous link with a slightly slack stick. The last one is anchored.
func (r *RopeSystem) spawn(start, end physics.Vector2D) int {
	g := r.game
	cfg := g.Config.Rope
	count := int(end.Sub(start).Length() / cfg.SegmentSpacing)

	last, lastPos := g.hand.Body, start
	for i := 1; i <= count; i++ {
		pos := start.Lerp(end, float64(i)/float64(count))

		body := physics.NewBody(pos)
		body.Drag = g.Config.Drag
		body.Friction = g.Config.Friction
		body.Fixed = i == count
		body.Collider = &physics.Collider{
			Shape:     physics.Circle(cfg.SegmentRadius),
			Layer:     ropeLayer,
			LayerMask: ropeLayerMask,
		}
		h := g.sim.AddBody(body)

		link, err := g.sim.AddStick(simulation.Stick{
			A:      h,
			B:      last,
			Length: pos.Sub(lastPos).Length() * cfg.Slack,
		})
		if err != nil {
			g.logger.Error(g.ctx, "failed to link rope segment", err, "segment", i)
			_ = g.sim.RemoveBody(h)
			return i - 1
		}

		r.Add(&RopeSegmentEntity{
			BasicEntity:   ecs.NewBasic(),
			BodyComponent: BodyComponent{Body: h},
			Link:          link,
			Anchor:        body.Fixed,
		})
		last, lastPos = h, pos
	}
	return count
}
