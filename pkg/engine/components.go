// pkg/engine/components.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-slinger/pkg/config"
	"github.com/opd-ai/go-slinger/pkg/physics"
	"github.com/opd-ai/go-slinger/pkg/simulation"
)

// BodyComponent links an entity to its simulated body
type BodyComponent struct {
	Body physics.Handle
}

// StaticTags are the gameplay roles of a static collider
type StaticTags struct {
	Name       string
	Hookable   bool
	TimerStart bool
	Finish     bool
	Color      string
}

// StaticEntity is an immovable collider spawned from the scene
type StaticEntity struct {
	ecs.BasicEntity
	BodyComponent
	StaticTags
}

func newStaticEntity(body physics.Handle, s config.StaticConfig) *StaticEntity {
	return &StaticEntity{
		BasicEntity:   ecs.NewBasic(),
		BodyComponent: BodyComponent{Body: body},
		StaticTags: StaticTags{
			Name:       s.Name,
			Hookable:   s.Hookable,
			TimerStart: s.TimerStart,
			Finish:     s.Finish,
			Color:      s.Color,
		},
	}
}

// ActorEntity is the player or its hand
type ActorEntity struct {
	ecs.BasicEntity
	BodyComponent
	Name string
}

// RopeSegmentEntity is one link of a shot rope. Link is the stick joining it
// to the previous link, or to the hand for the first segment.
type RopeSegmentEntity struct {
	ecs.BasicEntity
	BodyComponent
	Link   simulation.StickID
	Anchor bool
}

func actorBody(b config.BodyConfig, cfg *config.SimulationConfig) physics.Body {
	body := physics.NewBody(b.Position)
	body.Drag = cfg.Drag
	body.Friction = b.Friction
	if body.Friction == 0 {
		body.Friction = cfg.Friction
	}
	collider := b.Collider()
	body.Collider = &collider
	body.Track = physics.NewTrackCollision()
	return body
}

func staticBody(s config.StaticConfig) physics.Body {
	body := physics.NewBody(s.Position)
	body.Static = true
	collider := s.Collider()
	body.Collider = &collider
	return body
}
