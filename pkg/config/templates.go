// pkg/config/templates.go
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

// DefaultSceneName is the template used when a configuration names none
const DefaultSceneName = "default"

// ErrUnknownScene is returned for scene names with no template
var ErrUnknownScene = errors.New("unknown scene template")

// Collision layers used by the templates. Dynamic actors sit on layerActor
// and only collide with layerWorld; world geometry collides with both.
const (
	layerWorld uint32 = 1
	layerActor uint32 = 2
)

var spawnPoint = physics.Vector2D{X: 800, Y: -50}

func defaultPlayer() BodyConfig {
	return BodyConfig{
		Position:  spawnPoint,
		Radius:    8,
		Layer:     layerActor,
		LayerMask: layerWorld,
	}
}

func defaultHand() BodyConfig {
	return BodyConfig{
		Position:  spawnPoint,
		Radius:    4,
		Friction:  0.8,
		Layer:     layerActor,
		LayerMask: layerWorld,
	}
}

func worldBox(name string, x, y, hw, hh float64) StaticConfig {
	return StaticConfig{
		Name:       name,
		Shape:      ShapeBox,
		Position:   physics.Vector2D{X: x, Y: y},
		HalfWidth:  hw,
		HalfHeight: hh,
		Layer:      layerWorld,
		LayerMask:  layerWorld | layerActor,
		Hookable:   true,
	}
}

func triggerBox(name string, x, y, hw, hh float64) StaticConfig {
	s := worldBox(name, x, y, hw, hh)
	s.Trigger = true
	s.Hookable = false
	return s
}

func swatch(name string, x, y float64, color string) StaticConfig {
	s := worldBox(name, x, y, 20, 20)
	s.Color = color
	return s
}

var sceneTemplates = map[string]func() SceneConfig{
	"default": func() SceneConfig {
		start := triggerBox("start", 700, -600, 10, 180)
		start.TimerStart = true
		finish := triggerBox("finish", 1500, -600, 10, 180)
		finish.Finish = true
		return SceneConfig{
			Name:   "default",
			Player: defaultPlayer(),
			Hand:   defaultHand(),
			Statics: []StaticConfig{
				worldBox("ground", 800, -790, 900, 10),
				worldBox("ledge", 250, -400, 25, 25),
				worldBox("beam", 1100, -250, 120, 10),
				swatch("red", 450, -150, "#e63946"),
				swatch("blue", 1300, -150, "#457b9d"),
				start,
				finish,
			},
		}
	},
	"tower": func() SceneConfig {
		statics := []StaticConfig{worldBox("ground", 800, -790, 900, 10)}
		for i := 0; i < 8; i++ {
			x := 600.0
			if i%2 == 1 {
				x = 1000
			}
			statics = append(statics, worldBox(fmt.Sprintf("hold-%d", i), x, -700+float64(i)*120, 15, 15))
		}
		finish := triggerBox("summit", 800, 300, 200, 10)
		finish.Finish = true
		start := triggerBox("base", 800, -760, 200, 10)
		start.TimerStart = true
		return SceneConfig{
			Name:    "tower",
			Player:  defaultPlayer(),
			Hand:    defaultHand(),
			Statics: append(statics, start, finish),
		}
	},
	"empty": func() SceneConfig {
		return SceneConfig{
			Name:   "empty",
			Player: defaultPlayer(),
			Hand:   defaultHand(),
		}
	},
}

// GetSceneTemplate returns a fresh copy of the named scene
func GetSceneTemplate(name string) (SceneConfig, bool) {
	build, ok := sceneTemplates[name]
	if !ok {
		return SceneConfig{}, false
	}
	return build(), true
}

// ListSceneTemplates returns the template names in sorted order
func ListSceneTemplates() []string {
	names := make([]string, 0, len(sceneTemplates))
	for name := range sceneTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyTemplate fills an incomplete scene. A scene with no statics and no
// rects is replaced by its named template; player and hand left without a
// radius fall back to the template's.
func (s *SceneConfig) applyTemplate() error {
	name := s.Name
	if name == "" {
		name = DefaultSceneName
	}
	t, ok := GetSceneTemplate(name)
	if !ok {
		if len(s.Statics) == 0 && len(s.Rects) == 0 {
			return fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
		t, _ = GetSceneTemplate(DefaultSceneName)
	}

	if s.Player.Radius == 0 {
		s.Player = t.Player
	}
	if s.Hand.Radius == 0 {
		s.Hand = t.Hand
	}
	if len(s.Statics) == 0 && len(s.Rects) == 0 {
		s.Statics = t.Statics
	}
	if s.Name == "" {
		s.Name = name
	}
	return nil
}
