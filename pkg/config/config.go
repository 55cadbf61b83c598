// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

// SimulationConfig contains configuration for the physics world and the scene it runs.
// Friction applies to rope segments and to actors whose own friction is zero.
type SimulationConfig struct {
	TickRate          int            `json:"tickRate" yaml:"tickRate"`
	SubSteps          int            `json:"subSteps" yaml:"subSteps"`
	Gravity           float64        `json:"gravity" yaml:"gravity"`
	Drag              float64        `json:"drag" yaml:"drag"`
	Friction          float64        `json:"friction" yaml:"friction"`
	Boundary          BoundaryConfig `json:"boundary" yaml:"boundary"`
	DynamicCollisions bool           `json:"dynamicCollisions" yaml:"dynamicCollisions"`
	Tether            TetherConfig   `json:"tether" yaml:"tether"`
	Rope              RopeConfig     `json:"rope" yaml:"rope"`
	Fault             FaultConfig    `json:"fault" yaml:"fault"`
	Scene             SceneConfig    `json:"scene" yaml:"scene"`
}

// BoundaryConfig contains the world floor
type BoundaryConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	FloorY  float64 `json:"floorY" yaml:"floorY"`
}

// TetherConfig contains the hand tether tuning
type TetherConfig struct {
	MaxLength   float64 `json:"maxLength" yaml:"maxLength"`
	Power       float64 `json:"power" yaml:"power"`
	HandShare   float64 `json:"handShare" yaml:"handShare"`
	StepDivisor float64 `json:"stepDivisor" yaml:"stepDivisor"`
}

// RopeConfig contains rope spawning parameters
type RopeConfig struct {
	SegmentSpacing float64 `json:"segmentSpacing" yaml:"segmentSpacing"`
	SegmentRadius  float64 `json:"segmentRadius" yaml:"segmentRadius"`
	Slack          float64 `json:"slack" yaml:"slack"`
}

// FaultConfig contains the tether fault guard thresholds
type FaultConfig struct {
	MaxConsecutiveFaults int `json:"maxConsecutiveFaults" yaml:"maxConsecutiveFaults"`
	CooldownMillis       int `json:"cooldownMillis" yaml:"cooldownMillis"`
}

// SceneConfig describes the bodies spawned at startup
type SceneConfig struct {
	Name    string         `json:"name" yaml:"name"`
	Player  BodyConfig     `json:"player" yaml:"player"`
	Hand    BodyConfig     `json:"hand" yaml:"hand"`
	Statics []StaticConfig `json:"statics" yaml:"statics"`
	// Rects are page-space rectangles imported as hookable boxes
	Rects []RectConfig `json:"rects,omitempty" yaml:"rects,omitempty"`
}

// BodyConfig describes a dynamic circle body. A zero Friction takes the
// world friction.
type BodyConfig struct {
	Position  physics.Vector2D `json:"position" yaml:"position"`
	Radius    float64          `json:"radius" yaml:"radius"`
	Friction  float64          `json:"friction,omitempty" yaml:"friction,omitempty"`
	Layer     uint32           `json:"layer" yaml:"layer"`
	LayerMask uint32           `json:"layerMask" yaml:"layerMask"`
}

// Static shape names
const (
	ShapeBox    = "box"
	ShapeCircle = "circle"
)

// StaticConfig describes an immovable collider and its gameplay tags
type StaticConfig struct {
	Name       string           `json:"name" yaml:"name"`
	Shape      string           `json:"shape" yaml:"shape"`
	Position   physics.Vector2D `json:"position" yaml:"position"`
	HalfWidth  float64          `json:"halfWidth,omitempty" yaml:"halfWidth,omitempty"`
	HalfHeight float64          `json:"halfHeight,omitempty" yaml:"halfHeight,omitempty"`
	Radius     float64          `json:"radius,omitempty" yaml:"radius,omitempty"`
	Layer      uint32           `json:"layer" yaml:"layer"`
	LayerMask  uint32           `json:"layerMask" yaml:"layerMask"`
	Trigger    bool             `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Hookable   bool             `json:"hookable,omitempty" yaml:"hookable,omitempty"`
	TimerStart bool             `json:"timerStart,omitempty" yaml:"timerStart,omitempty"`
	Finish     bool             `json:"finish,omitempty" yaml:"finish,omitempty"`
	Color      string           `json:"color,omitempty" yaml:"color,omitempty"`
}

// RectConfig is a rectangle in page coordinates, where y grows downward
type RectConfig struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// Static converts the rectangle into a hookable box on the default layer
func (r RectConfig) Static(name string) StaticConfig {
	return StaticConfig{
		Name:       name,
		Shape:      ShapeBox,
		Position:   physics.Vector2D{X: (r.Left + r.Right) / 2, Y: -(r.Top + r.Bottom) / 2},
		HalfWidth:  (r.Right - r.Left) / 2,
		HalfHeight: (r.Bottom - r.Top) / 2,
		Layer:      1,
		LayerMask:  1,
		Hookable:   true,
	}
}

// AllStatics returns the configured statics followed by the imported rectangles
func (s SceneConfig) AllStatics() []StaticConfig {
	out := make([]StaticConfig, 0, len(s.Statics)+len(s.Rects))
	out = append(out, s.Statics...)
	for i, r := range s.Rects {
		out = append(out, r.Static(fmt.Sprintf("rect-%d", i)))
	}
	return out
}

// Collider builds the physics collider for the static
func (s StaticConfig) Collider() physics.Collider {
	shape := physics.Box(s.HalfWidth, s.HalfHeight)
	if s.Shape == ShapeCircle {
		shape = physics.Circle(s.Radius)
	}
	return physics.Collider{
		Shape:     shape,
		Layer:     s.Layer,
		LayerMask: s.LayerMask,
		Trigger:   s.Trigger,
	}
}

// Collider builds the physics collider for the body
func (b BodyConfig) Collider() physics.Collider {
	return physics.Collider{
		Shape:     physics.Circle(b.Radius),
		Layer:     b.Layer,
		LayerMask: b.LayerMask,
	}
}

// TickDuration returns the fixed timestep
func (c *SimulationConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// Params converts the tether tuning for the constraint solver
func (t TetherConfig) Params() physics.TetherParams {
	return physics.TetherParams{
		MaxLength:   t.MaxLength,
		Power:       t.Power,
		HandShare:   t.HandShare,
		StepDivisor: t.StepDivisor,
	}
}

// Cooldown returns how long an open fault guard stays open
func (f FaultConfig) Cooldown() time.Duration {
	return time.Duration(f.CooldownMillis) * time.Millisecond
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or .yml
// are decoded as YAML and anything else as JSON. Fields missing from the file
// keep their DefaultConfig values. A scene without statics or rects is filled
// from the template named by scene.name, or the default template.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	// the scene is taken whole from the file or from a template, never merged
	// element-wise with the default statics
	config.Scene = SceneConfig{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Scene.applyTemplate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format by extension
func SaveConfig(config *SimulationConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default simulation configuration with the
// "default" scene template
func DefaultConfig() *SimulationConfig {
	scene, _ := GetSceneTemplate(DefaultSceneName)
	return &SimulationConfig{
		TickRate: 64,
		SubSteps: 8,
		Gravity:  0.01,
		Drag:     physics.DefaultDrag,
		Friction: physics.DefaultFriction,
		Boundary: BoundaryConfig{
			Enabled: true,
			FloorY:  -800,
		},
		DynamicCollisions: false,
		Tether: TetherConfig{
			MaxLength:   64,
			Power:       0.4,
			HandShare:   0.95,
			StepDivisor: 8,
		},
		Rope: RopeConfig{
			SegmentSpacing: 8,
			SegmentRadius:  4,
			Slack:          0.9,
		},
		Fault: FaultConfig{
			MaxConsecutiveFaults: 3,
			CooldownMillis:       500,
		},
		Scene: scene,
	}
}
