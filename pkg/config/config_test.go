package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, 64, config.TickRate)
	assert.Equal(t, 8, config.SubSteps)
	assert.Equal(t, 0.01, config.Gravity)
	assert.Equal(t, physics.DefaultDrag, config.Drag)
	assert.Equal(t, physics.DefaultFriction, config.Friction)
	assert.True(t, config.Boundary.Enabled)
	assert.Equal(t, -800.0, config.Boundary.FloorY)
	assert.False(t, config.DynamicCollisions)
	assert.Equal(t, physics.DefaultTetherParams(), config.Tether.Params())
	assert.Equal(t, RopeConfig{SegmentSpacing: 8, SegmentRadius: 4, Slack: 0.9}, config.Rope)
	assert.Equal(t, 500*time.Millisecond, config.Fault.Cooldown())
	assert.Equal(t, time.Second/64, config.TickDuration())

	assert.Equal(t, DefaultSceneName, config.Scene.Name)
	assert.Equal(t, physics.Vector2D{X: 800, Y: -50}, config.Scene.Player.Position)
	assert.Equal(t, 8.0, config.Scene.Player.Radius)
	assert.Equal(t, 4.0, config.Scene.Hand.Radius)
	assert.Equal(t, 0.8, config.Scene.Hand.Friction)
	assert.Zero(t, config.Scene.Player.Friction, "the player takes the world friction")
	assert.NotEmpty(t, config.Scene.Statics)

	require.NoError(t, Validate(config))
}

func TestDefaultConfig_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.Scene.Statics[0].Name = "changed"

	assert.NotEqual(t, "changed", b.Scene.Statics[0].Name)
}

func TestTickDuration_InvalidRate(t *testing.T) {
	config := DefaultConfig()
	config.TickRate = 0
	assert.Equal(t, time.Duration(0), config.TickDuration())
}

func TestSaveAndLoadConfig(t *testing.T) {
	for _, name := range []string{"sim.json", "sim.yaml", "sim.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			original := DefaultConfig()
			original.Gravity = 0.02
			original.DynamicCollisions = true
			original.Scene.Rects = []RectConfig{{Top: 10, Bottom: 30, Left: 100, Right: 140}}

			require.NoError(t, SaveConfig(original, path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, original, loaded)
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subSteps: 4\ntether:\n  power: 0.6\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, 4, config.SubSteps)
	assert.Equal(t, 0.6, config.Tether.Power)
	assert.Equal(t, defaults.Tether.MaxLength, config.Tether.MaxLength)
	assert.Equal(t, defaults.TickRate, config.TickRate)
	assert.Equal(t, defaults.Scene, config.Scene)
}

func TestLoadConfig_SceneByTemplateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scene": {"name": "tower"}}`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	tower, ok := GetSceneTemplate("tower")
	require.True(t, ok)
	assert.Equal(t, tower, config.Scene)
}

func TestLoadConfig_ExplicitStaticsReplaceTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
scene:
  statics:
    - name: only
      shape: circle
      radius: 5
      position: {x: 1, y: 2}
      layer: 1
      layerMask: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, config.Scene.Statics, 1)
	only := config.Scene.Statics[0]
	assert.Equal(t, "only", only.Name)
	assert.Equal(t, physics.ShapeCircle, only.Collider().Shape.Kind)
	assert.False(t, only.Hookable, "fields must not leak from the default statics")
	assert.Equal(t, 8.0, config.Scene.Player.Radius, "player falls back to the template")
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"missing file", "missing.json", ""},
		{"malformed json", "bad.json", "{"},
		{"malformed yaml", "bad.yaml", "tickRate: [1, 2"},
		{"unknown template", "scene.json", `{"scene": {"name": "nowhere"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestRectConfig_Static(t *testing.T) {
	s := RectConfig{Top: 100, Bottom: 140, Left: 20, Right: 80}.Static("r")

	assert.Equal(t, ShapeBox, s.Shape)
	assert.Equal(t, physics.Vector2D{X: 50, Y: -120}, s.Position)
	assert.Equal(t, 30.0, s.HalfWidth)
	assert.Equal(t, 20.0, s.HalfHeight)
	assert.True(t, s.Hookable)
	assert.False(t, s.Trigger)
}

func TestStaticConfig_Collider(t *testing.T) {
	box := StaticConfig{Shape: ShapeBox, HalfWidth: 3, HalfHeight: 4, Layer: 1, LayerMask: 3, Trigger: true}
	c := box.Collider()

	assert.Equal(t, physics.Box(3, 4), c.Shape)
	assert.Equal(t, uint32(1), c.Layer)
	assert.Equal(t, uint32(3), c.LayerMask)
	assert.True(t, c.Trigger)
}
