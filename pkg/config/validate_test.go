package config

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*SimulationConfig)
		errorField string
	}{
		{"ValidConfig", func(*SimulationConfig) {}, ""},
		{"TickRateZero", func(c *SimulationConfig) { c.TickRate = 0 }, "tickRate"},
		{"SubStepsTooMany", func(c *SimulationConfig) { c.SubSteps = MaxSubSteps + 1 }, "subSteps"},
		{"GravityNaN", func(c *SimulationConfig) { c.Gravity = math.NaN() }, "gravity"},
		{"DragOne", func(c *SimulationConfig) { c.Drag = 1 }, "drag"},
		{"FrictionNegative", func(c *SimulationConfig) { c.Friction = -0.1 }, "friction"},
		{"TetherLengthZero", func(c *SimulationConfig) { c.Tether.MaxLength = 0 }, "tether.maxLength"},
		{"TetherShareAboveOne", func(c *SimulationConfig) { c.Tether.HandShare = 1.5 }, "tether.handShare"},
		{"RopeSpacingZero", func(c *SimulationConfig) { c.Rope.SegmentSpacing = 0 }, "rope.segmentSpacing"},
		{"FaultsZero", func(c *SimulationConfig) { c.Fault.MaxConsecutiveFaults = 0 }, "fault.maxConsecutiveFaults"},
		{"PlayerRadiusZero", func(c *SimulationConfig) { c.Scene.Player.Radius = 0 }, "scene.player"},
		{"HandFrictionOne", func(c *SimulationConfig) { c.Scene.Hand.Friction = 1 }, "scene.hand"},
		{"StaticBadName", func(c *SimulationConfig) { c.Scene.Statics[0].Name = "bad name!" }, "scene.statics[0]"},
		{"StaticDuplicateName", func(c *SimulationConfig) { c.Scene.Statics[1].Name = c.Scene.Statics[0].Name }, "duplicate"},
		{"StaticUnknownShape", func(c *SimulationConfig) { c.Scene.Statics[0].Shape = "triangle" }, "unknown shape"},
		{"StaticFlatBox", func(c *SimulationConfig) { c.Scene.Statics[0].HalfHeight = 0 }, "half extents"},
		{"StaticBadColor", func(c *SimulationConfig) { c.Scene.Statics[0].Color = "red" }, "hex"},
		{"TimerStartNotTrigger", func(c *SimulationConfig) { c.Scene.Statics[0].TimerStart = true }, "must be triggers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := Validate(config)
			if tt.errorField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorField)
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	config := DefaultConfig()
	config.TickRate = -1
	config.SubSteps = 0
	config.Rope.Slack = 0

	err := Validate(config)
	require.Error(t, err)
	for _, field := range []string{"tickRate", "subSteps", "rope.slack"} {
		assert.True(t, strings.Contains(err.Error(), field), "missing %s in %v", field, err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "ledge", false},
		{"punctuated", "hold-3_b.v2", false},
		{"empty", "", true},
		{"space", "two words", true},
		{"too long", strings.Repeat("a", MaxStaticName+1), true},
		{"markup", "<b>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	assert.NoError(t, ValidateColor("#a1B2c3"))
	assert.Error(t, ValidateColor("#abc"))
	assert.Error(t, ValidateColor("a1b2c3"))
	assert.Error(t, ValidateColor("#gggggg"))
}
