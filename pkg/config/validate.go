// pkg/config/validate.go
package config

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"
)

// Limits on configuration values
const (
	MaxTickRate    = 1000
	MaxSubSteps    = 64
	MaxStaticName  = 32
	MaxSceneStatic = 4096
)

var (
	validNameChars = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)
	validHexColor  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Validate checks every field of config and reports all violations joined
// into one error, or nil when the configuration is usable.
func Validate(config *SimulationConfig) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if config.TickRate < 1 || config.TickRate > MaxTickRate {
		add("tickRate must be between 1 and %d, got %d", MaxTickRate, config.TickRate)
	}
	if config.SubSteps < 1 || config.SubSteps > MaxSubSteps {
		add("subSteps must be between 1 and %d, got %d", MaxSubSteps, config.SubSteps)
	}
	if !finite(config.Gravity) {
		add("gravity must be finite")
	}
	if !unitInterval(config.Drag) {
		add("drag must be in [0, 1), got %v", config.Drag)
	}
	if !unitInterval(config.Friction) {
		add("friction must be in [0, 1), got %v", config.Friction)
	}
	if !finite(config.Boundary.FloorY) {
		add("boundary.floorY must be finite")
	}

	t := config.Tether
	if !(t.MaxLength > 0) || !finite(t.MaxLength) {
		add("tether.maxLength must be positive, got %v", t.MaxLength)
	}
	if !(t.Power > 0) || !finite(t.Power) {
		add("tether.power must be positive, got %v", t.Power)
	}
	if !(t.HandShare >= 0 && t.HandShare <= 1) {
		add("tether.handShare must be in [0, 1], got %v", t.HandShare)
	}
	if !(t.StepDivisor > 0) || !finite(t.StepDivisor) {
		add("tether.stepDivisor must be positive, got %v", t.StepDivisor)
	}

	r := config.Rope
	if !(r.SegmentSpacing > 0) || !finite(r.SegmentSpacing) {
		add("rope.segmentSpacing must be positive, got %v", r.SegmentSpacing)
	}
	if !(r.SegmentRadius > 0) || !finite(r.SegmentRadius) {
		add("rope.segmentRadius must be positive, got %v", r.SegmentRadius)
	}
	if !(r.Slack > 0) || !finite(r.Slack) {
		add("rope.slack must be positive, got %v", r.Slack)
	}

	if config.Fault.MaxConsecutiveFaults < 1 {
		add("fault.maxConsecutiveFaults must be at least 1, got %d", config.Fault.MaxConsecutiveFaults)
	}
	if config.Fault.CooldownMillis < 0 {
		add("fault.cooldownMillis must not be negative, got %d", config.Fault.CooldownMillis)
	}

	errs = append(errs, validateScene(config.Scene)...)
	return errors.Join(errs...)
}

func validateScene(scene SceneConfig) []error {
	var errs []error
	if err := validateBody("scene.player", scene.Player); err != nil {
		errs = append(errs, err)
	}
	if err := validateBody("scene.hand", scene.Hand); err != nil {
		errs = append(errs, err)
	}

	statics := scene.AllStatics()
	if len(statics) > MaxSceneStatic {
		errs = append(errs, fmt.Errorf("scene has %d statics (max %d)", len(statics), MaxSceneStatic))
	}
	seen := make(map[string]bool, len(statics))
	for i, s := range statics {
		field := fmt.Sprintf("scene.statics[%d]", i)
		if err := ValidateName(s.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate name %q", field, s.Name))
		}
		seen[s.Name] = true

		if !s.Position.IsFinite() {
			errs = append(errs, fmt.Errorf("%s: position must be finite", field))
		}
		switch s.Shape {
		case ShapeBox:
			if !(s.HalfWidth > 0) || !(s.HalfHeight > 0) || !finite(s.HalfWidth) || !finite(s.HalfHeight) {
				errs = append(errs, fmt.Errorf("%s: box half extents must be positive", field))
			}
		case ShapeCircle:
			if !(s.Radius > 0) || !finite(s.Radius) {
				errs = append(errs, fmt.Errorf("%s: circle radius must be positive", field))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unknown shape %q", field, s.Shape))
		}
		if s.Color != "" {
			if err := ValidateColor(s.Color); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", field, err))
			}
		}
		if s.TimerStart && s.Finish {
			errs = append(errs, fmt.Errorf("%s: cannot be both timerStart and finish", field))
		}
		if (s.TimerStart || s.Finish) && !s.Trigger {
			errs = append(errs, fmt.Errorf("%s: timerStart and finish statics must be triggers", field))
		}
	}
	return errs
}

func validateBody(field string, b BodyConfig) error {
	switch {
	case !b.Position.IsFinite():
		return fmt.Errorf("%s: position must be finite", field)
	case !(b.Radius > 0) || !finite(b.Radius):
		return fmt.Errorf("%s: radius must be positive, got %v", field, b.Radius)
	case !unitInterval(b.Friction):
		return fmt.Errorf("%s: friction must be in [0, 1), got %v", field, b.Friction)
	}
	return nil
}

// ValidateName checks a static name: non-empty, short, and limited to
// letters, digits, '-', '_' and '.'
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxStaticName {
		return fmt.Errorf("name too long: %d characters (max %d)", utf8.RuneCountInString(name), MaxStaticName)
	}
	if !validNameChars.MatchString(name) {
		return fmt.Errorf("name %q contains invalid characters", name)
	}
	return nil
}

// ValidateColor accepts #RRGGBB hex colors
func ValidateColor(color string) error {
	if !validHexColor.MatchString(color) {
		return fmt.Errorf("color %q is not a #RRGGBB hex value", color)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unitInterval(v float64) bool {
	return v >= 0 && v < 1
}
