// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvTickRate          = "SLINGER_TICK_RATE"
	EnvSubSteps          = "SLINGER_SUB_STEPS"
	EnvGravity           = "SLINGER_GRAVITY"
	EnvDrag              = "SLINGER_DRAG"
	EnvFriction          = "SLINGER_FRICTION"
	EnvFloorY            = "SLINGER_FLOOR_Y"
	EnvDynamicCollisions = "SLINGER_DYNAMIC_COLLISIONS"
	EnvTetherPower       = "SLINGER_TETHER_POWER"
)

// ApplyEnvironmentOverrides replaces fields of config with any SLINGER_*
// environment variables that are set. Unparseable values are reported and
// leave config untouched.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	next := *config

	if err := overrideInt(EnvTickRate, &next.TickRate); err != nil {
		return err
	}
	if err := overrideInt(EnvSubSteps, &next.SubSteps); err != nil {
		return err
	}
	if err := overrideFloat(EnvGravity, &next.Gravity); err != nil {
		return err
	}
	if err := overrideFloat(EnvDrag, &next.Drag); err != nil {
		return err
	}
	if err := overrideFloat(EnvFriction, &next.Friction); err != nil {
		return err
	}
	if err := overrideFloat(EnvFloorY, &next.Boundary.FloorY); err != nil {
		return err
	}
	if err := overrideBool(EnvDynamicCollisions, &next.DynamicCollisions); err != nil {
		return err
	}
	if err := overrideFloat(EnvTetherPower, &next.Tether.Power); err != nil {
		return err
	}

	*config = next
	return nil
}

func overrideInt(name string, dst *int) error {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	*dst = v
	return nil
}

func overrideFloat(name string, dst *float64) error {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	*dst = v
	return nil
}

func overrideBool(name string, dst *bool) error {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	*dst = v
	return nil
}
