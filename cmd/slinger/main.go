// cmd/slinger/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/opd-ai/go-slinger/pkg/config"
	"github.com/opd-ai/go-slinger/pkg/engine"
	"github.com/opd-ai/go-slinger/pkg/event"
	"github.com/opd-ai/go-slinger/pkg/logging"
	"github.com/opd-ai/go-slinger/pkg/physics"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to a JSON or YAML configuration file")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	sceneName := flag.String("scene", "", "Scene template to load instead of the configured scene ("+strings.Join(config.ListSceneTemplates(), ", ")+")")
	ticks := flag.Int("ticks", 640, "Number of physics ticks to run")
	aim := flag.String("aim", "", "World point \"x,y\" to aim the hand at; the rope is shot on the first frame")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", nil, "flag", "-config")
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(*configPath, *sceneName)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
			"scene", *sceneName,
		)
		os.Exit(1)
	}

	game, err := engine.NewGame(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}
	ctx = logging.WithCorrelationID(ctx, game.SessionID)

	input := engine.Input{}
	if *aim != "" {
		cursor, err := parsePoint(*aim)
		if err != nil {
			logger.Error(ctx, "Invalid aim point", err, "aim", *aim)
			os.Exit(1)
		}
		input = engine.Input{Cursor: cursor, HasCursor: true, Pressed: true}
	}

	var faults, ropes int
	game.Bus().Subscribe(event.ConstraintFault, func(event.Event) { faults++ })
	game.Bus().Subscribe(event.RopeAttached, func(e event.Event) {
		ropes += e.(*event.RopeEvent).Segments
	})

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting simulation",
		"scene", cfg.Scene.Name,
		"ticks", *ticks,
		"tick_rate", cfg.TickRate,
	)

	frame := float32(cfg.TickDuration().Seconds())
	start := time.Now()
	for game.Ticks() < uint64(*ticks) {
		if runCtx.Err() != nil {
			logger.Info(ctx, "Interrupted, stopping simulation", "tick", game.Ticks())
			break
		}
		game.SetInput(input)
		game.Update(frame)
		input.Pressed = false
	}

	player, _ := game.World().Body(game.Player())
	timer := game.Timer()
	logger.Info(ctx, "Simulation finished",
		"ticks", game.Ticks(),
		"wall_time", time.Since(start).String(),
		"bodies", game.World().BodyCount(),
		"rope_segments", game.RopeSegments(),
		"rope_spawned", ropes,
		"faults", faults,
		"player_x", player.PositionCurrent.X,
		"player_y", player.PositionCurrent.Y,
		"color", game.Color(),
		"timer_active", timer.Active,
		"timer_elapsed", timer.Elapsed.String(),
	)
}

// loadConfig reads the file at path, or the defaults when path is empty,
// then applies the scene template and environment overrides
func loadConfig(path, scene string) (*config.SimulationConfig, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if scene != "" {
		tmpl, ok := config.GetSceneTemplate(scene)
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", scene)
		}
		cfg.Scene = tmpl
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}
	return cfg, nil
}

func parsePoint(s string) (physics.Vector2D, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return physics.Vector2D{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return physics.Vector2D{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return physics.Vector2D{}, fmt.Errorf("invalid y: %w", err)
	}
	return physics.Vector2D{X: x, Y: y}, nil
}
