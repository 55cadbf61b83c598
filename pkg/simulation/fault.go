// pkg/simulation/fault.go
package simulation

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-slinger/pkg/config"
	"github.com/opd-ai/go-slinger/pkg/physics"
)

// StateChangeFunc is called when a guard's breaker changes state
type StateChangeFunc func(name string, from, to gobreaker.State)

// FaultGuard wraps one constraint in a circuit breaker. Non-finite solves
// count as failures; once enough happen in a row the constraint is skipped
// until the cooldown elapses, after which a single probe solve is allowed.
type FaultGuard struct {
	breaker *gobreaker.CircuitBreaker
}

// NewFaultGuard creates a guard tripping after cfg.MaxConsecutiveFaults
// consecutive faults and staying open for cfg.Cooldown()
func NewFaultGuard(name string, cfg config.FaultConfig, onChange StateChangeFunc) *FaultGuard {
	threshold := uint32(max(cfg.MaxConsecutiveFaults, 1))
	cooldown := cfg.Cooldown()
	if cooldown <= 0 {
		// gobreaker substitutes 60s for a zero timeout
		cooldown = time.Millisecond
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// a zero-length direction is expected geometry, not corruption
			return err == nil || errors.Is(err, physics.ErrDegenerateVector)
		},
	}
	if onChange != nil {
		settings.OnStateChange = onChange
	}

	return &FaultGuard{breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Run executes solve unless the breaker is open. It returns solve's error,
// or gobreaker.ErrOpenState / gobreaker.ErrTooManyRequests when skipped.
func (g *FaultGuard) Run(solve func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, solve()
	})
	return err
}

// Name returns the guard's name
func (g *FaultGuard) Name() string {
	return g.breaker.Name()
}

// State returns the current breaker state
func (g *FaultGuard) State() gobreaker.State {
	return g.breaker.State()
}

// Counts returns the breaker's counters for the current generation
func (g *FaultGuard) Counts() gobreaker.Counts {
	return g.breaker.Counts()
}

// skipped reports whether err means the guard refused to run the solve
func skipped(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
