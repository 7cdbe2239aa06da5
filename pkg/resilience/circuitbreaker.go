package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the circuit breaker is in the Open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the current phase of a circuit breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig controls failure thresholds and recovery timing.
type BreakerConfig struct {
	FailureThreshold int
	ResetTimeout     time.Duration
	HalfOpenProbes   int
}

func defaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
		HalfOpenProbes:   1,
	}
}

// Breaker tracks consecutive failures and trips open when the threshold is
// exceeded. After the reset timeout it transitions to half-open and allows
// a limited number of probe requests through.
type Breaker struct {
	name        string
	cfg         BreakerConfig
	logger      *slog.Logger
	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probesInUse int
}

// NewBreaker creates a Breaker with the given config, filling in defaults
// for zero values.
func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	defaults := defaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaults.ResetTimeout
	}
	if cfg.HalfOpenProbes <= 0 {
		cfg.HalfOpenProbes = defaults.HalfOpenProbes
	}
	return &Breaker{
		name:   name,
		cfg:    cfg,
		state:  StateClosed,
		logger: slog.Default().With("component", "circuit-breaker", "name", name),
	}
}

// Execute runs fn if the circuit allows it, recording success or failure.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err)
	return err
}

// CurrentState returns the current State of the breaker.
func (b *Breaker) CurrentState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.lastFailure) >= b.cfg.ResetTimeout {
			b.state = StateHalfOpen
			b.probesInUse = 0
			b.logger.Info("circuit transitioning to half-open", "after", b.cfg.ResetTimeout)
			return nil
		}
		return fmt.Errorf("%w: %s (retry after %v)",
			ErrCircuitOpen, b.name, b.cfg.ResetTimeout-time.Since(b.lastFailure))
	case StateHalfOpen:
		if b.probesInUse >= b.cfg.HalfOpenProbes {
			return fmt.Errorf("%w: %s (half-open probe limit reached)", ErrCircuitOpen, b.name)
		}
		b.probesInUse++
		return nil
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		switch b.state {
		case StateClosed:
			b.failures = 0
		case StateHalfOpen:
			b.state = StateClosed
			b.failures = 0
			b.probesInUse = 0
			b.logger.Info("circuit closed (recovered)")
		}
		return
	}
	b.lastFailure = time.Now()
	b.failures++
	switch b.state {
	case StateClosed:
		if b.failures >= b.cfg.FailureThreshold {
			b.state = StateOpen
			b.logger.Warn("circuit opened",
				"consecutive_failures", b.failures,
				"threshold", b.cfg.FailureThreshold,
			)
		}
	case StateHalfOpen:
		b.state = StateOpen
		b.logger.Warn("circuit re-opened (half-open probe failed)")
	}
}

// Reset forces the breaker back to the Closed state.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.probesInUse = 0
	b.logger.Info("circuit manually reset")
}
