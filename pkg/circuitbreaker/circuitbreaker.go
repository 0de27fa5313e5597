package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"
)

type Config struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// OnStateChange is called when the breaker transitions between states
	OnStateChange func(name string, from, to gobreaker.State)
}

func DefaultConfig() Config {
	return Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
	}
}

// New builds a breaker tuned for a single upstream data provider: it opens
// after a run of consecutive failures instead of a failure ratio, since all
// requests hit the same host.
func New(name string, cfg Config) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: cfg.OnStateChange,
	}
	return gobreaker.NewCircuitBreaker(settings)
}
