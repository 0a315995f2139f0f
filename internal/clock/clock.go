// Package clock abstracts time for scheduler and audit determinism.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock returns the current time. Production code uses SystemClock;
// tests substitute FakeClock to drive audit windows deterministically.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var Module = fx.Module("clock",
	fx.Provide(
		fx.Annotate(NewSystemClock, fx.As(new(Clock))),
	),
)
