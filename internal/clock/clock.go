package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall time so services that stamp or age records can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	now time.Time
}

func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

func (c *Fake) Now() time.Time {
	return c.now
}

func (c *Fake) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
