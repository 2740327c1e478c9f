package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts the wall clock so workflows can be tested with a
// fixed time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewSystem() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
