package world

import (
	"time"

	"clamber/internal/character"
)

// Loop is the fixed-timestep accumulator driving a Level. Real elapsed time
// accumulates and is consumed in whole ticks; the accumulator is capped at
// MaxCatchUpTicks worth of time, so a load spike slows the simulation down
// instead of spiraling into unbounded catch-up.
type Loop struct {
	Level *Level

	step       time.Duration
	acc        time.Duration
	maxCatchUp int
}

func NewLoop(level *Level) *Loop {
	cfg := level.Config()
	return &Loop{
		Level:      level,
		step:       time.Second / time.Duration(cfg.TickRate),
		maxCatchUp: cfg.MaxCatchUpTicks,
	}
}

// TickDuration returns the real-time length of one simulation tick.
func (l *Loop) TickDuration() time.Duration {
	return l.step
}

// Advance feeds elapsed real time into the accumulator and runs whole
// ticks, at most maxCatchUp of them; excess time is discarded. Returns the
// number of ticks executed. Every started tick runs to completion — there
// is no cancellation mid-tick.
func (l *Loop) Advance(elapsed time.Duration, in character.Input) int {
	l.acc += elapsed
	if cap := l.step * time.Duration(l.maxCatchUp); l.acc > cap {
		l.acc = cap
	}
	n := 0
	for l.acc >= l.step {
		l.Level.FixedUpdate(in)
		l.acc -= l.step
		n++
	}
	return n
}
