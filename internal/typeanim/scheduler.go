package typeanim

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct {
	clk clock.Clock
}

// FromClock adapts a clock.Clock (real or mock) to a Scheduler.
func FromClock(clk clock.Clock) Scheduler {
	return clockScheduler{clk: clk}
}

func (s clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.clk.AfterFunc(d, f)
}
