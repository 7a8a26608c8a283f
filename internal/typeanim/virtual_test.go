package typeanim

import (
	"sort"
	"time"
)

// virtualScheduler fires callbacks synchronously from Advance, in due
// order, so tests can step through a cycle without wall-clock waits.
type virtualScheduler struct {
	now    time.Duration
	seq    int
	timers []*virtualTimer
}

type virtualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
}

func (t *virtualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *virtualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &virtualTimer{at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// pending counts timers that have not fired or been stopped.
func (s *virtualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *virtualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		live := s.timers[:0]
		for _, t := range s.timers {
			if !t.stopped {
				live = append(live, t)
			}
		}
		s.timers = live
		if len(s.timers) == 0 {
			break
		}
		sort.Slice(s.timers, func(i, j int) bool {
			if s.timers[i].at == s.timers[j].at {
				return s.timers[i].seq < s.timers[j].seq
			}
			return s.timers[i].at < s.timers[j].at
		})
		next := s.timers[0]
		if next.at > end {
			break
		}
		s.now = next.at
		next.stopped = true
		next.f()
	}
	s.now = end
}
