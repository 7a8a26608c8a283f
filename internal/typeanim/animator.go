// Package typeanim types phrases into a text surface one character at a
// time, pauses, erases them again and moves on to the next phrase,
// forever, until stopped.
//
// An Animator is configured with a phrase list, a target surface (found
// through a selector) and optional timings, then started:
//
//	doc := typeanim.NewDocument()
//	doc.Register("#animated-text", surface)
//
//	a := typeanim.New(typeanim.WithResolver(doc.Query))
//	_ = a.SetPhrases([]string{"I am a developer", "I am creative"})
//	_ = a.SetTargetSelector("#animated-text")
//	_ = a.Start()
package typeanim

import (
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// Logger is the printf-style logger used for lifecycle messages.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Option configures an Animator at construction.
type Option func(*Animator)

// WithResolver sets how selectors passed to SetTargetSelector are looked up.
func WithResolver(r Resolver) Option {
	return func(a *Animator) { a.resolve = r }
}

// WithScheduler replaces the real-time scheduler.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) { a.sched = s }
}

// WithClock schedules ticks on clk.
func WithClock(clk clock.Clock) Option {
	return func(a *Animator) { a.sched = FromClock(clk) }
}

// WithLogger sets the lifecycle logger.
func WithLogger(l Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// Animator drives the type/wait/erase/wait cycle. It is safe for
// concurrent use.
type Animator struct {
	mu      sync.Mutex
	m       *machine
	resolve Resolver
	sched   Scheduler
	log     Logger

	typingTimer  Timer
	erasingTimer Timer
	// run is bumped on every Start and Stop so callbacks of timers that
	// fired before being cancelled are dropped.
	run uint64
}

// New returns an unconfigured Animator with default timings.
func New(opts ...Option) *Animator {
	a := &Animator{
		m:     newMachine(),
		sched: FromClock(clock.New()),
		log:   nopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetPhrases replaces the phrase list, rewinds to the first phrase and
// stops any running animation.
func (a *Animator) SetPhrases(phrases []string) error {
	if len(phrases) == 0 {
		return errors.Wrap(ErrInvalidPhraseInput, "the phrase list cannot be empty")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.m.phrases = append([]string(nil), phrases...)
	a.m.index = 0
	a.stopLocked()
	return nil
}

// SetPhrasesValue is SetPhrases for untyped input such as decoded JSON or
// config values.
func (a *Animator) SetPhrasesValue(v any) error {
	phrases, err := PhrasesFromValue(v)
	if err != nil {
		return err
	}
	return a.SetPhrases(phrases)
}

// SetTargetSelector binds the surface matching selector. The selector
// must be '.' (class) or '#' (id) followed by a name.
func (a *Animator) SetTargetSelector(selector string) error {
	if err := CheckSelector(selector); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolve == nil {
		return errors.Wrapf(ErrTargetNotFound, "no document to resolve %q", selector)
	}
	s, ok := a.resolve(selector)
	if !ok || s == nil {
		return errors.Wrapf(ErrTargetNotFound, "nothing matches %q", selector)
	}
	a.m.surface = s
	return nil
}

// CheckSelector reports whether selector is a class or id selector with a
// non-empty name.
func CheckSelector(selector string) error {
	if !strings.HasPrefix(selector, ".") && !strings.HasPrefix(selector, "#") {
		return errors.Wrapf(ErrInvalidSelectorFormat, "selector %q must start with '.' (class) or '#' (id)", selector)
	}
	if len(selector) == 1 {
		return errors.Wrapf(ErrInvalidSelectorFormat, "selector %q has no name", selector)
	}
	return nil
}

// SetTypingSpeed sets the delay between typed characters.
func (a *Animator) SetTypingSpeed(d time.Duration) error {
	return a.setTiming("typing speed", d, func(t *Timings) { t.TypingSpeed = d })
}

// SetEraseSpeed sets the delay between erased characters.
func (a *Animator) SetEraseSpeed(d time.Duration) error {
	return a.setTiming("erase speed", d, func(t *Timings) { t.EraseSpeed = d })
}

// SetWaitBeforeErase sets the pause between a fully typed phrase and the
// start of erasing.
func (a *Animator) SetWaitBeforeErase(d time.Duration) error {
	return a.setTiming("wait before erasing", d, func(t *Timings) { t.WaitBeforeErase = d })
}

// SetWaitBeforeNext sets the pause between an erased phrase and typing the
// next one.
func (a *Animator) SetWaitBeforeNext(d time.Duration) error {
	return a.setTiming("wait before next phrase", d, func(t *Timings) { t.WaitBeforeNext = d })
}

// SetTimings validates and applies all four timings at once.
func (a *Animator) SetTimings(t Timings) error {
	if err := t.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	a.m.timings = t
	a.mu.Unlock()
	return nil
}

func (a *Animator) setTiming(name string, d time.Duration, apply func(*Timings)) error {
	if err := checkDuration(name, d); err != nil {
		return err
	}
	a.mu.Lock()
	apply(&a.m.timings)
	a.mu.Unlock()
	return nil
}

// MinTiming is the smallest accepted speed or wait.
const MinTiming = time.Millisecond

func checkDuration(name string, d time.Duration) error {
	if d < MinTiming {
		return errors.Wrapf(ErrInvalidNumericParameter, "%s must be at least %s, got %s", name, MinTiming, d)
	}
	return nil
}

// Start types the phrase at the current index from scratch and keeps
// cycling until Stop. Starting a running animator restarts the phrase.
func (a *Animator) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.m.phrases) == 0 {
		return errors.Wrap(ErrNotConfigured, "no phrases set")
	}
	if a.m.surface == nil {
		return errors.Wrap(ErrNotConfigured, "no target surface set")
	}
	a.cancelTimers()
	a.run++
	a.arm(a.m.begin())
	a.log.Printf("typeanim: started at phrase %d of %d", a.m.index+1, len(a.m.phrases))
	return nil
}

// Stop cancels both timers and leaves the displayed text as it is. It is
// safe to call at any time, any number of times.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Animator) stopLocked() {
	a.cancelTimers()
	a.run++
	if a.m.state != Idle && a.m.state != Stopped {
		a.m.state = Stopped
		a.log.Printf("typeanim: stopped at phrase %d", a.m.index+1)
	}
}

func (a *Animator) cancelTimers() {
	if a.typingTimer != nil {
		a.typingTimer.Stop()
		a.typingTimer = nil
	}
	if a.erasingTimer != nil {
		a.erasingTimer.Stop()
		a.erasingTimer = nil
	}
}

// arm schedules the next tick. Ticks leading into or through typing use
// the typing timer, the rest the erasing timer; whichever is armed, the
// other is cancelled first so only one drives the surface.
func (a *Animator) arm(d time.Duration) {
	a.cancelTimers()
	run := a.run
	t := a.sched.AfterFunc(d, func() { a.fire(run) })
	switch a.m.state {
	case Typing, WaitingForNext:
		a.typingTimer = t
	default:
		a.erasingTimer = t
	}
}

func (a *Animator) fire(run uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if run != a.run {
		return
	}
	a.typingTimer, a.erasingTimer = nil, nil
	next, ok := a.m.tick()
	if !ok {
		return
	}
	a.arm(next)
}

// State returns the current phase.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.m.state
}

// Index returns the position of the current phrase.
func (a *Animator) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.m.index
}

// Phrases returns a copy of the phrase list.
func (a *Animator) Phrases() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.m.phrases...)
}

// Timings returns the current timings.
func (a *Animator) Timings() Timings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.m.timings
}

// Text returns what the bound surface currently shows.
func (a *Animator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.m.surface == nil {
		return ""
	}
	return a.m.surface.Text()
}
