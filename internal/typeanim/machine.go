package typeanim

import "time"

// State is a phase of the type/erase cycle.
type State int

const (
	Idle State = iota
	Typing
	WaitingToErase
	Erasing
	WaitingForNext
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case WaitingToErase:
		return "waiting_to_erase"
	case Erasing:
		return "erasing"
	case WaitingForNext:
		return "waiting_for_next"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Timings holds the per-character speeds and the pauses of a cycle.
type Timings struct {
	TypingSpeed     time.Duration `json:"typing_speed"`
	EraseSpeed      time.Duration `json:"erase_speed"`
	WaitBeforeErase time.Duration `json:"wait_before_erase"`
	WaitBeforeNext  time.Duration `json:"wait_before_next"`
}

// DefaultTimings returns 100ms/char typing, 50ms/char erasing, a 3s pause
// before erasing and a 1s pause before the next phrase.
func DefaultTimings() Timings {
	return Timings{
		TypingSpeed:     100 * time.Millisecond,
		EraseSpeed:      50 * time.Millisecond,
		WaitBeforeErase: 3000 * time.Millisecond,
		WaitBeforeNext:  1000 * time.Millisecond,
	}
}

// Validate reports the first timing below MinTiming.
func (t Timings) Validate() error {
	checks := []struct {
		name string
		d    time.Duration
	}{
		{"typing speed", t.TypingSpeed},
		{"erase speed", t.EraseSpeed},
		{"wait before erasing", t.WaitBeforeErase},
		{"wait before next phrase", t.WaitBeforeNext},
	}
	for _, c := range checks {
		if err := checkDuration(c.name, c.d); err != nil {
			return err
		}
	}
	return nil
}

// machine is the clock-free core of the animator. Each tick performs the
// transition due in the current state and returns the delay until the
// next tick. The caller owns scheduling and locking.
type machine struct {
	phrases []string
	index   int
	state   State
	timings Timings
	surface Surface

	phrase []rune // phrase being typed
	typed  int
	shown  []rune // text snapshot taken when erasing begins
	erased int
}

func newMachine() *machine {
	return &machine{state: Idle, timings: DefaultTimings()}
}

// begin (re)starts typing the phrase at the current index from an empty
// surface.
func (m *machine) begin() time.Duration {
	m.surface.SetText("")
	return m.enterTyping()
}

func (m *machine) enterTyping() time.Duration {
	m.phrase = []rune(m.phrases[m.index])
	m.typed = 0
	if len(m.phrase) == 0 {
		m.state = WaitingToErase
		return m.timings.WaitBeforeErase
	}
	m.state = Typing
	return m.timings.TypingSpeed
}

// tick advances the machine by one step. ok is false in states that are
// not driven by timers.
func (m *machine) tick() (next time.Duration, ok bool) {
	switch m.state {
	case Typing:
		m.typed++
		m.surface.SetText(string(m.phrase[:m.typed]))
		if m.typed >= len(m.phrase) {
			m.state = WaitingToErase
			return m.timings.WaitBeforeErase, true
		}
		return m.timings.TypingSpeed, true

	case WaitingToErase:
		m.shown = []rune(m.surface.Text())
		m.erased = 0
		if len(m.shown) == 0 {
			m.state = WaitingForNext
			return m.timings.WaitBeforeNext, true
		}
		m.state = Erasing
		return m.timings.EraseSpeed, true

	case Erasing:
		m.erased++
		m.surface.SetText(string(m.shown[:len(m.shown)-m.erased]))
		if m.erased >= len(m.shown) {
			m.state = WaitingForNext
			return m.timings.WaitBeforeNext, true
		}
		return m.timings.EraseSpeed, true

	case WaitingForNext:
		m.index = (m.index + 1) % len(m.phrases)
		return m.enterTyping(), true
	}
	return 0, false
}
