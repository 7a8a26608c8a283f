package typeanim

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "#animated-text"

func newTestAnimator(t *testing.T, phrases ...string) (*Animator, *TextSurface, *virtualScheduler) {
	t.Helper()
	doc := NewDocument()
	surface := &TextSurface{}
	doc.Register(target, surface)

	sched := &virtualScheduler{}
	a := New(WithResolver(doc.Query), WithScheduler(sched))
	require.NoError(t, a.SetPhrases(phrases))
	require.NoError(t, a.SetTargetSelector(target))
	return a, surface, sched
}

func TestNewDefaults(t *testing.T) {
	a := New()

	assert.Equal(t, Idle, a.State())
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 100*time.Millisecond, a.Timings().TypingSpeed)
	assert.Equal(t, 50*time.Millisecond, a.Timings().EraseSpeed)
	assert.Equal(t, 3*time.Second, a.Timings().WaitBeforeErase)
	assert.Equal(t, time.Second, a.Timings().WaitBeforeNext)
	assert.Equal(t, "", a.Text())
}

func TestSetPhrasesRejectsEmpty(t *testing.T) {
	a := New()

	err := a.SetPhrases([]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPhraseInput))
	assert.Equal(t, "InvalidPhraseInput", Kind(err))

	err = a.SetPhrases(nil)
	assert.ErrorIs(t, err, ErrInvalidPhraseInput)
}

func TestSetPhrasesValue(t *testing.T) {
	a := New()

	assert.ErrorIs(t, a.SetPhrasesValue("not a list"), ErrInvalidPhraseInput)
	assert.ErrorIs(t, a.SetPhrasesValue(42), ErrInvalidPhraseInput)
	assert.ErrorIs(t, a.SetPhrasesValue([]any{}), ErrInvalidPhraseInput)
	assert.ErrorIs(t, a.SetPhrasesValue([]any{"ok", 3}), ErrInvalidPhraseInput)

	require.NoError(t, a.SetPhrasesValue([]any{"one", "two"}))
	assert.Equal(t, []string{"one", "two"}, a.Phrases())
}

func TestSetPhrasesCopiesInput(t *testing.T) {
	a := New()
	in := []string{"a", "b"}
	require.NoError(t, a.SetPhrases(in))

	in[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, a.Phrases())
}

func TestSetTargetSelectorErrors(t *testing.T) {
	doc := NewDocument()
	doc.Register("#present", &TextSurface{})
	a := New(WithResolver(doc.Query))

	err := a.SetTargetSelector("bad-selector")
	assert.ErrorIs(t, err, ErrInvalidSelectorFormat)
	assert.Equal(t, "InvalidSelectorFormat", Kind(err))

	for _, bare := range []string{"#", "."} {
		assert.ErrorIs(t, a.SetTargetSelector(bare), ErrInvalidSelectorFormat, bare)
	}

	err = a.SetTargetSelector("#does-not-exist")
	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.Equal(t, "TargetNotFound", Kind(err))

	assert.NoError(t, a.SetTargetSelector("#present"))
}

func TestSetTargetSelectorWithoutResolver(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.SetTargetSelector(".headline"), ErrTargetNotFound)
}

func TestTimingSettersRejectNonPositive(t *testing.T) {
	a := New()

	assert.ErrorIs(t, a.SetTypingSpeed(0), ErrInvalidNumericParameter)
	assert.ErrorIs(t, a.SetEraseSpeed(-time.Millisecond), ErrInvalidNumericParameter)
	assert.ErrorIs(t, a.SetWaitBeforeErase(0), ErrInvalidNumericParameter)
	assert.ErrorIs(t, a.SetWaitBeforeNext(0), ErrInvalidNumericParameter)

	bad := DefaultTimings()
	bad.EraseSpeed = 0
	assert.ErrorIs(t, a.SetTimings(bad), ErrInvalidNumericParameter)
	assert.Equal(t, DefaultTimings(), a.Timings())
}

func TestTimingsBelowOneMillisecond(t *testing.T) {
	a := New()

	assert.ErrorIs(t, a.SetTypingSpeed(500*time.Microsecond), ErrInvalidNumericParameter)
	assert.ErrorIs(t, a.SetWaitBeforeNext(time.Nanosecond), ErrInvalidNumericParameter)

	sub := DefaultTimings()
	sub.WaitBeforeErase = 999 * time.Microsecond
	assert.ErrorIs(t, sub.Validate(), ErrInvalidNumericParameter)
	assert.ErrorIs(t, a.SetTimings(sub), ErrInvalidNumericParameter)
	assert.Equal(t, DefaultTimings(), a.Timings())

	require.NoError(t, a.SetEraseSpeed(MinTiming))
	assert.Equal(t, time.Millisecond, a.Timings().EraseSpeed)
}

func TestStartUnconfigured(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.Start(), ErrNotConfigured)

	require.NoError(t, a.SetPhrases([]string{"hi"}))
	assert.ErrorIs(t, a.Start(), ErrNotConfigured)
	assert.Equal(t, Idle, a.State())
}

func TestTypingOneCharacterPerTick(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "hello")
	require.NoError(t, a.Start())
	assert.Equal(t, Typing, a.State())
	assert.Equal(t, "", surface.Text())

	for n := 1; n <= 5; n++ {
		sched.Advance(100 * time.Millisecond)
		assert.Equal(t, "hello"[:n], surface.Text(), "after %d ticks", n)
	}
	assert.Equal(t, WaitingToErase, a.State())
}

func TestErasingOneCharacterPerTick(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "hello")
	require.NoError(t, a.Start())

	sched.Advance(500 * time.Millisecond)
	require.Equal(t, "hello", surface.Text())

	sched.Advance(3 * time.Second)
	assert.Equal(t, Erasing, a.State())
	assert.Equal(t, "hello", surface.Text())

	for n := 1; n <= 5; n++ {
		sched.Advance(50 * time.Millisecond)
		assert.Equal(t, "hello"[:5-n], surface.Text(), "after %d ticks", n)
	}
	assert.Equal(t, WaitingForNext, a.State())
}

func TestCycleAdvancesIndexModuloLength(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "ab", "cd", "ef")
	require.NoError(t, a.Start())

	// 2 chars typed, pause, 2 chars erased, pause.
	cycle := 2*100*time.Millisecond + 3*time.Second + 2*50*time.Millisecond + time.Second

	for k := 1; k <= 7; k++ {
		sched.Advance(cycle)
		assert.Equal(t, k%3, a.Index(), "after %d cycles", k)
		assert.Equal(t, Typing, a.State())
		assert.Equal(t, "", surface.Text())
	}

	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, "cd", surface.Text())
}

func TestOnlyOneTimerPendingDuringCycle(t *testing.T) {
	a, _, sched := newTestAnimator(t, "abc")
	require.NoError(t, a.Start())

	for i := 0; i < 200; i++ {
		sched.Advance(25 * time.Millisecond)
		require.Equal(t, 1, sched.pending())
	}
}

func TestStopFreezesText(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "hello")
	require.NoError(t, a.Start())

	sched.Advance(300 * time.Millisecond)
	require.Equal(t, "hel", surface.Text())

	a.Stop()
	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, 0, sched.pending())

	sched.Advance(time.Minute)
	assert.Equal(t, "hel", surface.Text())

	// idempotent
	a.Stop()
	assert.Equal(t, Stopped, a.State())
}

func TestStopDuringErasing(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "hello")
	require.NoError(t, a.Start())

	sched.Advance(500*time.Millisecond + 3*time.Second + 100*time.Millisecond)
	require.Equal(t, "hel", surface.Text())

	a.Stop()
	sched.Advance(time.Minute)
	assert.Equal(t, "hel", surface.Text())
}

func TestRestartRetypesCurrentPhrase(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "ab", "xyz")
	require.NoError(t, a.Start())

	// into the second phrase
	sched.Advance(4300*time.Millisecond + 200*time.Millisecond)
	require.Equal(t, 1, a.Index())
	require.Equal(t, "xy", surface.Text())

	a.Stop()
	require.NoError(t, a.Start())
	assert.Equal(t, "", surface.Text())
	assert.Equal(t, 1, a.Index())

	sched.Advance(300 * time.Millisecond)
	assert.Equal(t, "xyz", surface.Text())
}

func TestSetPhrasesStopsAndRewinds(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "ab", "cd")
	require.NoError(t, a.Start())
	sched.Advance(4300*time.Millisecond + 100*time.Millisecond)
	require.Equal(t, 1, a.Index())

	require.NoError(t, a.SetPhrases([]string{"new"}))
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, 0, sched.pending())

	frozen := surface.Text()
	sched.Advance(time.Minute)
	assert.Equal(t, frozen, surface.Text())
}

func TestTypingSpeedChange(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "abcdef")
	require.NoError(t, a.SetTypingSpeed(50*time.Millisecond))
	require.NoError(t, a.Start())

	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, "a", surface.Text())
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, "abc", surface.Text())

	// a change applies from the next scheduled tick on
	require.NoError(t, a.SetTypingSpeed(200*time.Millisecond))
	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, "abcd", surface.Text())
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, "abcd", surface.Text())
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, "abcde", surface.Text())
}

func TestTypesRunes(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "héllo ✓")
	require.NoError(t, a.Start())

	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, "hé", surface.Text())
	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, "héllo ✓", surface.Text())
}

func TestEmptyPhraseIsSkippedThrough(t *testing.T) {
	a, surface, sched := newTestAnimator(t, "", "go")
	require.NoError(t, a.Start())
	assert.Equal(t, WaitingToErase, a.State())

	sched.Advance(3 * time.Second)
	assert.Equal(t, WaitingForNext, a.State())
	sched.Advance(time.Second)
	assert.Equal(t, 1, a.Index())

	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, "go", surface.Text())
}

// leakyScheduler ignores Stop, like a timer that had already fired when it
// was cancelled.
type leakyScheduler struct {
	virtualScheduler
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (s *leakyScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.virtualScheduler.AfterFunc(d, f)
	return leakyTimer{}
}

func TestStaleCallbackAfterStopIsDropped(t *testing.T) {
	doc := NewDocument()
	surface := &TextSurface{}
	doc.Register(target, surface)
	sched := &leakyScheduler{}
	a := New(WithResolver(doc.Query), WithScheduler(sched))
	require.NoError(t, a.SetPhrases([]string{"hello"}))
	require.NoError(t, a.SetTargetSelector(target))
	require.NoError(t, a.Start())

	sched.Advance(200 * time.Millisecond)
	a.Stop()
	sched.Advance(time.Minute)
	assert.Equal(t, "he", surface.Text())
	assert.Equal(t, Stopped, a.State())
}

func TestRunsOnMockClock(t *testing.T) {
	mock := clock.NewMock()
	doc := NewDocument()
	surface := &TextSurface{}
	doc.Register(".headline", surface)

	a := New(WithResolver(doc.Query), WithClock(mock))
	require.NoError(t, a.SetPhrases([]string{"go"}))
	require.NoError(t, a.SetTargetSelector(".headline"))
	require.NoError(t, a.Start())
	defer a.Stop()

	for _, want := range []string{"g", "go"} {
		mock.Add(100 * time.Millisecond)
		require.Eventually(t, func() bool { return a.Text() == want }, time.Second, time.Millisecond)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "waiting_to_erase", WaitingToErase.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "unknown", State(99).String())
}
