// Package pomodoro implements the Pomodoro timer state machine.
// The Timer is a single-owner, tick-driven machine with no I/O and no
// goroutines; the UI event loop drives it by calling Tick once per second
// and reacts to the events it returns.
package pomodoro

import (
	"fmt"
	"time"
)

// Phase identifies a timer phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Label returns a human-readable phase name for display.
func (p Phase) Label() string {
	switch p {
	case PhaseFocus:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Idle"
	}
}

// IsBreak reports whether the phase is one of the two break phases.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Config holds the timer durations and the long-break cycle length.
type Config struct {
	Focus             time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
}

// DefaultConfig returns the classic 25/5/15 configuration with a long
// break every four focus sessions.
func DefaultConfig() Config {
	return Config{
		Focus:             25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
	}
}

// Validate rejects configurations that must never reach the state machine.
func (c Config) Validate() error {
	if c.Focus <= 0 {
		return fmt.Errorf("invalid config: focus duration must be positive")
	}
	if c.ShortBreak <= 0 {
		return fmt.Errorf("invalid config: short break duration must be positive")
	}
	if c.LongBreak <= 0 {
		return fmt.Errorf("invalid config: long break duration must be positive")
	}
	if c.LongBreakInterval < 1 {
		return fmt.Errorf("invalid config: long break interval must be at least 1")
	}
	return nil
}

// PhaseDuration returns the configured duration for a phase. Idle has
// no duration.
func (c Config) PhaseDuration(p Phase) time.Duration {
	switch p {
	case PhaseFocus:
		return c.Focus
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	default:
		return 0
	}
}

// Event describes a phase completion. Ended is the phase that just
// finished; Next is the phase the timer moved to.
type Event struct {
	Ended Phase
	Next  Phase
}

// Timer is the Pomodoro state machine. Zero value is not usable; create
// one with New.
type Timer struct {
	cfg       Config
	phase     Phase
	remaining time.Duration
	running   bool
	completed int // focus phases finished since the last long break
}

// New creates a timer in the Idle phase. The config must be valid.
func New(cfg Config) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Timer{cfg: cfg, phase: PhaseIdle}, nil
}

// Config returns the active configuration.
func (t *Timer) Config() Config { return t.cfg }

// Phase returns the current phase.
func (t *Timer) Phase() Phase { return t.phase }

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Running reports whether the clock is counting down.
func (t *Timer) Running() bool { return t.running }

// CompletedInCycle returns how many focus phases have finished since the
// last long break.
func (t *Timer) CompletedInCycle() int { return t.completed }

// Progress returns phase completion in [0, 1] for progress bars.
func (t *Timer) Progress() float64 {
	total := t.cfg.PhaseDuration(t.phase)
	if total <= 0 {
		return 0
	}
	done := total - t.remaining
	if done < 0 {
		done = 0
	}
	return float64(done) / float64(total)
}

// Start begins counting down. From Idle it enters a fresh Focus phase;
// from a paused phase it resumes where it left off.
func (t *Timer) Start() {
	if t.phase == PhaseIdle || t.remaining <= 0 {
		t.phase = PhaseFocus
		t.remaining = t.cfg.Focus
	}
	t.running = true
}

// Pause freezes the countdown without changing phase or remaining time.
func (t *Timer) Pause() { t.running = false }

// Toggle starts the timer if paused and pauses it if running. It returns
// the new running state.
func (t *Timer) Toggle() bool {
	if t.running {
		t.Pause()
	} else {
		t.Start()
	}
	return t.running
}

// Reset returns the timer to Idle with zero remaining time. The cycle
// counter is deliberately left alone.
func (t *Timer) Reset() {
	t.running = false
	t.phase = PhaseIdle
	t.remaining = 0
}

// SetPhase switches directly to the given phase with its full duration,
// stopping the clock. Switching to Focus restarts the long-break cycle.
// Setting Idle behaves like Reset.
func (t *Timer) SetPhase(p Phase) {
	if p == PhaseIdle {
		t.Reset()
		return
	}
	t.running = false
	t.phase = p
	t.remaining = t.cfg.PhaseDuration(p)
	if p == PhaseFocus {
		t.completed = 0
	}
}

// SetConfig replaces the configuration. The clock stops, the cycle
// counter clears, and the timer is staged at a fresh Focus phase ready
// to start.
func (t *Timer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.cfg = cfg
	t.running = false
	t.completed = 0
	t.phase = PhaseFocus
	t.remaining = cfg.Focus
	return nil
}

// Tick advances the clock by one second. It is a no-op while paused or
// Idle, so the host loop may keep scheduling it unconditionally. When
// the countdown reaches zero the phase completes and the resulting
// event is returned; otherwise Tick returns nil.
func (t *Timer) Tick() *Event {
	if !t.running || t.phase == PhaseIdle {
		return nil
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		return nil
	}
	t.remaining = 0
	return t.complete()
}

// Skip forces an immediate phase completion regardless of remaining
// time. Skipping while Idle does nothing.
func (t *Timer) Skip() *Event {
	if t.phase == PhaseIdle {
		return nil
	}
	return t.complete()
}

// complete moves to the next phase and stops the clock. The next phase
// is staged with its full duration; the user starts it explicitly.
func (t *Timer) complete() *Event {
	ended := t.phase

	var next Phase
	if ended == PhaseFocus {
		t.completed++
		if t.completed >= t.cfg.LongBreakInterval {
			next = PhaseLongBreak
			t.completed = 0
		} else {
			next = PhaseShortBreak
		}
	} else {
		next = PhaseFocus
	}

	t.running = false
	t.phase = next
	t.remaining = t.cfg.PhaseDuration(next)

	return &Event{Ended: ended, Next: next}
}
