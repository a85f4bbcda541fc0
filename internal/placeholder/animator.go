// Package placeholder drives the typewriter placeholder shown in the hero
// prompt field: it types each example prompt, holds it, deletes it and moves
// on to the next, suspending itself while the field is focused or holds
// user text.
//
// An Animator is owned by a single goroutine. All methods and every timer
// callback delivered by its Scheduler must run on that goroutine.
package placeholder

import (
	"time"

	"go.uber.org/zap"

	"github.com/csheth/landing/internal/prompts"
)

// Timing holds the animation periods. Zero fields take the defaults.
type Timing struct {
	TypeInterval   time.Duration
	Dwell          time.Duration
	DeleteInterval time.Duration
}

// DefaultTiming matches the hero page: 80ms per typed rune, a 3.5s hold and
// 15ms per deleted rune.
var DefaultTiming = Timing{
	TypeInterval:   80 * time.Millisecond,
	Dwell:          3500 * time.Millisecond,
	DeleteInterval: 15 * time.Millisecond,
}

func (t Timing) withDefaults() Timing {
	if t.TypeInterval <= 0 {
		t.TypeInterval = DefaultTiming.TypeInterval
	}
	if t.Dwell <= 0 {
		t.Dwell = DefaultTiming.Dwell
	}
	if t.DeleteInterval <= 0 {
		t.DeleteInterval = DefaultTiming.DeleteInterval
	}
	return t
}

// Option configures an Animator.
type Option func(*Animator)

// WithTiming overrides the animation periods.
func WithTiming(t Timing) Option {
	return func(a *Animator) {
		a.timing = t.withDefaults()
	}
}

// WithLogger attaches a logger for phase transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Animator) {
		if logger != nil {
			a.log = logger
		}
	}
}

// WithObserver registers fn to be called with a fresh snapshot after every
// state change.
func WithObserver(fn func(State)) Option {
	return func(a *Animator) {
		a.observer = fn
	}
}

// Animator is the placeholder state machine.
type Animator struct {
	set    prompts.Set
	sched  Scheduler
	timing Timing
	log    *zap.Logger

	observer func(State)

	index         int
	current       []rune
	shown         int
	phase         Phase
	suspendedFrom Phase
	focused       bool
	hasInput      bool

	timer   Timer
	gen     uint64
	stopped bool
}

// New returns an Animator in the Typing phase at prompt 0 with empty text.
// Nothing is scheduled until Start is called.
func New(set prompts.Set, sched Scheduler, opts ...Option) *Animator {
	a := &Animator{
		set:    set,
		sched:  sched,
		timing: DefaultTiming,
		log:    zap.NewNop(),
		phase:  PhaseTyping,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.current = []rune(set.At(0))
	return a
}

// Start begins the typing cycle for the current prompt.
func (a *Animator) Start() {
	if a.stopped {
		return
	}
	a.log.Debug("animator started", zap.Int("prompts", a.set.Len()))
	a.restart()
}

// Stop tears the animator down. The pending timer is cancelled and every
// later tick or event is ignored.
func (a *Animator) Stop() {
	if a.stopped {
		return
	}
	a.cancel()
	a.stopped = true
	a.log.Debug("animator stopped", zap.Int("index", a.index))
}

// Focus records that the host field gained focus and suspends the cycle.
// The displayed text is kept as is.
func (a *Animator) Focus() {
	if a.stopped {
		return
	}
	a.focused = true
	a.suspend()
}

// Blur records that the host field lost focus. Without user input the
// current prompt is typed again from the beginning.
func (a *Animator) Blur() {
	if a.stopped {
		return
	}
	a.focused = false
	if a.hasInput {
		a.notify()
		return
	}
	a.restart()
}

// Input reports the host field's current value. Non-empty input suspends
// the cycle immediately. Clearing the field does not resume it; only Blur
// does.
func (a *Animator) Input(value string) {
	if a.stopped {
		return
	}
	a.hasInput = value != ""
	if a.hasInput {
		a.suspend()
		return
	}
	a.notify()
}

// AcceptTab returns the placeholder text the host should place into its
// field. Whether the affordance is currently offered is the host's call;
// see State.TabAffordanceVisible.
func (a *Animator) AcceptTab() string {
	text := a.text()
	a.log.Debug("tab accepted", zap.Int("index", a.index), zap.Int("runes", a.shown))
	return text
}

// State returns a snapshot of the animator.
func (a *Animator) State() State {
	return State{
		Index:         a.index,
		Text:          a.text(),
		Phase:         a.phase,
		Focused:       a.focused,
		HasInput:      a.hasInput,
		SuspendedFrom: a.suspendedFrom,
	}
}

// Pending reports whether a timer is currently scheduled.
func (a *Animator) Pending() bool {
	return a.timer != nil
}

func (a *Animator) text() string {
	return string(a.current[:a.shown])
}

func (a *Animator) restart() {
	a.current = []rune(a.set.At(a.index))
	a.shown = 0
	a.setPhase(PhaseTyping)
	a.notify()
	a.schedule(a.timing.TypeInterval, a.typeNext)
}

func (a *Animator) suspend() {
	a.cancel()
	if a.phase != PhaseSuspended {
		a.suspendedFrom = a.phase
		a.setPhase(PhaseSuspended)
	}
	a.notify()
}

func (a *Animator) typeNext() {
	if a.shown < len(a.current) {
		a.shown++
	}
	if a.shown >= len(a.current) {
		a.setPhase(PhasePaused)
		a.notify()
		a.schedule(a.timing.Dwell, a.beginDelete)
		return
	}
	a.notify()
	a.schedule(a.timing.TypeInterval, a.typeNext)
}

func (a *Animator) beginDelete() {
	a.setPhase(PhaseDeleting)
	a.notify()
	a.schedule(a.timing.DeleteInterval, a.deleteNext)
}

func (a *Animator) deleteNext() {
	if a.shown > 0 {
		a.shown--
	}
	if a.shown > 0 {
		a.notify()
		a.schedule(a.timing.DeleteInterval, a.deleteNext)
		return
	}
	if n := a.set.Len(); n > 0 {
		a.index = (a.index + 1) % n
	}
	a.restart()
}

// schedule replaces any pending timer with a new one running step after d.
func (a *Animator) schedule(d time.Duration, step func()) {
	a.cancel()
	gen := a.gen
	a.timer = a.sched.AfterFunc(d, func() {
		// A tick already in flight when its timer was cancelled must not
		// apply.
		if a.stopped || gen != a.gen {
			return
		}
		a.timer = nil
		step()
	})
}

func (a *Animator) cancel() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
}

func (a *Animator) setPhase(next Phase) {
	if a.phase == next {
		return
	}
	a.log.Debug("phase transition",
		zap.Stringer("from", a.phase),
		zap.Stringer("to", next),
		zap.Int("index", a.index),
	)
	a.phase = next
}

func (a *Animator) notify() {
	if a.observer != nil {
		a.observer(a.State())
	}
}
