package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/landing/internal/placeholder"
)

// timerFiredMsg is delivered when a scheduled tick elapses. Ticks for
// stopped timers still arrive and are dropped by Fire.
type timerFiredMsg struct {
	id uint64
}

// teaScheduler adapts placeholder.Scheduler to bubbletea: timers become
// tea.Tick commands and callbacks run inside Update, on the program's
// goroutine.
type teaScheduler struct {
	nextID uint64
	live   map[uint64]func()
	queued []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: map[uint64]func(){}}
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
}

func (t teaTimer) Stop() {
	delete(t.s.live, t.id)
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) placeholder.Timer {
	s.nextID++
	id := s.nextID
	s.live[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return teaTimer{s: s, id: id}
}

// Fire runs the callback for id if its timer is still live.
func (s *teaScheduler) Fire(id uint64) bool {
	f, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	f()
	return true
}

// Drain hands the ticks scheduled since the last call to the runtime.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Live returns the number of timers that have neither fired nor stopped.
func (s *teaScheduler) Live() int {
	return len(s.live)
}
