// Package tui provides the Bubble Tea front end for snake: login form, game
// view, history panel and the SSH server that hosts them remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an engine tick. Gen is the schedule generation
// the tick was armed for.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd returns a one-shot Bubble Tea command for a single tick.
func tickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// teaScheduler adapts the engine's Scheduler contract to Bubble Tea, where
// timers cannot be stopped once issued. Every Schedule and Cancel starts a new
// generation; ticks from older generations are dropped by Accept, so a
// replaced or cancelled schedule never reaches the engine.
type teaScheduler struct {
	gen      uint64
	active   bool
	interval time.Duration
	pending  tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{}
}

// Schedule implements snake.Scheduler.
func (s *teaScheduler) Schedule(interval time.Duration) {
	s.gen++
	s.active = true
	s.interval = interval
	s.pending = tickCmd(s.gen, interval)
}

// Cancel implements snake.Scheduler.
func (s *teaScheduler) Cancel() {
	s.gen++
	s.active = false
	s.pending = nil
}

// Accept reports whether msg belongs to the live schedule.
func (s *teaScheduler) Accept(msg TickMsg) bool {
	return s.active && msg.Gen == s.gen
}

// Rearm queues the next periodic tick after an accepted one, unless the
// engine already rescheduled or cancelled during that tick.
func (s *teaScheduler) Rearm() {
	if s.active && s.pending == nil {
		s.pending = tickCmd(s.gen, s.interval)
	}
}

// Flush hands the queued tick command, if any, to Bubble Tea.
func (s *teaScheduler) Flush() tea.Cmd {
	cmd := s.pending
	s.pending = nil
	return cmd
}

// Active reports whether a schedule is live.
func (s *teaScheduler) Active() bool {
	return s.active
}
