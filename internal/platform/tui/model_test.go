package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestModel(t *testing.T) (Model, *account.Session) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "snake.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.New(io.Discard)
	session := account.New(store, storage.LocalSessionKey, logger)
	m := NewModel(Options{
		Session:  session,
		Settings: snake.DefaultSettings(),
		Seed:     7,
		Width:    100,
		Height:   30,
		Logger:   logger,
	})
	return m, session
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func typeName(t *testing.T, m Model, name string) Model {
	t.Helper()
	for _, r := range name {
		m, _ = update(t, m, runeKey(r))
	}
	return m
}

func TestLoginFlow(t *testing.T) {
	m, session := newTestModel(t)

	if m.LoggedIn() {
		t.Fatal("model should start on the login form")
	}
	if !strings.Contains(m.View(), "Who is playing?") {
		t.Error("login view missing prompt")
	}

	// Empty name is rejected with a message.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.LoggedIn() || !strings.Contains(m.View(), "Please enter a name") {
		t.Error("empty login should be rejected")
	}

	// 'q' is text on the login form, not quit.
	m = typeName(t, m, "quinn")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.LoggedIn() {
		t.Fatal("login should succeed")
	}
	if session.Username() != "quinn" {
		t.Errorf("Username() = %q, expected quinn", session.Username())
	}
	if !strings.Contains(m.View(), "Press Enter to start") {
		t.Error("game view should show the start overlay")
	}
}

func TestStartTickAndStaleTicks(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeName(t, m, "alice")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Engine().Phase() != snake.PhaseRunning {
		t.Fatalf("Phase = %v, expected running", m.Engine().Phase())
	}
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}

	live := m.sched.gen
	head := m.Engine().State().Head()

	m, _ = update(t, m, TickMsg{Gen: live - 1})
	if m.Engine().State().Head() != head {
		t.Error("stale tick moved the snake")
	}

	m, cmd = update(t, m, TickMsg{Gen: live})
	if m.Engine().Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", m.Engine().Ticks())
	}
	if cmd == nil {
		t.Error("accepted tick should re-arm the timer")
	}

	// Pausing cancels the schedule; the in-flight tick is dropped.
	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{Gen: live})
	if m.Engine().Ticks() != 1 {
		t.Error("tick delivered while paused")
	}
}

func TestEscStopsAndLogsOut(t *testing.T) {
	m, session := newTestModel(t)
	m = typeName(t, m, "bob")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.LoggedIn() || session.IsAuthenticated() {
		t.Error("esc should return to the login form logged out")
	}
	if m.Engine().Phase() != snake.PhaseIdle {
		t.Errorf("Phase = %v, expected idle", m.Engine().Phase())
	}
	if m.sched.Active() {
		t.Error("timer should be cancelled")
	}
}

func TestHistoryPanelAfterRun(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeName(t, m, "carol")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for i := 0; i < 100 && m.Engine().Phase() == snake.PhaseRunning; i++ {
		m, _ = update(t, m, TickMsg{Gen: m.sched.gen})
	}
	if m.Engine().Phase() != snake.PhaseEnded {
		t.Fatalf("run did not end, phase %v", m.Engine().Phase())
	}
	if len(m.history.runs) != 1 {
		t.Errorf("history has %d runs, expected 1", len(m.history.runs))
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Recent runs: carol") {
		t.Error("history panel not shown")
	}
}

func TestQuitFromGame(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeName(t, m, "dan")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestEnterDuringRunKeepsScore(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeName(t, m, "rita")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	live := m.sched.gen
	m, _ = update(t, m, TickMsg{Gen: live})
	head := m.Engine().State().Head()

	m, cmd := update(t, m, runeKey('r'))
	if cmd != nil {
		t.Error("a refused start must not schedule a tick")
	}
	if m.Engine().Ticks() != 1 || m.Engine().State().Head() != head {
		t.Error("start key reset the live run")
	}
	if m.sched.gen != live {
		t.Error("start key replaced the live schedule")
	}
	if strings.Contains(m.View(), "Log in to play") {
		t.Error("logged-in player should not be told to log in")
	}
}
