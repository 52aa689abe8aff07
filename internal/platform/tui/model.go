package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Layout constants
const (
	helpHeight        = 1
	minWidthForPanel  = 90 // Below this the history panel replaces the board
	historyPanelWidth = 34
)

type view int

const (
	viewLogin view = iota
	viewGame
)

// Options configures a game session.
type Options struct {
	Session  *account.Session
	Settings snake.Settings
	Seed     int64 // 0 picks a time-based seed
	Width    int
	Height   int
	Logger   *log.Logger

	// Username pre-fills the login form.
	Username string
}

// Model is the Bubble Tea model for one player: login form, then the game.
type Model struct {
	session *account.Session
	engine  *snake.Engine
	sched   *teaScheduler
	grid    core.Grid
	screen  *core.Screen
	logger  *log.Logger

	view        view
	input       textinput.Model
	loginErr    string
	history     historyPanel
	showHistory bool
	help        help.Model
	keyMapper   *KeyMapper
	status      string

	width    int
	height   int
	quitting bool
}

// NewModel creates the model. A session that is already logged in goes
// straight to the game view.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	sched := newTeaScheduler()
	in := textinput.New()
	in.Placeholder = "your name"
	in.CharLimit = account.MaxUsernameLen
	in.Width = account.MaxUsernameLen
	in.Prompt = "> "
	in.SetValue(opts.Username)
	in.Focus()

	h := help.New()
	h.ShowAll = false

	m := Model{
		session:   opts.Session,
		engine:    snake.NewEngine(opts.Settings, opts.Session, sched, opts.Seed),
		sched:     sched,
		grid:      opts.Settings.Grid,
		screen:    core.NewScreen(opts.Width, opts.Height),
		logger:    opts.Logger,
		input:     in,
		history:   newHistoryPanel(opts.Height),
		help:      h,
		keyMapper: NewKeyMapper(),
		width:     opts.Width,
		height:    opts.Height,
	}

	if opts.Session.IsAuthenticated() {
		m.enterGame()
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.view == viewLogin {
		return textinput.Blink
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.resize(msg.Height - helpHeight)
		return m, nil

	case TickMsg:
		if !m.sched.Accept(msg) {
			// Stale generation: the schedule it belonged to was replaced or cancelled.
			return m, nil
		}
		m.step(func() { m.engine.Tick() })
		m.sched.Rearm()
		return m, m.sched.Flush()

	case tea.KeyMsg:
		if m.view == viewLogin {
			return m.updateLogin(msg)
		}
		return m.updateGame(msg)
	}

	if m.view == viewLogin {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		if _, err := m.session.Login(m.input.Value()); err != nil {
			m.loginErr = loginErrorText(err)
			m.logger.Debug("login rejected", "err", err)
			return m, nil
		}
		m.enterGame()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.loginErr = ""
	return m, cmd
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	intent, action := m.keyMapper.MapKey(msg)
	m.status = ""

	switch action {
	case KeyQuit:
		m.engine.Stop()
		m.quitting = true
		return m, tea.Quit

	case KeyBack:
		m.engine.Handle(intent)
		if err := m.session.Logout(); err != nil {
			m.logger.Warn("logout failed", "err", err)
		}
		m.view = viewLogin
		m.input.Reset()
		m.input.Focus()
		m.showHistory = false
		return m, tea.Batch(m.sched.Flush(), textinput.Blink)

	case KeyHistory:
		m.showHistory = !m.showHistory
		return m, nil

	case KeyHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case KeyScreenshot:
		m.saveScreenshot()
		return m, nil

	case KeyIntent:
		m.step(func() { m.engine.Handle(intent) })
		if intent.Kind == core.IntentStart && !m.session.IsAuthenticated() {
			m.status = "Log in to play"
		}
		return m, m.sched.Flush()
	}

	return m, nil
}

// step runs fn against the engine and reacts when it finishes a run.
func (m *Model) step(fn func()) {
	before := m.engine.Phase()
	fn()
	if before != snake.PhaseEnded && m.engine.Phase() == snake.PhaseEnded {
		m.onRunEnded()
	}
}

func (m *Model) onRunEnded() {
	res := m.engine.LastResult()
	if res == nil {
		return
	}
	if res.Err != nil {
		m.logger.Error("score not saved", "user", m.session.Username(), "score", res.Score, "err", res.Err)
	}
	m.refreshHistory()
}

func (m *Model) enterGame() {
	m.view = viewGame
	m.loginErr = ""
	m.input.Blur()
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	runs, err := m.session.History()
	if err != nil {
		m.logger.Warn("cannot load history", "err", err)
		runs = nil
	}
	m.history.setRuns(runs)
}

func loginErrorText(err error) string {
	switch {
	case errors.Is(err, account.ErrEmptyUsername):
		return "Please enter a name"
	case errors.Is(err, account.ErrUsernameTooLong):
		return fmt.Sprintf("Names are at most %d characters", account.MaxUsernameLen)
	default:
		return "Login failed, see log for details"
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.view == viewLogin {
		return m.viewLogin()
	}
	return m.viewGame()
}

func (m Model) viewLogin() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("S N A K E"))
	b.WriteString("\n\n")
	b.WriteString("Who is playing?\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.loginErr != "" {
		b.WriteString(errStyle.Render(m.loginErr))
	}
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: log in  •  esc: quit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 4).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewGame() string {
	bodyH := max(m.height-helpHeight, 1)

	boardW := m.width
	panel := ""
	if m.showHistory {
		if m.width >= minWidthForPanel {
			boardW = m.width - historyPanelWidth
			panel = m.history.View(m.session.Username())
		} else {
			// Too narrow for both: the panel replaces the board.
			boardW = 0
			panel = m.history.View(m.session.Username())
		}
	}

	var body string
	if boardW > 0 {
		m.screen.Resize(boardW, bodyH)
		snake.Compose(m.screen, m.frame(), m.grid)
		body = RenderScreen(m.screen)
	}
	if panel != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}

	footer := m.help.View(m.keyMapper.Keys())
	if m.status != "" {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(m.status) + "  " + footer
	}
	return body + "\n" + footer
}

func (m Model) frame() snake.Frame {
	u, _ := m.session.CurrentUser()
	return snake.Frame{
		State:     m.engine.State(),
		Phase:     m.engine.Phase(),
		Result:    m.engine.LastResult(),
		Player:    u.Username,
		HighScore: u.HighScore,
	}
}

// saveScreenshot saves the current board to ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "Screenshot failed"
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "Screenshot failed"
		return
	}

	snake.Compose(m.screen, m.frame(), m.grid)
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "Screenshot failed"
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.status = "Saved " + path
}

// Engine exposes the engine, for tests and the SSH server.
func (m Model) Engine() *snake.Engine {
	return m.engine
}

// LoggedIn reports whether the model is past the login form.
func (m Model) LoggedIn() bool {
	return m.view == viewGame
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
