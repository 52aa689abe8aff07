// Package account tracks who is playing and records their finished runs.
package account

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MaxUsernameLen caps the username length in runes.
const MaxUsernameLen = 24

var (
	ErrNotLoggedIn     = errors.New("account: not logged in")
	ErrEmptyUsername   = errors.New("account: username is empty")
	ErrUsernameTooLong = fmt.Errorf("account: username longer than %d characters", MaxUsernameLen)
)

// Backend is the persistence the session needs. *storage.Store satisfies it.
type Backend interface {
	Login(username string, at time.Time) (storage.User, error)
	User(username string) (storage.User, error)
	RecordRun(username string, score int, at time.Time) (storage.Run, bool, error)
	HighScore(username string) (int, error)
	History(username string) ([]storage.Run, error)
	SetSession(key, username string) error
	Session(key string) (string, bool, error)
	ClearSession(key string) error
}

// Session is the login state of one terminal or SSH connection.
// It implements snake.ScoreRecorder.
type Session struct {
	mu     sync.Mutex
	store  Backend
	key    string
	logger *log.Logger
	now    func() time.Time

	user *storage.User
}

var _ snake.ScoreRecorder = (*Session)(nil)

// New creates a logged-out session. key selects the remembered-login slot
// (storage.LocalSessionKey for the local terminal). A nil logger discards output.
func New(store Backend, key string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		store:  store,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Restore logs back in the user remembered under the session key without
// touching LastLogin. Returns false when nobody was remembered.
func (s *Session) Restore() (bool, error) {
	name, ok, err := s.store.Session(s.key)
	if err != nil {
		return false, fmt.Errorf("account: restore session: %w", err)
	}
	if !ok {
		return false, nil
	}

	u, err := s.store.User(name)
	if errors.Is(err, storage.ErrUserNotFound) {
		// Remembered name without a user row: drop the stale slot.
		return false, s.store.ClearSession(s.key)
	}
	if err != nil {
		return false, fmt.Errorf("account: restore session: %w", err)
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.logger.Debug("session restored", "user", u.Username)
	return true, nil
}

// Login trims the name, creates or refreshes the user and remembers it.
func (s *Session) Login(name string) (storage.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.User{}, ErrEmptyUsername
	}
	if utf8.RuneCountInString(name) > MaxUsernameLen {
		return storage.User{}, ErrUsernameTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.store.Login(name, s.now())
	if err != nil {
		return storage.User{}, fmt.Errorf("account: login %q: %w", name, err)
	}
	if err := s.store.SetSession(s.key, u.Username); err != nil {
		// The login itself succeeded; only the remembered slot is lost.
		s.logger.Warn("cannot remember session", "user", u.Username, "err", err)
	}

	s.user = &u
	s.logger.Info("logged in", "user", u.Username, "high", u.HighScore)
	return u, nil
}

// Logout forgets the current user. Logging out twice is not an error.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		s.logger.Info("logged out", "user", s.user.Username)
	}
	s.user = nil
	if err := s.store.ClearSession(s.key); err != nil {
		return fmt.Errorf("account: logout: %w", err)
	}
	return nil
}

// CurrentUser returns a copy of the logged-in user.
func (s *Session) CurrentUser() (storage.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return storage.User{}, false
	}
	return *s.user, true
}

// Username returns the logged-in name, or "" when logged out.
func (s *Session) Username() string {
	u, _ := s.CurrentUser()
	return u.Username
}

// IsAuthenticated reports whether someone is logged in.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// RecordRun stores a finished run for the current user.
func (s *Session) RecordRun(score int) (snake.RunOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return snake.RunOutcome{}, ErrNotLoggedIn
	}

	run, newHigh, err := s.store.RecordRun(s.user.Username, score, s.now())
	if err != nil {
		s.logger.Warn("cannot record run", "user", s.user.Username, "score", score, "err", err)
		return snake.RunOutcome{}, fmt.Errorf("account: record run: %w", err)
	}
	if newHigh {
		s.user.HighScore = score
	}

	s.logger.Info("run recorded", "user", s.user.Username, "score", score, "new_high", newHigh)
	s.logger.Debug("run stored", "id", run.ID)
	return snake.RunOutcome{NewHighScore: newHigh}, nil
}

// HighScore returns the current user's best score.
func (s *Session) HighScore() (int, error) {
	name := s.Username()
	if name == "" {
		return 0, ErrNotLoggedIn
	}
	high, err := s.store.HighScore(name)
	if err != nil {
		return 0, fmt.Errorf("account: high score: %w", err)
	}
	return high, nil
}

// History returns the current user's runs, newest first.
func (s *Session) History() ([]storage.Run, error) {
	name := s.Username()
	if name == "" {
		return nil, ErrNotLoggedIn
	}
	runs, err := s.store.History(name)
	if err != nil {
		return nil, fmt.Errorf("account: history: %w", err)
	}
	return runs, nil
}
