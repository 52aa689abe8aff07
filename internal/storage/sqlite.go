// Package storage provides SQLite-based persistence for players, their run
// history and the remembered login session.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// HistoryLimit is the number of runs kept per player.
const HistoryLimit = 20

// LocalSessionKey identifies the session of the local terminal.
const LocalSessionKey = "local"

// ErrUserNotFound is returned when a username has never logged in.
var ErrUserNotFound = errors.New("storage: user not found")

// timeLayout is how timestamps are written to TEXT columns.
const timeLayout = time.RFC3339Nano

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// User is a known player.
type User struct {
	Username   string
	FirstLogin time.Time
	LastLogin  time.Time
	HighScore  int
}

// Run is one finished game in a player's history.
type Run struct {
	ID       string
	Score    int
	PlayedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps the run transaction and history trim serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			first_login TEXT NOT NULL,
			last_login TEXT NOT NULL,
			high_score INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			score INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_user ON runs(username, seq DESC);

		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			username TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Login creates the user on first sight and refreshes LastLogin otherwise.
func (s *Store) Login(username string, at time.Time) (User, error) {
	ts := at.UTC().Format(timeLayout)
	_, err := s.db.Exec(
		`INSERT INTO users (username, first_login, last_login, high_score)
		 VALUES (?, ?, ?, 0)
		 ON CONFLICT(username) DO UPDATE SET last_login = excluded.last_login`,
		username, ts, ts,
	)
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot upsert user: %w", err)
	}
	return s.User(username)
}

// User loads a single player.
func (s *Store) User(username string) (User, error) {
	var (
		u           User
		first, last any
	)
	err := s.db.QueryRow(
		`SELECT username, first_login, last_login, high_score
		 FROM users WHERE username = ?`,
		username,
	).Scan(&u.Username, &first, &last, &u.HighScore)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.FirstLogin = parseTime(first)
	u.LastLogin = parseTime(last)
	return u, nil
}

// Users lists every known player, best first.
func (s *Store) Users() ([]User, error) {
	rows, err := s.db.Query(
		`SELECT username, first_login, last_login, high_score
		 FROM users
		 ORDER BY high_score DESC, username ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			u           User
			first, last any
		)
		if err := rows.Scan(&u.Username, &first, &last, &u.HighScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		u.FirstLogin = parseTime(first)
		u.LastLogin = parseTime(last)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return users, nil
}

// RecordRun appends a finished run to the player's history, trims the history
// to HistoryLimit entries and raises the high score when beaten. All of it
// happens in one transaction. newHigh is true only when score strictly exceeds
// the previous high score.
func (s *Store) RecordRun(username string, score int, at time.Time) (run Run, newHigh bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var high int
	err = tx.QueryRow("SELECT high_score FROM users WHERE username = ?", username).Scan(&high)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, ErrUserNotFound
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	run = Run{ID: uuid.NewString(), Score: score, PlayedAt: at.UTC()}
	if _, err = tx.Exec(
		"INSERT INTO runs (id, username, score, played_at) VALUES (?, ?, ?, ?)",
		run.ID, username, score, run.PlayedAt.Format(timeLayout),
	); err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err = tx.Exec(
		`DELETE FROM runs
		 WHERE username = ? AND seq NOT IN (
			SELECT seq FROM runs WHERE username = ? ORDER BY seq DESC LIMIT ?
		 )`,
		username, username, HistoryLimit,
	); err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot trim history: %w", err)
	}

	if score > high {
		newHigh = true
		if _, err = tx.Exec("UPDATE users SET high_score = ? WHERE username = ?", score, username); err != nil {
			return Run{}, false, fmt.Errorf("storage: cannot update high score: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Run{}, false, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run, newHigh, nil
}

// HighScore returns the player's best score. Unknown players have 0.
func (s *Store) HighScore(username string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT high_score FROM users WHERE username = ?",
		username,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// History returns the player's runs, newest first.
func (s *Store) History(username string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, score, played_at
		 FROM runs
		 WHERE username = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		username, HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			playedAt any
		)
		if err := rows.Scan(&r.ID, &r.Score, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.PlayedAt = parseTime(playedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SetSession remembers who is logged in under key.
func (s *Store) SetSession(key, username string) error {
	_, err := s.db.Exec(
		`INSERT INTO session (key, username) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET username = excluded.username`,
		key, username,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// Session returns the remembered username for key, if any.
func (s *Store) Session(key string) (string, bool, error) {
	var username string
	err := s.db.QueryRow("SELECT username FROM session WHERE key = ?", key).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return username, true, nil
}

// ClearSession forgets the login stored under key.
func (s *Store) ClearSession(key string) error {
	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// parseTime handles both driver-decoded times and raw TEXT values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
