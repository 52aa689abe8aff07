// snake is the classic snake game for the terminal, with per-player high
// scores and run history.
//
// Usage:
//
//	snake play [--user NAME]  - Play (asks for a name unless logged in)
//	snake login NAME          - Log in and remember the player
//	snake logout              - Forget the remembered player
//	snake whoami              - Show the remembered player
//	snake scores [NAME]       - Show high score and recent runs
//	snake users               - List known players
//	snake serve               - Start SSH server for remote play
//	snake demo                - Watch the autopilot play one run
//
// Global flags:
//
//	--db <path>          - Database path (default: ~/.snake/snake.db)
//	--config <path>      - Engine config YAML
//	--difficulty <name>  - easy, normal or hard
//	--seed <value>       - RNG seed for reproducible food placement
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic grid game: steer the snake to the food, grow,
and do not hit the walls or yourself. Every run is recorded for the
logged-in player.

Available commands:
  play     - Play the game
  login    - Log in as a player
  logout   - Log out
  whoami   - Show who is logged in
  scores   - Show high score and recent runs
  users    - List known players
  serve    - Start SSH server for remote play
  demo     - Watch the autopilot play one run

Examples:
  snake play
  snake play --user alice --difficulty hard
  snake scores alice
  snake serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/snake.db", "Path to the player database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens ~/.snake/snake.log for writing while the TUI owns the
// terminal. The returned closer must be called on exit.
func openLogFile() (io.Writer, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// loadSettings resolves the engine settings from config files and flags.
func loadSettings(logger *log.Logger) (snake.Settings, error) {
	cfg, src, err := config.LoadSnake(flagConfig)
	if err != nil {
		return snake.Settings{}, err
	}

	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			return snake.Settings{}, err
		}
	}
	config.ApplySnakePreset(&cfg, preset)

	logger.Debug("config loaded",
		"source", src,
		"grid", cfg.Grid.Count,
		"initial_ms", cfg.Speed.InitialMs,
		"difficulty", preset,
	)
	return cfg.Settings(), nil
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening player database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// localSession returns the session of this terminal with the remembered
// player restored.
func localSession(store *storage.Store, logger *log.Logger) *account.Session {
	session := account.New(store, storage.LocalSessionKey, logger)
	if _, err := session.Restore(); err != nil {
		logger.Warn("cannot restore login", "err", err)
	}
	return session
}
