package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var flagUser string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start the game. You are asked for a name unless a player is already
logged in (see 'snake login') or --user is given.

Controls:
  Arrows/WASD  - Steer
  Space/P      - Pause
  Enter/R      - Start a run
  Tab          - Recent runs
  Esc          - Log out
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start
  normal - 150ms start, 5ms faster per food, 50ms floor
  hard   - Faster start

Examples:
  snake play
  snake play --user alice
  snake play --difficulty hard
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUser, "user", "", "Log in as this player before starting")
}

func runPlay(_ *cobra.Command, _ []string) {
	logOut, closeLog, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logOut, closeLog = os.Stderr, func() {}
	}
	defer closeLog()
	logger := newLogger(logOut, "snake")

	settings, err := loadSettings(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := mustOpenStore()
	session := localSession(store, logger)
	if flagUser != "" {
		if _, err := session.Login(flagUser); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	runErr := tui.Run(tui.Options{
		Session:  session,
		Settings: settings,
		Seed:     flagSeed,
		Width:    width,
		Height:   height,
		Logger:   logger,
	})

	store.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
