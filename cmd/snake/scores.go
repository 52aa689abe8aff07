package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [name]",
	Short: "Show a player's high score and recent runs",
	Long: `Display the high score and the last runs of a player, newest first.
Without a name the logged-in player is shown.

Examples:
  snake scores
  snake scores alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List known players",
	Args:  cobra.NoArgs,
	Run:   runUsers,
}

func runScores(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "snake")
	store := mustOpenStore()
	defer store.Close()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name = localSession(store, logger).Username()
		if name == "" {
			store.Close()
			fmt.Fprintln(os.Stderr, "Error: not logged in and no player given")
			fmt.Fprintln(os.Stderr, "Run 'snake scores <name>' or 'snake login <name>'.")
			os.Exit(1)
		}
	}

	u, err := store.User(name)
	if errors.Is(err, storage.ErrUserNotFound) {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown player %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'snake users' to see known players.")
		os.Exit(1)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error reading player: %v\n", err)
		os.Exit(1)
	}

	runs, err := store.History(u.Username)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	color.Cyan("Scores - %s", u.Username)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "#", "Score", "Played")
	fmt.Printf("  %-4s  %-10s  %s\n", "-", "-----", "------")
	for i, r := range runs {
		line := fmt.Sprintf("  %-4d  %-10d  %s", i+1, r.Score, r.PlayedAt.Local().Format("2006-01-02 15:04"))
		if r.Score == u.HighScore && u.HighScore > 0 {
			color.Green("%s", line)
			continue
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", u.HighScore)
}

func runUsers(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	users, err := store.Users()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error listing players: %v\n", err)
		os.Exit(1)
	}

	if len(users) == 0 {
		fmt.Println("No players yet. Run 'snake login <name>' to create one.")
		return
	}

	color.Cyan("Players")
	fmt.Println()
	fmt.Printf("  %-24s  %-10s  %s\n", "Name", "Best", "Last login")
	fmt.Printf("  %-24s  %-10s  %s\n", "----", "----", "----------")
	for _, u := range users {
		fmt.Printf("  %-24s  %-10d  %s\n", u.Username, u.HighScore, u.LastLogin.Local().Format("2006-01-02 15:04"))
	}
}
