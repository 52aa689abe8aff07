package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Log in as a player",
	Long: `Log in and remember the player for future 'snake play' runs.
A new name creates the player; an existing one refreshes its last login.

Examples:
  snake login alice`,
	Args: cobra.ExactArgs(1),
	Run:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged-in player",
	Args:  cobra.NoArgs,
	Run:   runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in player",
	Args:  cobra.NoArgs,
	Run:   runWhoami,
}

func runLogin(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "snake")
	store := mustOpenStore()
	defer store.Close()

	session := account.New(store, storage.LocalSessionKey, logger)
	u, err := session.Login(args[0])
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	color.Green("Logged in as %s", u.Username)
	if u.HighScore > 0 {
		fmt.Printf("High score: %d\n", u.HighScore)
	}
}

func runLogout(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "snake")
	store := mustOpenStore()
	defer store.Close()

	session := localSession(store, logger)
	name := session.Username()
	if err := session.Logout(); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if name == "" {
		fmt.Println("Nobody was logged in.")
		return
	}
	color.Yellow("Logged out %s", name)
}

func runWhoami(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "snake")
	store := mustOpenStore()
	defer store.Close()

	session := localSession(store, logger)
	u, ok := session.CurrentUser()
	if !ok {
		fmt.Println("Not logged in. Run 'snake login <name>'.")
		return
	}

	color.Cyan("%s", u.Username)
	fmt.Printf("  High score:  %d\n", u.HighScore)
	fmt.Printf("  First login: %s\n", u.FirstLogin.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Last login:  %s\n", u.LastLogin.Local().Format("2006-01-02 15:04"))
}
