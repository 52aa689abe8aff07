package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	flagDemoTick   time.Duration
	flagDemoRender bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the autopilot play one run",
	Long: `Play one run headlessly with a greedy autopilot and print the result.
Nothing is recorded. The same --seed always plays the same game.

Examples:
  snake demo --seed 42
  snake demo --tick 20ms --render`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&flagDemoTick, "tick", 2*time.Millisecond, "Tick interval for the whole run (0 = use config speeds)")
	demoCmd.Flags().BoolVar(&flagDemoRender, "render", false, "Draw the board after every move")
}

// demoRecorder lets the engine start without a player and keeps nothing.
type demoRecorder struct{}

func (demoRecorder) IsAuthenticated() bool                   { return true }
func (demoRecorder) RecordRun(int) (snake.RunOutcome, error) { return snake.RunOutcome{}, nil }

type demoFrame struct {
	state snake.State
	phase snake.Phase
}

func runDemo(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "snake-demo")

	settings, err := loadSettings(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDemoTick > 0 {
		settings.InitialInterval = flagDemoTick
		settings.SpeedStep = 0
		settings.MinInterval = flagDemoTick
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := snake.NewEngine(settings, demoRecorder{}, nil, seed)

	// Only the latest frame matters; older ones are replaced.
	frames := make(chan demoFrame, 1)
	runner := snake.NewRunner(engine, func(s snake.State, p snake.Phase) {
		f := demoFrame{state: s, phase: p}
		for {
			select {
			case frames <- f:
				return
			default:
				select {
				case <-frames:
				default:
				}
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	logger.Debug("demo started", "seed", seed, "tick", settings.InitialInterval)
	runner.Send(core.StartRun())

	screen := core.NewScreen(snake.BoardSize(settings.Grid))
	var lastHead core.Cell
	lastLen := 0
	for f := range frames {
		if f.phase == snake.PhaseEnded {
			break
		}
		if f.phase != snake.PhaseRunning || len(f.state.Snake) == 0 {
			continue
		}
		// One decision per move; intent echoes carry the same head.
		if f.state.Head() == lastHead && len(f.state.Snake) == lastLen {
			continue
		}
		lastHead, lastLen = f.state.Head(), len(f.state.Snake)

		if flagDemoRender {
			snake.Paint(screen, snake.Render(f.state, settings.Grid), settings.Grid, 0, 0)
			fmt.Print("\033[H\033[2J", screen.String(), "\n")
		}
		runner.Send(core.Steer(snake.Autopilot(f.state, settings.Grid)))
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}

	printDemoResult(engine, seed)
}

func printDemoResult(e *snake.Engine, seed int64) {
	res := e.LastResult()
	snap := e.Snapshot()
	if res == nil {
		fmt.Println("The run did not finish.")
		return
	}

	reason := "crashed"
	if res.BoardFull {
		reason = "filled the board"
	}
	color.Cyan("Autopilot %s", reason)
	fmt.Printf("  Seed:   %d\n", seed)
	fmt.Printf("  Score:  %d\n", res.Score)
	fmt.Printf("  Length: %d\n", snap.SnakeLen)
	fmt.Printf("  Ticks:  %d\n", snap.Tick)
}
