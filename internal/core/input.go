package core

// IntentKind is a normalized player intent, abstracted from physical key presses.
type IntentKind int

const (
	IntentNone        IntentKind = iota
	IntentDirection              // Steer the snake (Dir is set)
	IntentTogglePause            // Pause or resume the current run
	IntentStart                  // Begin a new run (also restarts after game over)
	IntentStop                   // Abandon the run without recording it (logout, back)
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentDirection:
		return "Direction"
	case IntentTogglePause:
		return "TogglePause"
	case IntentStart:
		return "Start"
	case IntentStop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Intent is one event of the input stream consumed by the engine.
type Intent struct {
	Kind IntentKind
	Dir  Direction // Only meaningful for IntentDirection
}

// Steer creates a direction intent.
func Steer(d Direction) Intent {
	return Intent{Kind: IntentDirection, Dir: d}
}

// TogglePause creates a pause-toggle intent.
func TogglePause() Intent {
	return Intent{Kind: IntentTogglePause}
}

// StartRun creates a start intent.
func StartRun() Intent {
	return Intent{Kind: IntentStart}
}

// StopRun creates a stop intent.
func StopRun() Intent {
	return Intent{Kind: IntentStop}
}

func (i Intent) String() string {
	if i.Kind == IntentDirection {
		return "Direction(" + i.Dir.String() + ")"
	}
	return i.Kind.String()
}
