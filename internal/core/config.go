package core

// RuntimeConfig contains the settings a game session is started with.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 100)
	Seed     int64 // RNG seed; 0 means pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 100,
		Seed:     0,
	}
}

// GameState is the summary the front-end needs after each step.
type GameState struct {
	Score        uint64
	Difficulty   string
	BallsPerShot int
	InFlight     int  // Balls of the running shot not yet retired
	Shooting     bool // A shot is running
	DoubleScore  bool
	GameOver     bool
	Paused       bool
}

// Event is something that happened during a Step.
type Event int

const (
	EventShotStarted Event = iota + 1
	EventShotEnded
	EventRowAdded
	EventGameOver
	EventRestarted
	EventSaveRequested
)

// String returns a short name for the event.
func (e Event) String() string {
	switch e {
	case EventShotStarted:
		return "shot-started"
	case EventShotEnded:
		return "shot-ended"
	case EventRowAdded:
		return "row-added"
	case EventGameOver:
		return "game-over"
	case EventRestarted:
		return "restarted"
	case EventSaveRequested:
		return "save-requested"
	default:
		return "unknown"
	}
}

// StepResult is returned by every simulation step.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether e occurred during the step.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
