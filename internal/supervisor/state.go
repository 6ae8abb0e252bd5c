package supervisor

import "github.com/imyashkale/kmsdash/internal/models"

// State represents the lifecycle state of the supervised process
type State int

const (
	// StateNotStarted - no start attempt has succeeded yet
	StateNotStarted State = iota
	// StateRunning - the operating system confirmed process creation
	StateRunning
	// StateStopped - the process exited after an explicit stop request
	StateStopped
	// StateCrashed - the process exited without being asked to stop
	StateCrashed
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// Status maps the process state onto the value shown in the dashboard
// configuration. A crashed child reads as stopped; only a state the
// supervisor has never observed reads as unknown.
func (s State) Status() string {
	switch s {
	case StateRunning:
		return models.StatusRunning
	case StateStopped, StateCrashed:
		return models.StatusStopped
	default:
		return models.StatusUnknown
	}
}
