package component

// State is the lifecycle state of a component instance.
type State uint8

const (
	StateCreated       State = iota // Constructed, not yet connected
	StatePreRunning                 // Pre hook in flight
	StateRenderEnabled              // Pre settled, render pass allowed
	StateInitRunning                // Init hook in flight
	StateReady                      // Fully initialized
	StateError                      // A hook failed; terminal
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePreRunning:
		return "pre-running"
	case StateRenderEnabled:
		return "render-enabled"
	case StateInitRunning:
		return "init-running"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
