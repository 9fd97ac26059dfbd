package tutor

// State is a step in handling one submission.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateDiscovering
	StateDiscoveryFailed
	StateSelecting
	StateNoModel
	StateGenerating
	StateGenerationFailed
	StateRendered
)

var stateNames = [...]string{
	StateIdle:             "idle",
	StateValidating:       "validating",
	StateRejected:         "rejected",
	StateDiscovering:      "discovering",
	StateDiscoveryFailed:  "discovery_failed",
	StateSelecting:        "selecting",
	StateNoModel:          "no_model",
	StateGenerating:       "generating",
	StateGenerationFailed: "generation_failed",
	StateRendered:         "rendered",
}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a submission.
func (s State) Terminal() bool {
	switch s {
	case StateRejected, StateDiscoveryFailed, StateNoModel, StateGenerationFailed, StateRendered:
		return true
	}
	return false
}

// Observer is notified of every state a submission passes through, ending
// with StateIdle.
type Observer func(requestID string, s State)
