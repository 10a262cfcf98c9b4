package pipeline

// State is the stage a run has reached.
type State int32

const (
	// StateIdle is the state before Run.
	StateIdle State = iota

	// StateAwaitingInputs waits for the dataset and the font.
	StateAwaitingInputs

	// StateParsed holds the panel grid and a supported font.
	StateParsed

	// StateJustified holds the laid out lines and flattened glyphs.
	StateJustified

	// StateAwaitingPartition waits for the partitioner.
	StateAwaitingPartition

	// StateReady has handed attributes and geometry to the view.
	StateReady

	// StateFailed ended with an error.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingInputs:
		return "AwaitingInputs"
	case StateParsed:
		return "Parsed"
	case StateJustified:
		return "Justified"
	case StateAwaitingPartition:
		return "AwaitingPartition"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transitions follow.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}
