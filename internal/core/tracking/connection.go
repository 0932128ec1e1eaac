package tracking

// ConnectionState describes where a controller sits in its pairing
// lifecycle. The runtime drives the machine; consumers only read it.
//
// Valid transitions form a single forward chain with one reverse edge:
//
//	Disconnected -> Scanning -> Connecting -> Connected
//	Connected -> Disconnected (loss of signal)
//
// Observing the same state across consecutive snapshots is not a
// transition.
type ConnectionState int32

const (
	Disconnected ConnectionState = iota
	Scanning
	Connecting
	Connected

	numConnectionStates
)

// Known reports whether s is one of the defined connection states.
func (s ConnectionState) Known() bool {
	return s >= Disconnected && s < numConnectionStates
}

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Scanning:
		return "scanning"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// ValidTransition reports whether moving from one state to another is
// legal for the runtime's pairing machine. It is advisory: a consumer
// that observes an illegal transition should report it (see Monitor)
// but must keep functioning.
func ValidTransition(from, to ConnectionState) bool {
	switch from {
	case Disconnected:
		return to == Scanning
	case Scanning:
		return to == Connecting
	case Connecting:
		return to == Connected
	case Connected:
		return to == Disconnected
	default:
		return false
	}
}
