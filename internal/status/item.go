// Package status turns raw monitoring objects into ranked status items.
package status

// Kind distinguishes host problems from service problems.
type Kind int

const (
	Host Kind = iota
	Service
)

// String returns the kind name as the monitoring API spells it.
func (k Kind) String() string {
	switch k {
	case Host:
		return "Host"
	case Service:
		return "Service"
	default:
		return "Unknown"
	}
}

// Host states.
const (
	HostUp          = 0
	HostDown        = 1
	HostUnreachable = 2
)

// Service states.
const (
	ServiceOK       = 0
	ServiceWarning  = 1
	ServiceCritical = 2
	ServiceUnknown  = 3
)

var (
	hostStateLabels    = []string{"UP", "DOWN", "UNREACHABLE"}
	serviceStateLabels = []string{"OK", "WARNING", "CRITICAL", "UNKNOWN"}
)

// ValidState reports whether state is in the domain of kind.
func ValidState(kind Kind, state int) bool {
	switch kind {
	case Host:
		return state >= 0 && state < len(hostStateLabels)
	case Service:
		return state >= 0 && state < len(serviceStateLabels)
	default:
		return false
	}
}

// Item is one monitored entity in a non-OK state.
type Item struct {
	Kind    Kind
	Host    string
	Service string // empty for hosts
	State   int
	// LastHardStateChange is epoch seconds; 0 means the state never changed.
	LastHardStateChange int64
}

// Name returns the monitoring object name: "host" or "host!service".
func (i Item) Name() string {
	if i.Kind == Service {
		return i.Host + "!" + i.Service
	}
	return i.Host
}

// DisplayName returns the label shown on the board.
func (i Item) DisplayName() string {
	if i.Kind == Service {
		return i.Service + " @ " + i.Host
	}
	return i.Host
}

// StateLabel returns the upper-case state name, e.g. "CRITICAL".
func (i Item) StateLabel() string {
	if !ValidState(i.Kind, i.State) {
		return "UNKNOWN"
	}
	if i.Kind == Host {
		return hostStateLabels[i.State]
	}
	return serviceStateLabels[i.State]
}
