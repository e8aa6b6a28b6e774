package modreg

import "fmt"

// PortType classifies a module port by its direction or role.
type PortType int

// The closed set of port categories. The numeric order is the order of the
// per-module lookup buckets and must not change.
const (
	GlobalPort PortType = iota
	InoutPort
	InputPort
	OutputPort
	ClockPort

	numPortTypes
)

// NumPortTypes is the size of the closed port category set.
const NumPortTypes = int(numPortTypes)

var portTypeStrings = [NumPortTypes]string{
	"GLOBAL PORTS",
	"INOUT PORTS",
	"INPUT PORTS",
	"OUTPUT PORTS",
	"CLOCK PORTS",
}

// Valid returns true if t is a member of the closed category set.
func (t PortType) Valid() bool {
	return t >= GlobalPort && t < numPortTypes
}

// String returns the display form of the category, used in diagnostics
// and report output.
func (t PortType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PortType(%d)", int(t))
	}
	return portTypeStrings[t]
}

// ParsePortType maps a lowercase configuration keyword to its category.
func ParsePortType(s string) (PortType, error) {
	switch s {
	case "global":
		return GlobalPort, nil
	case "inout":
		return InoutPort, nil
	case "input":
		return InputPort, nil
	case "output":
		return OutputPort, nil
	case "clock":
		return ClockPort, nil
	default:
		return GlobalPort, fmt.Errorf("unknown port type %q: must be one of 'global', 'inout', 'input', 'output', 'clock'", s)
	}
}
