// Package port defines BasicPort, the descriptor value for a typed module
// interface point: a name plus a bit range. The registry treats it as an
// opaque value and copies it through unchanged.
package port

import "fmt"

// BasicPort describes a port by name and bit range. MSB and LSB are
// inclusive bit positions; a single-bit port has MSB == LSB.
type BasicPort struct {
	Name string
	MSB  int
	LSB  int
}

// New creates a single-bit port descriptor.
func New(name string) BasicPort {
	return BasicPort{Name: name, MSB: 0, LSB: 0}
}

// NewWidth creates a port descriptor spanning [width-1:0]. A width below
// one is a caller bug and panics; loaders validate user-supplied widths
// before reaching here.
func NewWidth(name string, width int) BasicPort {
	if width < 1 {
		panic(fmt.Sprintf("port: width must be at least 1, got %d", width))
	}
	return BasicPort{Name: name, MSB: width - 1, LSB: 0}
}

// NewRange creates a port descriptor with an explicit bit range.
func NewRange(name string, msb, lsb int) BasicPort {
	return BasicPort{Name: name, MSB: msb, LSB: lsb}
}

// Width returns the number of bits the port spans.
func (p BasicPort) Width() int {
	if p.MSB < p.LSB {
		return p.LSB - p.MSB + 1
	}
	return p.MSB - p.LSB + 1
}

// Equal checks for full equality between two descriptors.
func (p BasicPort) Equal(other BasicPort) bool {
	return p == other
}

// String serializes the descriptor into its canonical `name[msb:lsb]` form.
// Single-bit ports with a zero range render as the bare name.
func (p BasicPort) String() string {
	if p.MSB == 0 && p.LSB == 0 {
		return p.Name
	}
	return fmt.Sprintf("%s[%d:%d]", p.Name, p.MSB, p.LSB)
}
