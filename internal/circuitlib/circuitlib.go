// Package circuitlib holds the library of leaf cell definitions a design
// can instantiate. The library is an external collaborator of the module
// registry: the builder consults it to auto-register referenced cells as
// modules, and otherwise the registry never interprets its contents.
package circuitlib

import (
	"fmt"
	"sort"

	"github.com/vk/netgridgo/internal/modreg"
	"github.com/vk/netgridgo/internal/port"
)

// CellPort pairs a port descriptor with its category.
type CellPort struct {
	Port port.BasicPort
	Type modreg.PortType
}

// Cell is a single leaf cell definition.
type Cell struct {
	Name  string
	Ports []CellPort
}

// Library is an in-memory collection of cell definitions keyed by name.
type Library struct {
	cells map[string]*Cell
}

// New creates a new, empty circuit library.
func New() *Library {
	return &Library{cells: make(map[string]*Cell)}
}

// AddCell registers a cell definition. Duplicate cell names are a
// configuration error, not a caller bug.
func (l *Library) AddCell(cell *Cell) error {
	if cell.Name == "" {
		return fmt.Errorf("cell name cannot be empty")
	}
	if _, exists := l.cells[cell.Name]; exists {
		return fmt.Errorf("cell %q already defined in circuit library", cell.Name)
	}
	l.cells[cell.Name] = cell
	return nil
}

// Cell returns the definition registered under name, if any.
func (l *Library) Cell(name string) (*Cell, bool) {
	c, ok := l.cells[name]
	return c, ok
}

// NumCells returns the number of registered cell definitions.
func (l *Library) NumCells() int {
	return len(l.cells)
}

// Names returns all cell names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.cells))
	for name := range l.cells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
