package config

import (
	"github.com/vk/netgridgo/internal/modreg"
	"github.com/vk/netgridgo/internal/port"
)

// Model is the unified, format-agnostic representation of everything the
// builder needs: the circuit library cells and the design hierarchy.
type Model struct {
	Cells   []*CellDefinition
	Modules []*ModuleDefinition
}

// CellDefinition describes a leaf cell provided by the circuit library.
type CellDefinition struct {
	Name  string
	Ports []*PortDefinition
}

// ModuleDefinition describes one hierarchical design module: its typed
// interface ports, in declaration order, and the child instances it
// directly contains.
type ModuleDefinition struct {
	Name      string
	Ports     []*PortDefinition
	Instances []*InstanceDefinition
}

// PortDefinition pairs a port descriptor with its category keyword,
// already resolved to a registry port type.
type PortDefinition struct {
	Port port.BasicPort
	Type modreg.PortType
}

// InstanceDefinition names a child occurrence inside a module. Of refers
// either to another design module or to a circuit-library cell.
type InstanceDefinition struct {
	Name string
	Of   string
}
