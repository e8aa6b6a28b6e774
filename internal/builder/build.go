package builder

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/circuitlib"
	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/modreg"
)

// Result holds the outcome of a successful build.
type Result struct {
	Registry *modreg.Registry
	Library  *circuitlib.Library
}

// Build populates a fresh registry and circuit library from the model.
func Build(ctx context.Context, model *config.Model) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	lib := circuitlib.New()
	for _, cellDef := range model.Cells {
		cell := &circuitlib.Cell{Name: cellDef.Name}
		for _, pd := range cellDef.Ports {
			cell.Ports = append(cell.Ports, circuitlib.CellPort{Port: pd.Port, Type: pd.Type})
		}
		if err := lib.AddCell(cell); err != nil {
			return nil, err
		}
	}
	logger.Debug("Circuit library populated.", "cells", lib.NumCells())

	reg := modreg.New()

	// Phase 1: register every design module so instance references resolve
	// independently of declaration order.
	for _, modDef := range model.Modules {
		id := reg.AddModule(modDef.Name)
		if !id.IsValid() {
			return nil, fmt.Errorf("duplicate module name %q in design", modDef.Name)
		}
		if _, clash := lib.Cell(modDef.Name); clash {
			return nil, fmt.Errorf("module name %q collides with a circuit-library cell", modDef.Name)
		}
	}

	// Phase 2: attach ports in declaration order.
	for _, modDef := range model.Modules {
		id := reg.FindModule(modDef.Name)
		for _, pd := range modDef.Ports {
			reg.AddPort(id, pd.Port, pd.Type)
		}
	}

	// Phase 3: link containment edges, registering library cells on first
	// reference.
	for _, modDef := range model.Modules {
		parent := reg.FindModule(modDef.Name)
		for _, inst := range modDef.Instances {
			child, err := resolveChild(ctx, reg, lib, inst.Of)
			if err != nil {
				return nil, fmt.Errorf("module %q, instance %q: %w", modDef.Name, inst.Name, err)
			}
			reg.AddChild(parent, child)
		}
	}

	logger.Debug("Module hierarchy built.", "modules", reg.NumModules())
	return &Result{Registry: reg, Library: lib}, nil
}

// resolveChild maps an instance target to a module handle. Design modules
// take precedence; a circuit-library cell is materialized as a module the
// first time something instantiates it.
func resolveChild(ctx context.Context, reg *modreg.Registry, lib *circuitlib.Library, name string) (modreg.ModuleID, error) {
	if id := reg.FindModule(name); id.IsValid() {
		return id, nil
	}

	cell, ok := lib.Cell(name)
	if !ok {
		return modreg.InvalidModuleID, fmt.Errorf("reference %q matches no design module and no library cell", name)
	}

	id := reg.AddModule(cell.Name)
	if !id.IsValid() {
		// FindModule above missed, so the name cannot be taken.
		panic(fmt.Sprintf("builder: cell %q vanished from the registry name map", cell.Name))
	}
	for _, cp := range cell.Ports {
		reg.AddPort(id, cp.Port, cp.Type)
	}
	ctxlog.FromContext(ctx).Debug("Registered library cell as module.", "cell", cell.Name)
	return id, nil
}
