// Package hierarchy provides the structural sanity checks the module
// registry deliberately leaves to its callers. The registry records
// whatever containment edges it is given, including cycles; this package
// walks those edges to reject cyclic compositions and to produce a
// children-first ordering for downstream consumers.
package hierarchy

import (
	"context"
	"fmt"

	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/modreg"
)

// DetectCycles checks the registry's containment edges for cycles. It
// returns a non-nil error naming a module involved in the first cycle
// found.
func DetectCycles(ctx context.Context, reg *modreg.Registry) error {
	// Classic depth-first search with three sets of modules:
	// permanent: fully visited, known not to be part of a cycle.
	// temporary: currently on the recursion stack.
	// unvisited: everything else.
	permanent := make(map[modreg.ModuleID]bool)
	temporary := make(map[modreg.ModuleID]bool)

	var visit func(id modreg.ModuleID) error
	visit = func(id modreg.ModuleID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("containment cycle detected involving module %q", reg.ModuleName(id))
		}

		temporary[id] = true
		for _, child := range reg.Children(id) {
			if err := visit(child); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true

		return nil
	}

	for _, id := range reg.Modules() {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("Hierarchy check passed.", "modules", reg.NumModules())
	return nil
}

// Order returns all modules in children-before-parents order, so a
// consumer that walks the result sees every module after everything it
// contains. Returns an error if the hierarchy is cyclic.
func Order(ctx context.Context, reg *modreg.Registry) ([]modreg.ModuleID, error) {
	if err := DetectCycles(ctx, reg); err != nil {
		return nil, err
	}

	visited := make(map[modreg.ModuleID]bool)
	ordered := make([]modreg.ModuleID, 0, reg.NumModules())

	var visit func(id modreg.ModuleID)
	visit = func(id modreg.ModuleID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, child := range reg.Children(id) {
			visit(child)
		}
		ordered = append(ordered, id)
	}

	for _, id := range reg.Modules() {
		visit(id)
	}

	return ordered, nil
}

// Roots returns the modules that no other module contains, in allocation
// order. A well-formed design has exactly one.
func Roots(reg *modreg.Registry) []modreg.ModuleID {
	var roots []modreg.ModuleID
	for _, id := range reg.Modules() {
		if len(reg.Parents(id)) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}
