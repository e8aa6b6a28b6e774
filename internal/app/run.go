package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/netgridgo/internal/builder"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/hierarchy"
	"github.com/vk/netgridgo/internal/modreg"
)

// Run executes the main application logic: build the module registry from
// the loaded model, check the containment hierarchy, and report the result.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	result, err := builder.Build(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to build module hierarchy: %w", err)
	}
	reg := result.Registry
	logger.Info("Module hierarchy built.",
		"modules", reg.NumModules(), "cells", result.Library.NumCells())

	if err := hierarchy.DetectCycles(ctx, reg); err != nil {
		return fmt.Errorf("design is not a valid hierarchy: %w", err)
	}

	a.report(ctx, reg)
	logger.Debug("App.Run method finished.")
	return nil
}

// report logs a per-module summary of the registry: ports grouped by
// category (using the category display strings) and direct children.
// Modules are reported children-first.
func (a *App) report(ctx context.Context, reg *modreg.Registry) {
	logger := ctxlog.FromContext(ctx)

	roots := hierarchy.Roots(reg)
	rootNames := make([]string, len(roots))
	for i, id := range roots {
		rootNames[i] = reg.ModuleName(id)
	}
	logger.Info("Design roots.", "count", len(roots), "names", rootNames)

	ordered, err := hierarchy.Order(ctx, reg)
	if err != nil {
		// DetectCycles ran before report, so ordering cannot fail here.
		panic(fmt.Sprintf("app: hierarchy became cyclic between check and report: %v", err))
	}

	for _, id := range ordered {
		attrs := []any{"module", reg.ModuleName(id)}

		for t := modreg.PortType(0); t.Valid(); t++ {
			ports := reg.PortsByType(id, t)
			if len(ports) == 0 {
				continue
			}
			names := make([]string, len(ports))
			for i, p := range ports {
				names[i] = p.String()
			}
			attrs = append(attrs, t.String(), names)
		}

		children := reg.Children(id)
		if len(children) > 0 {
			childNames := make([]string, len(children))
			for i, c := range children {
				childNames[i] = reg.ModuleName(c)
			}
			attrs = append(attrs, "children", childNames)
		}

		logger.Info("Module summary.", attrs...)
	}
}
