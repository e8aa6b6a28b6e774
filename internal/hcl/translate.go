package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/modreg"
	"github.com/vk/netgridgo/internal/port"
)

// translateCell converts a raw cell block into its model definition.
func (l *Loader) translateCell(ctx context.Context, block *cellBlock) (*config.CellDefinition, error) {
	def := &config.CellDefinition{Name: block.Name}
	for _, pb := range block.Ports {
		pd, err := l.translatePort(ctx, pb)
		if err != nil {
			return nil, err
		}
		def.Ports = append(def.Ports, pd)
	}
	return def, nil
}

// translateModule converts a raw module block into its model definition.
func (l *Loader) translateModule(ctx context.Context, block *moduleBlock) (*config.ModuleDefinition, error) {
	def := &config.ModuleDefinition{Name: block.Name}
	for _, pb := range block.Ports {
		pd, err := l.translatePort(ctx, pb)
		if err != nil {
			return nil, err
		}
		def.Ports = append(def.Ports, pd)
	}
	for _, ib := range block.Instances {
		if ib.Of == "" {
			return nil, fmt.Errorf("instance %q: 'of' cannot be empty", ib.Name)
		}
		def.Instances = append(def.Instances, &config.InstanceDefinition{
			Name: ib.Name,
			Of:   ib.Of,
		})
	}
	ctxlog.FromContext(ctx).Debug("Translated module block.",
		"module", def.Name, "ports", len(def.Ports), "instances", len(def.Instances))
	return def, nil
}

// translatePort resolves the type keyword and evaluates the width or
// bit-range expressions into a concrete port descriptor.
func (l *Loader) translatePort(ctx context.Context, block *portBlock) (*config.PortDefinition, error) {
	portType, err := modreg.ParsePortType(block.Type)
	if err != nil {
		return nil, fmt.Errorf("port %q: %w", block.Name, err)
	}

	hasWidth := exprPresent(block.Width)
	hasMSB := exprPresent(block.MSB)
	hasLSB := exprPresent(block.LSB)

	if hasWidth && (hasMSB || hasLSB) {
		return nil, fmt.Errorf("port %q: 'width' and 'msb'/'lsb' are mutually exclusive", block.Name)
	}
	if hasMSB != hasLSB {
		return nil, fmt.Errorf("port %q: 'msb' and 'lsb' must be set together", block.Name)
	}

	var descriptor port.BasicPort
	switch {
	case hasWidth:
		width, err := evalIntExpr(block.Width)
		if err != nil {
			return nil, fmt.Errorf("port %q: width: %w", block.Name, err)
		}
		if width < 1 {
			return nil, fmt.Errorf("port %q: width must be at least 1, got %d", block.Name, width)
		}
		descriptor = port.NewWidth(block.Name, width)
	case hasMSB:
		msb, err := evalIntExpr(block.MSB)
		if err != nil {
			return nil, fmt.Errorf("port %q: msb: %w", block.Name, err)
		}
		lsb, err := evalIntExpr(block.LSB)
		if err != nil {
			return nil, fmt.Errorf("port %q: lsb: %w", block.Name, err)
		}
		if msb < 0 || lsb < 0 {
			return nil, fmt.Errorf("port %q: bit positions cannot be negative", block.Name)
		}
		descriptor = port.NewRange(block.Name, msb, lsb)
	default:
		descriptor = port.New(block.Name)
	}

	return &config.PortDefinition{Port: descriptor, Type: portType}, nil
}

// exprPresent reports whether an optional expression attribute was actually
// written in the source. The HCL decoder populates omitted optional fields
// with non-nil, zero-width expression objects, so a nil check is not enough:
// a real attribute occupies bytes in the file, while the placeholder has a
// range whose start and end byte coincide.
func exprPresent(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	return exprRange.End.Byte > exprRange.Start.Byte
}

// evalIntExpr evaluates a constant HCL expression to a Go int.
func evalIntExpr(expr hcl.Expression) (int, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate expression: %w", diags)
	}

	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, fmt.Errorf("expected a whole number: %w", err)
	}
	return n, nil
}
