package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Cells   []*cellBlock   `hcl:"cell,block"`
	Modules []*moduleBlock `hcl:"module,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// cellBlock is the raw HCL form of a circuit-library cell manifest.
type cellBlock struct {
	Name  string       `hcl:"name,label"`
	Ports []*portBlock `hcl:"port,block"`
}

// moduleBlock is the raw HCL form of one design module.
type moduleBlock struct {
	Name      string           `hcl:"name,label"`
	Ports     []*portBlock     `hcl:"port,block"`
	Instances []*instanceBlock `hcl:"instance,block"`
}

// portBlock declares a typed port. Width and the msb/lsb pair are mutually
// exclusive; omitting both yields a single-bit port.
type portBlock struct {
	Name  string         `hcl:"name,label"`
	Type  string         `hcl:"type"`
	Width hcl.Expression `hcl:"width,optional"`
	MSB   hcl.Expression `hcl:"msb,optional"`
	LSB   hcl.Expression `hcl:"lsb,optional"`
}

// instanceBlock places a child occurrence inside a module.
type instanceBlock struct {
	Name string `hcl:"name,label"`
	Of   string `hcl:"of"`
}

// Load orchestrates the entire HCL configuration loading process. It is
// agnostic to the origin of the paths and parses any valid block from any file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, cell := range root.Cells {
			def, err := l.translateCell(ctx, cell)
			if err != nil {
				return nil, fmt.Errorf("cell %q in %s: %w", cell.Name, file, err)
			}
			model.Cells = append(model.Cells, def)
		}
		for _, mod := range root.Modules {
			def, err := l.translateModule(ctx, mod)
			if err != nil {
				return nil, fmt.Errorf("module %q in %s: %w", mod.Name, file, err)
			}
			model.Modules = append(model.Modules, def)
		}
	}

	logger.Debug("HCL loading complete.", "cells", len(model.Cells), "modules", len(model.Modules))
	return model, nil
}

// findHCLFiles resolves each path to either a single file or a recursive
// directory walk. Files without the .hcl extension are skipped either way,
// so this loader never claims files belonging to another format. A missing
// path is not an error.
func findHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var files []string
		if info.IsDir() {
			files, err = fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			files = []string{path}
		}

		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				all = append(all, f)
				seen[f] = struct{}{}
			}
		}
	}

	return all, nil
}
