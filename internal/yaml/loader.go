// Package yaml is the YAML-specific implementation of the config.Loader
// interface. It accepts the same cell/module model as the HCL loader, with
// widths and bit ranges as plain integers.
package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	"github.com/vk/netgridgo/internal/fsutil"
	"github.com/vk/netgridgo/internal/modreg"
	"github.com/vk/netgridgo/internal/port"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the raw YAML form of one configuration file.
type fileRoot struct {
	Cells   []*cellNode   `yaml:"cells"`
	Modules []*moduleNode `yaml:"modules"`
}

type cellNode struct {
	Name  string      `yaml:"name"`
	Ports []*portNode `yaml:"ports"`
}

type moduleNode struct {
	Name      string          `yaml:"name"`
	Ports     []*portNode     `yaml:"ports"`
	Instances []*instanceNode `yaml:"instances"`
}

type portNode struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Width *int   `yaml:"width"`
	MSB   *int   `yaml:"msb"`
	LSB   *int   `yaml:"lsb"`
}

type instanceNode struct {
	Name string `yaml:"name"`
	Of   string `yaml:"of"`
}

// Load reads every .yaml/.yml file reachable from the given paths and
// merges them into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}

	files, err := findYAMLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", file, err)
		}

		var root fileRoot
		if err := yamlv3.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		for _, cell := range root.Cells {
			def, err := translateCell(cell)
			if err != nil {
				return nil, fmt.Errorf("cell %q in %s: %w", cell.Name, file, err)
			}
			model.Cells = append(model.Cells, def)
		}
		for _, mod := range root.Modules {
			def, err := translateModule(mod)
			if err != nil {
				return nil, fmt.Errorf("module %q in %s: %w", mod.Name, file, err)
			}
			model.Modules = append(model.Modules, def)
		}
	}

	logger.Debug("YAML loading complete.", "cells", len(model.Cells), "modules", len(model.Modules))
	return model, nil
}

func findYAMLFiles(paths []string) ([]string, error) {
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
			for _, ext := range []string{".yaml", ".yml"} {
				found, err := fsutil.FindFilesByExtension(path, ext)
				if err != nil {
					return nil, err
				}
				files = append(files, found...)
			}
		} else if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
			// Only claim files this loader owns, so running several
			// loaders over the same path never decodes a file twice.
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

func translateCell(node *cellNode) (*config.CellDefinition, error) {
	def := &config.CellDefinition{Name: node.Name}
	for _, pn := range node.Ports {
		pd, err := translatePort(pn)
		if err != nil {
			return nil, err
		}
		def.Ports = append(def.Ports, pd)
	}
	return def, nil
}

func translateModule(node *moduleNode) (*config.ModuleDefinition, error) {
	def := &config.ModuleDefinition{Name: node.Name}
	for _, pn := range node.Ports {
		pd, err := translatePort(pn)
		if err != nil {
			return nil, err
		}
		def.Ports = append(def.Ports, pd)
	}
	for _, in := range node.Instances {
		if in.Of == "" {
			return nil, fmt.Errorf("instance %q: 'of' cannot be empty", in.Name)
		}
		def.Instances = append(def.Instances, &config.InstanceDefinition{
			Name: in.Name,
			Of:   in.Of,
		})
	}
	return def, nil
}

func translatePort(node *portNode) (*config.PortDefinition, error) {
	portType, err := modreg.ParsePortType(node.Type)
	if err != nil {
		return nil, fmt.Errorf("port %q: %w", node.Name, err)
	}

	hasWidth := node.Width != nil
	hasMSB := node.MSB != nil
	hasLSB := node.LSB != nil

	if hasWidth && (hasMSB || hasLSB) {
		return nil, fmt.Errorf("port %q: 'width' and 'msb'/'lsb' are mutually exclusive", node.Name)
	}
	if hasMSB != hasLSB {
		return nil, fmt.Errorf("port %q: 'msb' and 'lsb' must be set together", node.Name)
	}

	var descriptor port.BasicPort
	switch {
	case hasWidth:
		if *node.Width < 1 {
			return nil, fmt.Errorf("port %q: width must be at least 1, got %d", node.Name, *node.Width)
		}
		descriptor = port.NewWidth(node.Name, *node.Width)
	case hasMSB:
		if *node.MSB < 0 || *node.LSB < 0 {
			return nil, fmt.Errorf("port %q: bit positions cannot be negative", node.Name)
		}
		descriptor = port.NewRange(node.Name, *node.MSB, *node.LSB)
	default:
		descriptor = port.New(node.Name)
	}

	return &config.PortDefinition{Port: descriptor, Type: portType}, nil
}
