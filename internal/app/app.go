package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
	hcladapter "github.com/vk/netgridgo/internal/hcl"
	yamladapter "github.com/vk/netgridgo/internal/yaml"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the design
// model already loaded.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = loaderForConfig(appConfig)
	}

	model, err := loader.Load(ctx, appConfig.DesignPath)
	if err != nil {
		// A failure to load the design is a fatal startup error.
		panic(fmt.Errorf("failed to load design configuration: %w", err))
	}
	logger.Debug("Design loaded into unified model.",
		"cells", len(model.Cells), "modules", len(model.Modules))

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
	}
}

// Model returns the loaded design model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// loaderForConfig picks a concrete loader from the configured format. In
// auto mode a single file is sniffed by extension, while a directory is
// read by every loader with the results merged.
func loaderForConfig(appConfig *Config) config.Loader {
	switch appConfig.Format {
	case "hcl":
		return hcladapter.NewLoader()
	case "yaml":
		return yamladapter.NewLoader()
	}

	switch filepath.Ext(appConfig.DesignPath) {
	case ".hcl":
		return hcladapter.NewLoader()
	case ".yaml", ".yml":
		return yamladapter.NewLoader()
	}
	return multiLoader{hcladapter.NewLoader(), yamladapter.NewLoader()}
}

// multiLoader runs several loaders over the same paths and merges their
// models. Loaders ignore files whose extension they don't own, so each
// file is decoded exactly once.
type multiLoader []config.Loader

func (m multiLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	merged := &config.Model{}
	for _, loader := range m {
		model, err := loader.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		merged.Cells = append(merged.Cells, model.Cells...)
		merged.Modules = append(merged.Modules, model.Modules...)
	}
	return merged, nil
}
