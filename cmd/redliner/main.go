// Command redliner annotates PDF and CAD drawings from the terminal.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/redliner/internal/adapters/driven/canvas"
	"github.com/custodia-labs/redliner/internal/adapters/driven/codec"
	"github.com/custodia-labs/redliner/internal/adapters/driven/config/file"
	"github.com/custodia-labs/redliner/internal/adapters/driven/desktop"
	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/redliner/internal/adapters/driven/validation"
	"github.com/custodia-labs/redliner/internal/adapters/driven/watcher"
	"github.com/custodia-labs/redliner/internal/adapters/driving/cli"
	"github.com/custodia-labs/redliner/internal/core/services"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Set by -ldflags at release time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap opens the database and config file and builds the services.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		dir, err := sqlite.DefaultDataDir()
		if err != nil {
			return nil, nil, err
		}
		dataDir = dir
	}
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = dataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database: %s", store.Path())

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, errors.Join(err, store.Close())
	}

	settings := services.NewSettingsService(configStore)
	if err := settings.Validate(); err != nil {
		logger.Warn("config.toml has invalid values, using them anyway: %v", err)
	}

	documents := services.NewDocumentService(store.DocumentStore(), settings, desktop.NewRevealer())
	annotations := services.NewAnnotationService(
		store.AnnotationStore(), store.DocumentStore(), validation.New(), settings,
	)
	renderer := services.NewAnnotationRenderer()
	viewer := services.NewDocumentViewer(settings)

	svc := &cli.Services{
		Document:   documents,
		Annotation: annotations,
		Renderer:   renderer,
		Viewer:     viewer,
		Export: services.NewExportService(services.ExportDeps{
			Documents:   documents,
			Annotations: annotations,
			Renderer:    renderer,
			Viewer:      viewer,
			Codec:       codec.NewYAML(true),
			Rasterizer:  canvas.NewRasterizer(),
			Settings:    settings,
		}),
		Preference: services.NewPreferenceService(store.PreferenceStore()),
		Settings:   settings,
		Seeder:     services.NewSeeder(store.DocumentStore(), store.AnnotationStore(), dataDir),
		Monitor:    services.NewDocumentMonitor(watcher.New(0)),
	}
	return svc, store.Close, nil
}
