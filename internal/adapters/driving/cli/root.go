// Package cli provides the redliner command line interface built on cobra.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// timeNow is replaced in tests.
var timeNow = time.Now

// Services used by the commands. Set by SetServices or the bootstrap hook.
var (
	documentService   driving.DocumentService
	annotationService driving.AnnotationService
	annotationRender  driving.AnnotationRenderer
	documentViewer    driving.DocumentViewer
	exportService     driving.ExportService
	preferenceService driving.PreferenceService
	settingsService   driving.SettingsService
	seeder            driving.Seeder
	documentMonitor   driving.DocumentMonitor
)

// Services bundles everything the commands need.
type Services struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService
	Renderer   driving.AnnotationRenderer
	Viewer     driving.DocumentViewer
	Export     driving.ExportService
	Preference driving.PreferenceService
	Settings   driving.SettingsService
	Seeder     driving.Seeder
	Monitor    driving.DocumentMonitor
}

// Options are the global flags handed to the bootstrap hook.
type Options struct {
	DataDir   string
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds the services for a command run. The returned cleanup
// runs after the command finishes.
type Bootstrap func(opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
	opts      Options
)

var rootCmd = &cobra.Command{
	Use:   "redliner",
	Short: "Annotate PDF and CAD drawings",
	Long: `Redliner keeps a library of recently opened PDF and CAD drawings and
stores markup annotations (rectangles, circles, arrows, text and highlights)
for each of them in a local SQLite database.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return runCleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding redliner.db")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory holding config.toml")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the hook that builds services before each command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap hook.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	documentService = s.Document
	annotationService = s.Annotation
	annotationRender = s.Renderer
	documentViewer = s.Viewer
	exportService = s.Export
	preferenceService = s.Preference
	settingsService = s.Settings
	seeder = s.Seeder
	documentMonitor = s.Monitor
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := runCleanup(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if bootstrap == nil || cmd.Name() == versionCmd.Name() {
		return nil
	}

	services, done, err := bootstrap(opts)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() error {
	if cleanup == nil {
		return nil
	}
	done := cleanup
	cleanup = nil
	return done()
}

// parseID parses a positive integer identifier.
func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q: %w", kind, s, domain.ErrInvalidInput)
	}
	return id, nil
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
