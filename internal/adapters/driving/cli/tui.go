package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui"
	"github.com/custodia-labs/redliner/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Redliner.

The TUI lists recently opened drawings, shows each document's annotations
with their rendered colours and lets you draw new markup from the keyboard.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open / Select
  n        - New annotation
  x        - Delete annotation
  l        - Cycle layer filter
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts hands every configured service to the TUI; nil optional
// services just hide their feature.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(documentService, annotationService)
	ports.Renderer = annotationRender
	ports.Preference = preferenceService
	ports.Settings = settingsService
	ports.Monitor = documentMonitor
	return ports
}

// runTUI reports a panic inside the bubbletea loop as an error.
func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("tui panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("TUI panicked: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
