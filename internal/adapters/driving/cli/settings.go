package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in config.toml.

Run without a subcommand to show the current settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  documents.recent_limit     - documents shown in the recent list
  annotations.default_color  - colour for new annotations, e.g. #FF0000
  annotations.default_stroke - stroke thickness for new annotations
  annotations.default_layer  - layer for new annotations
  annotations.strict_types   - reject unknown annotation types (true/false)
  viewer.dpi                 - page rendering resolution`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Recent limit: %d\n", settings.Documents.RecentLimit)
	cmd.Println()

	cmd.Println("[Annotations]")
	cmd.Printf("  Default colour: %s\n", settings.Annotations.DefaultColor)
	cmd.Printf("  Default stroke: %g\n", settings.Annotations.DefaultStroke)
	layer := settings.Annotations.DefaultLayer
	if layer == "" {
		layer = "(none)"
	}
	cmd.Printf("  Default layer:  %s\n", layer)
	cmd.Printf("  Strict types:   %t\n", settings.Annotations.StrictTypes)
	cmd.Println()

	cmd.Println("[Viewer]")
	cmd.Printf("  DPI: %d\n", settings.Viewer.DPI)

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s (known keys: %s): %w", key, strings.Join(settingsService.Keys(), ", "), err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}
