package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefCmd = &cobra.Command{
	Use:   "pref",
	Short: "Manage stored preferences",
	Long:  `Read and write the key/value preferences kept in the database.`,
}

var prefGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a preference value",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefGet,
}

var prefSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefSet,
}

var prefListCmd = &cobra.Command{
	Use:   "list",
	Short: "List preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefList,
}

var prefDeleteCmd = &cobra.Command{
	Use:   "delete [key]",
	Short: "Remove a preference",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefDelete,
}

func init() {
	prefCmd.AddCommand(prefGetCmd)
	prefCmd.AddCommand(prefSetCmd)
	prefCmd.AddCommand(prefListCmd)
	prefCmd.AddCommand(prefDeleteCmd)
	rootCmd.AddCommand(prefCmd)
}

func runPrefGet(cmd *cobra.Command, args []string) error {
	if preferenceService == nil {
		return errNotConfigured("preference")
	}

	value, err := preferenceService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get preference: %w", err)
	}

	cmd.Println(value)
	return nil
}

func runPrefSet(cmd *cobra.Command, args []string) error {
	if preferenceService == nil {
		return errNotConfigured("preference")
	}

	if err := preferenceService.Set(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runPrefList(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errNotConfigured("preference")
	}

	prefs, err := preferenceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}

	if len(prefs) == 0 {
		cmd.Println("No preferences stored.")
		return nil
	}
	for _, p := range prefs {
		cmd.Printf("%s = %s\n", p.Key, p.Value)
	}
	return nil
}

func runPrefDelete(cmd *cobra.Command, args []string) error {
	if preferenceService == nil {
		return errNotConfigured("preference")
	}

	if err := preferenceService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	cmd.Printf("Preference %s deleted.\n", args[0])
	return nil
}
