package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save [doc-id] [dest]",
	Short: "Save a copy of a document",
	Long:  `Copies the document file to dest and moves the document to the top of the recent list.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	if err := exportService.SaveCopy(cmd.Context(), docID, args[1]); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	cmd.Printf("Saved document %d to %s\n", docID, args[1])
	return nil
}
