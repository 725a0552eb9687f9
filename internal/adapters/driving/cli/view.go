package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

var viewCmd = &cobra.Command{
	Use:   "view [path]",
	Short: "Describe how a file would be displayed",
	Long: `Loads a PDF, DXF, DWG or DWF file in the viewer and prints the page size
or, for CAD drawings, the placeholder shown instead of a rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if documentViewer == nil {
		return errNotConfigured("viewer")
	}

	path := args[0]
	if !documentViewer.CanView(path) {
		return fmt.Errorf("cannot view %s: %w", path, domain.ErrUnsupportedType)
	}

	view, err := documentViewer.Load(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	cmd.Printf("File: %s\n", view.FileName)
	cmd.Printf("Type: %s\n", strings.ToUpper(string(view.FileType)))
	switch view.Kind {
	case domain.ViewPlaceholder:
		cmd.Println(view.Title)
		cmd.Println(view.Message)
	default:
		cmd.Printf("Page: %d x %d px at %d dpi\n", view.Width, view.Height, view.DPI)
	}
	return nil
}
