package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04"

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage tracked documents",
	Long:  `Open, list, inspect, remove or watch the documents in the recent list.`,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a document and add it to the recent list",
	Long: `Opens a PDF, DXF or DWG file. The first open registers the document;
later opens move it to the top of the recent list.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentOpen,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and its annotations",
	Long:  `Removes a document from the recent list. Its annotations are deleted too. The file on disk is not touched.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

var documentRevealCmd = &cobra.Command{
	Use:   "reveal [doc-id]",
	Short: "Show the document in the file manager",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReveal,
}

var documentWatchCmd = &cobra.Command{
	Use:   "watch [doc-id...]",
	Short: "Report changes to document files",
	Long:  `Watches the given documents, or every recent document, and prints a line whenever a file is modified or removed. Stops on Ctrl+C.`,
	RunE:  runDocumentWatch,
}

var (
	documentListLimit int
	documentRemoveYes bool
)

func init() {
	documentListCmd.Flags().IntVarP(&documentListLimit, "limit", "n", 0, "maximum number of documents (0 = configured default)")
	documentRemoveCmd.Flags().BoolVarP(&documentRemoveYes, "yes", "y", false, "remove without asking")

	documentCmd.AddCommand(documentOpenCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentRevealCmd)
	documentCmd.AddCommand(documentWatchCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	doc, err := documentService.OpenOrRegister(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %d: %s\n", doc.ID, doc.FileName)
	if annotationService != nil {
		annotations, err := annotationService.ListForDocument(cmd.Context(), doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load annotations: %w", err)
		}
		cmd.Printf("  Annotations: %d\n", len(annotations))
	}
	if preferenceService != nil {
		if err := preferenceService.Set(cmd.Context(), domain.PrefLastOpened, doc.FilePath); err != nil {
			cmd.PrintErrf("warning: could not record last opened document: %v\n", err)
		}
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	docs, err := documentService.Recent(cmd.Context(), documentListLimit)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No recent documents.")
		return nil
	}

	cmd.Println("Recent documents:")
	cmd.Println()
	for i := range docs {
		d := &docs[i]
		cmd.Printf("  %d  %s\n", d.ID, d.DisplayName())
		cmd.Printf("      %s\n", d.FilePath)
		cmd.Printf("      %s  %s\n", strings.ToUpper(string(d.FileType)), d.LastModified.Local().Format(timeLayout))
	}
	cmd.Println()
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %d\n\n", doc.ID)
	cmd.Printf("  Name:     %s\n", doc.FileName)
	cmd.Printf("  Path:     %s\n", doc.FilePath)
	cmd.Printf("  Type:     %s\n", strings.ToUpper(string(doc.FileType)))
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Modified: %s\n", doc.LastModified.Local().Format("2006-01-02 15:04:05"))

	if annotationService != nil {
		layers, err := annotationService.Layers(cmd.Context(), doc.ID)
		if err != nil {
			return fmt.Errorf("failed to list layers: %w", err)
		}
		if len(layers) > 0 {
			cmd.Printf("  Layers:   %s\n", strings.Join(layers, ", "))
		}
	}
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if !documentRemoveYes {
		ok, err := confirm(cmd, fmt.Sprintf("Remove %s and all of its annotations?", doc.FileName))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %d removed.\n", id)
	return nil
}

func runDocumentReveal(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	if err := documentService.RevealInFolder(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to reveal document: %w", err)
	}
	return nil
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}
	if documentMonitor == nil {
		return errNotConfigured("document monitor")
	}

	ctx := cmd.Context()
	var docs []domain.Document
	if len(args) == 0 {
		recent, err := documentService.ListRecent(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		docs = recent
	}
	for _, arg := range args {
		id, err := parseID("document", arg)
		if err != nil {
			return err
		}
		doc, err := documentService.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if len(docs) == 0 {
		cmd.Println("No documents to watch.")
		return nil
	}

	events, err := documentMonitor.Watch(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to watch documents: %w", err)
	}

	cmd.Printf("Watching %d documents. Press Ctrl+C to stop.\n", len(docs))
	for ev := range events {
		cmd.Printf("%s  %-8s  %d  %s\n", timeNow().Local().Format("15:04:05"), ev.Kind, ev.DocumentID, ev.Path)
	}
	return nil
}

// confirm asks a yes/no question. Without a terminal the answer must be
// given with --yes.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("refusing to remove without confirmation; pass --yes: %w", domain.ErrInvalidInput)
	}

	cmd.Printf("%s [y/N]: ", question)
	return readYes(in), nil
}

func readYes(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
