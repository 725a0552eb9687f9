package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample documents and annotations",
	Long:  `Adds sample documents with annotations when the library is empty. Does nothing otherwise.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if seeder == nil {
		return errNotConfigured("seeder")
	}

	seeded, err := seeder.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	if !seeded {
		cmd.Println("Library already has documents; nothing seeded.")
		return nil
	}
	cmd.Println("Sample documents and annotations added.")
	return nil
}
