package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/pdfbm/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdfbm",
	Short: "Edit the bookmark tree of PDF documents",
	Long: `pdfbm edits the bookmark (outline) hierarchy of PDF documents.

It loads a PDF's outline into an editable tree, lets you rearrange, add
and remove entries in an interactive shell, and writes either a new PDF
with the updated outline or a JSON serialization of the tree.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pdfbm %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
