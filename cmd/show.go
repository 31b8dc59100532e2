package cmd

import (
	"fmt"
	"strings"

	"seehuhn.de/go/pdf"

	"github.com/itsmostafa/pdfbm/internal/bookmarks"
	"github.com/itsmostafa/pdfbm/internal/pdfbridge"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <file.pdf>",
	Short: "Print the bookmark tree of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := pdf.Open(args[0], nil)
		if err != nil {
			return err
		}
		defer doc.Close()

		tree, err := pdfbridge.Import(doc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showJSON {
			return bookmarks.Save(out, tree)
		}
		for node, depth := range tree.Walk() {
			if node.IsRoot() {
				continue
			}
			fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth-1), node)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the tree as JSON instead of text")
	rootCmd.AddCommand(showCmd)
}
