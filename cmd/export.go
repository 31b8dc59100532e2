package cmd

import (
	"github.com/itsmostafa/pdfbm/internal/session"
	"github.com/spf13/cobra"
)

var exportFrom int
var exportTo int
var exportBookmarks string

var exportCmd = &cobra.Command{
	Use:   "export <in.pdf> <out.pdf>",
	Short: "Write a copy of a PDF with its bookmarks rebuilt",
	Long: `Copy a page range of a PDF into a new file, rebuilding the outline
from the source document's bookmarks or from a JSON tree saved earlier.

Bookmark page numbers are written unchanged: when --from drops leading
pages, the bookmarks are NOT shifted to match the trimmed document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New()
		defer s.Close()

		if err := s.LoadPDF(args[0]); err != nil {
			return err
		}
		if exportBookmarks != "" {
			if err := s.LoadJSON(exportBookmarks); err != nil {
				return err
			}
		}
		return s.SavePDF(args[1], exportFrom, exportTo)
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportFrom, "from", 0, "First page to copy, 1-based (default: first page)")
	exportCmd.Flags().IntVar(&exportTo, "to", 0, "Last page to copy, inclusive (default: last page)")
	exportCmd.Flags().StringVar(&exportBookmarks, "bookmarks", "", "JSON bookmark tree to apply instead of the source outline")
	rootCmd.AddCommand(exportCmd)
}
