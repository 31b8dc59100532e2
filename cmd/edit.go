package cmd

import (
	"github.com/itsmostafa/pdfbm/internal/session"
	"github.com/itsmostafa/pdfbm/internal/shell"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [file.pdf]",
	Short: "Edit bookmarks in an interactive shell",
	Long: `Open the interactive bookmark shell, optionally pre-loading a PDF.

The shell exposes a fixed command set (load, show, move, reparent,
remove, save-pdf, save-json, load-json, ...); type "help" inside the
shell for the full list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New()
		defer s.Close()

		sh := shell.New(s, cmd.OutOrStdout())
		if len(args) == 1 {
			if err := s.LoadPDF(args[0]); err != nil {
				return err
			}
		}
		return sh.Run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
