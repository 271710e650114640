package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
)

var templateTitle string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a blank acceptance criteria document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := templates.NewRenderer()
		if err != nil {
			return err
		}
		out, err := r.Render(templates.Document, templates.DocumentData{Title: templateTitle})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVar(&templateTitle, "title", "", "feature name for the heading")
	RootCmd.AddCommand(templateCmd)
}
