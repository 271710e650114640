package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [id]",
	Short: "List workflow projects, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := workflow.NewFileStore(appConfig.WorkflowDir())
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s  %s  (%s)\n", p.ID, p.Title, p.Status)
			for _, e := range p.Phases {
				score := "-"
				if e.Score != nil {
					score = fmt.Sprintf("%d", *e.Score)
				}
				fmt.Fprintf(out, "  %-10s %-12s %s\n", e.Name, e.Status, score)
			}
			return nil
		}

		projects, err := store.List()
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects. Start one from your assistant with ac_start.")
			return nil
		}
		for _, p := range projects {
			score := "-"
			if s, ok := p.LatestScore(); ok {
				score = fmt.Sprintf("%d", s)
			}
			fmt.Fprintf(out, "%-30s %-10s %-10s %3s  %s\n", p.ID, p.Status, p.CurrentPhase, score, p.Title)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(projectsCmd)
}
