package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
)

var (
	historyLimit   int
	historyProject string
	historyMin     int
)

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List or search recorded scores",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		results, err := store.Search(query, history.SearchOptions{
			Project:  historyProject,
			MinScore: historyMin,
			Limit:    historyLimit,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No scores found.")
			return nil
		}
		for _, r := range results {
			project := r.Project
			if project == "" {
				project = "-"
			}
			fmt.Fprintf(out, "%s  %3d %s  %-12s %s  (%s)\n",
				r.CreatedAt, r.TotalScore, r.Grade, project, r.Title, shortID(r.ID))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of results")
	historyCmd.Flags().StringVar(&historyProject, "project", "", "only show this project")
	historyCmd.Flags().IntVar(&historyMin, "min", 0, "only show scores at or above this total")
	RootCmd.AddCommand(historyCmd)
}

// openHistory opens the history store described by the loaded config.
func openHistory() (*history.Store, error) {
	if appConfig == nil || !appConfig.History.Enabled {
		return nil, errHistoryDisabled
	}
	return history.New(history.Config{
		DataDir:          appConfig.DataDir,
		MaxContentLength: appConfig.History.MaxContentLength,
		MaxSearchResults: appConfig.History.MaxResults,
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
