package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/report"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/watch"
)

var watchNoColor bool

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-score a document every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color := useColor(watchNoColor)
		session := watch.NewSession(newValidator())

		first, err := session.Rescore(path)
		if err != nil {
			return err
		}
		fmt.Fprint(out, report.Text(first.Result, color))

		debounce := watch.DefaultDebounce
		if appConfig != nil && appConfig.Watch.Debounce > 0 {
			debounce = appConfig.Watch.Debounce
		}

		w, err := watch.NewFileWatcher(path, debounce, func(e watch.Event) {
			if e.ChangeType == "remove" || e.ChangeType == "rename" {
				logger.Debug("file moved away; waiting for it to come back", "path", e.Path)
				return
			}
			u, err := session.Rescore(e.Path)
			if err != nil {
				logger.Warn("rescore failed", "path", e.Path, "error", err)
				return
			}
			fmt.Fprintln(out, statusLine(timeNow(), u))
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", w.Path())
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoColor, "no-color", false, "disable colored output")
	RootCmd.AddCommand(watchCmd)
}

var timeNow = time.Now

// statusLine is the one-line summary printed after each save.
func statusLine(at time.Time, u watch.Update) string {
	r := u.Result
	line := fmt.Sprintf("[%s] %d/%d %s (%s)", at.Format("15:04:05"), r.TotalScore, scoring.MaxTotal, r.Grade(), watch.FormatDelta(u.Delta))
	for _, d := range r.Dimensions() {
		line += fmt.Sprintf("  %s %d/%d", d.Name, d.Score, d.MaxScore)
	}
	return line
}
