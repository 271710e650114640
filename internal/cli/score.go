package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
	"github.com/bordenet/acceptance-criteria-assistant/internal/report"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

var (
	scoreJSON    bool
	scoreNoColor bool
	scoreMin     int
	scoreSave    bool
	scoreProject string
	scoreTitle   string
)

var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Score an acceptance criteria document",
	Long: `Score a Markdown acceptance criteria document. With no argument or '-',
the document is read from stdin.

With --min, the command exits with status 2 when the total is below the
threshold, for use in CI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readDocument(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		result := newValidator().Validate(text)
		logger.Debug("scored", "path", path, "total", result.TotalScore)

		if scoreSave && strings.TrimSpace(text) != "" {
			if err := saveScore(path, text, result); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if scoreJSON {
			data, err := report.JSON(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			fmt.Fprint(out, report.Text(result, useColor(scoreNoColor)))
		}

		if scoreMin > 0 && result.TotalScore < scoreMin {
			return &CLIError{
				Message:  fmt.Sprintf("score %d is below the minimum %d", result.TotalScore, scoreMin),
				Hint:     "Run 'acs score' without --json to see every issue",
				ExitCode: 2,
			}
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result as JSON")
	scoreCmd.Flags().BoolVar(&scoreNoColor, "no-color", false, "disable colored output")
	scoreCmd.Flags().IntVar(&scoreMin, "min", 0, "exit with status 2 if the total is below this score")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "record the score in history")
	scoreCmd.Flags().StringVar(&scoreProject, "project", "", "project name recorded with --save")
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "title recorded with --save (default: file name, or the first line when reading stdin)")
	RootCmd.AddCommand(scoreCmd)
}

// readDocument reads path, or r when path is "-".
func readDocument(r io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func saveScore(path, text string, result scoring.ValidationResult) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	title := scoreTitle
	if title == "" && path != "-" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	id, err := store.Add(history.NewRecord(scoreProject, "", title, text, result))
	if err != nil {
		return fmt.Errorf("saving score: %w", err)
	}
	logger.Debug("score saved", "id", id)
	return nil
}

// useColor honors --no-color and the NO_COLOR convention.
func useColor(noColor bool) bool {
	return !noColor && os.Getenv("NO_COLOR") == ""
}
