package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// errHistoryDisabled is returned by commands that need the history store
// when it is turned off.
var errHistoryDisabled = errors.New("history is disabled")

// CLIError wraps errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, errHistoryDisabled):
		return NewCLIError("history is disabled", "Set history.enabled: true in config.yaml or ACS_HISTORY_ENABLED=true", nil)
	case errors.Is(err, workflow.ErrNotFound):
		return NewCLIError("project not found", "Run 'acs projects' to list projects", err)
	case errors.Is(err, os.ErrNotExist):
		return NewCLIError("file not found", "Check the path, or pass '-' to read from stdin", err)
	}
	return err
}
