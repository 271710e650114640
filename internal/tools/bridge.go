package tools

import (
	"log/slog"

	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

// ScoreRecorder is notified every time a document is scored. It is an
// optional dependency; tools work with a nil recorder.
type ScoreRecorder interface {
	RecordScore(project, phase, title, content string, r scoring.ValidationResult)
}

// HistoryBridge records scores in the history store.
type HistoryBridge struct {
	store  *history.Store
	logger *slog.Logger
}

// NewHistoryBridge returns nil if store is nil.
func NewHistoryBridge(store *history.Store, logger *slog.Logger) *HistoryBridge {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryBridge{store: store, logger: logger}
}

// RecordScore saves the scored document. Failures are logged and dropped:
// scoring succeeded, and that is what the caller asked for.
func (b *HistoryBridge) RecordScore(project, phase, title, content string, r scoring.ValidationResult) {
	if b == nil {
		return
	}
	id, err := b.store.Add(history.NewRecord(project, phase, title, content, r))
	if err != nil {
		b.logger.Warn("history: record score", "project", project, "phase", phase, "error", err)
		return
	}
	b.logger.Debug("history: recorded score", "id", id, "total", r.TotalScore)
}

// notifyRecorder is a nil-safe helper called from Handle methods.
func notifyRecorder(rec ScoreRecorder, project, phase, title, content string, r scoring.ValidationResult) {
	if rec == nil {
		return
	}
	rec.RecordScore(project, phase, title, content, r)
}
