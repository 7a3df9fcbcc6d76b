package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
)

const historyTimeLayout = "2006-01-02 15:04"

// ActivityLog keeps a bounded, newest-first history of user actions.
type ActivityLog struct {
	store      *storage.Store
	maxEntries int
	log        *zap.SugaredLogger
}

// NewActivityLog creates an ActivityLog capped at maxEntries.
func NewActivityLog(store *storage.Store, maxEntries int, log *zap.SugaredLogger) *ActivityLog {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ActivityLog{store: store, maxEntries: maxEntries, log: log}
}

// Append unconditionally inserts a new entry at the head and drops the oldest
// entries beyond the cap. Failures are logged, never surfaced: history is
// best-effort bookkeeping, not part of any operation's contract.
func (a *ActivityLog) Append(action, detail string) {
	entries, _ := a.store.LoadHistory()

	entry := models.LogEntry{
		Date:   time.Now().Format(historyTimeLayout),
		Action: action,
		Detail: detail,
	}
	entries = append([]models.LogEntry{entry}, entries...)

	if len(entries) > a.maxEntries {
		entries = entries[:a.maxEntries]
	}

	if err := a.store.SaveHistory(entries); err != nil {
		a.log.Warnw("append activity log failed", "action", action, "error", err)
	}
}
