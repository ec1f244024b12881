package engine

import "github.com/kanban-board/kanban/internal/domain"

// newEntry creates an activity entry stamped with the engine clock.
func (e *Engine) newEntry(msg string) domain.ActivityLogEntry {
	return domain.ActivityLogEntry{
		ID:        e.ids.NewID(domain.ActivityIDPrefix),
		Message:   msg,
		Timestamp: e.clock.Now().UTC(),
	}
}

// logBoard prepends an entry to the board log, evicting the oldest
// entries beyond the configured cap.
func (tx *txn) logBoard(msg string) {
	entry := tx.e.newEntry(msg)
	log := make([]domain.ActivityLogEntry, 0, len(tx.state.Activity)+1)
	log = append(log, entry)
	log = append(log, tx.state.Activity...)
	if len(log) > tx.e.opts.ActivityLimit {
		log = log[:tx.e.opts.ActivityLimit]
	}
	tx.state.Activity = log
	tx.lines = append(tx.lines, logLine{msg: msg})
}

// logTask prepends an entry to a task's own activity. The task log is uncapped.
func (tx *txn) logTask(t *domain.Task, msg string) {
	entry := tx.e.newEntry(msg)
	t.Activity = append([]domain.TaskActivityLogEntry{entry}, t.Activity...)
	tx.lines = append(tx.lines, logLine{taskID: t.ID, msg: msg})
}

// Activity returns the board activity log, newest first.
func (e *Engine) Activity() []domain.ActivityLogEntry {
	log := e.Snapshot().Activity
	return append(make([]domain.ActivityLogEntry, 0, len(log)), log...)
}
